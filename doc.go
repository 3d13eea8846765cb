/*
Package spanref implements interval references: handles into a contiguous
memory region that each pin a sub-range of that region, so that memory is
reclaimed exactly when it is no longer covered by any live handle.

A reference is created over a fresh allocation from a backing store and
may be sliced into narrower sub-references in logarithmic time. Releasing
any reference frees every maximal sub-range of its interval that no
surviving reference still covers, and nothing else. Overlapping slices
therefore keep shared cells alive, and disjoint slices punch holes that
are returned to the store immediately.

Internally all references into one region share a nesting-depth tree
(package coverage) which tracks, per position, how many live references
cover it. The backing store is external to this package; package storage
provides the contract and an in-memory implementation.

The package is strictly single-threaded: no operation blocks, and
concurrent use of references sharing a region is undefined.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package spanref

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// RefError is an error type for the spanref module
type RefError string

func (e RefError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an index or slice argument reaches
// beyond the length of a reference.
const ErrOutOfRange = RefError("index out of bounds")

// ErrUseAfterRelease is flagged whenever a released reference is used for
// reading or writing.
const ErrUseAfterRelease = RefError("use of released reference")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = RefError("illegal arguments")
