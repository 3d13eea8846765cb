/*
Package coverage implements the nesting-depth tree behind interval
references.

The tree tracks, across all live references into one memory region, how
many references cover each position. Keys are integer offsets; each node
carries a depth adjustment taking effect at its offset and a pin count of
references using the node as an endpoint. Two subtree aggregates, the
total adjustment and the relative minimum depth reached in key order, let
the tree locate coverage holes without visiting subtrees that provably
stay covered, and let it be severed into independent per-segment subtrees
once a hole appears.

Balance is heuristic: a node should sit above another when its offset has
the higher power-of-two rank. The structure stays correct for any input;
only performance degrades on adversarial offset patterns.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package coverage

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
