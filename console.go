package spanref

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/spanref/coverage"
	"golang.org/x/term"
)

// Console output of coverage maps is a debugging aid only; it has no
// behavioral surface. Each cell of the region tree enclosing ref is
// rendered as one glyph, downsampled when the region is wider than the
// output line.

// defaultBarWidth is used when the output is not an interactive terminal.
const defaultBarWidth = 80

func makeDepthPalette() []*color.Color {
	return []*color.Color{
		color.New(color.FgHiBlack),              // depth 0, hole
		color.New(color.FgHiBlue),               // depth 1
		color.New(color.FgHiCyan),               // depth 2
		color.New(color.FgHiGreen),              // depth 3
		color.New(color.FgHiYellow, color.Bold), // depth 4+
	}
}

// DumpCoverage renders the covered/hole map of the region tree behind ref
// as a colored bar, one line, clamped to the terminal width when w is an
// interactive terminal.
//
// Holes render as dots, covered cells as blocks colored by nesting depth.
// Degenerate and released references render as an annotation only.
func DumpCoverage(w io.Writer, ref *Ref) {
	if ref == nil || ref.locator == nil || ref.disposed {
		fmt.Fprintln(w, "(no coverage)")
		return
	}
	root := coverage.RootOf(ref.locator)
	extent, ok := coverage.Enclosing(root)
	if !ok || extent.Length == 0 {
		fmt.Fprintln(w, "(empty coverage tree)")
		return
	}
	width := defaultBarWidth
	if f, isFile := w.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 8 {
			width = tw - 2
		}
	}
	step := (extent.Length + int64(width) - 1) / int64(width)
	if step < 1 {
		step = 1
	}
	palette := makeDepthPalette()
	fmt.Fprintf(w, "[%d ", extent.Offset)
	for pos := extent.Offset; pos < extent.End(); pos += step {
		depth := coverage.DepthAt(root, pos)
		c := palette[len(palette)-1]
		if depth >= 0 && int(depth) < len(palette) {
			c = palette[int(depth)]
		}
		if depth <= 0 {
			c.Fprint(w, "·")
		} else {
			c.Fprint(w, "█")
		}
	}
	fmt.Fprintf(w, " %d)\n", extent.End())
}
