// Package layout assembles the full drawing pipeline.
//
// [Draw] runs notation parsing, loop decomposition, geometry resolution
// and segment generation, bundling everything a renderer needs into a
// [Result]. The optional stem alignment post-process rotates a finished
// result so its dominant stem runs vertical.
package layout

import (
	"github.com/strandlab/strandplot/pkg/core/geometry"
	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/segments"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

// Layout holds the geometric half of a draw result.
type Layout struct {
	Bases []geometry.Base `json:"bases"`
	Loops []geometry.Loop `json:"loops"`
}

// Result is the complete output bundle consumed by renderers: resolved
// geometry, the pair table and nick list it came from, and per-base
// backbone segments. Produced once per input and not mutated afterwards,
// except by [Result.Rotate].
type Result struct {
	Layout   Layout          `json:"layout"`
	Nicks    []int           `json:"nicks"`
	Pairs    []int           `json:"pairs"`
	Segments []segments.Pair `json:"segments"`
}

// Options are the only knobs the geometry core itself exposes. Everything
// visual (colors, widths, legends) belongs to the render layer.
type Options struct {
	// AlignStem rotates the finished layout so the dominant stem is
	// vertical.
	AlignStem bool
}

// Draw computes the full layout for a dot-bracket-plus string.
//
// Parse failures are returned as errors. Structures with nothing to draw
// (no bases, or no pairs at all) yield (nil, nil): they are valid inputs,
// merely empty ones.
func Draw(notation string, opts Options) (*Result, error) {
	pt, err := structure.Parse(notation)
	if err != nil {
		return nil, err
	}
	return DrawTable(pt, opts), nil
}

// DrawTable computes the layout for an already parsed structure. Returns
// nil when there is nothing to draw.
func DrawTable(pt *structure.PairTable, opts Options) *Result {
	if pt.NumBases == 0 {
		return nil
	}
	infos := loops.Decompose(pt)
	if len(infos) == 0 {
		return nil
	}

	ls, bases := geometry.Calculate(infos, pt)
	segs := segments.Generate(ls, bases, pt, infos)

	r := &Result{
		Layout:   Layout{Bases: bases, Loops: ls},
		Nicks:    pt.Nicks,
		Pairs:    pt.Pairs,
		Segments: segs,
	}
	if opts.AlignStem {
		if angle, ok := StemRotation(r); ok {
			r.Rotate(angle)
		}
	}
	return r
}
