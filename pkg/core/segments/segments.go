// Package segments derives backbone path segments from a computed layout.
//
// Every base carries exactly two segments, incoming and outgoing. On a
// loop with unpaired bases or three or more bonds the backbone follows
// the loop circle, so segments are circular arcs split at the angular
// midpoint between neighbors; on a simple two-bond stem or empty hairpin
// they are straight chords to the positional midpoint. At a strand break
// the segment degenerates to zero length, preserving position for
// continuity checks while rendering as nothing.
package segments

import (
	"github.com/strandlab/strandplot/pkg/core/geometry"
	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

// Line is a straight chord from (X, Y) to (X1, Y1).
type Line struct {
	X  float64 `json:"x"`
	X1 float64 `json:"x1"`
	Y  float64 `json:"y"`
	Y1 float64 `json:"y1"`
}

// Arc is a circular arc on the circle centered at (X, Y) with radius R,
// sweeping from angle T1 to T2.
type Arc struct {
	R  float64 `json:"r"`
	T1 float64 `json:"t1"`
	T2 float64 `json:"t2"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Segment is either a Line or an Arc; exactly one field is non-nil.
type Segment struct {
	Line *Line
	Arc  *Arc
}

// Pair holds a base's incoming and outgoing segments.
type Pair struct {
	In  Segment
	Out Segment
}

// Generate computes the two backbone segments of every base.
func Generate(ls []geometry.Loop, bases []geometry.Base, pt *structure.PairTable, infos []loops.LoopInfo) []Pair {
	n := pt.NumBases
	if n == 0 {
		return nil
	}
	nicks := pt.NickSet()

	out := make([]Pair, n)
	for i := 0; i < n; i++ {
		out[i] = Pair{
			In:  incoming(i, n, bases, ls, infos, nicks),
			Out: outgoing(i, n, bases, ls, infos, nicks),
		}
	}
	return out
}

// incoming is the segment from base i-1 towards base i. A nick at
// position i means the strand breaks just before base i.
func incoming(i, n int, bases []geometry.Base, ls []geometry.Loop, infos []loops.LoopInfo, nicks map[int]bool) Segment {
	if nicks[i] {
		shared := bases[i].Loop1
		if usesArcs(infos, shared) {
			lp := &ls[shared]
			a := bases[i].Angle1
			return Segment{Arc: &Arc{R: lp.Radius, T1: a, T2: a, X: lp.X, Y: lp.Y}}
		}
		return zeroLine(bases[i].X, bases[i].Y)
	}

	j := i - 1
	if i == 0 {
		j = n - 1
	}
	shared := bases[i].Loop1

	if usesArcs(infos, shared) {
		lp := &ls[shared]
		ai := bases[i].Angle1
		mid := (ai + bases[j].Angle2) / 2
		return Segment{Arc: &Arc{R: lp.Radius, T1: ai, T2: mid, X: lp.X, Y: lp.Y}}
	}
	mx := (bases[i].X + bases[j].X) / 2
	my := (bases[i].Y + bases[j].Y) / 2
	return Segment{Line: &Line{X: bases[i].X, X1: mx, Y: bases[i].Y, Y1: my}}
}

// outgoing is the segment from base i towards base i+1.
func outgoing(i, n int, bases []geometry.Base, ls []geometry.Loop, infos []loops.LoopInfo, nicks map[int]bool) Segment {
	next := (i + 1) % n
	shared := bases[i].Loop2

	if nicks[next] {
		if usesArcs(infos, shared) {
			lp := &ls[shared]
			mid := (bases[i].Angle2 + bases[next].Angle1) / 2
			return Segment{Arc: &Arc{R: lp.Radius, T1: mid, T2: mid, X: lp.X, Y: lp.Y}}
		}
		return zeroLine(bases[i].X, bases[i].Y)
	}

	if usesArcs(infos, shared) {
		lp := &ls[shared]
		ai := bases[i].Angle2
		mid := (ai + bases[next].Angle1) / 2
		return Segment{Arc: &Arc{R: lp.Radius, T1: mid, T2: ai, X: lp.X, Y: lp.Y}}
	}
	mx := (bases[i].X + bases[next].X) / 2
	my := (bases[i].Y + bases[next].Y) / 2
	return Segment{Line: &Line{X: bases[i].X, X1: mx, Y: bases[i].Y, Y1: my}}
}

// usesArcs reports whether a loop lays its backbone on the loop circle:
// any unpaired base, or three or more bonds (a solved general radius).
func usesArcs(infos []loops.LoopInfo, li int) bool {
	info := &infos[li]
	if len(info.Unpaired) > 0 {
		return true
	}
	return info.NumBonds() >= 3
}

func zeroLine(x, y float64) Segment {
	return Segment{Line: &Line{X: x, X1: x, Y: y, Y1: y}}
}
