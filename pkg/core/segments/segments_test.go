package segments

import (
	"math"
	"testing"

	"github.com/strandlab/strandplot/pkg/core/geometry"
	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

func build(t *testing.T, in string) (*structure.PairTable, []loops.LoopInfo, []geometry.Loop, []geometry.Base, []Pair) {
	t.Helper()
	pt, err := structure.Parse(in)
	if err != nil {
		t.Fatalf("Parse(%q): %v", in, err)
	}
	infos := loops.Decompose(pt)
	ls, bases := geometry.Calculate(infos, pt)
	return pt, infos, ls, bases, Generate(ls, bases, pt, infos)
}

// junctionOut resolves where an outgoing segment meets its neighbor:
// the chord endpoint for lines, the T1 end for arcs.
func junctionOut(s Segment) (x, y float64) {
	if s.Line != nil {
		return s.Line.X1, s.Line.Y1
	}
	return s.Arc.X + s.Arc.R*math.Cos(s.Arc.T1), s.Arc.Y + s.Arc.R*math.Sin(s.Arc.T1)
}

// junctionIn resolves where an incoming segment meets its neighbor:
// the chord endpoint for lines, the T2 end for arcs.
func junctionIn(s Segment) (x, y float64) {
	if s.Line != nil {
		return s.Line.X1, s.Line.Y1
	}
	return s.Arc.X + s.Arc.R*math.Cos(s.Arc.T2), s.Arc.Y + s.Arc.R*math.Sin(s.Arc.T2)
}

// startpoint resolves where a segment begins.
func startpoint(s Segment) (x, y float64) {
	if s.Line != nil {
		return s.Line.X, s.Line.Y
	}
	return s.Arc.X + s.Arc.R*math.Cos(s.Arc.T1), s.Arc.Y + s.Arc.R*math.Sin(s.Arc.T1)
}

func TestTwoSegmentsPerBase(t *testing.T) {
	for _, in := range []string{"()", "(..)", "(((...)))", "((..((.....))..((..)).))"} {
		pt, _, _, _, segs := build(t, in)
		if len(segs) != pt.NumBases {
			t.Errorf("%q: %d segment pairs, want %d", in, len(segs), pt.NumBases)
		}
	}
}

func TestStemUsesChords(t *testing.T) {
	_, _, _, bases, segs := build(t, "(((...)))")
	// Base 1 sits between two stem loops; both segments must be chords
	// starting at its own position.
	for _, s := range []Segment{segs[1].In, segs[1].Out} {
		if s.Line == nil {
			t.Fatal("stem segment must be a chord")
		}
		if s.Line.X != bases[1].X || s.Line.Y != bases[1].Y {
			t.Errorf("chord starts at (%v, %v), want base position (%v, %v)",
				s.Line.X, s.Line.Y, bases[1].X, bases[1].Y)
		}
	}
	// Base 4 is inside the hairpin, which has unpaired bases: arcs.
	if segs[4].In.Arc == nil || segs[4].Out.Arc == nil {
		t.Error("hairpin interior segments must be arcs")
	}
}

func TestNickDegeneracy(t *testing.T) {
	// ((+)) — all loops are bond-only, so the break degenerates to
	// zero-length chords.
	_, _, _, bases, segs := build(t, "((+))")
	in := segs[2].In
	if in.Line == nil || in.Line.X != in.Line.X1 || in.Line.Y != in.Line.Y1 {
		t.Errorf("segment across nick = %+v, want zero-length chord", in)
	}
	if in.Line.X != bases[2].X || in.Line.Y != bases[2].Y {
		t.Error("degenerate chord must sit at the base position")
	}
	out := segs[1].Out
	if out.Line == nil || out.Line.X != out.Line.X1 {
		t.Errorf("outgoing across nick = %+v, want zero-length chord", out)
	}

	// ((.+.)) — the hairpin has unpaired bases, so the break degenerates
	// to zero-sweep arcs instead.
	_, _, _, _, segs = build(t, "((.+.))")
	in = segs[3].In
	if in.Arc == nil || in.Arc.T1 != in.Arc.T2 {
		t.Errorf("segment across nick = %+v, want zero-sweep arc", in)
	}
}

// Consecutive backbone segments along an unbroken strand must share an
// endpoint; registered strand breaks are exempt.
func TestBackboneContinuity(t *testing.T) {
	inputs := []string{
		"()", "(..)", "((...))", "(((...)))", "((((....))))",
		"(((.+.)))", "((..((.....))..((..)).))", "((((((.....))))..))",
		"..((..))..", "(((+)))",
	}
	for _, in := range inputs {
		pt, _, _, _, segs := build(t, in)
		nicks := pt.NickSet()
		for i := 0; i < pt.NumBases-1; i++ {
			if nicks[i+1] {
				continue
			}
			x1, y1 := junctionOut(segs[i].Out)
			x2, y2 := junctionIn(segs[i+1].In)
			if math.Hypot(x1-x2, y1-y2) > 1e-6 {
				t.Errorf("%q: discontinuity between base %d out and base %d in: (%g,%g) vs (%g,%g)",
					in, i, i+1, x1, y1, x2, y2)
			}
		}
	}
}

// A base's own segments anchor at the base position.
func TestSegmentsAnchorAtBase(t *testing.T) {
	for _, in := range []string{"(..)", "(((...)))", "..((..)).."} {
		pt, _, _, bases, segs := build(t, in)
		nicks := pt.NickSet()
		for i := 0; i < pt.NumBases; i++ {
			if !nicks[i] {
				x, y := startpoint(segs[i].In)
				if math.Hypot(x-bases[i].X, y-bases[i].Y) > 1e-6 {
					t.Errorf("%q: base %d incoming starts away from base", in, i)
				}
			}
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	pt, err := structure.Parse("")
	if err != nil {
		t.Fatal(err)
	}
	if segs := Generate(nil, nil, pt, nil); segs != nil {
		t.Errorf("Generate on empty table = %v, want nil", segs)
	}
}
