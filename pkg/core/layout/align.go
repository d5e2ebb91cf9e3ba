package layout

import (
	"math"

	"github.com/strandlab/strandplot/pkg/core/segments"
)

// StemRotation computes the angle that aligns the dominant stem
// vertically.
//
// The dominant stem is the one opened by the first paired base i with
// partner j. When an immediately nested inner pair exists (i+1 with j-1)
// the angle derives from the direction between the two pair midpoints,
// which stays accurate for deep stems; otherwise from making the outer
// bond horizontal. Returns ok=false when there is no pair or the bond is
// numerically degenerate.
func StemRotation(r *Result) (angle float64, ok bool) {
	pairs := r.Pairs
	bases := r.Layout.Bases

	i := -1
	for idx, p := range pairs {
		if p != idx && idx < p {
			i = idx
			break
		}
	}
	if i < 0 {
		return 0, false
	}
	j := pairs[i]

	if j > 1 && i+1 < j-1 && pairs[i+1] == j-1 {
		mx1 := (bases[i].X + bases[j].X) / 2
		my1 := (bases[i].Y + bases[j].Y) / 2
		mx2 := (bases[i+1].X + bases[j-1].X) / 2
		my2 := (bases[i+1].Y + bases[j-1].Y) / 2
		stemAngle := math.Atan2(my2-my1, mx2-mx1)
		return math.Pi/2 - stemAngle, true
	}

	dx := bases[j].X - bases[i].X
	dy := bases[j].Y - bases[i].Y
	if dx*dx+dy*dy < 1e-12 {
		return 0, false
	}
	return -math.Atan2(dy, dx), true
}

// Rotate turns every coordinate, angle and arc sweep in the result by
// angle about the origin.
func (r *Result) Rotate(angle float64) {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	rot := func(x, y float64) (float64, float64) {
		return x*cos - y*sin, x*sin + y*cos
	}

	for i := range r.Layout.Bases {
		b := &r.Layout.Bases[i]
		b.X, b.Y = rot(b.X, b.Y)
		b.Xt, b.Yt = rot(b.Xt, b.Yt)
		b.Angle1 += angle
		b.Angle2 += angle
	}

	for i := range r.Layout.Loops {
		l := &r.Layout.Loops[i]
		l.X, l.Y = rot(l.X, l.Y)
		for p := range l.Pairs {
			l.Pairs[p].Angle += angle
		}
	}

	for i := range r.Segments {
		for _, s := range []*segments.Segment{&r.Segments[i].In, &r.Segments[i].Out} {
			if ln := s.Line; ln != nil {
				ln.X, ln.Y = rot(ln.X, ln.Y)
				ln.X1, ln.Y1 = rot(ln.X1, ln.Y1)
			}
			if a := s.Arc; a != nil {
				a.X, a.Y = rot(a.X, a.Y)
				a.T1 += angle
				a.T2 += angle
			}
		}
	}
}
