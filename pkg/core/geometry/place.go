package geometry

import (
	"math"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

// placeLoops builds every loop's bond list with its proper orientation and
// positions all loop centers, breadth-first from the external loop. The
// returned slice holds each loop's center angle, needed later for base
// coordinates.
//
// The external loop's center angle is fixed at π/2 and its center at the
// origin. A child discovered through a bond is rotated so its own parent
// bond points back at us (bond angle + π), then translated so the bond
// midpoint, approached from each side using each loop's chord height,
// coincides exactly. That coincidence is what prevents visual gaps at
// stem junctions.
func placeLoops(ls []Loop, infos []loops.LoopInfo, pt *structure.PairTable) []float64 {
	n := len(ls)
	if n == 0 {
		return nil
	}

	centers := make([]float64, n)
	centers[0] = math.Pi / 2
	buildLoopPairs(ls, infos, pt, 0, centers[0])
	ls[0].X, ls[0].Y = 0, 0

	visited := make([]bool, n)
	visited[0] = true
	queue := []int{0}

	for len(queue) > 0 {
		li := queue[0]
		queue = queue[1:]

		for _, lp := range ls[li].Pairs {
			ni := lp.Neighbor
			if ni >= n || visited[ni] {
				continue
			}
			visited[ni] = true

			childCenter := lp.Angle + math.Pi
			centers[ni] = childCenter
			buildLoopPairs(ls, infos, pt, ni, childCenter)

			// Bond midpoint seen from the parent side.
			mx := ls[li].X + ls[li].Height*math.Cos(lp.Angle)
			my := ls[li].Y + ls[li].Height*math.Sin(lp.Angle)

			// Same bond seen from the child side.
			niAngle := childCenter
			for _, cp := range ls[ni].Pairs {
				if cp.First == lp.Last && cp.Last == lp.First {
					niAngle = cp.Angle
					break
				}
			}

			ls[ni].X = mx - ls[ni].Height*math.Cos(niAngle)
			ls[ni].Y = my - ls[ni].Height*math.Sin(niAngle)

			queue = append(queue, ni)
		}
	}
	return centers
}

// buildLoopPairs populates ls[li].Pairs for the given center angle.
// A bond's angle is the angular midpoint of its two endpoints, recorded at
// the closing endpoint plus half a pair angle.
func buildLoopPairs(ls []Loop, infos []loops.LoopInfo, pt *structure.PairTable, li int, center float64) {
	ls[li].Pairs = ls[li].Pairs[:0]
	info := &infos[li]
	elems := collectElements(info, pt)
	if len(elems) == 0 {
		return
	}

	r := ls[li].Radius
	halfPA := math.Asin(HalfPair / r)
	pairA := 2 * halfPA
	arcA := ls[li].ArcAngle
	nickA := arcA * NickWeight
	isExternal := info.Parent == nil

	angles := assignAngles(elems, halfPA, pairA, arcA, nickA, isExternal, center)

	for i, e := range elems {
		if e.kind != elemPairFirst {
			continue
		}
		lastIdx := i
		for j, other := range elems {
			if other.kind == elemPairLast && other.base == e.partner {
				lastIdx = j
				break
			}
		}
		ls[li].Pairs = append(ls[li].Pairs, LoopPair{
			Angle:    angles[lastIdx] + halfPA,
			First:    e.base,
			Last:     e.partner,
			Neighbor: neighborLoop(infos, li, e.base, e.partner),
		})
	}
}

// neighborLoop finds the loop on the far side of the bond (first, last).
// For the current loop's own enclosing pair that is the loop holding the
// pair as a child; otherwise it is the loop the pair encloses.
func neighborLoop(infos []loops.LoopInfo, current, first, last int) int {
	if p := infos[current].Parent; p != nil {
		if (first == p.J && last == p.I) || (first == p.I && last == p.J) {
			for li := range infos {
				if li == current {
					continue
				}
				for _, c := range infos[li].Children {
					if (c.I == p.I && c.J == p.J) || (c.I == p.J && c.J == p.I) {
						return li
					}
				}
			}
			return 0
		}
	}
	for li := range infos {
		if q := infos[li].Parent; q != nil {
			if (q.I == first && q.J == last) || (q.I == last && q.J == first) {
				return li
			}
		}
	}
	return 0
}
