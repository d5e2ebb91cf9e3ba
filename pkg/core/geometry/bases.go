package geometry

import (
	"math"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

// Label-length hints: interior bases vs strand boundaries.
const (
	lengthInterior = 0.5
	lengthBoundary = 0.69
)

// computeBases derives Cartesian coordinates, label anchors and backbone
// angle bookkeeping for every base from the placed loops.
func computeBases(ls []Loop, infos []loops.LoopInfo, pt *structure.PairTable, centers []float64) []Base {
	n := pt.NumBases
	bases := make([]Base, n)
	for i := range bases {
		bases[i].Length1 = lengthInterior
		bases[i].Length2 = lengthInterior
	}

	for li := range infos {
		info := &infos[li]
		lp := &ls[li]
		elems := collectElements(info, pt)
		if len(elems) == 0 {
			continue
		}

		halfPA := math.Asin(HalfPair / lp.Radius)
		pairA := 2 * halfPA
		arcA := lp.ArcAngle
		nickA := arcA * NickWeight
		isExternal := info.Parent == nil

		angles := assignAngles(elems, halfPA, pairA, arcA, nickA, isExternal, centers[li])

		for i, e := range elems {
			if e.kind == elemNick {
				continue
			}
			b := e.base
			angle := angles[i]
			bases[b].X = lp.X + lp.Radius*math.Cos(angle)
			bases[b].Y = lp.Y + lp.Radius*math.Sin(angle)

			if pt.Pairs[b] != b {
				// A paired base appears on two loop circles, once per
				// backbone direction.
				switch e.kind {
				case elemPairFirst:
					bases[b].Angle1 = angle
					bases[b].Loop1 = li
				case elemPairLast:
					bases[b].Angle2 = angle
					bases[b].Loop2 = li
				}
			} else {
				bases[b].Angle1 = angle
				bases[b].Angle2 = angle
				bases[b].Loop1 = li
				bases[b].Loop2 = li
			}
		}
	}

	// Strand boundaries from nick positions: a nick value is the first base
	// of a new strand, the base before it ends the previous strand.
	strandStart := make([]bool, n)
	strandEnd := make([]bool, n)
	for _, nick := range pt.Nicks {
		if nick < n {
			strandStart[nick] = true
		}
		prev := nick - 1
		if nick == 0 {
			prev = n - 1
		}
		strandEnd[prev] = true
	}

	boundary := func(isBoundary bool) float64 {
		if isBoundary {
			return lengthBoundary
		}
		return lengthInterior
	}

	for i := 0; i < n; i++ {
		j := pt.Pairs[i]
		switch {
		case j != i && i < j:
			// Label anchor at the pair midpoint, shared by both partners.
			mx := (bases[i].X + bases[j].X) / 2
			my := (bases[i].Y + bases[j].Y) / 2
			bases[i].Xt, bases[j].Xt = mx, mx
			bases[i].Yt, bases[j].Yt = my, my
			bases[i].Length1 = boundary(strandStart[i])
			bases[i].Length2 = boundary(strandEnd[i])
			bases[j].Length1 = boundary(strandStart[j])
			bases[j].Length2 = boundary(strandEnd[j])
		case j == i:
			// Label anchor half a unit outward from the loop circle.
			lp := &ls[bases[i].Loop1]
			angle := bases[i].Angle1
			bases[i].Xt = lp.X + (lp.Radius+HalfPair)*math.Cos(angle)
			bases[i].Yt = lp.Y + (lp.Radius+HalfPair)*math.Sin(angle)
			bases[i].Length1 = boundary(strandStart[i])
			bases[i].Length2 = boundary(strandEnd[i])
		}
	}

	return bases
}

// centerCoordinates shifts every loop center, base position and label
// anchor so the combined bounding box is centered at the origin.
func centerCoordinates(ls []Loop, bases []Base) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)

	for i := range ls {
		minX = math.Min(minX, ls[i].X)
		maxX = math.Max(maxX, ls[i].X)
		minY = math.Min(minY, ls[i].Y)
		maxY = math.Max(maxY, ls[i].Y)
	}
	for i := range bases {
		minX = math.Min(minX, math.Min(bases[i].X, bases[i].Xt))
		maxX = math.Max(maxX, math.Max(bases[i].X, bases[i].Xt))
		minY = math.Min(minY, math.Min(bases[i].Y, bases[i].Yt))
		maxY = math.Max(maxY, math.Max(bases[i].Y, bases[i].Yt))
	}

	shiftX := -0.5 * (minX + maxX)
	shiftY := -0.5 * (minY + maxY)

	for i := range ls {
		ls[i].X += shiftX
		ls[i].Y += shiftY
	}
	for i := range bases {
		bases[i].X += shiftX
		bases[i].Y += shiftY
		bases[i].Xt += shiftX
		bases[i].Yt += shiftY
	}
}
