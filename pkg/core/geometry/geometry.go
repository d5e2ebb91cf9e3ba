package geometry

import (
	"math"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

// Calculate resolves the full geometry for a loop decomposition: per-loop
// radii and angles, loop center placement, and per-base coordinates, all
// recentered on the bounding-box midpoint.
//
// An empty pair table or loop list yields (nil, nil) — nothing to draw is
// not an error.
func Calculate(infos []loops.LoopInfo, pt *structure.PairTable) ([]Loop, []Base) {
	if pt.NumBases == 0 || len(infos) == 0 {
		return nil, nil
	}

	ls := make([]Loop, len(infos))
	for i := range infos {
		radius, pairAngle, arcAngle := solveLoop(&infos[i])
		ls[i] = Loop{
			ArcAngle:  arcAngle,
			Height:    math.Sqrt(radius*radius - HalfPair*HalfPair),
			PairAngle: pairAngle,
			Pairs:     []LoopPair{},
			Radius:    radius,
		}
	}

	centers := placeLoops(ls, infos, pt)
	bases := computeBases(ls, infos, pt, centers)
	centerCoordinates(ls, bases)

	return ls, bases
}
