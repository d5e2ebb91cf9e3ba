package geometry

import (
	"math"

	"github.com/strandlab/strandplot/pkg/core/loops"
)

const (
	// NickWeight is the angular budget of the arc following a strand
	// break, in units of one regular arc step.
	NickWeight = 1.38

	// HalfPair is half the length of a base-pair bond; all radii are
	// expressed in bond lengths.
	HalfPair = 0.5

	// StemRadius is the fixed circumradius of a two-pair stem loop.
	StemRadius = 0.6

	twoPi = 2 * math.Pi

	// extRadius and extPairAngle are the stable Newton root of the
	// general radius equation for one pair and 1.38 effective arcs.
	// Precomputed so single-pair external loops and empty hairpins
	// need no iteration.
	extRadius    = 0.6765120519
	extPairAngle = 1.663422387158712
)

// effectiveArcs is the break-weighted angular budget of a loop:
// each nick replaces one regular arc with a NickWeight arc.
func effectiveArcs(nPairs, nUnpaired, nNicks int) float64 {
	return float64(nPairs+nUnpaired) + float64(nNicks)*(NickWeight-1)
}

// newtonRadius solves nPairs·2·asin(0.5/R) + eff/R = 2π for R.
// Iteration is capped and the radius floor-clamped so pathological
// inputs at the edge of the asin domain still terminate.
func newtonRadius(nPairs, eff float64) float64 {
	r := (nPairs + eff) / twoPi
	if r < HalfPair+0.01 {
		r = HalfPair + 0.01
	}

	for iter := 0; iter < 30; iter++ {
		s := HalfPair / r
		if math.Abs(s) >= 1 {
			r *= 1.5
			continue
		}
		f := nPairs*2*math.Asin(s) + eff/r - twoPi
		cos := math.Sqrt(1 - s*s)
		df := nPairs*2*(-HalfPair/(r*r*cos)) - eff/(r*r)
		if math.Abs(df) < 1e-30 {
			break
		}
		r -= f / df
		if r < HalfPair+1e-10 {
			r = HalfPair + 1e-10
		}
	}
	return r
}

// solveLoop selects radius, pair angle and arc angle for one loop.
// Cases are evaluated in priority order; see the package documentation.
func solveLoop(info *loops.LoopInfo) (radius, pairAngle, arcAngle float64) {
	nPairs := info.NumBonds()
	nUnpaired := len(info.Unpaired)
	nNicks := len(info.Nicks)
	eff := effectiveArcs(nPairs, nUnpaired, nNicks)

	switch {
	case info.Parent == nil && nUnpaired == 0 && nPairs <= 1:
		// External loop with at most one pair: fixed precomputed root.
		aa := twoPi - float64(nPairs)*extPairAngle
		if eff > 0 {
			aa = (twoPi - float64(nPairs)*extPairAngle) / eff
		}
		return extRadius, extPairAngle, aa

	case nUnpaired == 0 && nPairs == 2 && len(info.Children) > 0:
		// Ordinary stem. Nicks inside a stem do not alter its geometry.
		pa := 2 * math.Asin(HalfPair/StemRadius)
		aa := (twoPi - 2*pa) / eff
		return StemRadius, pa, aa

	case nUnpaired == 0 && len(info.Children) == 0:
		// Empty hairpin, with or without nicks.
		aa := (twoPi - float64(nPairs)*extPairAngle) / math.Max(eff, 1)
		return extRadius, extPairAngle, aa

	default:
		r := newtonRadius(float64(nPairs), eff)
		pa := 2 * math.Asin(HalfPair/r)
		aa := twoPi - float64(nPairs)*pa
		if eff > 0 {
			aa = (twoPi - float64(nPairs)*pa) / eff
		}
		return r, pa, aa
	}
}
