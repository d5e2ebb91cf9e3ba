// Package geometry turns a loop decomposition into concrete coordinates.
//
// Each loop gets a radius and two characteristic angles: the angle
// subtended by one base-pair bond and the regular arc step between
// adjacent elements on the loop circle. Simple shapes (single external
// pair, two-pair stems, empty hairpins) use closed-form or precomputed
// values; every other loop solves
//
//	nPairs·2·asin(0.5/R) + effectiveArcs/R = 2π
//
// by Newton–Raphson, where effectiveArcs weights each strand break at
// 1.38 regular arcs to leave a wider visual gap.
//
// Loop centers are placed breadth-first from the external loop using an
// explicit queue, so nesting depth never grows the call stack. A child
// loop is positioned so that the midpoint of the bond shared with its
// parent, approached from each side using each loop's own chord height,
// coincides exactly. After placement every coordinate is recentered on
// the midpoint of the combined bounding box.
package geometry
