package geometry

import (
	"sort"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/structure"
)

type elemKind int

const (
	elemPairFirst elemKind = iota // first endpoint of a bond in traversal order
	elemPairLast                  // second endpoint of a bond
	elemUnpaired
	elemNick // strand break marker, occupies no base
)

// element is one entry on a loop's circle in clockwise traversal order.
type element struct {
	kind    elemKind
	base    int
	partner int
	parent  bool // endpoint of the loop's enclosing pair
}

// collectElements lists a loop's elements in traversal order and inserts a
// nick marker between two sequence-adjacent elements wherever one of the
// loop's strand breaks falls. Each break is consumed exactly once, matched
// in both directions, wrap-around included.
//
// The walk starts at a canonical anchor: internal loops begin at their own
// enclosing pair's closing base and proceed against sequence order, the
// external loop begins just after its first child pair bond and proceeds
// in sequence order.
func collectElements(info *loops.LoopInfo, pt *structure.PairTable) []element {
	var items []element

	if p := info.Parent; p != nil {
		items = append(items,
			element{kind: elemPairFirst, base: p.J, partner: p.I, parent: true},
			element{kind: elemPairLast, base: p.I, partner: p.J, parent: true},
		)
	}
	for _, c := range info.Children {
		items = append(items,
			element{kind: elemPairFirst, base: c.I, partner: c.J},
			element{kind: elemPairLast, base: c.J, partner: c.I},
		)
	}
	for _, b := range info.Unpaired {
		items = append(items, element{kind: elemUnpaired, base: b})
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(a, b int) bool { return items[a].base < items[b].base })

	n := len(items)
	ordered := make([]element, n)
	if p := info.Parent; p != nil {
		// Start at the parent's closing base, walk in decreasing order.
		start := indexOfBase(items, p.J)
		for i := 0; i < n; i++ {
			ordered[i] = items[(start+n-i)%n]
		}
	} else {
		// Start just past the first child bond so the bond itself lands on
		// the wrap-around.
		start := 0
		if len(info.Children) > 0 {
			start = indexOfBase(items, info.Children[0].J)
		}
		for i := 0; i < n; i++ {
			ordered[i] = items[(start+i)%n]
		}
	}

	// Nick edges: flanking base indices per break.
	type edge struct{ lo, hi int }
	edges := make([]edge, len(info.Nicks))
	for i, nick := range info.Nicks {
		if nick == 0 {
			edges[i] = edge{pt.NumBases - 1, 0}
		} else {
			edges[i] = edge{nick - 1, nick}
		}
	}
	consumed := make([]bool, len(edges))
	match := func(a, b int) int {
		for ei, e := range edges {
			if !consumed[ei] && ((a == e.lo && b == e.hi) || (a == e.hi && b == e.lo)) {
				return ei
			}
		}
		return -1
	}

	result := make([]element, 0, n+len(edges))
	for i := 0; i < n; i++ {
		result = append(result, ordered[i])
		if i+1 < n {
			if ei := match(ordered[i].base, ordered[i+1].base); ei >= 0 {
				consumed[ei] = true
				result = append(result, element{kind: elemNick})
			}
		}
	}
	if n >= 2 {
		if ei := match(ordered[n-1].base, ordered[0].base); ei >= 0 {
			consumed[ei] = true
			result = append(result, element{kind: elemNick})
		}
	}
	return result
}

func indexOfBase(items []element, base int) int {
	for i, e := range items {
		if e.base == base {
			return i
		}
	}
	return 0
}

// assignAngles walks the element list and accumulates angular steps.
// External loops run clockwise (decreasing) from center − halfPA; internal
// loops run counterclockwise from center + halfPA − 2π.
func assignAngles(elems []element, halfPA, pairA, arcA, nickA float64, isExternal bool, center float64) []float64 {
	angles := make([]float64, len(elems))

	cur := center + halfPA - twoPi
	if isExternal {
		cur = center - halfPA
	}
	for i := range elems {
		if i > 0 {
			step := stepBetween(elems[i-1], elems[i], pairA, arcA, nickA, isExternal)
			if isExternal {
				cur -= step
			} else {
				cur += step
			}
		}
		angles[i] = cur
	}
	return angles
}

// stepBetween is the angular step from prev to curr.
//
// Entering a nick costs nothing; leaving one costs the break-weighted arc.
// Crossing a child pair bond costs the pair angle, except that the
// external loop's clockwise walk goes the long way from a bond's closing
// endpoint back to its opening endpoint.
func stepBetween(prev, curr element, pairA, arcA, nickA float64, isExternal bool) float64 {
	if curr.kind == elemNick {
		return 0
	}
	if prev.kind == elemNick {
		return nickA
	}
	if prev.kind == elemPairFirst && curr.kind == elemPairLast &&
		!prev.parent && !curr.parent && prev.partner == curr.base {
		return pairA
	}
	if prev.kind == elemPairLast && curr.kind == elemPairFirst &&
		!prev.parent && !curr.parent && prev.partner == curr.base {
		if isExternal {
			return arcA
		}
		return pairA
	}
	return arcA
}
