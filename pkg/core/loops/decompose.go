package loops

import (
	"sort"

	"github.com/strandlab/strandplot/pkg/core/structure"
)

// Pair is a base pair (I, J) with I < J.
type Pair struct {
	I int
	J int
}

// LoopInfo describes one loop of the decomposition.
//
// Parent is the enclosing pair, nil for the external loop. Children holds
// the directly nested pairs ordered by opening index. Unpaired lists the
// bases that sit directly on this loop's circle, and Nicks the strand
// break positions assigned to it. A LoopInfo is immutable once returned.
type LoopInfo struct {
	Parent   *Pair
	Children []Pair
	Unpaired []int
	Nicks    []int
}

// NumBonds returns the number of pair bonds on the loop's circle
// (children plus the enclosing pair when present).
func (l *LoopInfo) NumBonds() int {
	n := len(l.Children)
	if l.Parent != nil {
		n++
	}
	return n
}

// Contains reports whether base b sits directly on this loop's circle,
// either unpaired or as an endpoint of one of its bonds.
func (l *LoopInfo) Contains(b int) bool {
	for _, u := range l.Unpaired {
		if u == b {
			return true
		}
	}
	for _, c := range l.Children {
		if c.I == b || c.J == b {
			return true
		}
	}
	if l.Parent != nil && (l.Parent.I == b || l.Parent.J == b) {
		return true
	}
	return false
}

// Decompose builds the ordered loop list for a pair table.
// Index 0 is the external loop. Inputs with no pairs decompose to nil:
// there is nothing to lay out.
func Decompose(pt *structure.PairTable) []LoopInfo {
	n := pt.NumBases
	if n == 0 {
		return nil
	}

	var allPairs []Pair
	for i := 0; i < n; i++ {
		if j := pt.Pairs[i]; j != i && i < j {
			allPairs = append(allPairs, Pair{i, j})
		}
	}
	if len(allPairs) == 0 {
		return nil
	}

	// Smallest enclosing pair per pair; -1 means external level.
	enclosing := make([]int, len(allPairs))
	for k, p := range allPairs {
		best := -1
		bestSpan := int(^uint(0) >> 1)
		for m, q := range allPairs {
			if m == k {
				continue
			}
			if q.I < p.I && p.J < q.J {
				if span := q.J - q.I; span < bestSpan {
					bestSpan = span
					best = m
				}
			}
		}
		enclosing[k] = best
	}

	var externalChildren []int
	childrenOf := make([][]int, len(allPairs))
	for k, parent := range enclosing {
		if parent < 0 {
			externalChildren = append(externalChildren, k)
		} else {
			childrenOf[parent] = append(childrenOf[parent], k)
		}
	}
	sort.Slice(externalChildren, func(a, b int) bool {
		return allPairs[externalChildren[a]].I < allPairs[externalChildren[b]].I
	})
	for _, ch := range childrenOf {
		sort.Slice(ch, func(a, b int) bool { return allPairs[ch[a]].I < allPairs[ch[b]].I })
	}

	b := builder{
		pt:         pt,
		allPairs:   allPairs,
		childrenOf: childrenOf,
	}

	// External loop (index 0): every base not covered by an external-level
	// pair span and not itself paired.
	extChildren := make([]Pair, len(externalChildren))
	for i, k := range externalChildren {
		extChildren[i] = allPairs[k]
	}
	covered := make([]bool, n)
	for _, k := range externalChildren {
		p := allPairs[k]
		for i := p.I; i <= p.J; i++ {
			covered[i] = true
		}
	}
	var extUnpaired []int
	for i := 0; i < n; i++ {
		if !covered[i] && pt.Pairs[i] == i {
			extUnpaired = append(extUnpaired, i)
		}
	}
	b.loops = append(b.loops, LoopInfo{Children: extChildren, Unpaired: extUnpaired})

	// Hybrid ordering: first external child depth-first, then the remaining
	// siblings enumerated in sequence and expanded in reverse.
	if len(externalChildren) > 0 {
		first := externalChildren[0]
		b.push(first)
		b.expandSubtree(first)
		for _, k := range externalChildren[1:] {
			b.push(k)
		}
		for i := len(externalChildren) - 1; i >= 1; i-- {
			b.expandSubtree(externalChildren[i])
		}
	}

	assignNicks(b.loops, pt)
	return b.loops
}

type builder struct {
	pt         *structure.PairTable
	allPairs   []Pair
	childrenOf [][]int
	loops      []LoopInfo
}

// push materializes the loop created by pair k.
func (b *builder) push(k int) {
	p := b.allPairs[k]
	children := make([]Pair, len(b.childrenOf[k]))
	for i, ck := range b.childrenOf[k] {
		children[i] = b.allPairs[ck]
	}

	covered := make([]bool, b.pt.NumBases)
	for _, ck := range b.childrenOf[k] {
		c := b.allPairs[ck]
		for i := c.I; i <= c.J; i++ {
			covered[i] = true
		}
	}
	var unpaired []int
	for i := p.I + 1; i < p.J; i++ {
		if !covered[i] && b.pt.Pairs[i] == i {
			unpaired = append(unpaired, i)
		}
	}

	parent := p
	b.loops = append(b.loops, LoopInfo{
		Parent:   &parent,
		Children: children,
		Unpaired: unpaired,
	})
}

// expandSubtree materializes every descendant of pair k: children are
// enumerated in sequence order at each level, and sibling subtrees are
// expanded in reverse (forward pushes onto a LIFO stack pop reversed).
func (b *builder) expandSubtree(k int) {
	stack := []int{k}
	for len(stack) > 0 {
		pk := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := b.childrenOf[pk]
		if len(children) == 0 {
			continue
		}
		for _, ck := range children {
			b.push(ck)
		}
		stack = append(stack, children...)
	}
}
