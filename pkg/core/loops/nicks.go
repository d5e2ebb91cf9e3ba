package loops

import "github.com/strandlab/strandplot/pkg/core/structure"

// assignNicks attributes each strand break to exactly one loop.
//
// A nick between the two bases of a pair belongs to the loop that pair
// encloses when the break falls strictly inside the pair's span, and to
// the loop holding the pair as a child otherwise. A nick between two
// unpaired-or-bond bases belongs to the innermost (highest-indexed) loop
// both bases sit on directly.
func assignNicks(ls []LoopInfo, pt *structure.PairTable) {
	n := pt.NumBases
	if n == 0 {
		return
	}

	// Loops each base sits on directly (one or two entries per base).
	baseLoops := make([][]int, n)
	for li := range ls {
		l := &ls[li]
		for _, b := range l.Unpaired {
			baseLoops[b] = append(baseLoops[b], li)
		}
		if l.Parent != nil {
			baseLoops[l.Parent.I] = append(baseLoops[l.Parent.I], li)
			baseLoops[l.Parent.J] = append(baseLoops[l.Parent.J], li)
		}
		for _, c := range l.Children {
			baseLoops[c.I] = append(baseLoops[c.I], li)
			baseLoops[c.J] = append(baseLoops[c.J], li)
		}
	}

	for _, nick := range pt.Nicks {
		// A break at either end of the strand flanks the last base and,
		// wrapping around, the first.
		var before, after int
		if nick == 0 || nick >= n {
			before, after = n-1, 0
		} else {
			before, after = nick-1, nick
		}

		if pt.Pairs[before] == after {
			// The nick severs a pair bond.
			pi, pj := before, after
			if pi > pj {
				pi, pj = pj, pi
			}
			inside := nick != 0 && pi < nick && nick <= pj
			for li := range ls {
				l := &ls[li]
				if inside {
					if l.Parent != nil && l.Parent.I == pi && l.Parent.J == pj {
						l.Nicks = append(l.Nicks, nick)
						break
					}
				} else {
					if hasChild(l, pi, pj) {
						l.Nicks = append(l.Nicks, nick)
						break
					}
				}
			}
			continue
		}

		// Innermost loop containing both flanking bases directly.
		best := -1
		for _, li := range baseLoops[before] {
			if !containsLoop(baseLoops[after], li) {
				continue
			}
			l := &ls[li]
			if l.Contains(before) && l.Contains(after) && li > best {
				best = li
			}
		}
		if best >= 0 {
			ls[best].Nicks = append(ls[best].Nicks, nick)
		}
	}
}

func hasChild(l *LoopInfo, i, j int) bool {
	for _, c := range l.Children {
		if c.I == i && c.J == j {
			return true
		}
	}
	return false
}

func containsLoop(list []int, li int) bool {
	for _, x := range list {
		if x == li {
			return true
		}
	}
	return false
}
