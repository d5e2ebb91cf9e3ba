package structure

// PairTable is the parsed form of a dot-bracket-plus string.
//
// Pairs maps each base index to its partner; an unpaired base maps to its
// own index. Nicks lists strand break positions in ascending insertion
// order and always starts with 0 (the start of the first strand), whether
// or not the input began with a `+`. A nick value is the index of the
// first base of the strand that follows the break.
type PairTable struct {
	Pairs    []int
	Nicks    []int
	NumBases int
}

// Paired reports whether base i is part of a base pair.
func (pt *PairTable) Paired(i int) bool {
	return pt.Pairs[i] != i
}

// Partner returns the pairing partner of base i, or i itself when unpaired.
func (pt *PairTable) Partner(i int) int {
	return pt.Pairs[i]
}

// NickSet returns the nick positions as a set for O(1) membership tests.
func (pt *PairTable) NickSet() map[int]bool {
	set := make(map[int]bool, len(pt.Nicks))
	for _, n := range pt.Nicks {
		set[n] = true
	}
	return set
}

// BasePairs returns every pair (i, j) with i < j, ordered by i.
// Pairs are naturally ordered because the table is scanned left to right.
func (pt *PairTable) BasePairs() [][2]int {
	var out [][2]int
	for i := 0; i < pt.NumBases; i++ {
		if j := pt.Pairs[i]; j != i && i < j {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}
