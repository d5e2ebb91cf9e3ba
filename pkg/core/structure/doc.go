// Package structure parses dot-bracket-plus notation into pair tables.
//
// Dot-bracket-plus is a compact textual description of an RNA secondary
// structure: `(` and `)` open and close a nested base pair, `.` marks an
// unpaired base, and `+` marks a strand break (nick) at the current base
// index without consuming a base slot. Any other character is rejected.
//
// The result is a [PairTable]: for every base index either its partner's
// index (paired) or its own index (unpaired), plus the ordered list of
// strand break positions. The table is symmetric (Pairs[Pairs[i]] == i)
// and non-crossing by construction of the stack-based matcher.
//
// # Example
//
//	pt, err := structure.Parse("(((...)))")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(pt.NumBases) // 9
package structure
