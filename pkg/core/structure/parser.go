package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmatchedOpen is returned by [Parse] when a `(` has no closing
	// partner before the end of the input.
	ErrUnmatchedOpen = errors.New("unmatched ( parenthesis")

	// ErrUnmatchedClose is returned by [Parse] when a `)` appears with no
	// open pair on the matching stack.
	ErrUnmatchedClose = errors.New("unmatched ) parenthesis")

	// ErrInvalidCharacter is returned by [Parse] for any byte outside the
	// `(`, `)`, `.`, `+` alphabet. This includes other bracket families:
	// pseudoknot notations are not supported.
	ErrInvalidCharacter = errors.New("invalid dot-bracket character")
)

// Parse converts dot-bracket-plus notation into a [PairTable].
//
// Matching is stack-based, so the returned table is symmetric and
// non-crossing. `+` records a nick at the current base index and consumes
// no base slot; a leading `+` is therefore redundant with the implicit
// nick at position 0 but is accepted.
func Parse(input string) (*PairTable, error) {
	pairs := make([]int, 0, len(input))
	nicks := []int{0}
	var stack []int

	base := 0
	for pos := 0; pos < len(input); pos++ {
		switch input[pos] {
		case '(':
			pairs = append(pairs, 0) // placeholder until the close is seen
			stack = append(stack, base)
			base++
		case ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("position %d: %w", pos, ErrUnmatchedClose)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pairs = append(pairs, open)
			pairs[open] = base
			base++
		case '.':
			pairs = append(pairs, base) // self-paired = unpaired
			base++
		case '+':
			nicks = append(nicks, base)
		default:
			return nil, fmt.Errorf("position %d: %q: %w", pos, input[pos], ErrInvalidCharacter)
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("position %d: %w", stack[len(stack)-1], ErrUnmatchedOpen)
	}

	return &PairTable{Pairs: pairs, Nicks: nicks, NumBases: base}, nil
}
