package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/strandlab/strandplot/pkg/core/structure"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/observability"
)

// Parse builds the pair table for a dot-bracket-plus string. Parser
// sentinel errors are translated to structured codes so CLI and API
// report them uniformly.
func Parse(ctx context.Context, notation string) (*structure.PairTable, error) {
	obs := observability.Pipeline()
	obs.OnParseStart(ctx, notation)

	start := time.Now()
	pt, err := structure.Parse(notation)

	baseCount := 0
	if pt != nil {
		baseCount = pt.NumBases
	}
	obs.OnParseComplete(ctx, notation, baseCount, time.Since(start), err)

	if err != nil {
		return nil, wrapParseError(err)
	}
	return pt, nil
}

func wrapParseError(err error) error {
	switch {
	case stderrors.Is(err, structure.ErrUnmatchedOpen):
		return errors.Wrap(errors.ErrCodeUnmatchedOpen, err, "structure has an unclosed pair")
	case stderrors.Is(err, structure.ErrUnmatchedClose):
		return errors.Wrap(errors.ErrCodeUnmatchedClose, err, "structure has an unopened closing bracket")
	case stderrors.Is(err, structure.ErrInvalidCharacter):
		return errors.Wrap(errors.ErrCodeInvalidNotation, err, "structure contains an invalid character")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "failed to parse structure")
	}
}
