package pipeline

import (
	"context"
	"time"

	corelayout "github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/structure"
	"github.com/strandlab/strandplot/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs loop decomposition, geometry resolution and segment
// generation for a parsed structure. Returns nil for structures with
// nothing to draw.
func ComputeLayout(ctx context.Context, pt *structure.PairTable, opts Options) *corelayout.Result {
	obs := observability.Pipeline()
	obs.OnLayoutStart(ctx, pt.NumBases)

	start := time.Now()
	res := corelayout.DrawTable(pt, opts.LayoutOptions())

	loopCount := 0
	if res != nil {
		loopCount = len(res.Layout.Loops)
	}
	obs.OnLayoutComplete(ctx, loopCount, time.Since(start), nil)

	return res
}
