package pipeline

import (
	"context"
	"time"

	corelayout "github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/render/raster"
	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/draw"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/observability"
)

// Render generates the output artifact in the requested format. A nil
// layout yields an empty artifact for svg and png and the JSON null
// document for json.
func Render(ctx context.Context, res *corelayout.Result, opts Options) ([]byte, error) {
	obs := observability.Pipeline()
	obs.OnRenderStart(ctx, opts.Format)

	start := time.Now()
	data, err := renderFormat(res, opts)
	obs.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)

	return data, err
}

func renderFormat(res *corelayout.Result, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatSVG:
		return svg.Render(res, opts.Sequence, opts.Style), nil
	case FormatPNG:
		return raster.Render(res, opts.Sequence, opts.Style)
	case FormatJSON:
		data, err := draw.Marshal(res)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize layout")
		}
		return data, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: %q", opts.Format)
	}
}
