package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandlab/strandplot/pkg/cache"
	corelayout "github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/draw"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{Format: opts.Format}

	// Stage 1+2: Parse and layout (cached together, keyed by notation)
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	if res != nil {
		result.Stats.BaseCount = len(res.Layout.Bases)
		result.Stats.LoopCount = len(res.Layout.Loops)
	}

	r.Logger.Info("computed layout",
		"bases", result.Stats.BaseCount,
		"loops", result.Stats.LoopCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Empty structures produce a nil layout, which is never
// cached.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, opts Options) (*corelayout.Result, bool, error) {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(opts.Structure, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := draw.ReadResultBytes(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry, recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	pt, err := Parse(ctx, opts.Structure)
	if err != nil {
		return nil, false, err
	}
	res := ComputeLayout(ctx, pt, opts)

	// Cache the result
	if res != nil && !opts.Refresh {
		if data, err := draw.Marshal(res); err == nil {
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return res, false, nil
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, opts Options) (*corelayout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, opts)
	return res, err
}

// RenderWithCacheInfo renders an artifact with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *corelayout.Result, opts Options) ([]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := errors.ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ArtifactKey(opts.Structure, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := Render(ctx, res, opts)
	if err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
