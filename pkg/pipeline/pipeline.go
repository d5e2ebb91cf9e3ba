// Package pipeline provides the core drawing pipeline for strandplot.
//
// This package implements the complete parse → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Validate dot-bracket-plus notation and build the pair table
//  2. Layout: Compute loop geometry, base positions, and backbone segments
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Structure: "(((...)))",
//	    Sequence:  "GGGAAACCC",
//	    Format:    "svg",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifact
package pipeline

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandlab/strandplot/pkg/cache"
	corelayout "github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatSVG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the drawing pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Structure is the dot-bracket-plus notation to draw.
	Structure string `json:"structure"`
	// Sequence is the optional nucleotide sequence for labels and
	// type coloring. May contain strand break markers (+).
	Sequence string `json:"sequence,omitempty"`
	// Format selects the output artifact: svg, png or json.
	Format string `json:"format,omitempty"`
	// Style holds the rendering options. A zero value means the default
	// theme.
	Style svg.Options `json:"options,omitempty"`
	// Refresh bypasses cache lookups and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed geometry, nil for empty structures.
	Layout *corelayout.Result

	// Artifact is the rendered output in the requested format.
	Artifact []byte

	// Format is the format of Artifact.
	Format string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BaseCount  int
	LoopCount  int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateNotation(o.Structure); err != nil {
		return err
	}
	if err := errors.ValidateSequence(o.Sequence); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := errors.ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Format = strings.ToLower(o.Format)
	if o.Style.Scale == 0 {
		o.Style = svg.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions returns the geometry options derived from the style.
func (o *Options) LayoutOptions() corelayout.Options {
	return corelayout.Options{AlignStem: o.Style.AlignStem}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		AlignStem: o.Style.AlignStem,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// The style is hashed whole so any visual knob invalidates the entry.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	styleJSON, _ := json.Marshal(o.Style)
	return cache.ArtifactKeyOpts{
		Format:    o.Format,
		Sequence:  o.Sequence,
		ThemeHash: cache.Hash(styleJSON),
	}
}
