// Package theme loads rendering themes from TOML files.
//
// A theme file sets any subset of the SVG option keys; unset keys keep
// their defaults. Example:
//
//	scale = 60.0
//	backbone_color = "#333333"
//	base_fill = "#1e6091"
//	show_arrows = false
//	legend = "nucleotide"
package theme

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/errors"
)

// Default returns the built-in theme.
func Default() svg.Options {
	return svg.DefaultOptions()
}

// Load reads a TOML theme file and decodes it over the default options.
func Load(path string) (svg.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return svg.Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file not found: %s", path)
		}
		return svg.Options{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "failed to read theme: %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML theme bytes over the default options.
func Parse(data []byte) (svg.Options, error) {
	opts := svg.DefaultOptions()
	meta, err := toml.Decode(string(data), &opts)
	if err != nil {
		return svg.Options{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "failed to parse theme")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return svg.Options{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme key: %s", undecoded[0].String())
	}
	if err := validate(&opts); err != nil {
		return svg.Options{}, err
	}
	return opts, nil
}

func validate(opts *svg.Options) error {
	switch opts.Legend {
	case svg.LegendNone, svg.LegendNucleotide, svg.LegendProbability:
	default:
		return errors.New(errors.ErrCodeInvalidTheme, "unknown legend: %q (want none, nucleotide or probability)", opts.Legend)
	}
	if opts.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "scale must be positive, got %v", opts.Scale)
	}
	if opts.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "padding cannot be negative, got %v", opts.Padding)
	}
	for _, p := range opts.Probabilities {
		if p < 0 || p > 1 {
			return errors.New(errors.ErrCodeInvalidTheme, "probability out of range [0, 1]: %v", p)
		}
	}
	return nil
}
