package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/pipeline"
	"github.com/strandlab/strandplot/pkg/theme"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	input     string   // read the notation from a file instead of an argument
	sequence  string   // nucleotide sequence for labels and type coloring
	output    string   // output file path (or base path for multiple formats)
	formats   []string // output formats: "svg", "png", "json"
	themePath string   // TOML theme file overriding the default style
	labels    bool     // draw nucleotide letters
	legend    string   // legend: "none", "nucleotide", "probability"
	noAlign   bool     // skip the vertical stem rotation
	noArrows  bool     // skip the 3' direction arrows
	noCache   bool     // bypass the layout and artifact cache
	refresh   bool     // recompute and overwrite cached entries
}

// drawCommand creates the draw command for rendering structures.
//
// The notation can be passed as an argument, read from a file with
// --input, or piped on stdin when neither is given.
func (c *CLI) drawCommand() *cobra.Command {
	var formatsStr string
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw [notation]",
		Short: "Draw a secondary structure from dot-bracket notation",
		Long: `Draw renders a nucleic acid secondary structure from dot-bracket
notation. Strand breaks are marked with '+'.

Examples:

  strandplot draw "(((...)))" -o hairpin.svg
  strandplot draw "((((+))))" -s GGGG+CCCC --labels -o duplex.png
  echo "(((...)))" | strandplot draw -f svg,json -o hairpin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			notation, err := readNotation(args, opts.input)
			if err != nil {
				return err
			}
			return c.runDraw(cmd, notation, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read notation from file")
	cmd.Flags().StringVarP(&opts.sequence, "sequence", "s", "", "nucleotide sequence for labels and coloring")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "TOML theme file")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "draw nucleotide letters (needs --sequence)")
	cmd.Flags().StringVar(&opts.legend, "legend", "", "legend: nucleotide, probability")
	cmd.Flags().BoolVar(&opts.noAlign, "no-align", false, "skip the vertical stem rotation")
	cmd.Flags().BoolVar(&opts.noArrows, "no-arrows", false, "skip the 3' direction arrows")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached entries")

	return cmd
}

// readNotation resolves the notation from the argument, input file, or stdin.
func readNotation(args []string, input string) (string, error) {
	if len(args) == 1 && input != "" {
		return "", fmt.Errorf("notation given both as argument and --input")
	}
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// runDraw executes the full pipeline once per requested format.
func (c *CLI) runDraw(cmd *cobra.Command, notation string, opts *drawOpts) error {
	style, err := c.buildStyle(opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	for _, format := range opts.formats {
		popts := pipeline.Options{
			Structure: notation,
			Sequence:  opts.sequence,
			Format:    format,
			Style:     style,
			Refresh:   opts.refresh,
			Logger:    c.Logger,
		}

		result, err := runner.Execute(cmd.Context(), popts)
		if err != nil {
			printError("%s", errors.UserMessage(err))
			return err
		}

		path := outputPath(opts.output, result.Format, len(opts.formats) > 1)
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifact); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}

		if path != "" {
			printFile(path)
		}
		printStats(result.Stats.BaseCount, result.Stats.LoopCount, result.CacheInfo.LayoutHit)
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(opts.formats)))
	return nil
}

// buildStyle resolves the render style from the theme file and flags.
// Flags win over the theme, which wins over the defaults.
func (c *CLI) buildStyle(opts *drawOpts) (svg.Options, error) {
	style := theme.Default()
	if opts.themePath != "" {
		loaded, err := theme.Load(opts.themePath)
		if err != nil {
			return style, err
		}
		style = loaded
	}
	if opts.labels {
		style.ShowLabels = true
	}
	if opts.legend != "" {
		switch svg.Legend(opts.legend) {
		case svg.LegendNone, svg.LegendNucleotide, svg.LegendProbability:
			style.Legend = svg.Legend(opts.legend)
		default:
			return style, fmt.Errorf("invalid legend: %s (must be 'none', 'nucleotide', or 'probability')", opts.legend)
		}
	}
	if opts.noAlign {
		style.AlignStem = false
	}
	if opts.noArrows {
		style.ShowArrows = false
	}
	// The nucleotide legend implies nucleotide coloring.
	if style.Legend == svg.LegendNucleotide && style.BaseColors == nil {
		colors := svg.DefaultNucleotideColors
		style.BaseColors = &colors
	}
	return style, nil
}

// outputPath derives the file path for a format. Empty output means
// stdout for a single format; multiple formats always get files.
func outputPath(output, format string, multi bool) string {
	if output == "" {
		if multi {
			return "structure." + format
		}
		return ""
	}
	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	if multi || ext == "" {
		return base + "." + format
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
