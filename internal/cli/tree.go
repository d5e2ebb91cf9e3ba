package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandlab/strandplot/pkg/core/loops"
	"github.com/strandlab/strandplot/pkg/core/render/looptree"
	"github.com/strandlab/strandplot/pkg/errors"
	"github.com/strandlab/strandplot/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	input    string
	output   string
	format   string // "dot", "svg", or "png"
	detailed bool
}

// treeCommand creates the tree command for inspecting the loop
// decomposition. It renders the loop tree as a Graphviz diagram, which
// is mainly useful for debugging unexpected layouts.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [notation]",
		Short: "Render the loop decomposition as a tree diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notation, err := readNotation(args, opts.input)
			if err != nil {
				return err
			}
			return c.runTree(cmd, notation, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "read notation from file")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include base indices and nick positions")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, notation string, opts *treeOpts) error {
	if err := errors.ValidateNotation(notation); err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	pt, err := pipeline.Parse(cmd.Context(), notation)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	infos := loops.Decompose(pt)
	if infos == nil {
		printWarning("No pairs, nothing to decompose")
		return nil
	}
	c.Logger.Debug("decomposed structure", "loops", len(infos))

	dot := looptree.ToDOT(infos, looptree.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = looptree.RenderSVG(dot)
	case "png":
		data, err = looptree.RenderPNG(dot)
	default:
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", opts.format)
	}
	if err != nil {
		return err
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}

	if opts.output != "" {
		printFile(opts.output)
		printStats(pt.NumBases, len(infos), false)
	}
	return nil
}
