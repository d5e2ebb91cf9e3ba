// Package looptree renders the loop decomposition as a node-link tree
// using Graphviz. It is a debugging aid for inspecting how a structure
// breaks down into loops before any geometry is computed.
package looptree

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/strandlab/strandplot/pkg/core/loops"
)

// Options configures loop tree rendering.
type Options struct {
	// Detailed includes unpaired base indices and nick positions in
	// node labels. When false, only counts are shown.
	Detailed bool
}

// ToDOT converts a loop decomposition to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// The external loop is rendered with a dashed outline to distinguish it
// from closed loops.
func ToDOT(infos []loops.LoopInfo, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph loops {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range infos {
		label := fmtLabel(i, &infos[i], opts.Detailed)
		attrs := fmtAttrs(&infos[i], label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range infos {
		for _, child := range infos[i].Children {
			if ci := findLoop(infos, i, child); ci >= 0 {
				fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(i), nodeID(ci))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string {
	if i == 0 {
		return "exterior"
	}
	return fmt.Sprintf("loop%d", i)
}

func fmtLabel(i int, l *loops.LoopInfo, detailed bool) string {
	var name string
	if i == 0 {
		name = "exterior"
	} else if l.Parent != nil {
		name = fmt.Sprintf("loop (%d, %d)", l.Parent.I, l.Parent.J)
	} else {
		name = fmt.Sprintf("loop %d", i)
	}

	parts := []string{fmt.Sprintf("bonds: %d", l.NumBonds())}
	if detailed {
		parts = append(parts, fmt.Sprintf("unpaired: %v", l.Unpaired))
		if len(l.Nicks) > 0 {
			parts = append(parts, fmt.Sprintf("nicks: %v", l.Nicks))
		}
	} else {
		parts = append(parts, fmt.Sprintf("unpaired: %d", len(l.Unpaired)))
		if len(l.Nicks) > 0 {
			parts = append(parts, fmt.Sprintf("nicks: %d", len(l.Nicks)))
		}
	}

	return name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(l *loops.LoopInfo, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if l.Parent == nil {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// findLoop locates the child loop closed by pair among the loops after
// parent index pi. Loop order follows the decomposition, so children
// always come later in the slice.
func findLoop(infos []loops.LoopInfo, pi int, pair loops.Pair) int {
	for i := range infos {
		if i == pi {
			continue
		}
		p := infos[i].Parent
		if p != nil && p.I == pair.I && p.J == pair.J {
			return i
		}
	}
	return -1
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
