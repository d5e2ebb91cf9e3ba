package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/strandlab/strandplot/pkg/core/geometry"
	"github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/segments"
)

// Render draws a layout result as a complete SVG document. A nil result
// yields an empty document. seq is the optional nucleotide sequence used
// for labels and type coloring; strand break markers in it are stripped
// so indices line up with bases.
func Render(res *layout.Result, seq string, opts Options) []byte {
	if res == nil {
		return nil
	}
	opts = opts.ResolveProbabilities()
	seq = strings.ReplaceAll(seq, "+", "")

	bases := res.Layout.Bases
	loops := res.Layout.Loops
	scale := opts.Scale

	minX, minY, maxX, maxY := computeBBox(bases, loops, scale, &opts)
	pad := opts.Padding
	vbX := minX - pad
	vbY := minY - pad
	structW := (maxX - minX) + 2*pad
	vbH := (maxY - minY) + 2*pad

	// Reserve space for the legend on the right.
	var legendW float64
	switch opts.Legend {
	case LegendNucleotide:
		legendW = 80
	case LegendProbability:
		legendW = 100
	}
	vbW := structW + legendW

	var buf bytes.Buffer
	buf.Grow(4096)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f">`,
		vbX, vbY, vbW, vbH)

	// Marker definitions have to precede their first use.
	if opts.ShowArrows {
		fmt.Fprintf(&buf, `<defs><marker markerWidth="3" markerHeight="3" refX="10" refY="10" viewBox="0 0 20 20" orient="auto" id="arrowblack" markerUnits="strokeWidth"><path d="M0 0 10 0 20 10 10 20 0 20 10 10Z" fill="%s"/></marker></defs>`,
			opts.BackboneColor)
	}

	renderPairBonds(&buf, bases, res.Pairs, scale, &opts)
	renderBackbone(&buf, bases, res.Segments, res.Nicks, scale, &opts)
	if opts.ShowArrows {
		renderEndArrows(&buf, bases, res.Segments, res.Nicks, scale, &opts)
	}
	renderBaseMarkers(&buf, bases, seq, scale, &opts)
	if opts.ShowLabels && seq != "" {
		renderLabels(&buf, bases, seq, scale, &opts)
	}

	switch opts.Legend {
	case LegendNucleotide:
		renderNucleotideLegend(&buf, vbX+structW, vbY, vbH, &opts)
	case LegendProbability:
		renderProbabilityLegend(&buf, vbX+structW, vbY, vbH)
	}

	buf.WriteString("</svg>")
	return buf.Bytes()
}

// computeBBox returns the screen-space bounds covering every base circle
// (including stroke extent) and every loop circle.
func computeBBox(bases []geometry.Base, loops []geometry.Loop, scale float64, opts *Options) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	extent := opts.BaseRadius + opts.BaseStrokeWidth*0.5
	for i := range bases {
		sx := bases[i].X * scale
		sy := -bases[i].Y * scale
		minX = math.Min(minX, sx-extent)
		minY = math.Min(minY, sy-extent)
		maxX = math.Max(maxX, sx+extent)
		maxY = math.Max(maxY, sy+extent)
	}
	for i := range loops {
		cx := loops[i].X * scale
		cy := -loops[i].Y * scale
		r := loops[i].Radius * scale
		minX = math.Min(minX, cx-r)
		minY = math.Min(minY, cy-r)
		maxX = math.Max(maxX, cx+r)
		maxY = math.Max(maxY, cy+r)
	}
	return minX, minY, maxX, maxY
}

func renderPairBonds(buf *bytes.Buffer, bases []geometry.Base, pairs []int, scale float64, opts *Options) {
	for i, j := range pairs {
		if i >= j {
			continue
		}
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-width="%v" stroke="%s" />`,
			bases[i].X*scale, -bases[i].Y*scale,
			bases[j].X*scale, -bases[j].Y*scale,
			opts.PairWidth, opts.PairColor)
	}
}

// strandStarts returns the sorted, deduplicated strand start indices.
func strandStarts(nicks []int) []int {
	starts := make([]int, len(nicks))
	copy(starts, nicks)
	for i := 1; i < len(starts); i++ {
		for j := i; j > 0 && starts[j] < starts[j-1]; j-- {
			starts[j], starts[j-1] = starts[j-1], starts[j]
		}
	}
	out := starts[:0]
	for i, s := range starts {
		if i == 0 || s != starts[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// renderBackbone draws each strand as a chain of half-segments. Every
// piece gets a round linecap so overlapping endpoints merge smoothly.
func renderBackbone(buf *bytes.Buffer, bases []geometry.Base, segs []segments.Pair, nicks []int, scale float64, opts *Options) {
	n := len(bases)
	if n == 0 {
		return
	}
	starts := strandStarts(nicks)
	for si, start := range starts {
		end := n
		if si+1 < len(starts) {
			end = starts[si+1]
		}
		if start >= end {
			continue
		}
		for i := start; i < end-1; i++ {
			renderSegment(buf, segs[i].Out, scale, opts)
			renderSegment(buf, segs[i+1].In, scale, opts)
		}
	}
}

// renderSegment draws a single half-segment, a <line> for chords and a
// <path> arc for loop-following pieces. Degenerate pieces are skipped.
func renderSegment(buf *bytes.Buffer, seg segments.Segment, scale float64, opts *Options) {
	switch {
	case seg.Line != nil:
		l := seg.Line
		x1, y1 := l.X*scale, -l.Y*scale
		x2, y2 := l.X1*scale, -l.Y1*scale
		dx, dy := x2-x1, y2-y1
		if dx*dx+dy*dy < 0.01 {
			return
		}
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-opacity="1" stroke-width="%v" stroke="%s" />`,
			x1, y1, x2, y2, opts.BackboneWidth, opts.BackboneColor)
	case seg.Arc != nil:
		a := seg.Arc
		if math.Abs(a.T1-a.T2) < 1e-12 {
			return
		}
		r := a.R * scale
		sx := (a.X + a.R*math.Cos(a.T2)) * scale
		sy := -(a.Y + a.R*math.Sin(a.T2)) * scale
		ex := (a.X + a.R*math.Cos(a.T1)) * scale
		ey := -(a.Y + a.R*math.Sin(a.T1)) * scale

		delta := normalizeAngle(a.T1 - a.T2)
		largeArc := 0
		if math.Abs(delta) > math.Pi {
			largeArc = 1
		}
		sweep := 1
		if delta > 0 {
			sweep = 0
		}
		fmt.Fprintf(buf, `<path d="M%.2f %.2f A%.2f %.2f 0 %d %d %.2f %.2f" fill="none" stroke-linejoin="round" stroke-linecap="round" stroke-width="%v" stroke="%s" />`,
			sx, sy, r, r, largeArc, sweep, ex, ey, opts.BackboneWidth, opts.BackboneColor)
	}
}

func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// renderEndArrows draws a 3' direction arrow at the last base of every
// strand with at least two bases.
func renderEndArrows(buf *bytes.Buffer, bases []geometry.Base, segs []segments.Pair, nicks []int, scale float64, opts *Options) {
	n := len(bases)
	if n == 0 {
		return
	}
	starts := strandStarts(nicks)
	for si, start := range starts {
		endIdx := n - 1
		if si+1 < len(starts) {
			endIdx = starts[si+1] - 1
		}
		if endIdx <= start {
			continue
		}

		b := &bases[endIdx]
		bx, by := b.X*scale, -b.Y*scale

		// The incoming segment carries the 3' direction; the outgoing one
		// points back into the structure through the external loop.
		ax, ay, ok := arrowEndpoint(b, segs[endIdx].In, scale)
		if !ok {
			continue
		}
		dx, dy := ax-bx, ay-by
		if dx*dx+dy*dy < 1e-6 {
			continue
		}
		fmt.Fprintf(buf, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-linecap="round" stroke-width="%v" stroke="%s" marker-end="url(#arrowblack)" />`,
			bx, by, ax, ay, opts.BackboneWidth, opts.BackboneColor)
	}
}

// arrowEndpoint extends the incoming backbone direction past the base.
// Lines extend the midpoint-to-base direction by its own length; arcs
// follow the tangent at the base for half the arc length.
func arrowEndpoint(b *geometry.Base, in segments.Segment, scale float64) (float64, float64, bool) {
	switch {
	case in.Line != nil:
		dx := b.X - in.Line.X1
		dy := b.Y - in.Line.Y1
		if dx*dx+dy*dy < 1e-12 {
			return 0, 0, false
		}
		return (b.X + dx) * scale, -(b.Y + dy) * scale, true
	case in.Arc != nil:
		a := in.Arc
		if math.Abs(a.T1-a.T2) < 1e-12 {
			return 0, 0, false
		}
		rvx := b.X - a.X
		rvy := b.Y - a.Y
		rvLen := math.Hypot(rvx, rvy)
		if rvLen < 1e-12 {
			return 0, 0, false
		}

		// Tangent perpendicular to the radius, oriented along the t2 to
		// t1 traversal.
		var tx, ty float64
		if normalizeAngle(a.T1-a.T2) > 0 {
			tx, ty = -rvy, rvx
		} else {
			tx, ty = rvy, -rvx
		}

		arrowLen := a.R * math.Abs(a.T1-a.T2) * 0.5
		factor := arrowLen / math.Hypot(tx, ty)
		return (b.X + tx*factor) * scale, -(b.Y + ty*factor) * scale, true
	}
	return 0, 0, false
}

func renderBaseMarkers(buf *bytes.Buffer, bases []geometry.Base, seq string, scale float64, opts *Options) {
	for i := range bases {
		fill := BaseFill(i, seq, opts)
		// Fill and stroke the same color so the stroke just widens the dot.
		fmt.Fprintf(buf, `<circle r="%v" cx="%.2f" cy="%.2f" fill="%s" stroke-width="%v" stroke="%s" />`,
			opts.BaseRadius, bases[i].X*scale, -bases[i].Y*scale, fill, opts.BaseStrokeWidth, fill)
	}
}

// BaseFill picks the marker color for base i. Per-base colors win over
// nucleotide-type colors, which win over the uniform fill.
func BaseFill(i int, seq string, opts *Options) string {
	if i < len(opts.PerBaseColors) {
		return opts.PerBaseColors[i]
	}
	if opts.BaseColors != nil && i < len(seq) {
		switch seq[i] {
		case 'A', 'a':
			return opts.BaseColors[0]
		case 'U', 'u', 'T', 't':
			return opts.BaseColors[1]
		case 'G', 'g':
			return opts.BaseColors[2]
		case 'C', 'c':
			return opts.BaseColors[3]
		}
	}
	return opts.BaseFill
}

func renderLabels(buf *bytes.Buffer, bases []geometry.Base, seq string, scale float64, opts *Options) {
	runes := []rune(seq)
	for i := range bases {
		if i >= len(runes) {
			break
		}
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-size="%v" text-anchor="middle" dominant-baseline="central">%c</text>`,
			bases[i].Xt*scale, -bases[i].Yt*scale, opts.FontSize, runes[i])
	}
}

func renderNucleotideLegend(buf *bytes.Buffer, x, vbY, vbH float64, opts *Options) {
	colors := DefaultNucleotideColors
	if opts.BaseColors != nil {
		colors = *opts.BaseColors
	}
	labels := [4]string{"A", "C", "G", "U"}
	// Rows run A, C, G, U; the palette is ordered [A, U, G, C].
	colorIdx := [4]int{0, 3, 2, 1}

	r := opts.BaseRadius
	fontSize := 14.0
	rowHeight := r*2 + 8
	totalH := rowHeight * 4
	startY := vbY + (vbH-totalH)/2
	cx := x + 10 + r

	for row, label := range labels {
		cy := startY + float64(row)*rowHeight + r
		fill := colors[colorIdx[row]]
		fmt.Fprintf(buf, `<circle r="%v" cx="%.2f" cy="%.2f" fill="%s" stroke-width="%v" stroke="%s" />`,
			r, cx, cy, fill, opts.BaseStrokeWidth, fill)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%v" dominant-baseline="central">%s</text>`,
			cx+r+8, cy, fontSize, label)
	}
}

func renderProbabilityLegend(buf *bytes.Buffer, x, vbY, vbH float64) {
	barW := 20.0
	barH := vbH * 0.6
	barX := x + 10
	barY := vbY + (vbH-barH)/2
	fontSize := 12.0

	// Gradient runs top to bottom, so stops are emitted highest
	// probability first.
	buf.WriteString(`<defs><linearGradient id="prob-grad" x1="0" y1="0" x2="0" y2="1">`)
	nStops := len(probColormap)
	for i := 0; i < nStops; i++ {
		c := probColormap[nStops-1-i]
		offset := float64(i) / float64(nStops-1) * 100
		fmt.Fprintf(buf, `<stop offset="%.1f%%" stop-color="#%02x%02x%02x"/>`,
			offset, uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255))
	}
	buf.WriteString(`</linearGradient></defs>`)

	fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%v" height="%.2f" fill="url(#prob-grad)" stroke="none"/>`,
		barX, barY, barW, barH)

	// Tick labels from 0.0 to 1.0 in steps of 0.1.
	textX := barX + barW + 5
	for i := 0; i <= 10; i++ {
		val := float64(i) / 10
		ty := barY + barH*(1-val)
		fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%v" dominant-baseline="central">%.1f</text>`,
			textX, ty, fontSize, val)
	}

	labelX := textX + 35
	labelY := barY + barH/2
	fmt.Fprintf(buf, `<text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%v" text-anchor="middle" dominant-baseline="central" transform="rotate(90,%.2f,%.2f)">Equilibrium probability</text>`,
		labelX, labelY, fontSize, labelX, labelY)
}
