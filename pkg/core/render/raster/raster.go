// Package raster renders layout results to PNG natively, without an
// external SVG converter. Drawing happens at 4x resolution and is
// downsampled with Catmull-Rom interpolation for smooth edges.
//
// Element order matches the SVG sink: pair bonds, backbone, end arrows,
// base circles, labels, legend.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/strandlab/strandplot/pkg/core/geometry"
	"github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/render/svg"
	"github.com/strandlab/strandplot/pkg/core/segments"
)

const supersample = 4

// canvas carries the supersampled image and the viewbox-to-pixel
// transform shared by all drawing helpers.
type canvas struct {
	img  *image.RGBA
	offX float64
	offY float64
	ss   float64
	face font.Face
}

// px maps screen-space coordinates (y already negated) to pixels.
func (c *canvas) px(sx, sy float64) (float64, float64) {
	return (sx - c.offX) * c.ss, (sy - c.offY) * c.ss
}

// Render draws a layout result as a PNG image. A nil result yields nil.
// seq is the optional nucleotide sequence used for labels and type
// coloring; strand break markers in it are stripped so indices line up
// with bases.
func Render(res *layout.Result, seq string, opts svg.Options) ([]byte, error) {
	if res == nil {
		return nil, nil
	}
	opts = opts.ResolveProbabilities()
	seq = strings.ReplaceAll(seq, "+", "")

	bases := res.Layout.Bases
	loops := res.Layout.Loops
	scale := opts.Scale

	minX, minY, maxX, maxY := bbox(bases, loops, scale, &opts)
	pad := opts.Padding
	vbX := minX - pad
	vbY := minY - pad
	structW := (maxX - minX) + 2*pad
	vbH := (maxY - minY) + 2*pad

	var legendW float64
	switch opts.Legend {
	case svg.LegendNucleotide:
		legendW = 80
	case svg.LegendProbability:
		legendW = 100
	}
	vbW := structW + legendW

	outW := int(math.Ceil(vbW))
	outH := int(math.Ceil(vbH))
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	c := &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, outW*supersample, outH*supersample)),
		offX: vbX,
		offY: vbY,
		ss:   supersample,
	}
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * supersample,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	c.face = face

	drawPairBonds(c, bases, res.Pairs, scale, &opts)
	drawBackbone(c, res.Segments, res.Nicks, len(bases), scale, &opts)
	if opts.ShowArrows {
		drawEndArrows(c, bases, res.Segments, res.Nicks, scale, &opts)
	}
	drawBaseMarkers(c, bases, seq, scale, &opts)
	if opts.ShowLabels && seq != "" {
		drawLabels(c, bases, seq, scale, &opts)
	}

	switch opts.Legend {
	case svg.LegendNucleotide:
		drawNucleotideLegend(c, fnt, vbX+structW, vbY, vbH, &opts)
	case svg.LegendProbability:
		drawProbabilityLegend(c, fnt, vbX+structW, vbY, vbH)
	}

	final := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.CatmullRom.Scale(final, final.Bounds(), c.img, c.img.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bbox mirrors the SVG viewBox computation so both sinks frame the
// structure identically.
func bbox(bases []geometry.Base, loops []geometry.Loop, scale float64, opts *svg.Options) (minX, minY, maxX, maxY float64) {
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

func drawPairBonds(c *canvas, bases []geometry.Base, pairs []int, scale float64, opts *svg.Options) {
	clr := parseColor(opts.PairColor)
	w := opts.PairWidth * c.ss
	for i, j := range pairs {
		if i >= j {
			continue
		}
		x1, y1 := c.px(bases[i].X*scale, -bases[i].Y*scale)
		x2, y2 := c.px(bases[j].X*scale, -bases[j].Y*scale)
		drawLine(c.img, x1, y1, x2, y2, w, clr)
	}
}

func drawBackbone(c *canvas, segs []segments.Pair, nicks []int, n int, scale float64, opts *svg.Options) {
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
			drawSegment(c, segs[i].Out, scale, opts)
			drawSegment(c, segs[i+1].In, scale, opts)
		}
	}
}

func drawSegment(c *canvas, seg segments.Segment, scale float64, opts *svg.Options) {
	clr := parseColor(opts.BackboneColor)
	w := opts.BackboneWidth * c.ss
	switch {
	case seg.Line != nil:
		l := seg.Line
		x1, y1 := c.px(l.X*scale, -l.Y*scale)
		x2, y2 := c.px(l.X1*scale, -l.Y1*scale)
		dx, dy := x2-x1, y2-y1
		if dx*dx+dy*dy < 0.01 {
			return
		}
		drawLine(c.img, x1, y1, x2, y2, w, clr)
	case seg.Arc != nil:
		a := seg.Arc
		delta := normalizeAngle(a.T1 - a.T2)
		if math.Abs(delta) < 1e-12 {
			return
		}
		r := a.R * scale * c.ss
		cx, cy := c.px(a.X*scale, -a.Y*scale)

		// Step size chosen so chord error stays under a pixel.
		steps := int(math.Ceil(math.Abs(delta) * math.Sqrt(r)))
		if steps < 8 {
			steps = 8
		}
		prevX := cx + r*math.Cos(a.T2)
		prevY := cy - r*math.Sin(a.T2)
		for i := 1; i <= steps; i++ {
			t := a.T2 + delta*float64(i)/float64(steps)
			x := cx + r*math.Cos(t)
			y := cy - r*math.Sin(t)
			drawLine(c.img, prevX, prevY, x, y, w, clr)
			prevX, prevY = x, y
		}
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

func drawEndArrows(c *canvas, bases []geometry.Base, segs []segments.Pair, nicks []int, scale float64, opts *svg.Options) {
	n := len(bases)
	if n == 0 {
		return
	}
	clr := parseColor(opts.BackboneColor)
	w := opts.BackboneWidth * c.ss
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
		ax, ay, ok := arrowEndpoint(b, segs[endIdx].In)
		if !ok {
			continue
		}
		bx, by := c.px(b.X*scale, -b.Y*scale)
		ex, ey := c.px(ax*scale, -ay*scale)
		dx, dy := ex-bx, ey-by
		if dx*dx+dy*dy < 1e-6 {
			continue
		}
		drawLine(c.img, bx, by, ex, ey, w, clr)
		drawArrowHead(c.img, bx, by, ex, ey, w, clr)
	}
}

// arrowEndpoint extends the incoming backbone direction past the base,
// in layout coordinates. Lines extend the midpoint-to-base direction by
// its own length; arcs follow the tangent for half the arc length.
func arrowEndpoint(b *geometry.Base, in segments.Segment) (float64, float64, bool) {
	switch {
	case in.Line != nil:
		dx := b.X - in.Line.X1
		dy := b.Y - in.Line.Y1
		if dx*dx+dy*dy < 1e-12 {
			return 0, 0, false
		}
		return b.X + dx, b.Y + dy, true
	case in.Arc != nil:
		a := in.Arc
		if math.Abs(a.T1-a.T2) < 1e-12 {
			return 0, 0, false
		}
		rvx := b.X - a.X
		rvy := b.Y - a.Y
		if math.Hypot(rvx, rvy) < 1e-12 {
			return 0, 0, false
		}

		var tx, ty float64
		if normalizeAngle(a.T1-a.T2) > 0 {
			tx, ty = -rvy, rvx
		} else {
			tx, ty = rvy, -rvx
		}

		arrowLen := a.R * math.Abs(a.T1-a.T2) * 0.5
		factor := arrowLen / math.Hypot(tx, ty)
		return b.X + tx*factor, b.Y + ty*factor, true
	}
	return 0, 0, false
}

// drawArrowHead fills a triangular head at (x2, y2) pointing away from
// (x1, y1), sized relative to the backbone stroke like the SVG marker.
func drawArrowHead(img *image.RGBA, x1, y1, x2, y2, strokeW float64, clr color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	nx := dx / dist
	ny := dy / dist

	headLen := strokeW * 3
	headW := strokeW * 1.5

	ax1 := x2 - nx*headLen + ny*headW
	ay1 := y2 - ny*headLen - nx*headW
	ax2 := x2 - nx*headLen - ny*headW
	ay2 := y2 - ny*headLen + nx*headW

	for t := 0.0; t <= 1.0; t += 0.02 {
		mx := ax1 + (ax2-ax1)*t
		my := ay1 + (ay2-ay1)*t
		drawLine(img, x2+nx*headLen, y2+ny*headLen, mx, my, 1, clr)
	}
}

func drawBaseMarkers(c *canvas, bases []geometry.Base, seq string, scale float64, opts *svg.Options) {
	// Stroke and fill share the color, so the stroke just widens the dot.
	r := (opts.BaseRadius + opts.BaseStrokeWidth*0.5) * c.ss
	for i := range bases {
		clr := parseColor(svg.BaseFill(i, seq, opts))
		cx, cy := c.px(bases[i].X*scale, -bases[i].Y*scale)
		fillCircle(c.img, cx, cy, r, clr)
	}
}

func drawLabels(c *canvas, bases []geometry.Base, seq string, scale float64, opts *svg.Options) {
	runes := []rune(seq)
	for i := range bases {
		if i >= len(runes) {
			break
		}
		tx, ty := c.px(bases[i].Xt*scale, -bases[i].Yt*scale)
		drawTextCentered(c.img, c.face, tx, ty, string(runes[i]), color.RGBA{A: 255})
	}
}

func drawNucleotideLegend(c *canvas, fnt *opentype.Font, x, vbY, vbH float64, opts *svg.Options) {
	colors := svg.DefaultNucleotideColors
	if opts.BaseColors != nil {
		colors = *opts.BaseColors
	}
	labels := [4]string{"A", "C", "G", "U"}
	// Rows run A, C, G, U; the palette is ordered [A, U, G, C].
	colorIdx := [4]int{0, 3, 2, 1}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    14 * supersample,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return
	}

	r := opts.BaseRadius
	rowHeight := r*2 + 8
	totalH := rowHeight * 4
	startY := vbY + (vbH-totalH)/2
	cxRow := x + 10 + r

	for row, label := range labels {
		cyRow := startY + float64(row)*rowHeight + r
		cx, cy := c.px(cxRow, cyRow)
		fillCircle(c.img, cx, cy, (r+opts.BaseStrokeWidth*0.5)*c.ss, parseColor(colors[colorIdx[row]]))
		lx, ly := c.px(cxRow+r+8, cyRow)
		drawTextLeft(c.img, face, lx, ly, label, color.RGBA{A: 255})
	}
}

func drawProbabilityLegend(c *canvas, fnt *opentype.Font, x, vbY, vbH float64) {
	barW := 20.0
	barH := vbH * 0.6
	barX := x + 10
	barY := vbY + (vbH-barH)/2

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    12 * supersample,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return
	}

	// Vertical gradient, highest probability at the top.
	x0, y0 := c.px(barX, barY)
	x1, y1 := c.px(barX+barW, barY+barH)
	for py := int(y0); py < int(y1); py++ {
		frac := (float64(py) - y0) / (y1 - y0)
		clr := parseColor(svg.ProbabilityToColor(1 - frac))
		for px := int(x0); px < int(x1); px++ {
			c.img.SetRGBA(px, py, clr)
		}
	}

	textX := barX + barW + 5
	for i := 0; i <= 10; i++ {
		val := float64(i) / 10
		ty := barY + barH*(1-val)
		lx, ly := c.px(textX, ty)
		drawTextLeft(c.img, face, lx, ly, fmt.Sprintf("%.1f", val), color.RGBA{A: 255})
	}
}

// drawLine draws a stroked line with round caps.
func drawLine(img *image.RGBA, x1, y1, x2, y2, thickness float64, clr color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Hypot(dx, dy)
	half := thickness / 2
	if half < 0.5 {
		half = 0.5
	}

	if dist < 1 {
		fillCircle(img, x1, y1, half, clr)
		return
	}

	perpX := -dy / dist
	perpY := dx / dist

	steps := math.Max(math.Abs(dx), math.Abs(dy))
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for off := -half; off <= half; off += 0.5 {
			img.Set(int(cx+perpX*off), int(cy+perpY*off), clr)
		}
	}
	fillCircle(img, x1, y1, half, clr)
	fillCircle(img, x2, y2, half, clr)
}

func fillCircle(img *image.RGBA, cx, cy, r float64, clr color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		xExtent := math.Sqrt(span)
		for dx := -xExtent; dx <= xExtent; dx++ {
			img.Set(int(cx+dx), int(cy+dy), clr)
		}
	}
}

func drawTextCentered(img *image.RGBA, face font.Face, x, y float64, text string, clr color.Color) {
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	// Approximate optical centering on the cap height.
	baselineY := int(y) + int(float64(metrics.Ascent.Ceil())*0.35)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(int(x) - width/2), Y: fixed.I(baselineY)},
	}
	d.DrawString(text)
}

func drawTextLeft(img *image.RGBA, face font.Face, x, y float64, text string, clr color.Color) {
	metrics := face.Metrics()
	baselineY := int(y) + int(float64(metrics.Ascent.Ceil())*0.35)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(int(x)), Y: fixed.I(baselineY)},
	}
	d.DrawString(text)
}

// namedColors covers the CSS color names the option defaults and common
// themes use. Unknown names fall back to black.
var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"orange":  {255, 165, 0, 255},
	"pink":    {255, 192, 203, 255},
	"purple":  {128, 0, 128, 255},
	"yellow":  {255, 255, 0, 255},
	"cyan":    {0, 255, 255, 255},
	"magenta": {255, 0, 255, 255},
	"none":    {0, 0, 0, 0},
}

func parseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 {
			var rgb [3]uint8
			ok := true
			for i := 0; i < 3; i++ {
				hi, ok1 := hexVal(hex[2*i])
				lo, ok2 := hexVal(hex[2*i+1])
				if !ok1 || !ok2 {
					ok = false
					break
				}
				rgb[i] = hi<<4 | lo
			}
			if ok {
				return color.RGBA{rgb[0], rgb[1], rgb[2], 255}
			}
		}
	}
	return color.RGBA{A: 255}
}

func hexVal(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}
