package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/render/svg"
)

func renderNotation(t *testing.T, notation string, opts svg.Options) *layout.Result {
	t.Helper()
	res, err := layout.Draw(notation, layout.Options{AlignStem: opts.AlignStem})
	if err != nil {
		t.Fatalf("Draw(%q): %v", notation, err)
	}
	return res
}

func TestRenderHairpinPNG(t *testing.T) {
	opts := svg.DefaultOptions()
	res := renderNotation(t, "(((...)))", opts)

	data, err := Render(res, "", opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	b := img.Bounds()
	if b.Dx() < 50 || b.Dy() < 50 {
		t.Fatalf("image too small: %v", b)
	}

	// The structure must have left ink on the white canvas.
	colored := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
				colored++
			}
		}
	}
	if colored == 0 {
		t.Fatal("rendered image is blank")
	}
}

func TestRenderNilResult(t *testing.T) {
	data, err := Render(nil, "", svg.DefaultOptions())
	if err != nil {
		t.Fatalf("Render(nil): %v", err)
	}
	if data != nil {
		t.Fatalf("expected nil output, got %d bytes", len(data))
	}
}

func TestRenderWithLabels(t *testing.T) {
	opts := svg.DefaultOptions()
	opts.ShowLabels = true
	res := renderNotation(t, "((...))", opts)

	data, err := Render(res, "GGAAACC", opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

func TestRenderNickedStructure(t *testing.T) {
	opts := svg.DefaultOptions()
	res := renderNotation(t, "((.+.))", opts)

	data, err := Render(res, "", opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

func TestRenderLegends(t *testing.T) {
	base := svg.DefaultOptions()

	nuc := base
	nuc.Legend = svg.LegendNucleotide
	nuc.BaseColors = &svg.DefaultNucleotideColors

	prob := base
	prob.Probabilities = []float64{0.1, 0.2, 0.3, 0.9, 0.9, 0.9, 0.3, 0.2, 0.1}

	for name, opts := range map[string]svg.Options{"nucleotide": nuc, "probability": prob} {
		t.Run(name, func(t *testing.T) {
			res := renderNotation(t, "(((...)))", opts)
			data, err := Render(res, "GGGAAACCC", opts)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode: %v", err)
			}
			plain, err := Render(res, "GGGAAACCC", base)
			if err != nil {
				t.Fatalf("Render plain: %v", err)
			}
			plainImg, err := png.Decode(bytes.NewReader(plain))
			if err != nil {
				t.Fatalf("png.Decode plain: %v", err)
			}
			if img.Bounds().Dx() <= plainImg.Bounds().Dx() {
				t.Fatalf("legend did not widen image: %d vs %d",
					img.Bounds().Dx(), plainImg.Bounds().Dx())
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}},
		{"WHITE", color.RGBA{255, 255, 255, 255}},
		{"#900c00", color.RGBA{0x90, 0x0c, 0x00, 255}},
		{"#F00", color.RGBA{255, 0, 0, 255}},
		{"green", color.RGBA{0, 128, 0, 255}},
		{"bogus", color.RGBA{0, 0, 0, 255}},
		{"#zzzzzz", color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{3.5, 3.5 - 2*3.141592653589793},
		{-3.5, -3.5 + 2*3.141592653589793},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); got != tt.want {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
