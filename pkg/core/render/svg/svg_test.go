package svg

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/strandlab/strandplot/pkg/core/layout"
	"github.com/strandlab/strandplot/pkg/core/segments"
)

func renderNotation(t *testing.T, notation, seq string, opts Options) string {
	t.Helper()
	res, err := layout.Draw(notation, layout.Options{AlignStem: opts.AlignStem})
	if err != nil {
		t.Fatalf("Draw(%q): %v", notation, err)
	}
	return string(Render(res, seq, opts))
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, -math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tc := range cases {
		if got := normalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-10 {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestArcSegmentRendering(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name     string
		arc      segments.Arc
		contains []string
	}{
		{
			name:     "90 degrees ccw",
			arc:      segments.Arc{X: 0, Y: 0, R: 1, T1: math.Pi / 2, T2: 0},
			contains: []string{"A50.00 50.00 0 0 0", "0.00 -50.00"},
		},
		{
			name:     "180 degrees",
			arc:      segments.Arc{X: 0, Y: 0, R: 1, T1: math.Pi, T2: 0},
			contains: []string{"A50.00 50.00 0 0 0"},
		},
		{
			name:     "cw direction",
			arc:      segments.Arc{X: 0, Y: 0, R: 1, T1: 0, T2: math.Pi / 2},
			contains: []string{"0 0 1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc := tt.arc
			var buf bytes.Buffer
			renderSegment(&buf, segments.Segment{Arc: &arc}, 50, &opts)
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestDegenerateSegmentsSkipped(t *testing.T) {
	opts := DefaultOptions()

	var buf bytes.Buffer
	arc := segments.Arc{X: 0, Y: 0, R: 1, T1: 1.5, T2: 1.5}
	renderSegment(&buf, segments.Segment{Arc: &arc}, 50, &opts)
	if buf.Len() != 0 {
		t.Errorf("zero-sweep arc rendered: %q", buf.String())
	}

	buf.Reset()
	line := segments.Line{X: 1, Y: 1, X1: 1, Y1: 1}
	renderSegment(&buf, segments.Segment{Line: &line}, 50, &opts)
	if buf.Len() != 0 {
		t.Errorf("zero-length line rendered: %q", buf.String())
	}
}

func TestRenderSimplePair(t *testing.T) {
	svg := renderNotation(t, "()", "", DefaultOptions())
	if svg == "" {
		t.Fatal("empty output")
	}
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("not a complete document: %.60s", svg)
	}
	for _, want := range []string{"<line", "<circle"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s element", want)
		}
	}
}

func TestRenderHairpin(t *testing.T) {
	svg := renderNotation(t, "(((...)))", "", DefaultOptions())
	for _, want := range []string{"<svg", "<path", "<circle"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s element", want)
		}
	}
}

func TestRenderNickedStructure(t *testing.T) {
	svg := renderNotation(t, "((.+.))", "", DefaultOptions())
	// Two strands mean backbone elements for each plus the arrow marker
	// path.
	lines := strings.Count(svg, "<line")
	paths := strings.Count(svg, "<path")
	if lines+paths < 4 {
		t.Errorf("expected at least 4 backbone/pair elements, got %d", lines+paths)
	}
}

func TestRenderLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowLabels = true
	svg := renderNotation(t, "(((...)))", "GGGAAACCC", opts)
	if !strings.Contains(svg, "<text") {
		t.Fatal("no labels rendered")
	}
	for _, want := range []string{">G<", ">A<", ">C<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing label %s", want)
		}
	}
}

func TestNucleotideColors(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseColors = &[4]string{"#ff0000", "#00ff00", "#0000ff", "#ffff00"}
	svg := renderNotation(t, "((..))", "GACUGC", opts)
	checks := map[string]string{
		"G": `fill="#0000ff"`,
		"A": `fill="#ff0000"`,
		"C": `fill="#ffff00"`,
		"U": `fill="#00ff00"`,
	}
	for nt, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("nucleotide %s: missing %s", nt, want)
		}
	}
}

func TestPerBaseColors(t *testing.T) {
	opts := DefaultOptions()
	opts.PerBaseColors = []string{"#aaa", "#bbb", "#ccc", "#ddd", "#eee", "#fff"}
	svg := renderNotation(t, "((..))", "GACUGC", opts)
	for _, want := range []string{`fill="#aaa"`, `fill="#bbb"`, `fill="#fff"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestPerBaseColorsPriority(t *testing.T) {
	opts := DefaultOptions()
	opts.BaseColors = &[4]string{"red", "green", "blue", "yellow"}
	// Only the first two bases get per-base colors; the rest fall through
	// to the type palette.
	opts.PerBaseColors = []string{"pink", "orange"}
	svg := renderNotation(t, "((..))", "GACAGC", opts)
	for _, want := range []string{`fill="pink"`, `fill="orange"`, `fill="red"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}
}

func TestEmptyResult(t *testing.T) {
	if out := Render(nil, "", DefaultOptions()); len(out) != 0 {
		t.Errorf("nil result rendered %d bytes", len(out))
	}
}

func TestLayerOrder(t *testing.T) {
	svg := renderNotation(t, "(((...)))", "", DefaultOptions())
	// Pair bonds render before backbone, backbone before circles. The
	// fill="none" attribute distinguishes backbone paths from the arrow
	// marker path inside <defs>.
	linePos := strings.Index(svg, "<line x1=")
	backbonePos := strings.Index(svg, `fill="none"`)
	circlePos := strings.Index(svg, "<circle")
	if linePos < 0 || backbonePos < 0 || circlePos < 0 {
		t.Fatal("missing expected elements")
	}
	if linePos > backbonePos {
		t.Error("pair bonds should render before backbone")
	}
	if backbonePos > circlePos {
		t.Error("backbone should render before circles")
	}
}

func TestStyleDefaults(t *testing.T) {
	svg := renderNotation(t, "(((...)))", "", DefaultOptions())
	checks := []struct {
		name, want string
	}{
		{"backbone stroke", `stroke-width="5" stroke="black"`},
		{"pair bond stroke", `stroke-linecap="round" stroke-width="2.5" stroke="black"`},
		{"base radius", `r="7.5"`},
		{"base stroke", `stroke-width="2.5" stroke="#900c00"`},
	}
	for _, c := range checks {
		if !strings.Contains(svg, c.want) {
			t.Errorf("%s: missing %s", c.name, c.want)
		}
	}
}

func TestArrowMarker(t *testing.T) {
	svg := renderNotation(t, "(((...)))", "", DefaultOptions())
	for _, want := range []string{`marker-end="url(#arrowblack)"`, "<defs>", "<marker"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}

	opts := DefaultOptions()
	opts.ShowArrows = false
	svg = renderNotation(t, "(((...)))", "", opts)
	if strings.Contains(svg, "marker-end") || strings.Contains(svg, "<defs>") {
		t.Error("arrow artifacts present with arrows disabled")
	}
}

func TestProbabilityColoring(t *testing.T) {
	opts := DefaultOptions()
	opts.Probabilities = []float64{0, 0.2, 0.4, 0.6, 0.8, 1, 0.5, 0.5, 0.5}
	svg := renderNotation(t, "(((...)))", "", opts)
	if !strings.Contains(svg, "prob-grad") {
		t.Error("probability legend not rendered")
	}
	if !strings.Contains(svg, "Equilibrium probability") {
		t.Error("legend caption missing")
	}
}

func TestNucleotideLegend(t *testing.T) {
	opts := DefaultOptions()
	opts.Legend = LegendNucleotide
	svg := renderNotation(t, "((..))", "GACUGC", opts)
	for _, want := range []string{">A<", ">C<", ">G<", ">U<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("legend row %s missing", want)
		}
	}
}

func TestProbabilityToColor(t *testing.T) {
	cases := []struct {
		p    float64
		want string
	}{
		{0, "#300754"},
		{1, "#8c0202"},
		{-5, "#300754"},
		{2, "#8c0202"},
	}
	for _, tc := range cases {
		if got := ProbabilityToColor(tc.p); got != tc.want {
			t.Errorf("ProbabilityToColor(%v) = %s, want %s", tc.p, got, tc.want)
		}
	}
	// Midpoints interpolate between adjacent stops.
	if got := ProbabilityToColor(0.05); got == ProbabilityToColor(0) || got == ProbabilityToColor(0.1) {
		t.Errorf("no interpolation at 0.05: %s", got)
	}
}

func TestDefaultNucleotidePreset(t *testing.T) {
	want := [4]string{"green", "red", "black", "blue"}
	if DefaultNucleotideColors != want {
		t.Errorf("preset = %v, want %v", DefaultNucleotideColors, want)
	}
}
