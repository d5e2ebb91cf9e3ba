package svg

// Legend selects the legend rendered beside the structure.
type Legend string

const (
	LegendNone        Legend = "none"
	LegendNucleotide  Legend = "nucleotide"
	LegendProbability Legend = "probability"
)

// Options control SVG appearance.
//
// Defaults match the reference web frontend style at scale 50: the base
// unit is scale*0.05 = 2.5 and all widths and radii are integer multiples
// of it. Decode themes over DefaultOptions so unset keys keep their
// defaults.
type Options struct {
	// Scale is pixels per geometry unit.
	Scale float64 `json:"scale" toml:"scale"`
	// Padding is the viewBox padding in pixels.
	Padding float64 `json:"padding" toml:"padding"`
	// BackboneWidth is the backbone stroke width, 2x base unit.
	BackboneWidth float64 `json:"backbone_width" toml:"backbone_width"`
	BackboneColor string  `json:"backbone_color" toml:"backbone_color"`
	// PairWidth is the pair bond stroke width, 1x base unit.
	PairWidth float64 `json:"pair_width" toml:"pair_width"`
	PairColor string  `json:"pair_color" toml:"pair_color"`
	// BaseRadius is the base marker circle radius, 3x base unit.
	BaseRadius float64 `json:"base_radius" toml:"base_radius"`
	// BaseFill is the uniform base marker color.
	BaseFill        string  `json:"base_fill" toml:"base_fill"`
	BaseStrokeWidth float64 `json:"base_stroke_width" toml:"base_stroke_width"`
	// ShowLabels draws nucleotide letters at the label anchors. Needs a
	// sequence to have any effect.
	ShowLabels bool    `json:"show_labels" toml:"show_labels"`
	FontSize   float64 `json:"font_size" toml:"font_size"`
	// BaseColors maps nucleotide type to color, ordered [A, U, G, C].
	// U matches T as well.
	BaseColors *[4]string `json:"base_colors,omitempty" toml:"base_colors"`
	// PerBaseColors assigns colors by base index and takes priority over
	// BaseColors and BaseFill. Short slices fall through for the
	// remaining bases.
	PerBaseColors []string `json:"per_base_colors,omitempty" toml:"per_base_colors"`
	// Probabilities are per-base equilibrium probabilities in [0, 1].
	// When set they are converted to PerBaseColors via
	// [ProbabilityToColor] and the legend switches to probability,
	// overriding both fields.
	Probabilities []float64 `json:"probabilities,omitempty" toml:"probabilities"`
	// ShowArrows draws a 3' direction arrow at the end of each strand.
	ShowArrows bool `json:"show_arrows" toml:"show_arrows"`
	// AlignStem requests the vertical-stem rotation. It is applied by the
	// layout stage, not the renderer; it lives here so one decoded theme
	// can carry it.
	AlignStem bool   `json:"align_stem" toml:"align_stem"`
	Legend    Legend `json:"legend" toml:"legend"`
}

// DefaultOptions returns the standard style.
func DefaultOptions() Options {
	return Options{
		Scale:           50,
		Padding:         20,
		BackboneWidth:   5,
		BackboneColor:   "black",
		PairWidth:       2.5,
		PairColor:       "black",
		BaseRadius:      7.5,
		BaseFill:        "#900c00",
		BaseStrokeWidth: 2.5,
		ShowLabels:      false,
		FontSize:        10,
		ShowArrows:      true,
		AlignStem:       true,
		Legend:          LegendNone,
	}
}

// ResolveProbabilities folds Probabilities into PerBaseColors and forces
// the probability legend. Render applies it automatically; it is exported
// for alternative sinks sharing the color semantics.
func (o Options) ResolveProbabilities() Options {
	if o.Probabilities == nil {
		return o
	}
	colors := make([]string, len(o.Probabilities))
	for i, p := range o.Probabilities {
		colors[i] = ProbabilityToColor(p)
	}
	o.PerBaseColors = colors
	o.Probabilities = nil
	o.Legend = LegendProbability
	return o
}
