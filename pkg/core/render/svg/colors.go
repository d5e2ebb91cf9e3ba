package svg

import "fmt"

// DefaultNucleotideColors is the preset nucleotide-type palette, ordered
// [A, U, G, C].
var DefaultNucleotideColors = [4]string{"green", "red", "black", "blue"}

// probColormap maps equilibrium probability to RGB, dark purple through
// blue, cyan, green, yellow and red to dark red. 11 stops evenly spaced
// from 0.0 to 1.0.
var probColormap = [11][3]float64{
	{0.19, 0.03, 0.33}, // 0.0  dark purple
	{0.28, 0.14, 0.54}, // 0.1
	{0.28, 0.30, 0.69}, // 0.2
	{0.17, 0.49, 0.72}, // 0.3
	{0.12, 0.62, 0.64}, // 0.4
	{0.30, 0.73, 0.40}, // 0.5
	{0.56, 0.80, 0.22}, // 0.6
	{0.80, 0.80, 0.11}, // 0.7
	{0.96, 0.65, 0.11}, // 0.8
	{0.89, 0.40, 0.10}, // 0.9
	{0.55, 0.01, 0.01}, // 1.0  dark red
}

// ProbabilityToColor converts an equilibrium probability in [0, 1] to an
// RGB hex color by linear interpolation between colormap stops. Values
// outside the range are clamped.
func ProbabilityToColor(p float64) string {
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	t := p * 10
	i := int(t)
	if i > 9 {
		i = 9
	}
	frac := t - float64(i)
	c0, c1 := probColormap[i], probColormap[i+1]
	r := uint8((c0[0] + (c1[0]-c0[0])*frac) * 255)
	g := uint8((c0[1] + (c1[1]-c0[1])*frac) * 255)
	b := uint8((c0[2] + (c1[2]-c0[2])*frac) * 255)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
