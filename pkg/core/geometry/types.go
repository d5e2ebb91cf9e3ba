package geometry

// LoopPair is one pair bond on a loop's circle.
//
// Angle is the direction from the loop center to the bond midpoint. First
// and Last are the base indices of the bond endpoints in traversal order,
// and Neighbor is the index of the loop on the far side of the bond.
type LoopPair struct {
	Angle    float64 `json:"angle"`
	First    int     `json:"first"`
	Last     int     `json:"last"`
	Neighbor int     `json:"neighbor"`
}

// Loop holds the resolved geometry of one loop.
//
// Height is the distance from the loop center to the chord connecting a
// pair's two bases. Fields are declared in alphabetical order so the JSON
// encoding matches the canonical serialization.
type Loop struct {
	ArcAngle  float64    `json:"arc_angle"`
	Height    float64    `json:"height"`
	PairAngle float64    `json:"pair_angle"`
	Pairs     []LoopPair `json:"pairs"`
	Radius    float64    `json:"radius"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
}

// Base holds per-nucleotide coordinates.
//
// X/Y is the base position; Xt/Yt is the label anchor (pair midpoint for
// paired bases, half a unit outward from the loop circle for unpaired
// ones). Angle1/Loop1 describe the incoming backbone direction and
// Angle2/Loop2 the outgoing one; they coincide for unpaired bases.
// Length1/Length2 are label-length hints, 0.69 at strand boundaries and
// 0.5 in the interior.
type Base struct {
	Angle1  float64 `json:"angle1"`
	Angle2  float64 `json:"angle2"`
	Length1 float64 `json:"length1"`
	Length2 float64 `json:"length2"`
	Loop1   int     `json:"loop1"`
	Loop2   int     `json:"loop2"`
	X       float64 `json:"x"`
	Xt      float64 `json:"xt"`
	Y       float64 `json:"y"`
	Yt      float64 `json:"yt"`
}
