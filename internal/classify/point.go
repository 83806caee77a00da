// Package classify converts differential rows into classified,
// colored volcano-plot points.
package classify

// Point is one plot-ready measurement: fold change on x, transformed
// significance on y, plus the groups the row belongs to and their
// resolved colors (parallel slices, same order).
type Point struct {
	PrimaryID  string   `json:"primaryId"`
	Label      string   `json:"label"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Comparison string   `json:"comparison"`
	Groups     []string `json:"groups"`
	Colors     []string `json:"colors"`
}

// AxisBounds is the plot extent derived from accepted rows, after
// applying any explicit settings overrides.
type AxisBounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// Result is the output of one classification pass.
type Result struct {
	Points   []Point
	Bounds   AxisBounds
	ColorMap map[string]string
	Skipped  int
}
