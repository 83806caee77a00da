package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/proteovis/proteovis/internal/classify"
)

// JSONWriter writes a classification result as a single JSON
// document: points, axis bounds, and the updated color map.
type JSONWriter struct {
	w io.Writer
}

// NewJSONWriter creates a JSON result writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

type jsonResult struct {
	Points   []classify.Point    `json:"points"`
	Bounds   classify.AxisBounds `json:"bounds"`
	ColorMap map[string]string   `json:"colorMap"`
	Skipped  int                 `json:"skipped"`
}

// WriteResult writes the full result.
func (jw *JSONWriter) WriteResult(result classify.Result) error {
	points := result.Points
	if points == nil {
		points = []classify.Point{}
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonResult{
		Points:   points,
		Bounds:   result.Bounds,
		ColorMap: result.ColorMap,
		Skipped:  result.Skipped,
	}); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
