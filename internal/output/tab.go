// Package output provides plot-point output formatters for the CLI.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/proteovis/proteovis/internal/classify"
)

// TabWriter writes classified points in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Primary_ID",
			"Label",
			"Fold_Change",
			"Significance",
			"Comparison",
			"Groups",
			"Colors",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single point.
func (tw *TabWriter) Write(p classify.Point) error {
	values := []string{
		p.PrimaryID,
		orDash(p.Label),
		formatFloat(p.X),
		formatFloat(p.Y),
		orDash(p.Comparison),
		orDash(strings.Join(p.Groups, ";")),
		orDash(strings.Join(p.Colors, ";")),
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
