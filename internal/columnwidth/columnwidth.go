// Package columnwidth implements a column-width analyzer: sample the
// first N rows, track a running max display width per column, clamp to
// [min,max].
package columnwidth

import (
	"github.com/grailbio/dsview/internal/encoding"
	"github.com/grailbio/dsview/internal/parser"
)

// Config bounds the analyzer. Populated from internal/config.
type Config struct {
	SampleSize     int
	MinColumnWidth int
	MaxColumnWidth int
	MaxCols        int
	Encoding       encoding.Encoding
}

// source is the minimal read surface the analyzer needs. DataSource
// implementations satisfy this structurally; columnwidth does not import
// internal/datasource to avoid a dependency cycle (FileSource itself calls
// into this package to compute its own lazy widths).
type source interface {
	RowCount() int
	GetCell(row, col int) parser.FieldDesc
}

// Analyze computes the clamped display width for every column of src.
func Analyze(src source, colCount int, cfg Config) []int {
	widths := make([]int, colCount)
	for c := range widths {
		widths[c] = cfg.MinColumnWidth
	}
	n := cfg.SampleSize
	if rc := src.RowCount(); n > rc {
		n = rc
	}
	for r := 0; r < n; r++ {
		for c := 0; c < colCount; c++ {
			if widths[c] >= cfg.MaxColumnWidth {
				continue // short-circuit: this column already saturated
			}
			w := encoding.DisplayWidth(parser.Render(src.GetCell(r, c)), cfg.Encoding)
			if w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c := range widths {
		widths[c] = clamp(widths[c], cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}
	return widths
}

// AnalyzeColumn computes the clamped width for a single column (used for
// the lazy per-column computation a DataSource performs on first access).
func AnalyzeColumn(src source, col int, cfg Config) int {
	w := cfg.MinColumnWidth
	n := cfg.SampleSize
	if rc := src.RowCount(); n > rc {
		n = rc
	}
	for r := 0; r < n; r++ {
		if w >= cfg.MaxColumnWidth {
			break
		}
		if cw := encoding.DisplayWidth(parser.Render(src.GetCell(r, col)), cfg.Encoding); cw > w {
			w = cw
		}
	}
	return clamp(w, cfg.MinColumnWidth, cfg.MaxColumnWidth)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
