// Package bench implements --benchmark mode: initialize then exit,
// printing timings. It re-runs the same open/scan/index pipeline
// cmd/dsview's normal startup does, timing each stage and printing wall-
// clock durations to stdout on completion.
package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/grailbio/dsview/internal/columnwidth"
	"github.com/grailbio/dsview/internal/config"
	"github.com/grailbio/dsview/internal/datasource"
	"github.com/grailbio/dsview/internal/ingest"
)

// Stage is one named, timed step of the pipeline.
type Stage struct {
	Name     string
	Duration time.Duration
}

// Result is the full timing report plus the resulting row/col counts.
type Result struct {
	Stages   []Stage
	RowCount int
	ColCount int
	Total    time.Duration
}

// Run opens path, scans it, and builds column widths, timing each stage.
func Run(path string, overrideDelim byte, headerless bool, cfg config.Config) (Result, error) {
	var res Result
	start := time.Now()

	t0 := time.Now()
	data, err := ingest.Open(path, cfg)
	if err != nil {
		return res, err
	}
	res.Stages = append(res.Stages, Stage{"open+mmap+detect_encoding", time.Since(t0)})

	t1 := time.Now()
	parsed := ingest.Scan(data, overrideDelim, headerless, cfg)
	res.Stages = append(res.Stages, Stage{"scan_line_offsets", time.Since(t1)})

	wcfg := columnwidth.Config{
		SampleSize:     cfg.ColumnAnalysisSampleLines,
		MinColumnWidth: cfg.MinColumnWidth,
		MaxColumnWidth: cfg.MaxColumnWidth,
		MaxCols:        cfg.MaxCols,
		Encoding:       data.Encoding,
	}
	src := datasource.NewFileSource(data, parsed, wcfg)

	t2 := time.Now()
	for c := 0; c < src.ColCount(); c++ {
		src.GetColumnWidth(c)
	}
	res.Stages = append(res.Stages, Stage{"column_width_analysis", time.Since(t2)})

	res.RowCount = src.RowCount()
	res.ColCount = src.ColCount()
	res.Total = time.Since(start)
	return res, nil
}

// Print writes the report as one line per stage (name padded to 28
// columns, then the duration), a "total" line, and a rows/cols line.
func Print(w io.Writer, r Result) {
	for _, s := range r.Stages {
		fmt.Fprintf(w, "%-28s %v\n", s.Name, s.Duration)
	}
	fmt.Fprintf(w, "%-28s %v\n", "total", r.Total)
	fmt.Fprintf(w, "rows=%d cols=%d\n", r.RowCount, r.ColCount)
}
