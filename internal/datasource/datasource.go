// Package datasource implements a polymorphic DataSource interface: one
// interface, two backends (FileSource and MemSource), each owning its
// own resources and exposed uniformly to callers.
package datasource

import (
	"github.com/grailbio/dsview/internal/columnwidth"
	"github.com/grailbio/dsview/internal/ingest"
	"github.com/grailbio/dsview/internal/parser"
	"github.com/grailbio/dsview/internal/table"
)

// DataSource is the uniform interface the view layer programs against,
// whether the backing rows come from a mmap'd file or an in-memory
// analysis table.
type DataSource interface {
	RowCount() int
	ColCount() int
	GetCell(row, col int) parser.FieldDesc
	GetHeader(col int) parser.FieldDesc
	GetColumnWidth(col int) int
	Close() error
}

// FileSource wraps a mmap'd file's parsed line index. It keeps a one-row
// FieldDesc cache keyed by row index, re-parsing only on a cache miss.
type FileSource struct {
	Data   *ingest.FileData
	Parsed *ingest.ParsedData
	cfg    columnwidth.Config

	cachedRow    int
	cachedFields []parser.FieldDesc
	widths       []int // lazily computed, -1 = "uncalculated"
}

// NewFileSource wraps data/parsed as a DataSource.
func NewFileSource(data *ingest.FileData, parsed *ingest.ParsedData, cfg columnwidth.Config) *FileSource {
	widths := make([]int, len(parsed.HeaderFields))
	for i := range widths {
		widths[i] = -1
	}
	return &FileSource{
		Data:      data,
		Parsed:    parsed,
		cfg:       cfg,
		cachedRow: -1,
		widths:    widths,
	}
}

func (f *FileSource) rowOffset(row int) int {
	if f.Parsed.HasHeader {
		return row + 1
	}
	return row
}

// RowCount excludes the header row when HasHeader is set.
func (f *FileSource) RowCount() int {
	n := f.Parsed.NumLines
	if f.Parsed.HasHeader && n > 0 {
		n--
	}
	return n
}

// ColCount returns the number of header fields (or the first row's field
// count for headerless files).
func (f *FileSource) ColCount() int { return len(f.Parsed.HeaderFields) }

func (f *FileSource) ensureRow(row int) {
	if row == f.cachedRow {
		return
	}
	lineRow := f.rowOffset(row)
	line := ingest.LineBytes(f.Data.Bytes, f.Parsed.LineOffsets, lineRow)
	f.cachedFields = parser.SplitLine(line, f.Parsed.Delimiter, f.cfg.MaxCols)
	f.cachedRow = row
}

// GetCell returns the field at (row, col), or an empty FieldDesc for a
// ragged row that's missing that column.
func (f *FileSource) GetCell(row, col int) parser.FieldDesc {
	if row < 0 || row >= f.RowCount() {
		return parser.FieldDesc{}
	}
	f.ensureRow(row)
	if col < 0 || col >= len(f.cachedFields) {
		return parser.FieldDesc{}
	}
	return f.cachedFields[col]
}

// GetHeader returns the header field at col.
func (f *FileSource) GetHeader(col int) parser.FieldDesc {
	if col < 0 || col >= len(f.Parsed.HeaderFields) {
		return parser.FieldDesc{}
	}
	return parser.FieldDesc{Data: []byte(f.Parsed.HeaderFields[col])}
}

// GetColumnWidth computes (once, lazily) and returns the analyzed width
// for col.
func (f *FileSource) GetColumnWidth(col int) int {
	if col < 0 || col >= len(f.widths) {
		return f.cfg.MinColumnWidth
	}
	if f.widths[col] == -1 {
		f.widths[col] = columnwidth.AnalyzeColumn(f, col, f.cfg)
	}
	return f.widths[col]
}

// Close is a no-op: the underlying FileData's mmap lifetime is managed by
// the viewer, not by individual derived views, which never own the
// parent's file DataSource.
func (f *FileSource) Close() error { return nil }

// MemSource wraps an in-memory Table (frequency-analysis results, or any
// future derived table) as a DataSource. It owns its Table.
type MemSource struct {
	Table  *table.Table
	widths []int
}

// NewMemSource precomputes per-column widths as
// max(len(header), max(len(cell))).
func NewMemSource(t *table.Table) *MemSource {
	widths := make([]int, t.ColCount())
	for c := 0; c < t.ColCount(); c++ {
		w := len(t.Header(c))
		for r := 0; r < t.RowCount(); r++ {
			if l := len(t.Cell(r, c)); l > w {
				w = l
			}
		}
		widths[c] = w
	}
	return &MemSource{Table: t, widths: widths}
}

func (m *MemSource) RowCount() int { return m.Table.RowCount() }
func (m *MemSource) ColCount() int { return m.Table.ColCount() }

func (m *MemSource) GetCell(row, col int) parser.FieldDesc {
	return parser.FieldDesc{Data: []byte(m.Table.Cell(row, col))}
}

func (m *MemSource) GetHeader(col int) parser.FieldDesc {
	return parser.FieldDesc{Data: []byte(m.Table.Header(col))}
}

func (m *MemSource) GetColumnWidth(col int) int {
	if col < 0 || col >= len(m.widths) {
		return 0
	}
	return m.widths[col]
}

// Close frees the backing Table (owned by this source).
func (m *MemSource) Close() error {
	m.Table = nil
	return nil
}
