// Package view implements the View type: visible row ranges, optional
// sort permutation, optional value index, selection bitmap,
// cursor/viewport state, and parent/child links for selection
// propagation. Ownership tracking (a view's DataSource is freed iff it
// owns it) mirrors a Close()-on-owner lifecycle discipline.
package view

import (
	"github.com/grailbio/dsview/internal/bitset"
	"github.com/grailbio/dsview/internal/datasource"
	"github.com/grailbio/dsview/internal/parser"
	"github.com/grailbio/dsview/internal/sortengine"
	"github.com/grailbio/dsview/internal/valueindex"
)

// SortDirection is the active sort state for a view's SortColumn.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// Range is an inclusive [Start,End] run of visible rows.
type Range struct {
	Start, End int
}

// View carries all per-view state; there is no global cursor — cursor
// and viewport are per-view.
type View struct {
	Name           string
	Source         datasource.DataSource
	OwnsDataSource bool

	ranges          []Range
	VisibleRowCount int

	SortColumn       int
	SortDirection    SortDirection
	LastSortedColumn int
	RowOrderMap      []int // permutation over visible-set indices, or nil

	Parent             *View
	ParentSourceColumn int

	ValueIndex    *valueindex.Index
	AnalysisCache map[int]*valueindex.Index
	ReverseRowMap []int // actual row -> displayed row, or nil until built

	RowSelected   *bitset.Set
	SelectionCount int

	CursorRow, CursorCol int
	StartRow, StartCol   int

	Prev, Next *View
}

const noRow = -1

// NewMain creates the main view over src: one implicit range covering
// every row, identity sort, empty selection, cursor at (0,0).
func NewMain(name string, src datasource.DataSource) *View {
	rc := src.RowCount()
	v := &View{
		Name:             name,
		Source:           src,
		OwnsDataSource:   false,
		VisibleRowCount:  rc,
		SortColumn:       -1,
		SortDirection:    SortNone,
		LastSortedColumn: -1,
		AnalysisCache:    make(map[int]*valueindex.Index),
		RowSelected:      bitset.New(rc),
	}
	if rc > 0 {
		v.ranges = []Range{{Start: 0, End: rc - 1}}
	}
	return v
}

// NewDerivedFromSelection builds a child view from a sorted list of
// underlying DataSource row indices (src's selection already resolved
// through any active sort permutation). Adjacent indices compress into
// Ranges; cursor_col/start_col are inherited from src, cursor_row/
// start_row reset to 0.
func NewDerivedFromSelection(name string, src *View, selected []int) *View {
	ranges := compressRanges(selected)
	count := len(selected)
	v := &View{
		Name:                name,
		Source:              src.Source,
		OwnsDataSource:      false,
		ranges:              ranges,
		VisibleRowCount:     count,
		SortColumn:          -1,
		SortDirection:       SortNone,
		LastSortedColumn:    -1,
		Parent:              src,
		ParentSourceColumn:  -1,
		AnalysisCache:       make(map[int]*valueindex.Index),
		RowSelected:         bitset.New(count),
		CursorCol:           src.CursorCol,
		StartCol:            src.StartCol,
	}
	return v
}

// compressRanges turns a sorted, deduplicated list of underlying
// DataSource row indices into maximally-merged Ranges: a new range starts whenever
// selected[i] != selected[i-1]+1.
func compressRanges(selected []int) []Range {
	if len(selected) == 0 {
		return nil
	}
	ranges := make([]Range, 0, 4)
	start := selected[0]
	prev := selected[0]
	for _, idx := range selected[1:] {
		if idx != prev+1 {
			ranges = append(ranges, Range{Start: start, End: prev})
			start = idx
		}
		prev = idx
	}
	ranges = append(ranges, Range{Start: start, End: prev})
	return ranges
}

// NewAnalysis builds a frequency-analysis view: owns a Memory DataSource,
// links to parent for propagation, and attaches the value index that was
// built to populate it.
func NewAnalysis(name string, src datasource.DataSource, parent *View, parentCol int, vi *valueindex.Index) *View {
	rc := src.RowCount()
	v := &View{
		Name:                name,
		Source:              src,
		OwnsDataSource:      true,
		VisibleRowCount:     rc,
		SortColumn:          -1,
		SortDirection:       SortNone,
		LastSortedColumn:    -1,
		Parent:              parent,
		ParentSourceColumn:  parentCol,
		ValueIndex:          vi,
		AnalysisCache:       make(map[int]*valueindex.Index),
		RowSelected:         bitset.New(rc),
	}
	if rc > 0 {
		v.ranges = []Range{{Start: 0, End: rc - 1}}
	}
	return v
}

// Ranges exposes the view's visibility set (read-only).
func (v *View) Ranges() []Range { return v.ranges }

// GetActualRowIndex maps a visible-set index i to its position within
// the underlying DataSource's rows. Returns (0,false) when i is out of
// bounds.
func (v *View) GetActualRowIndex(i int) (int, bool) {
	if i < 0 || i >= v.VisibleRowCount {
		return 0, false
	}
	if len(v.ranges) == 0 {
		return i, true
	}
	base := 0
	for _, r := range v.ranges {
		length := r.End - r.Start + 1
		if i < base+length {
			return r.Start + (i - base), true
		}
		base += length
	}
	return 0, false
}

// GetDisplayedRowIndex maps a displayed-row position to its actual row,
// applying RowOrderMap first if a sort permutation is active.
func (v *View) GetDisplayedRowIndex(displayRow int) (int, bool) {
	i := displayRow
	if v.RowOrderMap != nil {
		if displayRow < 0 || displayRow >= len(v.RowOrderMap) {
			return 0, false
		}
		i = v.RowOrderMap[displayRow]
	}
	return v.GetActualRowIndex(i)
}

// BuildReverseMap allocates and fills ReverseRowMap: for each displayed row
// d, ReverseRowMap[actualRow(d)] = d. Entries for rows not displayed stay
// at the noRow sentinel.
func (v *View) BuildReverseMap() {
	n := v.Source.RowCount()
	rev := make([]int, n)
	for i := range rev {
		rev[i] = noRow
	}
	for d := 0; d < v.VisibleRowCount; d++ {
		if actual, ok := v.GetDisplayedRowIndex(d); ok && actual >= 0 && actual < n {
			rev[actual] = d
		}
	}
	v.ReverseRowMap = rev
}

// PropagateSelectionToParent propagates the current view's selection
// back to its parent by value: every parent row sharing a selected
// value becomes selected too. Preconditions: v.ValueIndex, v.Parent, and
// v.Parent.ReverseRowMap must already exist/be built.
func (v *View) PropagateSelectionToParent(renderValue func(displayRow int) string) {
	if v.ValueIndex == nil || v.Parent == nil || v.Parent.ReverseRowMap == nil {
		return
	}
	parent := v.Parent
	parent.RowSelected.ClearAll()
	parent.SelectionCount = 0

	for _, d := range v.RowSelected.Indices() {
		value := renderValue(d)
		for _, actualRow := range v.ValueIndex.Lookup(value) {
			if actualRow < 0 || actualRow >= len(parent.ReverseRowMap) {
				continue
			}
			parentDisplay := parent.ReverseRowMap[actualRow]
			if parentDisplay == noRow {
				continue // not visible in the parent
			}
			if !parent.RowSelected.Test(parentDisplay) {
				parent.RowSelected.SetBit(parentDisplay)
			}
		}
	}
	parent.SelectionCount = parent.RowSelected.Count()
}

// Close releases the view's DataSource iff it owns it.
func (v *View) Close() error {
	if v.OwnsDataSource && v.Source != nil {
		return v.Source.Close()
	}
	return nil
}

// Sort recomputes (or, for SortNone, clears) RowOrderMap for the view's
// current SortColumn/SortDirection.
func (v *View) Sort() {
	if v.SortDirection == SortNone {
		v.RowOrderMap = nil
		return
	}
	var dir sortengine.Direction
	if v.SortDirection == SortAsc {
		dir = sortengine.Asc
	} else {
		dir = sortengine.Desc
	}
	v.RowOrderMap = sortengine.Sort(sortableView{v}, v.SortColumn, dir)
	v.LastSortedColumn = v.SortColumn
}

// sortableView adapts *View to sortengine.Target without requiring a
// VisibleRowCount() method to collide with the VisibleRowCount field.
type sortableView struct{ v *View }

func (s sortableView) VisibleRowCount() int                  { return s.v.VisibleRowCount }
func (s sortableView) ActualRow(i int) (int, bool)            { return s.v.GetActualRowIndex(i) }
func (s sortableView) Cell(actualRow, col int) parser.FieldDesc { return s.v.Source.GetCell(actualRow, col) }
