// Package router implements the input router: the global key layer
// (quit/help/cycle-views/close-view) and the table panel's movement,
// selection, derived-view, sort-cycling, search, and clipboard-copy
// semantics, dispatched through an exhaustive key-kind switch into small
// per-action handlers.
package router

import (
	"sort"
	"strings"

	"github.com/grailbio/dsview/internal/clipboard"
	"github.com/grailbio/dsview/internal/layout"
	"github.com/grailbio/dsview/internal/parser"
	"github.com/grailbio/dsview/internal/term"
	"github.com/grailbio/dsview/internal/view"
	"github.com/grailbio/dsview/internal/viewmanager"
)

// Result reports how a key event was handled.
type Result int

const (
	Ignored Result = iota
	Consumed
	Global
)

// Action is the outcome of the global key layer.
type Action int

const (
	Continue Action = iota
	SwitchPanel
	Quit
	ShowHelp
)

// Panel names the active panel in the global ViewState.
type Panel int

const (
	PanelTable Panel = iota
	PanelHelp
	// PanelFreqAnalysis names the frequency-analysis panel's state; no key
	// builds or switches to one yet, so Dispatch never produces it.
	PanelFreqAnalysis
)

// InputMode is Normal unless a search is being composed.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeSearch
)

// SearchOutcome classifies a completed search.
type SearchOutcome int

const (
	NotFound SearchOutcome = iota
	Found
	WrappedAndFound
)

// State is the global ViewState: current panel, redraw flag, the active
// view manager, input mode, and the in-progress/last search term plus
// any transient messages. Per-view cursor/selection state is never
// duplicated here.
type State struct {
	Panel       Panel
	NeedsRedraw bool
	Views       *viewmanager.Manager
	Mode        InputMode

	SearchTerm    string
	LastSearch    string
	SearchMessage string
	StatusMessage string
	ErrorMessage  string
	CopyStatus    string

	clip *clipboard.Writer // nil until first successful Detect
}

// NewState wraps mgr in a fresh global ViewState.
func NewState(mgr *viewmanager.Manager) *State {
	return &State{Panel: PanelTable, Views: mgr, Mode: ModeNormal}
}

// Dispatch routes one key event. Global keys (quit, help, cycle/close
// view) are handled first; everything else is routed to the table panel
// when Mode/Panel allow it.
func Dispatch(st *State, ev term.KeyEvent, cols []int, screenWidth, sepWidth int) (Result, Action) {
	if ev.Kind == term.KeyErr || ev.Kind == term.KeyMouse || ev.Kind == term.KeyResize {
		return Ignored, Continue
	}

	if st.Mode == ModeSearch {
		return dispatchSearch(st, ev), Continue
	}

	if ev.Kind == term.KeyRune {
		switch ev.Rune {
		case 'q', 'Q':
			return Global, Quit
		case 'h', 'H':
			st.Panel = PanelHelp
			st.NeedsRedraw = true
			return Global, ShowHelp
		case 'x':
			st.Views.CloseCurrent()
			st.NeedsRedraw = true
			return Global, SwitchPanel
		}
	}
	if ev.Kind == term.KeySpecial {
		switch ev.Special {
		case term.SpecialTab:
			st.Views.CycleNext()
			st.NeedsRedraw = true
			return Global, SwitchPanel
		case term.SpecialShiftTab:
			st.Views.CyclePrev()
			st.NeedsRedraw = true
			return Global, SwitchPanel
		}
	}

	if st.Panel != PanelTable {
		return Ignored, Continue
	}
	return dispatchTable(st, ev, cols, screenWidth, sepWidth), Continue
}

func dispatchTable(st *State, ev term.KeyEvent, cols []int, screenWidth, sepWidth int) Result {
	v := st.Views.Current()

	if ev.Kind == term.KeySpecial {
		switch ev.Special {
		case term.SpecialUp:
			moveCursorRow(v, v.CursorRow-1)
			return Consumed
		case term.SpecialDown:
			moveCursorRow(v, v.CursorRow+1)
			return Consumed
		case term.SpecialLeft:
			moveCursorCol(v, v.CursorCol-1, cols, screenWidth, sepWidth)
			return Consumed
		case term.SpecialRight:
			moveCursorCol(v, v.CursorCol+1, cols, screenWidth, sepWidth)
			return Consumed
		case term.SpecialPageUp:
			page := visibleRows(v)
			moveCursorRow(v, v.CursorRow-page)
			return Consumed
		case term.SpecialPageDown:
			page := visibleRows(v)
			moveCursorRow(v, v.CursorRow+page)
			return Consumed
		case term.SpecialHome:
			v.CursorRow, v.StartRow = 0, 0
			moveCursorCol(v, 0, cols, screenWidth, sepWidth)
			st.NeedsRedraw = true
			return Consumed
		case term.SpecialEnd:
			if v.VisibleRowCount > 0 {
				moveCursorRow(v, v.VisibleRowCount-1)
			}
			if v.Source != nil && v.Source.ColCount() > 0 {
				moveCursorCol(v, v.Source.ColCount()-1, cols, screenWidth, sepWidth)
			}
			return Consumed
		case term.SpecialEsc:
			clearSelection(v)
			return Consumed
		}
		return Ignored
	}

	if ev.Kind != term.KeyRune {
		return Ignored
	}
	switch ev.Rune {
	case ' ':
		toggleSelection(v)
		return Consumed
	case 'A':
		clearSelection(v)
		return Consumed
	case 'v':
		createDerivedView(st)
		return Consumed
	case 's', 'S':
		cycleSort(v)
		return Consumed
	case '/':
		st.Mode = ModeSearch
		st.SearchTerm = ""
		st.SearchMessage = ""
		st.NeedsRedraw = true
		return Consumed
	case 'n':
		runSearch(st, v, st.LastSearch, false)
		return Consumed
	case 'y':
		copyCell(st, v)
		return Consumed
	}
	return Ignored
}

func visibleRows(v *view.View) int {
	if v.VisibleRowCount == 0 {
		return 0
	}
	return v.VisibleRowCount
}

func clampRow(v *view.View, row int) int {
	if v.VisibleRowCount <= 0 {
		return 0
	}
	if row < 0 {
		return 0
	}
	if row >= v.VisibleRowCount {
		return v.VisibleRowCount - 1
	}
	return row
}

func clampCol(v *view.View, col int) int {
	n := 0
	if v.Source != nil {
		n = v.Source.ColCount()
	}
	if n <= 0 {
		return 0
	}
	if col < 0 {
		return 0
	}
	if col >= n {
		return n - 1
	}
	return col
}

func moveCursorRow(v *view.View, row int) {
	v.CursorRow = clampRow(v, row)
	page := v.VisibleRowCount
	if page <= 0 {
		page = 1
	}
	v.StartRow = layout.AutoScrollRow(v.StartRow, v.CursorRow, page)
}

func moveCursorCol(v *view.View, col int, cols []int, screenWidth, sepWidth int) {
	v.CursorCol = clampCol(v, col)
	if cols != nil {
		v.StartCol = layout.AutoScrollCol(cols, v.StartCol, v.CursorCol, screenWidth, sepWidth)
	}
}

func toggleSelection(v *view.View) {
	if v.RowSelected == nil {
		return
	}
	if v.RowSelected.Test(v.CursorRow) {
		v.RowSelected.ClearBit(v.CursorRow)
	} else {
		v.RowSelected.SetBit(v.CursorRow)
	}
	v.SelectionCount = v.RowSelected.Count()
	propagateIfChild(v)
}

func clearSelection(v *view.View) {
	if v.RowSelected == nil {
		return
	}
	v.RowSelected.ClearAll()
	v.SelectionCount = 0
	propagateIfChild(v)
}

func propagateIfChild(v *view.View) {
	if v.ValueIndex == nil || v.Parent == nil {
		return
	}
	if v.Parent.ReverseRowMap == nil {
		v.Parent.BuildReverseMap()
	}
	v.PropagateSelectionToParent(func(displayRow int) string {
		actual, ok := v.GetDisplayedRowIndex(displayRow)
		if !ok {
			return ""
		}
		return parser.Render(v.Source.GetCell(actual, 0))
	})
}

// createDerivedView builds a derived view from the current selection and
// switches to it. A no-op when nothing is selected. RowSelected.Indices()
// returns displayed-row positions, so each is resolved through any active
// sort permutation to the underlying row it actually names before being
// handed to NewDerivedFromSelection, which builds Ranges over the shared
// DataSource directly.
func createDerivedView(st *State) {
	v := st.Views.Current()
	if v.RowSelected == nil || v.SelectionCount == 0 {
		return
	}
	displayed := v.RowSelected.Indices()
	selected := make([]int, 0, len(displayed))
	for _, d := range displayed {
		if actual, ok := v.GetDisplayedRowIndex(d); ok {
			selected = append(selected, actual)
		}
	}
	sort.Ints(selected)
	child := view.NewDerivedFromSelection(v.Name+" (selection)", v, selected)
	if st.Views.AddView(child) {
		st.NeedsRedraw = true
	}
}

// cycleSort advances SortDirection None->Asc->Desc->None on the cursor
// column and recomputes the permutation.
func cycleSort(v *view.View) {
	if v.SortColumn != v.CursorCol {
		v.SortColumn = v.CursorCol
		v.SortDirection = view.SortNone
	}
	switch v.SortDirection {
	case view.SortNone:
		v.SortDirection = view.SortAsc
	case view.SortAsc:
		v.SortDirection = view.SortDesc
	default:
		v.SortDirection = view.SortNone
	}
	v.Sort()
}

func dispatchSearch(st *State, ev term.KeyEvent) Result {
	v := st.Views.Current()
	if ev.Kind == term.KeyRune {
		st.SearchTerm += string(ev.Rune)
		st.SearchMessage = "/" + st.SearchTerm
		st.NeedsRedraw = true
		return Consumed
	}
	switch ev.Special {
	case term.SpecialBackspace:
		if len(st.SearchTerm) > 0 {
			st.SearchTerm = st.SearchTerm[:len(st.SearchTerm)-1]
		}
		st.SearchMessage = "/" + st.SearchTerm
		st.NeedsRedraw = true
		return Consumed
	case term.SpecialEnter:
		st.Mode = ModeNormal
		st.LastSearch = st.SearchTerm
		runSearch(st, v, st.SearchTerm, true)
		return Consumed
	case term.SpecialEsc:
		st.Mode = ModeNormal
		st.SearchMessage = ""
		st.NeedsRedraw = true
		return Consumed
	}
	return Ignored
}

// runSearch starts from (cursor_row, cursor_col+1), or (cursor_row,
// cursor_col) when startFromCursor, walks cells in row-major order with
// full wrap, and tests substring(term) at each. Visits at most
// visible_row_count*col_count cells.
func runSearch(st *State, v *view.View, term_ string, startFromCursor bool) {
	if term_ == "" || v.VisibleRowCount == 0 || v.Source == nil || v.Source.ColCount() == 0 {
		st.SearchMessage = "Not found"
		return
	}
	rows := v.VisibleRowCount
	cols := v.Source.ColCount()
	total := rows * cols

	row, col := v.CursorRow, v.CursorCol
	if !startFromCursor {
		col++
		if col >= cols {
			col = 0
			row++
			if row >= rows {
				row = 0
			}
		}
	}
	startRow, startCol := row, col
	wrapped := false

	for i := 0; i < total; i++ {
		actual, ok := v.GetDisplayedRowIndex(row)
		if ok {
			cell := parser.Render(v.Source.GetCell(actual, col))
			if strings.Contains(cell, term_) {
				v.CursorRow, v.CursorCol = row, col
				v.StartRow = layout.AutoScrollRow(v.StartRow, row, rows)
				if wrapped {
					st.SearchMessage = "Found (wrapped)"
				} else {
					st.SearchMessage = "Found"
				}
				return
			}
		}
		col++
		if col >= cols {
			col = 0
			row++
			if row >= rows {
				row = 0
				wrapped = true
			}
		}
		if row == startRow && col == startCol && i > 0 {
			break
		}
	}
	st.SearchMessage = "Not found"
}

// copyCell renders the cell at the cursor and copies it to the system
// clipboard.
func copyCell(st *State, v *view.View) {
	if st.clip == nil {
		w, err := clipboard.Detect()
		if err != nil {
			st.CopyStatus = "Copy failed: no clipboard available"
			return
		}
		st.clip = w
	}
	actual, ok := v.GetDisplayedRowIndex(v.CursorRow)
	if !ok {
		return
	}
	text := parser.Render(v.Source.GetCell(actual, v.CursorCol))
	if err := st.clip.Copy(text); err != nil {
		st.CopyStatus = "Copy failed"
		return
	}
	st.CopyStatus = "Copied"
}
