// Package layout implements header-layout, column-position-resolution,
// auto-scroll, and highlight-composition logic. A single accumulation
// loop is shared by both rendering and cursor-placement/auto-scroll, so
// the two never disagree about where a column sits on screen.
package layout

import "github.com/grailbio/dsview/internal/term"

// HeaderLayout is the result of walking visible columns from start_col
// until the screen width is exhausted.
type HeaderLayout struct {
	LastVisibleCol      int
	HasMoreColumnsRight bool
	ContentWidth        int
	UnderlineWidth      int
}

// ComputeHeaderLayout walks cols[startCol:] accumulating col width plus
// sepWidth until the next column would overflow screenWidth; if the
// remainder is positive it becomes a truncated last column, else the walk
// stops at the prior column.
func ComputeHeaderLayout(cols []int, startCol, screenWidth, sepWidth int) HeaderLayout {
	var hl HeaderLayout
	if startCol < 0 || startCol >= len(cols) {
		hl.LastVisibleCol = startCol - 1
		hl.UnderlineWidth = 0
		return hl
	}
	content := 0
	last := startCol - 1
	for c := startCol; c < len(cols); c++ {
		w := cols[c] + sepWidth
		if content+w <= screenWidth {
			content += w
			last = c
			continue
		}
		remaining := screenWidth - content
		if remaining > 0 {
			content += remaining
			last = c
		}
		hl.HasMoreColumnsRight = true
		break
	}
	hl.LastVisibleCol = last
	hl.ContentWidth = content
	if hl.HasMoreColumnsRight {
		hl.UnderlineWidth = screenWidth
	} else {
		hl.UnderlineWidth = content
	}
	return hl
}

// ResolveColumnPosition replays the same accumulation to find the target
// column's on-screen (x, width, visible) — the single source of truth
// shared by rendering and auto-scroll.
func ResolveColumnPosition(cols []int, startCol, target, screenWidth, sepWidth int) (x, width int, visible bool) {
	if target < startCol || target >= len(cols) {
		return 0, 0, false
	}
	x = 0
	for c := startCol; c < target; c++ {
		x += cols[c] + sepWidth
		if x >= screenWidth {
			return 0, 0, false
		}
	}
	w := cols[target]
	if x+w > screenWidth {
		w = screenWidth - x
		if w <= 0 {
			return 0, 0, false
		}
	}
	return x, w, true
}

// IsColumnFullyVisible reports whether target is entirely on-screen,
// untruncated, under startCol, used by the horizontal auto-scroll
// decision. ResolveColumnPosition itself truncates a column's width to
// whatever fits; "fully visible" additionally requires that no
// truncation occurred.
func IsColumnFullyVisible(cols []int, startCol, target, screenWidth, sepWidth int) bool {
	if target < 0 || target >= len(cols) {
		return false
	}
	x, w, visible := ResolveColumnPosition(cols, startCol, target, screenWidth, sepWidth)
	return visible && w == cols[target] && x+w <= screenWidth
}

// AutoScrollCol returns the new start_col after a cursor move to target:
// unchanged if target is already fully visible; target itself for
// movement off the left (target < startCol); the smallest start_col that
// makes it visible, for movement off the right.
func AutoScrollCol(cols []int, startCol, target, screenWidth, sepWidth int) int {
	if target < startCol {
		return target
	}
	if IsColumnFullyVisible(cols, startCol, target, screenWidth, sepWidth) {
		return startCol
	}
	for s := startCol + 1; s <= target; s++ {
		if IsColumnFullyVisible(cols, s, target, screenWidth, sepWidth) {
			return s
		}
	}
	return target
}

// AutoScrollRow returns the new start_row after a cursor move to row,
// keeping row inside [start_row, start_row+visibleRows).
func AutoScrollRow(startRow, row, visibleRows int) int {
	if visibleRows <= 0 {
		return startRow
	}
	if row < startRow {
		return row
	}
	if row >= startRow+visibleRows {
		return row - visibleRows + 1
	}
	return startRow
}

// Separator returns the column separator rune for the screen's locale
// UTF-8-ness.
func Separator(s term.Screen) rune {
	if s.SupportsUTF8() {
		return '│'
	}
	return '|'
}

// CellHighlight composes the attribute for the cell at (row, col) given
// the cursor position: row highlight across content width, column
// highlight across all data rows, combined where cursor row and column
// intersect.
func CellHighlight(row, col, cursorRow, cursorCol int, selected bool) term.Attr {
	var a term.Attr
	if row == cursorRow {
		a |= term.AttrRowHighlight
	}
	if col == cursorCol {
		a |= term.AttrColHighlight
	}
	if selected {
		a |= term.AttrSelected
	}
	return a
}

// HeaderHighlight composes the header-cell attribute for col: the base
// header attribute, plus the header-column highlight when col is under
// the cursor, preserving the underline attribute either way.
func HeaderHighlight(col, cursorCol int) term.Attr {
	a := term.AttrHeader | term.AttrUnderline
	if col == cursorCol {
		a |= term.AttrColHighlight
	}
	return a
}

// StatusSources is the ordered list of status-line sources from highest
// to lowest precedence; the first non-empty string supplied to
// ResolveStatusLine wins.
type StatusSources struct {
	SearchEcho string // non-empty while composing a search term
	ErrorMsg   string // cleared after 3s, by the caller
	StatusMsg  string // cleared after 3s, by the caller
	CopyStatus string
	Default    string
}

// ResolveStatusLine applies the precedence rule: search echo > error >
// status > copy-status > default.
func ResolveStatusLine(s StatusSources) string {
	switch {
	case s.SearchEcho != "":
		return s.SearchEcho
	case s.ErrorMsg != "":
		return s.ErrorMsg
	case s.StatusMsg != "":
		return s.StatusMsg
	case s.CopyStatus != "":
		return s.CopyStatus
	default:
		return s.Default
	}
}
