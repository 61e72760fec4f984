// Package sortengine implements a type-inferring, permutation-based sort:
// a permutation array is built over visible rows and populated by
// sampling the target column to decide numeric-vs-lexical comparison,
// then filled via a stable sort.
package sortengine

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/grailbio/dsview/internal/parser"
)

// Direction mirrors view.SortDirection without importing the view package
// (sortengine is a leaf consumed by view/router, not the other way).
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

const sampleSize = 100

// Target is the minimal surface Sort needs from a View, kept local to
// avoid a dependency cycle between sortengine and view (view.Sort calls
// into this package).
type Target interface {
	VisibleRowCount() int
	ActualRow(i int) (int, bool)
	Cell(actualRow, col int) parser.FieldDesc
}

// Sort computes (or clears) the row-order permutation for column col in
// direction dir, returning the permutation (nil for None).
func Sort(t Target, col int, dir Direction) []int {
	n := t.VisibleRowCount()
	if dir == None {
		return nil
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	numeric := isNumericColumn(t, col, n)

	less := func(a, b int) bool {
		ra, _ := t.ActualRow(perm[a])
		rb, _ := t.ActualRow(perm[b])
		sa := parser.Render(t.Cell(ra, col))
		sb := parser.Render(t.Cell(rb, col))
		var cmp int
		if numeric {
			va, _ := strconv.ParseInt(sa, 10, 64)
			vb, _ := strconv.ParseInt(sb, 10, 64)
			switch {
			case va < vb:
				cmp = -1
			case va > vb:
				cmp = 1
			}
		} else {
			cmp = bytes.Compare([]byte(sa), []byte(sb))
		}
		if dir == Desc {
			return cmp > 0
		}
		return cmp < 0
	}
	sort.SliceStable(perm, less)
	return perm
}

// isNumericColumn samples up to sampleSize displayed rows of col: numeric
// iff every non-empty sampled cell parses wholly as a decimal integer
// (optional leading '-'); empty cells don't disqualify.
func isNumericColumn(t Target, col, visibleRowCount int) bool {
	n := sampleSize
	if n > visibleRowCount {
		n = visibleRowCount
	}
	sawAny := false
	for i := 0; i < n; i++ {
		actual, ok := t.ActualRow(i)
		if !ok {
			continue
		}
		s := parser.Render(t.Cell(actual, col))
		if s == "" {
			continue
		}
		sawAny = true
		if !isWholeInteger(s) {
			return false
		}
	}
	return sawAny
}

// isWholeInteger reports whether s is a decimal integer consuming the
// whole string, with an optional leading '-'.
func isWholeInteger(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}
