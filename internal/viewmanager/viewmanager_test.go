package viewmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/dsview/internal/parser"
	"github.com/grailbio/dsview/internal/view"
)

type fakeSource struct{ n, cols int }

func (f fakeSource) RowCount() int                           { return f.n }
func (f fakeSource) ColCount() int                            { return f.cols }
func (f fakeSource) GetCell(row, col int) parser.FieldDesc    { return parser.FieldDesc{} }
func (f fakeSource) GetHeader(col int) parser.FieldDesc       { return parser.FieldDesc{} }
func (f fakeSource) GetColumnWidth(col int) int               { return 5 }
func (f fakeSource) Close() error                             { return nil }

func TestNewNamesMain(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, "View 1 (Main)", m.Current().Name)
}

func TestAddViewInsertsAndSwitches(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	child := view.NewDerivedFromSelection("child", main, []int{0, 1})
	assert.True(t, m.AddView(child))
	assert.Equal(t, 2, m.Count())
	assert.Equal(t, child, m.Current())
	assert.Equal(t, "View 2 (2 rows)", child.Name)
}

func TestAddViewRejectsAtMax(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	for i := 0; i < MaxViews-1; i++ {
		child := view.NewDerivedFromSelection("child", main, []int{0})
		assert.True(t, m.AddView(child))
	}
	assert.Equal(t, MaxViews, m.Count())
	overflow := view.NewDerivedFromSelection("overflow", main, []int{0})
	assert.False(t, m.AddView(overflow))
	assert.Equal(t, MaxViews, m.Count())
}

func TestCloseCurrentRefusesMainView(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	assert.False(t, m.CloseCurrent())
	assert.Equal(t, 1, m.Count())
}

func TestCloseCurrentRemovesChild(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	child := view.NewDerivedFromSelection("child", main, []int{0, 1})
	m.AddView(child)
	assert.True(t, m.CloseCurrent())
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, main, m.Current())
}

func TestCycleNextPrevWrapAround(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	child := view.NewDerivedFromSelection("child", main, []int{0})
	m.AddView(child)

	m.CycleNext()
	assert.Equal(t, main, m.Current())
	m.CycleNext()
	assert.Equal(t, child, m.Current())

	m.CyclePrev()
	assert.Equal(t, main, m.Current())
	m.CyclePrev()
	assert.Equal(t, child, m.Current())
}

func TestSwitchToClampsCursor(t *testing.T) {
	main := view.NewMain("ignored", fakeSource{n: 3, cols: 2})
	m := New(main)
	main.CursorRow = 2
	main.CursorCol = 1
	small := view.NewDerivedFromSelection("small", main, []int{0})
	small.CursorRow = 5
	small.CursorCol = 5
	m.SwitchTo(small)
	assert.Equal(t, 0, small.CursorRow) // only one visible row: index 0
	assert.Equal(t, 1, small.CursorCol) // clamped to col_count-1 = 1
}
