package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRowAndCell(t *testing.T) {
	tb := New("Freq", []string{"Value", "Count"})
	assert.NoError(t, tb.AddRow([]string{"red", "3"}))
	assert.NoError(t, tb.AddRow([]string{"blue", "1"}))
	assert.Equal(t, 2, tb.RowCount())
	assert.Equal(t, 2, tb.ColCount())
	assert.Equal(t, "red", tb.Cell(0, 0))
	assert.Equal(t, "1", tb.Cell(1, 1))
}

func TestAddRowWrongColumnCountRejected(t *testing.T) {
	tb := New("t", []string{"a", "b"})
	err := tb.AddRow([]string{"only one"})
	assert.Error(t, err)
	assert.Equal(t, 0, tb.RowCount())
}

func TestCellOutOfRange(t *testing.T) {
	tb := New("t", []string{"a"})
	assert.NoError(t, tb.AddRow([]string{"x"}))
	assert.Equal(t, "", tb.Cell(5, 0))
	assert.Equal(t, "", tb.Cell(0, 5))
}

func TestHeaderOutOfRange(t *testing.T) {
	tb := New("t", []string{"a", "b"})
	assert.Equal(t, "a", tb.Header(0))
	assert.Equal(t, "", tb.Header(9))
}

func TestGrowsPastInitialCapacity(t *testing.T) {
	tb := New("t", []string{"a"})
	for i := 0; i < initialCapacity+5; i++ {
		assert.NoError(t, tb.AddRow([]string{"x"}))
	}
	assert.Equal(t, initialCapacity+5, tb.RowCount())
}
