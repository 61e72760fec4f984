package valueindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGroupsByValue(t *testing.T) {
	values := []string{"red", "blue", "red", "green", "blue"}
	idx := Build(len(values), func(d int) (int, bool) { return d, true }, func(d int) string { return values[d] })

	assert.Equal(t, []string{"red", "blue", "green"}, idx.Values())
	assert.Equal(t, []int{0, 2}, idx.Lookup("red"))
	assert.Equal(t, []int{1, 4}, idx.Lookup("blue"))
	assert.Equal(t, []int{3}, idx.Lookup("green"))
	assert.Equal(t, 2, idx.Count("red"))
	assert.Equal(t, 0, idx.Count("missing"))
}

func TestBuildSkipsInvalidActualRow(t *testing.T) {
	idx := Build(3, func(d int) (int, bool) { return 0, d != 1 }, func(d int) string { return "v" })
	assert.Equal(t, 2, idx.Count("v"))
}

func TestLookupUnknownValue(t *testing.T) {
	idx := Build(0, func(d int) (int, bool) { return 0, true }, func(d int) string { return "" })
	assert.Nil(t, idx.Lookup("anything"))
}
