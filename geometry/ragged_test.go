package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRagged_RowsAreViews(t *testing.T) {
	r := RaggedFromLists([][]int{{0, 1, 2}, {}, {3, 4}})
	require.Equal(t, 3, r.Len())
	assert.Equal(t, []int{0, 3, 3, 5}, r.Offsets)
	assert.Equal(t, []int{0, 1, 2}, r.Row(0))
	assert.Empty(t, r.Row(1))
	assert.Equal(t, 2, r.RowLen(2))

	// Rows share storage but cannot grow into their neighbour
	row := r.Row(0)
	row[0] = 9
	assert.Equal(t, 9, r.Indices[0])
	_ = append(row, 7)
	assert.Equal(t, 3, r.Indices[3])

	lists := r.Lists()
	assert.Equal(t, [][]int{{9, 1, 2}, {}, {3, 4}}, lists)
	assert.NotNil(t, lists[1])

	// Round trip keeps empty rows and no longer aliases Indices
	again := RaggedFromLists(lists)
	assert.Equal(t, r.Offsets, again.Offsets)
	lists[0][0] = 5
	assert.Equal(t, 9, r.Indices[0])
}

func TestRagged_RowOutOfRange(t *testing.T) {
	r := RaggedFromLists([][]int{{0}})
	cv := requireViolation(t, func() { r.Row(1) })
	assert.Equal(t, "Ragged.Row", cv.Op)
	requireViolation(t, func() { r.Row(-1) })
	requireViolation(t, func() { Ragged{}.Row(0) })
}

func TestRagged_Check(t *testing.T) {
	tests := []struct {
		name  string
		r     Ragged
		bound int
		ok    bool
	}{
		{"empty", Ragged{}, 0, true},
		{"indices without offsets", Ragged{Indices: []int{1}}, -1, false},
		{"nonzero start", NewRagged([]int{1, 2}, []int{0, 1}), -1, false},
		{"decreasing", NewRagged([]int{0, 2, 1, 3}, []int{0, 1, 2}), -1, false},
		{"short indices", NewRagged([]int{0, 4}, []int{0, 1, 2}), -1, false},
		{"unbounded", NewRagged([]int{0, 2}, []int{5, 7}), -1, true},
		{"in bound", NewRagged([]int{0, 2}, []int{5, 7}), 8, true},
		{"out of bound", NewRagged([]int{0, 2}, []int{5, 8}), 8, false},
		{"negative index", NewRagged([]int{0, 1}, []int{-1}), 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Check(tt.bound)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
