package geometry

import "fmt"

// Ragged is a compressed (CSR) encoding of N variable length index lists.
// Row i is Indices[Offsets[i]:Offsets[i+1]], so Offsets has length N+1.
// The zero value is an empty list.
type Ragged struct {
	Offsets []int
	Indices []int
}

// NewRagged wraps existing offset and index arrays without copying them
func NewRagged(offsets, indices []int) Ragged {
	return Ragged{Offsets: offsets, Indices: indices}
}

// RaggedFromLists packs a slice of lists into CSR form
func RaggedFromLists(lists [][]int) Ragged {
	var total int
	for _, l := range lists {
		total += len(l)
	}
	r := Ragged{
		Offsets: make([]int, len(lists)+1),
		Indices: make([]int, 0, total),
	}
	for i, l := range lists {
		r.Indices = append(r.Indices, l...)
		r.Offsets[i+1] = len(r.Indices)
	}
	return r
}

// Len returns the number of rows
func (r Ragged) Len() int {
	if len(r.Offsets) == 0 {
		return 0
	}
	return len(r.Offsets) - 1
}

// Row returns a view of row i. The returned slice shares storage with
// Indices and has its capacity clipped, so appending to it never clobbers the
// next row.
func (r Ragged) Row(i int) []int {
	if i < 0 || i >= r.Len() {
		violate("Ragged.Row", "row %d out of range [0,%d)", i, r.Len())
	}
	lo, hi := r.Offsets[i], r.Offsets[i+1]
	return r.Indices[lo:hi:hi]
}

// RowLen returns the number of entries in row i
func (r Ragged) RowLen(i int) int {
	return len(r.Row(i))
}

// Lists unpacks the rows into freshly allocated slices. Empty rows come back
// as empty, non-nil slices.
func (r Ragged) Lists() [][]int {
	lists := make([][]int, r.Len())
	for i := range lists {
		lists[i] = append(make([]int, 0, r.RowLen(i)), r.Row(i)...)
	}
	return lists
}

// Check verifies the CSR shape and, when bound >= 0, that every index lies in
// [0,bound). It reports the first problem found.
func (r Ragged) Check(bound int) error {
	if len(r.Offsets) == 0 {
		if len(r.Indices) != 0 {
			return fmt.Errorf("no offsets but %d indices", len(r.Indices))
		}
		return nil
	}
	if r.Offsets[0] != 0 {
		return fmt.Errorf("offsets start at %d, want 0", r.Offsets[0])
	}
	for i := 1; i < len(r.Offsets); i++ {
		if r.Offsets[i] < r.Offsets[i-1] {
			return fmt.Errorf("offsets decrease at row %d (%d < %d)", i-1, r.Offsets[i], r.Offsets[i-1])
		}
	}
	if last := r.Offsets[len(r.Offsets)-1]; last != len(r.Indices) {
		return fmt.Errorf("last offset %d does not match %d indices", last, len(r.Indices))
	}
	if bound < 0 {
		return nil
	}
	for row := 0; row < r.Len(); row++ {
		for _, idx := range r.Row(row) {
			if idx < 0 || idx >= bound {
				return fmt.Errorf("row %d references index %d outside [0,%d)", row, idx, bound)
			}
		}
	}
	return nil
}

// mustCheck is Check turned into a contract violation, plus the requirement
// that no row is empty.
func (r Ragged) mustCheck(op, name string, bound int) {
	if err := r.Check(bound); err != nil {
		violate(op, "%s: %v", name, err)
	}
	for i := 0; i < r.Len(); i++ {
		if r.Offsets[i+1] == r.Offsets[i] {
			violate(op, "%s: row %d is empty", name, i)
		}
	}
}
