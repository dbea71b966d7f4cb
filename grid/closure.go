package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ClosureFailure is a cell whose outward area weighted normals do not sum to
// zero within tolerance
type ClosureFailure struct {
	Cell     int     `yaml:"cell" json:"cell"`
	Residual float64 `yaml:"residual" json:"residual"`
}

func (f ClosureFailure) String() string {
	return fmt.Sprintf("cell %d closure residual %.3e", f.Cell, f.Residual)
}

// ClosureResidual returns |Σ s·n_f| / Σ A_f over the faces of cell c, with
// s = +1 when c is the first neighbour of f and -1 otherwise. It is zero, up
// to rounding, for every closed cell.
func (g *Grid) ClosureResidual(geo *Geometry, c int) float64 {
	sum := make([]float64, g.Dims)
	var area float64
	for _, f := range g.CellFaces.Row(c) {
		s := 1.0
		if g.Neighbors[2*f] != c {
			s = -1
		}
		floats.AddScaled(sum, s, geo.Faces.Normal(f))
		area += geo.Faces.Areas[f]
	}
	return floats.Norm(sum, 2) / area
}

// CheckClosure returns every cell whose closure residual exceeds tol or is NaN
func (g *Grid) CheckClosure(geo *Geometry, tol float64) []ClosureFailure {
	var failures []ClosureFailure
	for c := 0; c < g.NumCells(); c++ {
		r := g.ClosureResidual(geo, c)
		if !(r <= tol) {
			failures = append(failures, ClosureFailure{Cell: c, Residual: r})
		}
	}
	return failures
}
