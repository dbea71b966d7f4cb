// Package grid holds an unstructured grid in the flat form the geometry kernel
// consumes, with recoverable validation, construction from cell to vertex
// connectivity and loading from mesh files.
package grid

import (
	"fmt"

	"github.com/notargets/gridgeom/geometry"
)

// Grid is a polygonal (2D) or polyhedral (3D) grid. Faces are shared between
// the cells on either side; Neighbors holds two cells per face and the face
// normal points out of the first one.
type Grid struct {
	Dims      int
	Coords    []float64       // Dims values per node
	FaceNodes geometry.Ragged // ordered nodes of each face
	Neighbors []int           // 2 per face, geometry.NoCell on the boundary
	CellFaces geometry.Ragged // faces bounding each cell
	CellIDs   []int           // optional source element index of each cell
}

// Geometry is the output of both kernel passes. Cells is nil for 2D grids.
type Geometry struct {
	Faces *geometry.FaceGeometry
	Cells *geometry.CellGeometry
}

func (g *Grid) NumNodes() int {
	if g.Dims <= 0 {
		return 0
	}
	return len(g.Coords) / g.Dims
}

func (g *Grid) NumFaces() int { return g.FaceNodes.Len() }

func (g *Grid) NumCells() int { return g.CellFaces.Len() }

// Validate checks everything the kernel treats as a contract and returns the
// first problem as an error. In addition every cell must appear as a
// neighbour of each of its faces.
func (g *Grid) Validate() error {
	if g.Dims != 2 && g.Dims != 3 {
		return fmt.Errorf("grid: dimension %d is not 2 or 3", g.Dims)
	}
	if len(g.Coords)%g.Dims != 0 {
		return fmt.Errorf("grid: %d coordinate values is not a multiple of dimension %d", len(g.Coords), g.Dims)
	}
	if err := checkRows("face nodes", g.FaceNodes, g.NumNodes()); err != nil {
		return err
	}
	if g.Dims == 2 {
		for e := 0; e < g.NumFaces(); e++ {
			if n := g.FaceNodes.RowLen(e); n != 2 {
				return fmt.Errorf("grid: edge %d has %d nodes, want 2", e, n)
			}
		}
	}
	if g.CellFaces.Len() == 0 && len(g.Neighbors) == 0 {
		return nil
	}

	numFaces, numCells := g.NumFaces(), g.NumCells()
	if err := checkRows("cell faces", g.CellFaces, numFaces); err != nil {
		return err
	}
	if len(g.Neighbors) != 2*numFaces {
		return fmt.Errorf("grid: %d neighbour entries for %d faces, want %d", len(g.Neighbors), numFaces, 2*numFaces)
	}
	for i, c := range g.Neighbors {
		if c < geometry.NoCell || c >= numCells {
			return fmt.Errorf("grid: face %d neighbour %d is %d, outside [%d,%d)", i/2, i%2, c, geometry.NoCell, numCells)
		}
	}
	if g.CellIDs != nil && len(g.CellIDs) != numCells {
		return fmt.Errorf("grid: %d cell ids for %d cells", len(g.CellIDs), numCells)
	}
	// listed[i] is set once the cell in Neighbors[i] lists the face
	listed := make([]bool, len(g.Neighbors))
	for c := 0; c < numCells; c++ {
		for _, f := range g.CellFaces.Row(c) {
			switch c {
			case g.Neighbors[2*f]:
				listed[2*f] = true
			case g.Neighbors[2*f+1]:
				listed[2*f+1] = true
			default:
				return fmt.Errorf("grid: cell %d lists face %d whose neighbours are (%d,%d)",
					c, f, g.Neighbors[2*f], g.Neighbors[2*f+1])
			}
		}
	}
	for i, c := range g.Neighbors {
		if c != geometry.NoCell && !listed[i] {
			return fmt.Errorf("grid: face %d has neighbour %d which does not list it", i/2, c)
		}
	}
	return nil
}

func checkRows(name string, r geometry.Ragged, bound int) error {
	if err := r.Check(bound); err != nil {
		return fmt.Errorf("grid: %s: %w", name, err)
	}
	for i := 0; i < r.Len(); i++ {
		if r.RowLen(i) == 0 {
			return fmt.Errorf("grid: %s: row %d is empty", name, i)
		}
	}
	return nil
}

// ComputeGeometry validates the grid and runs the face pass followed, for 3D
// grids with cells, by the cell pass. A nil kernel runs serially.
func (g *Grid) ComputeGeometry(k *geometry.Kernel) (*Geometry, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	geo := &Geometry{Faces: geometry.NewFaceGeometry(g.Dims, g.NumFaces())}
	k.ComputeFaceGeometry(g.Dims, g.Coords, g.FaceNodes, geo.Faces)
	if g.Dims != 3 || g.NumCells() == 0 {
		return geo, nil
	}
	geo.Cells = geometry.NewCellGeometry(g.NumCells())
	k.ComputeCellGeometry(g.Dims, g.Coords, g.FaceNodes, g.Neighbors, geo.Faces, g.CellFaces, geo.Cells)
	return geo, nil
}
