package grid

import (
	"fmt"

	"github.com/notargets/gocfd/DG3D/mesh"
	"github.com/notargets/gocfd/DG3D/mesh/readers"
	"github.com/notargets/gocfd/utils"
)

// LoadMesh reads a mesh file (.neu, .msh or .su2) and converts its volume
// elements into a Grid
func LoadMesh(path string) (*Grid, error) {
	m, err := readers.ReadMeshFile(path)
	if err != nil {
		return nil, fmt.Errorf("grid: reading %s: %w", path, err)
	}
	g, err := FromMesh(m)
	if err != nil {
		return nil, fmt.Errorf("grid: %s: %w", path, err)
	}
	return g, nil
}

// FromMesh converts the 3D elements of m into a Grid. Lower dimensional
// elements (boundary faces, edges, points) are skipped; CellIDs maps each
// cell back to its element index in m. Higher order elements contribute
// their corner nodes only.
func FromMesh(m *mesh.Mesh) (*Grid, error) {
	coords := make([]float64, 0, 3*len(m.Vertices))
	for i, v := range m.Vertices {
		if len(v) < 3 {
			return nil, fmt.Errorf("vertex %d has %d coordinates, want 3", i, len(v))
		}
		coords = append(coords, v[0], v[1], v[2])
	}

	var (
		cells [][][]int
		ids   []int
	)
	for e, et := range m.ElementTypes {
		if et.GetDimension() != 3 {
			continue
		}
		faces := utils.GetElementFaces(et, m.EtoV[e])
		if len(faces) == 0 {
			return nil, fmt.Errorf("element %d: no face table for element type %v", e, et)
		}
		cells = append(cells, faces)
		ids = append(ids, e)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("mesh has no 3D elements")
	}

	g, err := BuildFromCells(coords, cells)
	if err != nil {
		return nil, err
	}
	g.CellIDs = ids
	return g, nil
}
