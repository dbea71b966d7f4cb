package geometry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type testGrid struct {
	coords    []float64
	faceNodes Ragged
	neighbors []int
	cellFaces Ragged
}

func (g testGrid) compute(t *testing.T, k *Kernel) (*FaceGeometry, *CellGeometry) {
	t.Helper()
	fg := NewFaceGeometry(3, g.faceNodes.Len())
	k.ComputeFaceGeometry(3, g.coords, g.faceNodes, fg)
	cg := NewCellGeometry(g.cellFaces.Len())
	k.ComputeCellGeometry(3, g.coords, g.faceNodes, g.neighbors, fg, g.cellFaces, cg)
	return fg, cg
}

// unitCube is the cube [0,1]^3 with node index x + 2y + 4z and outward
// oriented faces owned by cell 0.
func unitCube() testGrid {
	var coords []float64
	for n := 0; n < 8; n++ {
		coords = append(coords, float64(n&1), float64(n>>1&1), float64(n>>2&1))
	}
	faces := [][]int{
		{0, 2, 3, 1}, // z = 0
		{4, 5, 7, 6}, // z = 1
		{0, 1, 5, 4}, // y = 0
		{2, 6, 7, 3}, // y = 1
		{0, 4, 6, 2}, // x = 0
		{1, 3, 7, 5}, // x = 1
	}
	neighbors := make([]int, 0, 12)
	for range faces {
		neighbors = append(neighbors, 0, NoCell)
	}
	return testGrid{
		coords:    coords,
		faceNodes: RaggedFromLists(faces),
		neighbors: neighbors,
		cellFaces: RaggedFromLists([][]int{{0, 1, 2, 3, 4, 5}}),
	}
}

// regularTet has edge length 2*sqrt(2), volume 8/3 and its centroid at the
// origin
func regularTet() testGrid {
	return testGrid{
		coords: []float64{
			1, 1, 1,
			1, -1, -1,
			-1, 1, -1,
			-1, -1, 1,
		},
		faceNodes: RaggedFromLists([][]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}),
		neighbors: []int{0, NoCell, 0, NoCell, 0, NoCell, 0, NoCell},
		cellFaces: RaggedFromLists([][]int{{3, 1, 0, 2}}),
	}
}

// boxGrid is an nx × ny × nz block of unit hexahedra. Every face normal points
// along +x, +y or +z, so the first neighbour is the lower cell and boundary
// faces on the low side have NoCell first. With jitter > 0 interior nodes are
// displaced, which makes faces non-planar but keeps the outer box intact.
func boxGrid(nx, ny, nz int, jitter float64) testGrid {
	node := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	cell := func(i, j, k int) int {
		if i < 0 || j < 0 || k < 0 || i >= nx || j >= ny || k >= nz {
			return NoCell
		}
		return i + nx*(j+ny*k)
	}

	rng := rand.New(rand.NewSource(7))
	coords := make([]float64, 0, 3*(nx+1)*(ny+1)*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				x, y, z := float64(i), float64(j), float64(k)
				if i > 0 && i < nx && j > 0 && j < ny && k > 0 && k < nz {
					x += jitter * (2*rng.Float64() - 1)
					y += jitter * (2*rng.Float64() - 1)
					z += jitter * (2*rng.Float64() - 1)
				}
				coords = append(coords, x, y, z)
			}
		}
	}

	var (
		faces     [][]int
		neighbors []int
		cellFaces = make([][]int, nx*ny*nz)
	)
	addFace := func(nodes []int, lower, upper int) {
		f := len(faces)
		faces = append(faces, nodes)
		neighbors = append(neighbors, lower, upper)
		for _, c := range []int{lower, upper} {
			if c != NoCell {
				cellFaces[c] = append(cellFaces[c], f)
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i <= nx; i++ {
				addFace([]int{node(i, j, k), node(i, j+1, k), node(i, j+1, k+1), node(i, j, k+1)},
					cell(i-1, j, k), cell(i, j, k))
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i < nx; i++ {
				addFace([]int{node(i, j, k), node(i, j, k+1), node(i+1, j, k+1), node(i+1, j, k)},
					cell(i, j-1, k), cell(i, j, k))
			}
		}
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				addFace([]int{node(i, j, k), node(i+1, j, k), node(i+1, j+1, k), node(i, j+1, k)},
					cell(i, j, k-1), cell(i, j, k))
			}
		}
	}

	return testGrid{
		coords:    coords,
		faceNodes: RaggedFromLists(faces),
		neighbors: neighbors,
		cellFaces: RaggedFromLists(cellFaces),
	}
}

func requireViolation(t *testing.T, fn func()) (cv *ContractViolation) {
	t.Helper()
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a contract violation")
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)
			require.True(t, errors.As(err, &cv), "panic value %v is not a ContractViolation", err)
		}()
		fn()
	}()
	return cv
}
