package grid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/gridgeom/geometry"
)

// BuildFromCells assembles a 3D grid from per-cell face lists, each face given
// as global node indices. Faces are matched across cells by their sorted node
// set. The first cell to list a face owns it: the face keeps that cell's node
// order, reversed if needed so the normal points away from the owner's node
// mean, and the owner becomes the first neighbour.
//
// A face listed by more than two cells, or twice by the same cell, is an
// error.
func BuildFromCells(coords []float64, cells [][][]int) (*Grid, error) {
	const dims = 3
	if len(coords)%dims != 0 {
		return nil, fmt.Errorf("grid: %d coordinate values is not a multiple of dimension %d", len(coords), dims)
	}
	numNodes := len(coords) / dims

	var (
		faceLists [][]int
		neighbors []int
		cellLists = make([][]int, len(cells))
		faceMap   = make(map[string]int)
	)
	for c, faces := range cells {
		if len(faces) == 0 {
			return nil, fmt.Errorf("grid: cell %d has no faces", c)
		}
		for lf, nodes := range faces {
			if len(nodes) < 3 {
				return nil, fmt.Errorf("grid: cell %d face %d has %d nodes, want at least 3", c, lf, len(nodes))
			}
			for _, n := range nodes {
				if n < 0 || n >= numNodes {
					return nil, fmt.Errorf("grid: cell %d face %d references node %d outside [0,%d)", c, lf, n, numNodes)
				}
			}
		}
		centre := cellMean(coords, faces)

		for lf, nodes := range faces {
			key := faceKey(nodes)
			f, exists := faceMap[key]
			if !exists {
				f = len(faceLists)
				faceMap[key] = f
				faceLists = append(faceLists, orientOutward(coords, nodes, centre))
				neighbors = append(neighbors, c, geometry.NoCell)
			} else {
				switch {
				case neighbors[2*f] == c:
					return nil, fmt.Errorf("grid: cell %d lists face %d twice (local face %d)", c, f, lf)
				case neighbors[2*f+1] != geometry.NoCell:
					return nil, fmt.Errorf("grid: face %d is shared by cells %d, %d and %d",
						f, neighbors[2*f], neighbors[2*f+1], c)
				}
				neighbors[2*f+1] = c
			}
			cellLists[c] = append(cellLists[c], f)
		}
	}

	return &Grid{
		Dims:      dims,
		Coords:    coords,
		FaceNodes: geometry.RaggedFromLists(faceLists),
		Neighbors: neighbors,
		CellFaces: geometry.RaggedFromLists(cellLists),
	}, nil
}

// faceKey identifies a face by its node set, independent of order
func faceKey(nodes []int) string {
	sorted := append([]int(nil), nodes...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// cellMean is the mean of the distinct nodes of a cell
func cellMean(coords []float64, faces [][]int) r3.Vec {
	seen := make(map[int]struct{})
	var sum r3.Vec
	for _, nodes := range faces {
		for _, n := range nodes {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			sum = r3.Add(sum, r3.Vec{X: coords[3*n], Y: coords[3*n+1], Z: coords[3*n+2]})
		}
	}
	return r3.Scale(1/float64(len(seen)), sum)
}

// orientOutward returns a copy of nodes ordered so the polygon normal points
// away from centre
func orientOutward(coords []float64, nodes []int, centre r3.Vec) []int {
	out := append([]int(nil), nodes...)
	n := geometry.PolygonNormal(coords, out)
	d := r3.Sub(geometry.PolygonMean(coords, out), centre)
	if r3.Dot(n, d) < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
