package geometry

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// NoCell marks the missing side of a boundary face in the neighbour array
const NoCell = -1

// cell3D decomposes cell c into tetrahedra joining an approximate centre x_c
// to every fan triangle of every bounding face, and accumulates their signed
// volumes and volume-weighted centroids.
func (k *Kernel) cell3D(coords []float64, faceNodes Ragged, neighbors []int,
	faces *FaceGeometry, cellFaces Ragged, out *CellGeometry, c int) {

	bounding := cellFaces.Row(c)

	// Equal weight per face, not per area
	var xc r3.Vec
	for _, f := range bounding {
		xc = r3.Add(xc, point3(faces.Centroids, f))
	}
	xc = r3.Scale(1/float64(len(bounding)), xc)

	var (
		volume float64
		offset r3.Vec
	)
	for _, f := range bounding {
		nodes := faceNodes.Row(f)
		apex := fanApex(coords, nodes)
		normal := point3(faces.Normals, f)
		// Face normals point out of the first neighbour
		inward := neighbors[2*f] != c

		fan(coords, nodes, apex, func(_ int, u, v r3.Vec) {
			w := r3.Cross(u, v)
			vt := r3.Dot(w, r3.Sub(apex, xc)) / 6
			if r3.Dot(w, normal) < 0 {
				vt = -vt
			}
			if inward {
				vt = -vt
			}
			volume += vt
			// Tetrahedron centroid lies 3/4 of the way from x_c to the
			// centroid of the opposite triangle
			offset = r3.Add(offset, r3.Scale(0.75*vt, r3.Sub(triangleCentroid(apex, u, v), xc)))
		})
	}

	if !(volume > 0) {
		warn(k.Diagnostics, Warning{Kind: NonPositiveVolume, Element: c, Triangle: -1, Value: volume})
	}
	put3(out.Centroids, c, r3.Add(xc, r3.Scale(1/volume, offset)))
	out.Volumes[c] = volume
}
