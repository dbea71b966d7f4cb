package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// face3D triangulates face f as a fan about its node mean and accumulates
// area, normal and area-weighted centroid over the triangles.
func (k *Kernel) face3D(coords []float64, faceNodes Ragged, out *FaceGeometry, f int) {
	nodes := faceNodes.Row(f)
	apex := fanApex(coords, nodes)

	var (
		area             float64
		normal, centroid r3.Vec
	)
	fan(coords, nodes, apex, func(t int, u, v r3.Vec) {
		w := r3.Cross(u, v)
		a := 0.5 * r3.Norm(w)
		area += a
		if !(a > 0) {
			warn(k.Diagnostics, Warning{Kind: DegenerateTriangle, Element: f, Triangle: t, Value: a})
		}
		normal = r3.Add(normal, w)
		centroid = r3.Add(centroid, r3.Scale(a, triangleCentroid(apex, u, v)))
	})

	// A face without area leaves 0/0 in the centroid; that is reported above,
	// not repaired.
	put3(out.Normals, f, r3.Scale(0.5, normal))
	put3(out.Centroids, f, r3.Scale(1/area, centroid))
	out.Areas[f] = area
}

// edge2D handles a 2D face, which is the edge (a,b). The normal is b-a
// rotated by -90 degrees, pointing inward for clockwise enumeration.
func edge2D(coords []float64, faceNodes Ragged, out *FaceGeometry, e int) {
	nodes := faceNodes.Row(e)
	a, b := point2(coords, nodes[0]), point2(coords, nodes[1])
	v := r2.Sub(b, a)

	put2(out.Centroids, e, r2.Scale(0.5, r2.Add(a, b)))
	put2(out.Normals, e, r2.Vec{X: v.Y, Y: -v.X})
	out.Areas[e] = r2.Norm(v)
}
