package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Points are stored as flat dims-tuples; these helpers move them in and out
// of gonum's vector types.

func point3(xs []float64, i int) r3.Vec {
	return r3.Vec{X: xs[3*i], Y: xs[3*i+1], Z: xs[3*i+2]}
}

func put3(xs []float64, i int, v r3.Vec) {
	xs[3*i], xs[3*i+1], xs[3*i+2] = v.X, v.Y, v.Z
}

func point2(xs []float64, i int) r2.Vec {
	return r2.Vec{X: xs[2*i], Y: xs[2*i+1]}
}

func put2(xs []float64, i int, v r2.Vec) {
	xs[2*i], xs[2*i+1] = v.X, v.Y
}

// fanApex is the arithmetic mean of the polygon nodes. It is the common apex
// of the fan triangulation, not the area centroid.
func fanApex(coords []float64, nodes []int) r3.Vec {
	var x r3.Vec
	for _, n := range nodes {
		x = r3.Add(x, point3(coords, n))
	}
	return r3.Scale(1/float64(len(nodes)), x)
}

// fan visits the triangles (apex, p[k-1], p[k]) for k = 0..n-1 with p[-1]
// the last node, so the polygon closes on itself. u and v are the triangle
// edges relative to the apex.
func fan(coords []float64, nodes []int, apex r3.Vec, fn func(k int, u, v r3.Vec)) {
	u := r3.Sub(point3(coords, nodes[len(nodes)-1]), apex)
	for k, n := range nodes {
		v := r3.Sub(point3(coords, n), apex)
		fn(k, u, v)
		u = v
	}
}

// triangleCentroid is the vertex mean of (apex, apex+u, apex+v)
func triangleCentroid(apex, u, v r3.Vec) r3.Vec {
	return r3.Add(apex, r3.Scale(1.0/3.0, r3.Add(u, v)))
}

// PolygonNormal returns the area weighted normal of a 3D polygon, oriented by
// the right-hand rule over the node order. Its length is the fan area of a
// planar polygon.
func PolygonNormal(coords []float64, nodes []int) r3.Vec {
	if len(nodes) == 0 {
		return r3.Vec{}
	}
	var n r3.Vec
	fan(coords, nodes, fanApex(coords, nodes), func(_ int, u, v r3.Vec) {
		n = r3.Add(n, r3.Cross(u, v))
	})
	return r3.Scale(0.5, n)
}

// PolygonMean returns the node mean of a 3D polygon
func PolygonMean(coords []float64, nodes []int) r3.Vec {
	if len(nodes) == 0 {
		return r3.Vec{}
	}
	return fanApex(coords, nodes)
}
