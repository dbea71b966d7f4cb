// Package geometry computes face areas, normals and centroids and cell
// volumes and centroids of unstructured grids from node coordinates and CSR
// topology.
//
// Faces are integrated with a fan triangulation about the node mean, which
// handles non-planar and non-convex polygons; cells are split into tetrahedra
// joining an approximate cell centre to every fan triangle. The face pass
// must complete before the cell pass, which reads face normals and centroids.
package geometry

import (
	"sync"

	"github.com/notargets/gridgeom/partitions"
)

// Kernel runs the geometry passes. The zero value, and a nil *Kernel, run
// serially on the calling goroutine and discard warnings.
type Kernel struct {
	// Workers is the number of concurrent goroutines per pass; <= 1 is serial
	Workers int
	// Strategy decides how elements are grouped into work partitions
	Strategy partitions.PartitionStrategy
	// PartitionSize is the target number of elements per work partition.
	// Zero picks four partitions per worker.
	PartitionSize int
	// Diagnostics receives numerical warnings; nil discards them
	Diagnostics Diagnostics
}

// ComputeFaceGeometry computes area, normal and centroid of every face.
// coords holds dims values per node and faceNodes lists the nodes of each
// face in order. out must be allocated for faceNodes.Len() faces.
func ComputeFaceGeometry(dims int, coords []float64, faceNodes Ragged, out *FaceGeometry, diag Diagnostics) {
	(&Kernel{Diagnostics: diag}).ComputeFaceGeometry(dims, coords, faceNodes, out)
}

// ComputeCellGeometry computes volume and centroid of every cell of a 3D
// grid. faces must hold the output of ComputeFaceGeometry for the same
// coordinates and face topology. neighbors holds two cells per face, the
// first being the cell the face normal points out of; boundary faces carry
// NoCell on the missing side.
func ComputeCellGeometry(dims int, coords []float64, faceNodes Ragged, neighbors []int,
	faces *FaceGeometry, cellFaces Ragged, out *CellGeometry, diag Diagnostics) {
	(&Kernel{Diagnostics: diag}).ComputeCellGeometry(dims, coords, faceNodes, neighbors, faces, cellFaces, out)
}

func (k *Kernel) ComputeFaceGeometry(dims int, coords []float64, faceNodes Ragged, out *FaceGeometry) {
	const op = "ComputeFaceGeometry"
	if k == nil {
		k = &Kernel{}
	}
	if dims != 2 && dims != 3 {
		violate(op, "spatial dimension %d is not 2 or 3", dims)
	}
	numNodes := checkCoords(op, dims, coords)
	faceNodes.mustCheck(op, "face nodes", numNodes)
	numFaces := faceNodes.Len()
	out.check(op, dims, numFaces)

	if dims == 2 {
		for e := 0; e < numFaces; e++ {
			if n := faceNodes.RowLen(e); n != 2 {
				violate(op, "edge %d has %d nodes, want 2", e, n)
			}
		}
		k.forEach(numFaces, nil, func(e int) {
			edge2D(coords, faceNodes, out, e)
		})
		return
	}

	k.forEach(numFaces, faceNodes.RowLen, func(f int) {
		k.face3D(coords, faceNodes, out, f)
	})
}

func (k *Kernel) ComputeCellGeometry(dims int, coords []float64, faceNodes Ragged, neighbors []int,
	faces *FaceGeometry, cellFaces Ragged, out *CellGeometry) {
	const op = "ComputeCellGeometry"
	if k == nil {
		k = &Kernel{}
	}
	if dims != 3 {
		violate(op, "cell geometry is defined for dimension 3, got %d", dims)
	}
	numNodes := checkCoords(op, dims, coords)
	faceNodes.mustCheck(op, "face nodes", numNodes)
	numFaces := faceNodes.Len()
	faces.check(op, dims, numFaces)
	cellFaces.mustCheck(op, "cell faces", numFaces)
	numCells := cellFaces.Len()
	out.check(op, numCells)

	if len(neighbors) != 2*numFaces {
		violate(op, "%d neighbour entries for %d faces, want %d", len(neighbors), numFaces, 2*numFaces)
	}
	for i, c := range neighbors {
		if c < NoCell || c >= numCells {
			violate(op, "face %d neighbour %d is %d, outside [%d,%d)", i/2, i%2, c, NoCell, numCells)
		}
	}

	weight := func(c int) (w int) {
		for _, f := range cellFaces.Row(c) {
			w += faceNodes.RowLen(f)
		}
		return
	}
	k.forEach(numCells, weight, func(c int) {
		k.cell3D(coords, faceNodes, neighbors, faces, cellFaces, out, c)
	})
}

func checkCoords(op string, dims int, coords []float64) (numNodes int) {
	if len(coords)%dims != 0 {
		violate(op, "%d coordinate values is not a multiple of dimension %d", len(coords), dims)
	}
	return len(coords) / dims
}

// forEach calls fn(i) for i in [0,n). With more than one worker the indices
// are grouped into partitions and the partitions run on a bounded set of
// goroutines; forEach returns once all of them are done. A panic raised by fn
// is re-raised on the calling goroutine.
func (k *Kernel) forEach(n int, weight func(i int) int, fn func(i int)) {
	if n == 0 {
		return
	}
	if k.Workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	layout := k.layout(n, weight)

	var (
		wg     sync.WaitGroup
		once   sync.Once
		caught interface{}
		sem    = make(chan struct{}, k.Workers)
	)
	for _, p := range layout.Partitions {
		wg.Add(1)
		sem <- struct{}{}
		go func(elements []int) {
			defer func() {
				if r := recover(); r != nil {
					once.Do(func() { caught = r })
				}
				<-sem
				wg.Done()
			}()
			for _, i := range elements {
				fn(i)
			}
		}(p.Elements)
	}
	wg.Wait()

	if caught != nil {
		panic(caught)
	}
}

func (k *Kernel) layout(n int, weight func(i int) int) *partitions.PartitionLayout {
	size := k.PartitionSize
	if size <= 0 {
		size = (n + 4*k.Workers - 1) / (4 * k.Workers)
	}
	pb := &partitions.PartitionBuilder{
		NumElements:         n,
		TargetPartitionSize: size,
		Strategy:            k.Strategy,
	}
	if k.Strategy == partitions.WeightedBlock && weight != nil {
		pb.Weights = make([]int, n)
		for i := range pb.Weights {
			pb.Weights[i] = weight(i)
		}
	}
	layout, err := pb.BuildPartitions()
	if err != nil {
		// Inputs are derived from validated counts, so this is a kernel bug
		panic(err)
	}
	return layout
}
