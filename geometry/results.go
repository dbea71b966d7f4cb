package geometry

import (
	"gonum.org/v1/gonum/mat"
)

// FaceGeometry holds per-face results. Normals and Centroids store Dims
// values per face; Areas stores one. In 2D the area is the edge length and
// the centroid is the edge midpoint.
type FaceGeometry struct {
	Dims      int
	Normals   []float64
	Centroids []float64
	Areas     []float64
}

// NewFaceGeometry allocates outputs for numFaces faces
func NewFaceGeometry(dims, numFaces int) *FaceGeometry {
	if dims != 2 && dims != 3 {
		violate("NewFaceGeometry", "spatial dimension %d is not 2 or 3", dims)
	}
	return &FaceGeometry{
		Dims:      dims,
		Normals:   make([]float64, dims*numFaces),
		Centroids: make([]float64, dims*numFaces),
		Areas:     make([]float64, numFaces),
	}
}

// Len returns the number of faces
func (fg *FaceGeometry) Len() int { return len(fg.Areas) }

// Normal returns a view of the normal of face f
func (fg *FaceGeometry) Normal(f int) []float64 {
	return fg.Normals[fg.Dims*f : fg.Dims*(f+1)]
}

// Centroid returns a view of the centroid of face f
func (fg *FaceGeometry) Centroid(f int) []float64 {
	return fg.Centroids[fg.Dims*f : fg.Dims*(f+1)]
}

// NormalsDense returns a [NumFaces × Dims] matrix sharing storage with Normals,
// or nil when there are no faces.
func (fg *FaceGeometry) NormalsDense() *mat.Dense {
	if fg.Len() == 0 {
		return nil
	}
	return mat.NewDense(fg.Len(), fg.Dims, fg.Normals)
}

// CentroidsDense returns a [NumFaces × Dims] matrix sharing storage with Centroids
func (fg *FaceGeometry) CentroidsDense() *mat.Dense {
	if fg.Len() == 0 {
		return nil
	}
	return mat.NewDense(fg.Len(), fg.Dims, fg.Centroids)
}

func (fg *FaceGeometry) check(op string, dims, numFaces int) {
	switch {
	case fg == nil:
		violate(op, "face geometry is nil")
	case fg.Dims != dims:
		violate(op, "face geometry has dimension %d, want %d", fg.Dims, dims)
	case len(fg.Areas) != numFaces:
		violate(op, "face geometry holds %d areas for %d faces", len(fg.Areas), numFaces)
	case len(fg.Normals) != dims*numFaces:
		violate(op, "face geometry holds %d normal values for %d faces", len(fg.Normals), numFaces)
	case len(fg.Centroids) != dims*numFaces:
		violate(op, "face geometry holds %d centroid values for %d faces", len(fg.Centroids), numFaces)
	}
}

// CellGeometry holds per-cell results for 3D grids
type CellGeometry struct {
	Centroids []float64 // 3 per cell
	Volumes   []float64
}

// NewCellGeometry allocates outputs for numCells cells
func NewCellGeometry(numCells int) *CellGeometry {
	return &CellGeometry{
		Centroids: make([]float64, 3*numCells),
		Volumes:   make([]float64, numCells),
	}
}

// Len returns the number of cells
func (cg *CellGeometry) Len() int { return len(cg.Volumes) }

// Centroid returns a view of the centroid of cell c
func (cg *CellGeometry) Centroid(c int) []float64 {
	return cg.Centroids[3*c : 3*(c+1)]
}

// CentroidsDense returns a [NumCells × 3] matrix sharing storage with Centroids
func (cg *CellGeometry) CentroidsDense() *mat.Dense {
	if cg.Len() == 0 {
		return nil
	}
	return mat.NewDense(cg.Len(), 3, cg.Centroids)
}

func (cg *CellGeometry) check(op string, numCells int) {
	switch {
	case cg == nil:
		violate(op, "cell geometry is nil")
	case len(cg.Volumes) != numCells:
		violate(op, "cell geometry holds %d volumes for %d cells", len(cg.Volumes), numCells)
	case len(cg.Centroids) != 3*numCells:
		violate(op, "cell geometry holds %d centroid values for %d cells", len(cg.Centroids), numCells)
	}
}
