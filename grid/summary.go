package grid

import (
	"gonum.org/v1/gonum/floats"
)

// Summary condenses a Geometry into totals and extremes
type Summary struct {
	Dims        int     `yaml:"dims" json:"dims"`
	NumFaces    int     `yaml:"num_faces" json:"num_faces"`
	NumCells    int     `yaml:"num_cells" json:"num_cells"`
	TotalArea   float64 `yaml:"total_area" json:"total_area"`
	MinArea     float64 `yaml:"min_area" json:"min_area"`
	MaxArea     float64 `yaml:"max_area" json:"max_area"`
	TotalVolume float64 `yaml:"total_volume" json:"total_volume"`
	MinVolume   float64 `yaml:"min_volume" json:"min_volume"`
	MaxVolume   float64 `yaml:"max_volume" json:"max_volume"`
	// NonPositiveVolumes counts cells whose volume is not > 0
	NonPositiveVolumes int `yaml:"non_positive_volumes" json:"non_positive_volumes"`
}

func (geo *Geometry) Summary() Summary {
	s := Summary{}
	if geo.Faces != nil {
		s.Dims = geo.Faces.Dims
		s.NumFaces = geo.Faces.Len()
		if s.NumFaces > 0 {
			s.TotalArea = floats.Sum(geo.Faces.Areas)
			s.MinArea = floats.Min(geo.Faces.Areas)
			s.MaxArea = floats.Max(geo.Faces.Areas)
		}
	}
	if geo.Cells != nil && geo.Cells.Len() > 0 {
		v := geo.Cells.Volumes
		s.NumCells = len(v)
		s.TotalVolume = floats.Sum(v)
		s.MinVolume = floats.Min(v)
		s.MaxVolume = floats.Max(v)
		for _, x := range v {
			if !(x > 0) {
				s.NonPositiveVolumes++
			}
		}
	}
	return s
}
