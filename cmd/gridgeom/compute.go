package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notargets/gridgeom/grid"
)

type faceRecord struct {
	Face      int       `yaml:"face" json:"face"`
	Area      float64   `yaml:"area" json:"area"`
	Normal    []float64 `yaml:"normal,flow" json:"normal"`
	Centroid  []float64 `yaml:"centroid,flow" json:"centroid"`
	Neighbors [2]int    `yaml:"neighbors,flow" json:"neighbors"`
}

type cellRecord struct {
	Cell     int       `yaml:"cell" json:"cell"`
	Element  int       `yaml:"element" json:"element"`
	Volume   float64   `yaml:"volume" json:"volume"`
	Centroid []float64 `yaml:"centroid,flow" json:"centroid"`
}

type report struct {
	Mesh     string       `yaml:"mesh" json:"mesh"`
	Summary  grid.Summary `yaml:"summary" json:"summary"`
	Warnings []string     `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Faces    []faceRecord `yaml:"faces,omitempty" json:"faces,omitempty"`
	Cells    []cellRecord `yaml:"cells,omitempty" json:"cells,omitempty"`
}

func newComputeCmd(opts *options) *cobra.Command {
	var (
		format      string
		output      string
		summaryOnly bool
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute face and cell geometry and write a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Path = output
			}
			r, err := opts.execute(cmd, cfg)
			if err != nil {
				return err
			}
			defer r.logger.Sync()

			rep := newReport(opts.meshPath, r, !summaryOnly)
			if cfg.Output.Path == "" {
				return writeReport(cmd.OutOrStdout(), cfg.Output.Format, rep)
			}
			f, err := os.Create(cfg.Output.Path)
			if err != nil {
				return fmt.Errorf("creating report: %w", err)
			}
			if err := writeReport(f, cfg.Output.Format, rep); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d faces, %d cells written to %s\n",
				rep.Summary.NumFaces, rep.Summary.NumCells, cfg.Output.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "report format: yaml or json (overrides config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report file, stdout when empty (overrides config)")
	cmd.Flags().BoolVar(&summaryOnly, "summary-only", false, "omit per-face and per-cell records")
	return cmd
}

func newReport(mesh string, r *run, records bool) *report {
	rep := &report{Mesh: mesh, Summary: r.geo.Summary()}
	for _, w := range r.warnings.Warnings() {
		rep.Warnings = append(rep.Warnings, w.String())
	}
	if !records {
		return rep
	}

	faces := r.geo.Faces
	rep.Faces = make([]faceRecord, faces.Len())
	for f := range rep.Faces {
		rep.Faces[f] = faceRecord{
			Face:      f,
			Area:      faces.Areas[f],
			Normal:    faces.Normal(f),
			Centroid:  faces.Centroid(f),
			Neighbors: [2]int{r.grid.Neighbors[2*f], r.grid.Neighbors[2*f+1]},
		}
	}
	if cells := r.geo.Cells; cells != nil {
		rep.Cells = make([]cellRecord, cells.Len())
		for c := range rep.Cells {
			rep.Cells[c] = cellRecord{
				Cell:     c,
				Element:  c,
				Volume:   cells.Volumes[c],
				Centroid: cells.Centroid(c),
			}
			if r.grid.CellIDs != nil {
				rep.Cells[c].Element = r.grid.CellIDs[c]
			}
		}
	}
	return rep
}

func writeReport(w io.Writer, format string, rep *report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
