package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every cell is closed and has positive volume",
		Long: `check computes the geometry of a mesh and verifies, for every cell,
that the outward area weighted face normals sum to zero relative to the
cell's surface area, and that the cell volume is positive. It exits
non-zero when any cell fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tolerance") {
				cfg.ClosureTolerance = tolerance
			}
			r, err := opts.execute(cmd, cfg)
			if err != nil {
				return err
			}
			defer r.logger.Sync()

			out := cmd.OutOrStdout()
			failures := r.grid.CheckClosure(r.geo, cfg.ClosureTolerance)
			for _, f := range failures {
				fmt.Fprintln(out, f)
			}
			var bad int
			if r.geo.Cells != nil {
				for c, v := range r.geo.Cells.Volumes {
					if !(v > 0) {
						fmt.Fprintf(out, "cell %d volume %g\n", c, v)
						bad++
					}
				}
			}

			fmt.Fprintf(out, "%d cells checked, %d open, %d with non-positive volume, %d warnings\n",
				r.grid.NumCells(), len(failures), bad, r.warnings.Len())
			if len(failures) > 0 || bad > 0 {
				return fmt.Errorf("mesh %s failed geometry check", opts.meshPath)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 0, "relative closure tolerance (overrides config)")
	return cmd
}
