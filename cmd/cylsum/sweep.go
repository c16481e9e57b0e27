package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/cylsum/internal/config"
	"github.com/san-kum/cylsum/internal/export"
	"github.com/san-kum/cylsum/internal/sweep"
	"github.com/san-kum/cylsum/internal/viz"
	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	var (
		kind      string
		from, to  float64
		steps     int
		logScale  bool
		power     float64
		systems   int
		tolerance float64
		svgPath   string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure how approximation error grows with the rotation angle",
		Example: `  cylsum sweep --kind perturbation --from 0.01 --to 10 --log
  cylsum sweep --kind misalignment --power -4 --from 0.1 --to 30 --svg corollary.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			grid := sweep.Linspace(from, to, steps)
			if logScale {
				grid = sweep.Logspace(from, to, steps)
			}
			if len(grid) == 0 {
				return fmt.Errorf("empty sweep grid (from=%g to=%g steps=%d)", from, to, steps)
			}

			base := config.DefaultConfig().Validator()
			base.Systems = systems

			var (
				points []sweep.Point
				err    error
			)
			g := sweep.NewGrid(base)
			switch kind {
			case "perturbation":
				points, err = g.Perturbations(cmd.Context(), grid)
				if err != nil {
					return err
				}
			case "misalignment":
				points = g.Misalignments(power, grid)
			default:
				return fmt.Errorf("unknown sweep kind: %s (available: perturbation, misalignment)", kind)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ANGLE\tTRIALS\tMAX_ABS\tMEAN_ABS\tMAX_REL")
			for _, p := range points {
				fmt.Fprintf(w, "%.4f\t%d\t%.2e\t%.2e\t%.2e\n", p.X, p.Trials, p.MaxAbs, p.MeanAbs, p.MaxRelative)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if at, ok := sweep.Breakpoint(points, tolerance); ok {
				fmt.Printf("\nwithin %.0e up to %.4f deg\n", tolerance, at)
			} else {
				fmt.Printf("\nno grid value within %.0e\n", tolerance)
			}

			fmt.Println()
			fmt.Println(viz.SweepChart(points, fmt.Sprintf("log10 max %s error", kind)))

			if svgPath != "" {
				opts := export.DefaultCurveOptions()
				opts.Tolerance = tolerance
				if err := export.WriteCurve(svgPath, points, opts); err != nil {
					return err
				}
				fmt.Printf("svg written to %s\n", svgPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "perturbation", "sweep kind (perturbation, misalignment)")
	cmd.Flags().Float64Var(&from, "from", 0.01, "first angle in degrees")
	cmd.Flags().Float64Var(&to, "to", 10, "last angle in degrees")
	cmd.Flags().IntVar(&steps, "steps", 20, "number of grid points")
	cmd.Flags().BoolVar(&logScale, "log", false, "space grid points logarithmically")
	cmd.Flags().Float64VarP(&power, "power", "c", -2, "cylinder power for the misalignment sweep")
	cmd.Flags().IntVar(&systems, "systems", 2000, "random sets per perturbation")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 1e-3, "error level to report the breakpoint for")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the curve to an svg file")
	return cmd
}
