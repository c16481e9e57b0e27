package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/san-kum/cylsum/internal/dsm"
	"github.com/san-kum/cylsum/internal/powervector"
	"github.com/san-kum/cylsum/internal/viz"
	"github.com/spf13/cobra"
)

func addSetFlags(cmd *cobra.Command, powers, axes *[]float64) {
	cmd.Flags().Float64SliceVarP(powers, "power", "c", nil, "cylinder powers in diopters (comma separated)")
	cmd.Flags().Float64SliceVarP(axes, "axis", "a", nil, "cylinder axes in degrees (comma separated)")
	_ = cmd.MarkFlagRequired("power")
	_ = cmd.MarkFlagRequired("axis")
}

func newSumCmd() *cobra.Command {
	var (
		powers, axes []float64
		singleAngle  bool
	)

	cmd := &cobra.Command{
		Use:   "sum",
		Short: "resultant of superposed cylinders",
		Example: `  cylsum sum --power 10,5,7 --axis 30,60,120
  cylsum sum -c -1.5,-0.75 -a 10,100 --single-angle`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := dsm.NewSet(powers, axes)
			if err != nil {
				return err
			}

			fmt.Println(viz.RenderResultant(set, dsm.Sum(set)))

			if singleAngle {
				mag, angle := powervector.SingleAngle(set)
				fmt.Printf("\nsingle-angle sum (not valid for cylinders): %.6f at %.4f\n", mag, angle)
			}
			return nil
		},
	}
	addSetFlags(cmd, &powers, &axes)
	cmd.Flags().BoolVar(&singleAngle, "single-angle", false, "also show the undoubled vector sum for contrast")
	return cmd
}

func newSensitivityCmd() *cobra.Command {
	var (
		powers, axes []float64
		index        int
		delta        float64
	)

	cmd := &cobra.Command{
		Use:   "sensitivity",
		Short: "first-order change of the resultant when a component rotates",
		Example: `  cylsum sensitivity --power 10,5,7 --axis 30,60,120 --delta 0.5
  cylsum sensitivity -c -2,2 -a 0,0 --index 0 --delta 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := dsm.NewSet(powers, axes)
			if err != nil {
				return err
			}

			indices := []int{index}
			if index < 0 {
				indices = make([]int, len(set))
				for i := range set {
					indices[i] = i
				}
			}

			r := dsm.Sum(set)
			fmt.Printf("resultant: %s\n\n", r)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tPOWER\tAXIS\tDELTA_C\tACTUAL\tBOUND\tMETHOD")

			for _, i := range indices {
				est, err := dsm.EstimateRotation(set, i, delta)
				if err != nil {
					return err
				}

				rotated, err := set.RotateComponent(i, delta)
				if err != nil {
					return err
				}
				actual := dsm.Sum(rotated).Magnitude - r.Magnitude

				bound := "-"
				if b, err := dsm.SecondOrderBound(set, i, delta); err == nil {
					bound = fmt.Sprintf("%.2e", b)
					if math.IsInf(b, 1) {
						bound = "inf"
					}
				} else if !errors.Is(err, dsm.ErrDegenerateResultant) {
					return err
				}

				fmt.Fprintf(w, "%d\t%+.2f\t%.1f\t%+.6e\t%+.6e\t%s\t%s\n",
					i, set[i].Power, set[i].Axis, est.Delta, actual, bound, est.Method)
			}
			return w.Flush()
		},
	}
	addSetFlags(cmd, &powers, &axes)
	cmd.Flags().IntVarP(&index, "index", "i", -1, "component to rotate (-1 for every component)")
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0.1, "rotation in degrees")
	return cmd
}

func newCorollaryCmd() *cobra.Command {
	var power, phi float64

	cmd := &cobra.Command{
		Use:   "corollary",
		Short: "induced cylinder of an equal and opposite pair misaligned by phi",
		Example: `  cylsum corollary --power -2 --phi 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			approx := dsm.NearSphericalApproximation(power, phi)
			exact := dsm.Sum(dsm.Set{{Power: power, Axis: 0}, {Power: -power, Axis: phi}}).Magnitude

			fmt.Printf("approximation: %.6f\n", approx)
			fmt.Printf("exact:         %.6f\n", exact)
			fmt.Printf("error:         %.2e\n", math.Abs(approx-exact))
			if exact > 0 {
				fmt.Printf("relative:      %.2e\n", math.Abs(approx-exact)/exact)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&power, "power", "c", -1, "cylinder power in diopters")
	cmd.Flags().Float64Var(&phi, "phi", 1, "misalignment in degrees")
	return cmd
}

func applyTheme(name string) error {
	if !viz.SetTheme(name) {
		return fmt.Errorf("unknown theme: %s (available: %v)", name, viz.ThemeNames())
	}
	return nil
}
