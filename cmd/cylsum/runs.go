package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/cylsum/internal/config"
	"github.com/san-kum/cylsum/internal/storage"
	"github.com/san-kum/cylsum/internal/viz"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved validation runs",
		RunE:  listRuns,
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "print the metadata of a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
}

func newPlotCmd() *cobra.Command {
	var bins int
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot error histograms of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return plotRun(args[0], bins)
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 40, "histogram bins")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the check summary of a saved run as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
}

func newPresetsCmd() *cobra.Command {
	var write string
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or write one as a yaml config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listPresets()
			}
			cfg := config.GetPreset(args[0])
			if cfg == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
			}
			if write == "" {
				fmt.Printf("%s  fingerprint=%s\n", args[0], cfg.Fingerprint())
				return nil
			}
			if err := config.Save(write, cfg); err != nil {
				return err
			}
			fmt.Printf("preset %s written to %s\n", args[0], write)
			return nil
		},
	}
	cmd.Flags().StringVarP(&write, "write", "o", "", "write the preset to a yaml file")
	return cmd
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSEED\tPRESET\tSUM\tSENS\tCOROL\tSTATUS")

	for _, run := range runs {
		status := "FAIL"
		if run.Passed {
			status = "PASS"
		}
		preset := run.Preset
		if preset == "" {
			preset = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.1e\t%.1e\t%.1e\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			preset,
			run.Report.Summation.MaxAbs,
			run.Report.Sensitivity.MaxAbs,
			run.Report.Corollary.MaxAbs,
			status,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(runID string, bins int) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("run %s has no samples (save with --keep-samples)", runID)
	}

	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Println(viz.Histogram(samples[name], bins, fmt.Sprintf("log10 |%s error|, %d trials", name, len(samples[name]))))
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"check", "trials", "skipped", "tolerance", "max_abs", "mean_abs", "rms", "p95", "exceedance", "max_relative", "bound_violations", "passed"}
	if err := w.Write(header); err != nil {
		return err
	}

	format := func(v float64) string {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}
	for _, c := range meta.Report.Checks() {
		row := []string{
			c.Name,
			strconv.Itoa(c.Trials),
			strconv.Itoa(c.Skipped),
			format(c.Tolerance),
			format(c.MaxAbs),
			format(c.MeanAbs),
			format(c.RMS),
			format(c.P95),
			format(c.Exceedance),
			format(c.MaxRelative),
			strconv.Itoa(c.BoundViolations),
			strconv.FormatBool(c.Passed()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func listPresets() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSYSTEMS\tTRIALS\tFLOOR\tDELTA\tRUNS\tFINGERPRINT")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%d\t%s\n",
			name,
			p.Systems.Count,
			p.Corollary.Trials,
			p.Systems.SensitivityFloor,
			p.Systems.PerturbationDeg,
			p.Runs,
			p.Fingerprint(),
		)
	}
	return w.Flush()
}
