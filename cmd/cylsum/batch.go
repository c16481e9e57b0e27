package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/san-kum/cylsum/internal/automation"
	"github.com/san-kum/cylsum/internal/config"
	"github.com/san-kum/cylsum/internal/logging"
	"github.com/san-kum/cylsum/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBatchCmd() *cobra.Command {
	var save, strict bool

	cmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run every validation step of a scenario file",
		Example: `  cylsum batch floor-study.yaml --save
  cylsum batch overrides   # list keys a step may override`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "overrides" {
				for _, k := range automation.Overrides() {
					fmt.Println(k)
				}
				return nil
			}

			level, format := logLevel, logFormat
			if level == "" {
				level = config.DefaultLogLevel
			}
			if format == "" {
				format = config.DefaultLogFormat
			}
			log, err := logging.New(level, format)
			if err != nil {
				return err
			}
			defer log.Sync()

			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			results, err := automation.RunScenario(cmd.Context(), scenario, log)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tRUNS\tFINGERPRINT\tSUM\tSENS\tCOROL\tSTATUS")
			for _, r := range results {
				worst := r.Result.Worst
				status := "FAIL"
				if r.Passed() {
					status = "PASS"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%.1e\t%.1e\t%.1e\t%s\n",
					r.Step, len(r.Result.Reports), r.Fingerprint,
					worst.Summation.MaxAbs, worst.Sensitivity.MaxAbs, worst.Corollary.MaxAbs, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if save {
				st := storage.New(dataDir)
				if err := st.Init(); err != nil {
					return err
				}
				for _, r := range results {
					for _, rep := range r.Result.Reports {
						info := storage.RunInfo{Preset: r.Step, Fingerprint: r.Fingerprint, Config: r.Config.Validator()}
						info.Config.Seed = rep.Seed
						runID, err := st.Save(info, rep)
						if err != nil {
							return err
						}
						log.Info("report saved", zap.String("step", r.Step), zap.String("run_id", runID))
					}
				}
			}

			passed, failed := automation.Summary(results)
			fmt.Printf("\n%s: %d passed, %d failed\n", scenario.Name, passed, failed)
			if strict && failed > 0 {
				return fmt.Errorf("%d scenario steps exceeded tolerance", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save every report to the data directory")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when a step exceeds its tolerance")
	return cmd
}
