package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/cylsum/internal/config"
	"github.com/san-kum/cylsum/internal/logging"
	"github.com/san-kum/cylsum/internal/storage"
	"github.com/san-kum/cylsum/internal/validate"
	"github.com/san-kum/cylsum/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type validateFlags struct {
	configFile string
	preset     string
	seed       int64
	runs       int
	systems    int
	trials     int
	floor      float64
	delta      float64
	keep       bool
	live       bool
	save       bool
	plot       bool
	strict     bool
}

func newValidateCmd() *cobra.Command {
	f := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Monte Carlo validation against the power-vector reference",
		Example: `  cylsum validate
  cylsum validate --preset thorough --live
  cylsum validate --config validation.yaml --runs 4 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&f.seed, "seed", validate.DefaultSeed, "random seed (first seed for --runs > 1)")
	cmd.Flags().IntVar(&f.runs, "runs", config.DefaultRuns, "number of seeds to run")
	cmd.Flags().IntVar(&f.systems, "systems", validate.DefaultSystems, "random cylinder sets per run")
	cmd.Flags().IntVar(&f.trials, "trials", validate.DefaultCorollaryTrials, "corollary trials per run")
	cmd.Flags().Float64Var(&f.floor, "floor", validate.DefaultSensitivityFloor, "minimum resultant for the sensitivity check")
	cmd.Flags().Float64Var(&f.delta, "delta", validate.DefaultPerturbationDeg, "sensitivity perturbation in degrees")
	cmd.Flags().BoolVar(&f.keep, "keep-samples", false, "keep per-trial errors (implied by --save and --plot)")
	cmd.Flags().BoolVar(&f.live, "live", false, "show live progress")
	cmd.Flags().BoolVar(&f.save, "save", false, "save reports to the data directory")
	cmd.Flags().BoolVar(&f.plot, "plot", false, "plot error histograms")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "exit with an error when a check exceeds its tolerance")

	return cmd
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
// that order.
func resolveConfig(cmd *cobra.Command, f *validateFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if f.preset != "" {
		cfg = config.GetPreset(f.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets())
		}
	}

	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("runs") {
		cfg.Runs = f.runs
	}
	if flags.Changed("systems") {
		cfg.Systems.Count = f.systems
	}
	if flags.Changed("trials") {
		cfg.Corollary.Trials = f.trials
	}
	if flags.Changed("floor") {
		cfg.Systems.SensitivityFloor = f.floor
	}
	if flags.Changed("delta") {
		cfg.Systems.PerturbationDeg = f.delta
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runValidate(cmd *cobra.Command, f *validateFlags) error {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	vcfg := cfg.Validator()
	vcfg.KeepSamples = f.keep || f.save || f.plot

	log.Debug("starting validation",
		zap.Int64("seed", vcfg.Seed),
		zap.Int("runs", cfg.Runs),
		zap.String("fingerprint", cfg.Fingerprint()),
	)

	reports, worst, err := execute(cmd.Context(), vcfg, cfg.Runs, f.live, log)
	if err != nil {
		return err
	}

	for _, r := range reports {
		fmt.Print(r.String())
	}
	fmt.Println()
	if len(reports) == 1 {
		fmt.Println(viz.RenderReport(worst))
	} else {
		fmt.Println(viz.RenderEnsemble(&validate.EnsembleResult{Reports: reports, Worst: *worst}))
	}

	if f.plot {
		for _, c := range reports[0].Checks() {
			if len(c.Samples) == 0 {
				continue
			}
			fmt.Println(viz.Histogram(c.Samples, 40, fmt.Sprintf("log10 |%s error|, seed %d", c.Name, reports[0].Seed)))
			fmt.Println()
		}
	}

	if f.save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		info := storage.RunInfo{Preset: f.preset, Fingerprint: cfg.Fingerprint()}
		for _, r := range reports {
			info.Config = vcfg
			info.Config.Seed = r.Seed
			runID, err := st.Save(info, r)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
			log.Info("report saved", zap.String("run_id", runID), zap.Int64("seed", r.Seed))
		}
	}

	if f.strict && !worst.Passed() {
		return fmt.Errorf("validation exceeded tolerance")
	}
	return nil
}

func execute(ctx context.Context, cfg validate.Config, runs int, live bool, log *zap.Logger) ([]*validate.Report, *validate.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if live {
		p := tea.NewProgram(viz.NewProgressModel(cfg, runs, validate.WithLogger(log)))
		final, err := p.Run()
		if err != nil {
			return nil, nil, err
		}
		res, err := final.(viz.ProgressModel).Result()
		if err != nil {
			return nil, nil, err
		}
		return res.Reports, &res.Worst, nil
	}

	if runs == 1 {
		r, err := validate.New(cfg, validate.WithLogger(log)).Run(ctx)
		if err != nil {
			return nil, nil, err
		}
		return []*validate.Report{r}, r, nil
	}

	res, err := validate.NewEnsemble(cfg, runs, validate.WithLogger(log)).Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return res.Reports, &res.Worst, nil
}
