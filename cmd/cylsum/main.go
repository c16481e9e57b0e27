package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logFormat string
	theme     string
)

// main registers the cylsum commands and executes the root command.
// It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "cylsum",
		Short:         "double-angle summation of cylindrical corrections",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return applyTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cylsum", "data directory for saved validation runs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "neon", "color theme (neon, ocean, plain)")

	rootCmd.AddCommand(
		newSumCmd(),
		newSensitivityCmd(),
		newCorollaryCmd(),
		newValidateCmd(),
		newSweepCmd(),
		newBatchCmd(),
		newListCmd(),
		newShowCmd(),
		newPlotCmd(),
		newExportCSVCmd(),
		newPresetsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
