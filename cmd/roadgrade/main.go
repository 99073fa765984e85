// Command roadgrade solves and grades road-network query streams.
//
//	roadgrade solve GRAPH QUERIES OUT
//	roadgrade verify GRAPH QUERIES ANSWERS [EXPECTED]
//	roadgrade grade [--metrics-out FILE] MANIFEST.yaml
//	roadgrade generate --nodes N --edges M --seed S OUT
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/roadgrade/config"
)

var (
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:           "roadgrade",
		Short:         "Solve and grade road-network query streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
				if err = cfg.Validate(); err != nil {
					return err
				}
			}
			logger = cfg.Logger(os.Stderr)
			slog.SetDefault(logger)

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a roadgrade YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(solveCmd, verifyCmd, gradeCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "roadgrade:", err)
		os.Exit(1)
	}
}
