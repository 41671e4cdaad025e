package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/networkteam/screenplay/config"
	"github.com/networkteam/screenplay/internal/logging"
)

// app holds the state shared by all commands, initialized before any command runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "screenplay-report",
		Short:        "Render or serve recorded browser test reports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log)
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
	}

	rootCmd.AddCommand(
		newRenderCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// reportDir returns the flag value if set, the configured report directory otherwise.
func (a *app) reportDir(dir string) string {
	if dir != "" {
		return dir
	}
	return a.cfg.Report.Dir
}
