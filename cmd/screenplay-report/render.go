package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/networkteam/screenplay/report"
)

func newRenderCmd(a *app) *cobra.Command {
	var dir, out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the recorded reports as static HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := report.NewStore(a.reportDir(dir))
			outcomes, err := store.LoadAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading reports: %w", err)
			}

			if err := report.RenderSite(out, outcomes); err != nil {
				return err
			}

			a.logger.Info("Rendered reports",
				slog.Int("outcomes", len(outcomes)),
				slog.String("dir", store.Dir()),
				slog.String("out", out),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d test outcomes to %s\n", len(outcomes), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of recorded reports (default from report.dir)")
	cmd.Flags().StringVar(&out, "out", "screenplay-report", "output directory for HTML files")
	return cmd
}
