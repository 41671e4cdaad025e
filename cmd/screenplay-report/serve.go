package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/networkteam/screenplay/report"
)

func newServeCmd(a *app) *cobra.Command {
	var dir, addr string
	var truncateAfter int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recorded reports over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := report.NewStore(a.reportDir(dir))
			srv := &http.Server{
				Addr:              addr,
				Handler:           report.NewHandler(store, report.WithTruncateAfter(truncateAfter)),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Serving reports", slog.String("addr", addr), slog.String("dir", store.Dir()))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serving reports: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.logger.Info("Shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of recorded reports (default from report.dir)")
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().IntVar(&truncateAfter, "limit", 0, "show at most this many outcomes on the index, 0 for all")
	return cmd
}
