package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rssingest/app"
	"rssingest/internal/backend"
	"rssingest/internal/control"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var every time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the control API and optionally ingest on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}

			listener, err := control.TryListen(cfg.ControlAddr)
			if err != nil {
				if errors.Is(err, control.ErrAlreadyRunning) {
					fmt.Fprintln(cmd.ErrOrStderr(), "Background process is already running")
				}
				return err
			}
			defer listener.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			p, err := backend.Open(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			if every > 0 {
				go schedule(ctx, p.Handler, every, logger)
			}

			logger.InfoContext(ctx, "control server listening", "addr", listener.Addr().String(), "every", every.String())
			if err := control.NewServer(p.Handler, logger).Serve(ctx, listener); err != nil {
				return fmt.Errorf("control server: %w", err)
			}
			logger.InfoContext(ctx, "graceful shutdown complete")
			return nil
		},
	}
	cmd.Flags().DurationVar(&every, "every", 0, "run an ingestion on this interval (e.g. 1h), 0 to only serve")
	return cmd
}

// schedule runs an ingestion every interval until ctx is done. A tick that
// arrives during a run is skipped.
func schedule(ctx context.Context, h *app.Handler, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.Busy() {
				logger.WarnContext(ctx, "skipping scheduled ingestion, previous run still active")
				continue
			}
			res := h.Handle(ctx, app.Event{})
			logger.InfoContext(ctx, "scheduled ingestion finished", "status", res.StatusCode)
		}
	}
}
