package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fipe-dev/fipe/internal/api"
	"github.com/fipe-dev/fipe/internal/logger"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(repoDir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the import and ledger API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(*repoDir)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, ws, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, ws *workspace, addr string) error {
	srv := &api.Server{
		RepoRoot: ws.Root,
		Registry: ws.Registry,
		Accounts: ws.Accounts,
		Ledger:   ws.Ledger,
		Quick:    ws.Quick,
	}
	if ws.Git != nil {
		srv.Git = ws.Git
	}
	app := srv.App()

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("listening", "addr", addr, "repo", ws.Root)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	logger.L.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
