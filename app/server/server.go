package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mytheresa/shop-admin/app/logging"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 20 * time.Second

// Run serves srv until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests for up to 20 seconds.
func Run(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	errGrp, ctx := errgroup.WithContext(ctx)

	errGrp.Go(func() error {
		logging.Info(ctx, "server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	errGrp.Go(func() error {
		<-ctx.Done()
		logging.Info(context.Background(), "server is shutting down, waiting for pending requests")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server failed to shut down gracefully: %w", err)
		}
		return nil
	})

	if err := errGrp.Wait(); err != nil {
		return err
	}
	logging.Info(context.Background(), "server stopped")
	return nil
}
