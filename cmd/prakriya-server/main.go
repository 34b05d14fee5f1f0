// Command prakriya-server exposes verb-form lookup and generation as a JSON
// REST API.
//
// Endpoints (all GET; in/out select the input and output scheme):
//
//	/api/forms?form=<verbform>[&field=<name>]
//	/api/generate?root=<root>[&lakara=&purusha=&vachana=&suffix=]
//	/api/tree?root=<root>
//	/api/info?root=<root>
//	/api/schemes
//	/api/fields
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/drdhaval2785/prakriya/internal/app"
	"github.com/drdhaval2785/prakriya/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		if app.ExitCode(err) == app.ExitScript {
			os.Exit(app.ExitScript)
		}
		os.Exit(app.ExitUsage)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sess, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("open dataset", "err", err)
		os.Exit(app.ExitCode(err))
	}
	defer sess.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newHandler(sess.Prakriya, cfg.Server.AllowedOrigins, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr, "data", cfg.Data.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(app.ExitFailure)
		}
	case <-ctx.Done():
		shutdownCtx, done := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "err", err)
		}
		logger.Info("server stopped")
	}
}
