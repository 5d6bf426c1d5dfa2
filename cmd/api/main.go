package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/boxpool/boxpool/internal/app"
	"github.com/boxpool/boxpool/internal/config"
	"github.com/boxpool/boxpool/internal/observability"
	"github.com/boxpool/boxpool/internal/platform/logging"
	"github.com/boxpool/boxpool/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, flushLogs, err := observability.InitBetterStackLogger(cfg, nil)
	if err != nil {
		logging.NewJSON(cfg.LogLevel).Error("init logger", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := flushLogs(flushCtx); err != nil {
			logger.Error("flush logs", "error", err)
		}
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownUptrace(shutdownCtx); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof server", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofServer, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Close(closeCtx); err != nil {
			logger.Error("close app", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg conc.WaitGroup
	defer wg.Wait()

	wg.Go(func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	})

	if cfg.ScorePollEnabled {
		wg.Go(func() {
			runScorePoller(ctx, cfg, application.RefreshService, logger)
		})
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}

	logger.Info("http server stopped")
}

// runScorePoller drives periodic score refreshes for every stored grid
// until the process shuts down.
func runScorePoller(ctx context.Context, cfg config.Config, refresh *usecase.RefreshService, logger *logging.Logger) {
	logger.Info("score poller starting",
		"interval", cfg.ScorePollInterval.String(),
		"max_workers", cfg.RefreshMaxWorkers,
	)

	ticker := time.NewTicker(cfg.ScorePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("score poller stopped")
			return
		case <-ticker.C:
			result, err := refresh.RefreshAll(ctx, usecase.RefreshAllInput{MaxWorkers: cfg.RefreshMaxWorkers})
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				logger.ErrorContext(ctx, "score poll failed", "error", err)
				continue
			}
			if result.GridCount == 0 {
				continue
			}
			logger.InfoContext(ctx, "score poll finished",
				"grid_count", result.GridCount,
				"updated", result.UpdatedCount,
				"skipped", result.SkippedCount,
				"failed", result.FailedCount,
				"workers", result.WorkerCount,
			)
		}
	}
}
