// entry point of the application
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"melodygram/internal/bot"
	"melodygram/internal/catalog"
	"melodygram/internal/config"
	"melodygram/internal/depmanager"
	"melodygram/internal/downloader"
	"melodygram/internal/observability"
	"melodygram/internal/service"
	"melodygram/internal/workspace"
	httpserver "melodygram/pkg/http/server"
	"melodygram/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		slog.Error("config new", slog.Any("error", err))
		stop()
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel)

	metrics := observability.New()

	depMgr := depmanager.New(log, cfg)

	log.InfoContext(ctx, "checking if yt-dlp and ffmpeg are installed. it may take some time...")

	if err := depMgr.Setup(ctx); err != nil {
		log.ErrorContext(ctx, "dependency setup", slog.Any("error", err))
		stop()
		os.Exit(1)
	}

	ws, err := workspace.New(log, metrics, cfg.Dir.WorkParent)
	if err != nil {
		log.ErrorContext(ctx, "workspace new", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
	defer ws.CleanupAll()

	backend := downloader.NewYTdlp(log, cfg, depMgr.FFmpegDir())
	executor := downloader.NewExecutor(log, cfg, backend, metrics)
	provider := catalog.New(log, cfg, metrics)
	svc := service.New(log, cfg, executor, ws, metrics)

	tgBot, err := bot.New(log, cfg, provider, svc, metrics)
	if err != nil {
		log.ErrorContext(ctx, "bot new", slog.Any("error", err))
		stop()
		os.Exit(1)
	}

	var metricsSrv *httpserver.Server

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		metricsSrv = httpserver.New(mux, httpserver.Options{
			Addr:            cfg.Metrics.Addr,
			ShutdownTimeout: cfg.Metrics.ShutdownTimeout,
		})

		log.InfoContext(ctx, "metrics listener started", slog.String("addr", cfg.Metrics.Addr))
	}

	log.InfoContext(ctx, "melodygram started")

	// Blocks until shutdown; drains in-flight downloads before returning.
	tgBot.Run(ctx)

	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(); err != nil {
			log.Error("metrics server shutdown", slog.Any("error", err))
		}
	}

	log.Info("melodygram stopped")
}
