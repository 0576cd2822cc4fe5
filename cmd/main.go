package main

import (
	"articlesummarizer/internal/config"
	"articlesummarizer/internal/extractor"
	"articlesummarizer/internal/server"
	"articlesummarizer/internal/service"
	"articlesummarizer/internal/summarizer"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 10 * time.Second

func main() {
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	sum := initSummarizer(ctx, cfg, log)

	ext := extractor.New(extractor.Config{
		Timeout:      cfg.FetchTimeout,
		MaxBodyBytes: cfg.FetchMaxBytes,
	}, log)

	svc := service.New(ext, sum, log)

	srv := server.New(server.Config{
		Addr: cfg.Addr,
		Mode: cfg.GinMode,
	}, svc, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.Addr,
		"modelLoaded", svc.ModelLoaded())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-errCh:
		if err != nil {
			log.ErrorContext(ctx, "Server failed",
				"error", err,
				"addr", cfg.Addr)
		}
	}
	cancel()

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()

	if err = srv.Stop(stopCtx); err != nil {
		log.ErrorContext(stopCtx, "Failed to stop server",
			"error", err)

		return
	}
	log.InfoContext(stopCtx, "Server is stopped",
		"uptimeSeconds", time.Since(start).Seconds())
}

// initSummarizer returns nil when the model cannot be used, which puts the
// service into fallback-only mode.
func initSummarizer(ctx context.Context, cfg config.Config, log *slog.Logger) summarizer.Summarizer {
	s, err := summarizer.New(ctx, summarizer.Config{
		Provider: cfg.ModelProvider,
		Model:    cfg.ModelName,
		BaseURL:  cfg.ModelBaseURL,
		APIKey:   cfg.ModelAPIKey(),
		Timeout:  cfg.ModelTimeout,
		Warmup:   cfg.ModelWarmup,
	}, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize summarizer so fallback will be used",
			"error", err,
			"provider", cfg.ModelProvider,
			"model", cfg.ModelName)

		return nil
	}

	log.InfoContext(ctx, "Summarizer is initialized",
		"provider", cfg.ModelProvider,
		"model", cfg.ModelName)

	return s
}
