// Command landmask builds a land/sea mask from meridian samples, aggregates
// it to the configured grid, and publishes the result as SVG (and to Kafka
// when enabled). With HTTP_ADDR empty it runs once and exits; otherwise it
// keeps serving health, metrics, and the rendered map until signalled.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/landmask-etl/internal/adapter/fixture"
	"github.com/couchcryptid/landmask-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/landmask-etl/internal/adapter/kafka"
	"github.com/couchcryptid/landmask-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/landmask-etl/internal/adapter/svg"
	"github.com/couchcryptid/landmask-etl/internal/adapter/wikipedia"
	"github.com/couchcryptid/landmask-etl/internal/config"
	"github.com/couchcryptid/landmask-etl/internal/observability"
	"github.com/couchcryptid/landmask-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	source := newSampleSource(cfg, metrics, logger)

	var store pipeline.MaskStore
	if cfg.StorePath != "" {
		s, err := sqlite.Open(cfg.StorePath)
		if err != nil {
			logger.Error("failed to open mask store", "path", cfg.StorePath, "error", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
		logger.Info("base mask store enabled", "path", cfg.StorePath)
	}

	renderer := svg.NewPublisher(cfg.SVGOutput, svg.Style{
		CellSize: cfg.SVGCellSize,
		Margin:   cfg.SVGMargin,
		Shape:    cfg.SVGShape,
	}, logger)
	publishers := []pipeline.Publisher{renderer}

	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publishers = append(publishers, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	}

	p := pipeline.New(source, store, publishers, logger, metrics, pipeline.Settings{
		Resolution:   cfg.Resolution,
		Target:       cfg.Target,
		FetchRetries: cfg.FetchRetries,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.HTTPAddr == "" {
		_, err := p.Run(ctx)
		closeWriter(writer, logger)
		if err != nil {
			os.Exit(1)
		}
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, renderer, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Build and publish the map once; the server keeps serving it.
	go func() {
		if _, err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	closeWriter(writer, logger)

	logger.Info("shutdown complete")
}

// newSampleSource reads SAMPLES_FILE when set and otherwise scrapes the
// meridian pages through the disk and memory caches.
func newSampleSource(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) pipeline.SampleSource {
	if cfg.SamplesFile != "" {
		logger.Info("reading samples from fixture", "path", cfg.SamplesFile)
		return fixture.NewSource(cfg.SamplesFile)
	}

	var fetcher wikipedia.PageFetcher = wikipedia.NewClient(cfg.SourceBaseURL, cfg.FetchTimeout, cfg.FetchDelay, metrics, logger)
	if cfg.PageCacheDir != "" {
		fetcher = wikipedia.NewDirCache(fetcher, cfg.PageCacheDir, metrics, logger)
	}
	if cfg.PageCacheSize > 0 {
		fetcher = wikipedia.NewCachedFetcher(fetcher, cfg.PageCacheSize, metrics)
	}
	logger.Info("scraping meridian pages",
		"base_url", cfg.SourceBaseURL,
		"cache_dir", cfg.PageCacheDir,
		"cache_size", cfg.PageCacheSize,
	)
	return wikipedia.NewSource(fetcher, logger)
}

func closeWriter(w *kafkaadapter.Writer, logger *slog.Logger) {
	if w == nil {
		return
	}
	if err := w.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
}
