// Command gensamples scrapes the meridian pages once and writes the parsed
// samples as a JSON fixture, so later runs can set SAMPLES_FILE and work
// offline.
//
// Usage:
//
//	go run ./cmd/gensamples -out data/samples.json -cache-dir data/pages
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/adapter/fixture"
	"github.com/couchcryptid/landmask-etl/internal/adapter/wikipedia"
	"github.com/couchcryptid/landmask-etl/internal/domain"
	"github.com/couchcryptid/landmask-etl/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the samples fixture")
	baseURL := flag.String("base-url", "https://en.wikipedia.org/wiki", "base URL of the meridian pages")
	cacheDir := flag.String("cache-dir", "", "directory for downloaded pages (optional)")
	delay := flag.Duration("delay", 2*time.Second, "pause after each download")
	timeout := flag.Duration("timeout", 10*time.Second, "per-page request timeout")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewUnregisteredMetrics()

	var fetcher wikipedia.PageFetcher = wikipedia.NewClient(*baseURL, *timeout, *delay, metrics, logger)
	if *cacheDir != "" {
		fetcher = wikipedia.NewDirCache(fetcher, *cacheDir, metrics, logger)
	}

	samples, err := wikipedia.NewSource(fetcher, logger).FetchSamples(ctx)
	if err != nil {
		return err
	}

	land := 0
	for _, s := range samples {
		if s.Category == domain.Land {
			land++
		}
	}

	if err := fixture.Write(*out, fixture.File{
		Source:      *baseURL,
		GeneratedAt: time.Now().UTC(),
		Samples:     samples,
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote %d samples (%d land, %d sea) to %s\n", len(samples), land, len(samples)-land, *out)
	return nil
}
