package wikipedia

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/landmask-etl/internal/domain"
)

// Source implements pipeline.SampleSource by reading every meridian page.
type Source struct {
	fetcher PageFetcher
	pages   []string
	logger  *slog.Logger
}

// NewSource reads the pages listed by PageNames through fetcher.
func NewSource(fetcher PageFetcher, logger *slog.Logger) *Source {
	return NewSourceForPages(fetcher, PageNames(), logger)
}

// NewSourceForPages reads an explicit page list.
func NewSourceForPages(fetcher PageFetcher, pages []string, logger *slog.Logger) *Source {
	return &Source{fetcher: fetcher, pages: pages, logger: logger}
}

// FetchSamples collects the samples of every page, in page order.
func (s *Source) FetchSamples(ctx context.Context) ([]domain.Sample, error) {
	var samples []domain.Sample
	for i, page := range s.pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := s.fetcher.Fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseSamples(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page, err)
		}
		samples = append(samples, parsed...)
		s.logger.Debug("page parsed", "page", page, "samples", len(parsed), "progress", fmt.Sprintf("%d/%d", i+1, len(s.pages)))
	}
	s.logger.Info("samples fetched", "pages", len(s.pages), "samples", len(samples))
	return samples, nil
}
