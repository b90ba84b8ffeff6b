package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/domain"
	"github.com/couchcryptid/landmask-etl/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
)

// SampleSource provides the raw land/sea samples.
type SampleSource interface {
	FetchSamples(ctx context.Context) ([]domain.Sample, error)
}

// MaskStore persists filled base masks keyed by resolution.
type MaskStore interface {
	LoadMask(ctx context.Context, resolution int) (domain.Mask, bool, error)
	SaveMask(ctx context.Context, resolution int, mask domain.Mask) error
}

// Publisher hands a finished land map to a downstream consumer.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, lm domain.LandMap) error
}

// Settings configures the grid produced by a run.
type Settings struct {
	Resolution   int
	Target       domain.Shape
	FetchRetries int
}

// Pipeline builds the base mask from samples (or the store) and publishes
// its aggregation.
type Pipeline struct {
	source     SampleSource
	store      MaskStore
	publishers []Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
	settings   Settings
	ready      atomic.Bool
}

// New creates a Pipeline. store may be nil to always rebuild from samples.
func New(source SampleSource, store MaskStore, publishers []Publisher, logger *slog.Logger, metrics *observability.Metrics, settings Settings) *Pipeline {
	if settings.FetchRetries <= 0 {
		settings.FetchRetries = 1
	}
	return &Pipeline{
		source:     source,
		store:      store,
		publishers: publishers,
		logger:     logger,
		metrics:    metrics,
		settings:   settings,
	}
}

// CheckReadiness returns nil once a run has published successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published a land map yet")
	}
	return nil
}

// Run performs one complete build and publishes the result.
// A failed run can simply be repeated; nothing partial is persisted.
func (p *Pipeline) Run(ctx context.Context) (domain.LandMap, error) {
	p.logger.Info("pipeline started",
		"resolution", p.settings.Resolution,
		"target", p.settings.Target.String(),
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	start := clock.Now()
	lm, err := p.run(ctx)
	if err != nil {
		p.metrics.PipelineRuns.WithLabelValues("error").Inc()
		p.logger.Error("pipeline run failed", "error", err)
		return domain.LandMap{}, err
	}

	p.metrics.PipelineRuns.WithLabelValues("success").Inc()
	p.ready.Store(true)
	p.logger.Info("pipeline finished",
		"shape", lm.Mask.Shape().String(),
		"land_cells", lm.Mask.LandCount(),
		"from_cache", lm.FromCache,
		"duration", clock.Since(start),
	)
	return lm, nil
}

func (p *Pipeline) run(ctx context.Context) (domain.LandMap, error) {
	base, samples, fromCache, err := p.baseMask(ctx)
	if err != nil {
		return domain.LandMap{}, err
	}

	mask := base
	if p.settings.Target != base.Shape() {
		start := clock.Now()
		mask, err = domain.Aggregate(base, p.settings.Target)
		if err != nil {
			return domain.LandMap{}, fmt.Errorf("aggregate: %w", err)
		}
		p.observeStage("aggregate", start)
	}

	lm := domain.LandMap{
		Resolution:  p.settings.Resolution,
		Base:        base.Shape(),
		Mask:        mask,
		Samples:     samples,
		FromCache:   fromCache,
		GeneratedAt: clock.Now().UTC(),
	}

	start := clock.Now()
	if err := p.publish(ctx, lm); err != nil {
		return domain.LandMap{}, err
	}
	p.observeStage("publish", start)
	return lm, nil
}

// baseMask returns the filled base mask, from the store when possible.
func (p *Pipeline) baseMask(ctx context.Context) (domain.Mask, int, bool, error) {
	want := domain.BaseShape(p.settings.Resolution)

	if p.store != nil {
		mask, ok, err := p.store.LoadMask(ctx, p.settings.Resolution)
		switch {
		case err != nil:
			p.logger.Warn("base mask load failed, rebuilding", "error", err)
		case ok && mask.Shape() != want:
			p.logger.Warn("cached base mask has wrong shape, rebuilding",
				"shape", mask.Shape().String(), "want", want.String())
		case ok:
			p.metrics.BaseCache.WithLabelValues("hit").Inc()
			return mask, 0, true, nil
		}
		p.metrics.BaseCache.WithLabelValues("miss").Inc()
	}

	start := clock.Now()
	samples, err := p.fetchSamples(ctx)
	if err != nil {
		return domain.Mask{}, 0, false, err
	}
	p.observeStage("fetch", start)
	p.metrics.SamplesFetched.Add(float64(len(samples)))

	start = clock.Now()
	grid := domain.ProjectAll(domain.NewBaseGrid(p.settings.Resolution), samples)
	mask, report := domain.Fill(grid)
	p.observeStage("fill", start)

	p.metrics.CellsFilled.WithLabelValues("pole").Add(float64(report.Pole))
	p.metrics.CellsFilled.WithLabelValues("latitude").Add(float64(report.Latitude))
	p.metrics.CellsFilled.WithLabelValues("longitude").Add(float64(report.Longitude))
	p.logger.Info("base grid filled",
		"samples", len(samples),
		"filled_cells", report.Total(),
		"pole_cells", report.Pole,
		"latitude_cells", report.Latitude,
		"longitude_cells", report.Longitude,
	)

	if p.store != nil {
		if err := p.store.SaveMask(ctx, p.settings.Resolution, mask); err != nil {
			p.logger.Warn("base mask save failed", "error", err)
		}
	}
	return mask, len(samples), false, nil
}

// fetchSamples retries the source with exponential backoff: start at 200ms,
// double each retry, cap at 5s.
func (p *Pipeline) fetchSamples(ctx context.Context) ([]domain.Sample, error) {
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	var lastErr error
	for attempt := 1; attempt <= p.settings.FetchRetries; attempt++ {
		samples, err := p.source.FetchSamples(ctx)
		if err == nil {
			return samples, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.logger.Warn("fetch samples failed", "error", err, "attempt", attempt)
		if attempt == p.settings.FetchRetries || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return nil, fmt.Errorf("fetch samples: %w", lastErr)
}

// publish delivers lm to every publisher, even after one of them fails.
func (p *Pipeline) publish(ctx context.Context, lm domain.LandMap) error {
	var errs []error
	for _, pub := range p.publishers {
		if err := pub.Publish(ctx, lm); err != nil {
			p.metrics.PublishErrors.WithLabelValues(pub.Name()).Inc()
			p.logger.Error("publish failed", "sink", pub.Name(), "error", err)
			errs = append(errs, fmt.Errorf("publish to %s: %w", pub.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	p.metrics.StageDuration.WithLabelValues(stage).Observe(clock.Since(start).Seconds())
}
