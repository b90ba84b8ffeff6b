package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the landmask pipeline.
type Metrics struct {
	SamplesFetched  prometheus.Counter
	CellsFilled     *prometheus.CounterVec   // labels: pass={pole,latitude,longitude}
	BaseCache       *prometheus.CounterVec   // labels: result={hit,miss}
	PipelineRuns    *prometheus.CounterVec   // labels: outcome={success,error}
	StageDuration   *prometheus.HistogramVec // labels: stage={fetch,fill,aggregate,publish}
	PublishErrors   *prometheus.CounterVec   // labels: sink
	PipelineRunning prometheus.Gauge

	// Sample source metrics.
	PageFetches *prometheus.CounterVec // labels: outcome={success,error}
	PageCache   *prometheus.CounterVec // labels: layer={memory,disk}, result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.SamplesFetched,
		m.CellsFilled,
		m.BaseCache,
		m.PipelineRuns,
		m.StageDuration,
		m.PublishErrors,
		m.PipelineRunning,
		m.PageFetches,
		m.PageCache,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics that are not registered with any
// registry, for one-shot tools that never expose /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SamplesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "samples_fetched_total",
			Help:      "Total land/sea samples received from the sample source.",
		}),
		CellsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "cells_filled_total",
			Help:      "Base grid cells resolved from unknown, by fill pass.",
		}, []string{"pass"}),
		BaseCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "base_cache_total",
			Help:      "Persisted base mask lookups by result.",
		}, []string{"result"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "pipeline_runs_total",
			Help:      "Completed pipeline runs by outcome.",
		}, []string{"outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "landmask",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120, 600},
		}, []string{"stage"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "publish_errors_total",
			Help:      "Failed publications of the aggregated mask, by sink.",
		}, []string{"sink"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "landmask",
			Name:      "pipeline_running",
			Help:      "1 while a pipeline run is in progress, 0 otherwise.",
		}),
		PageFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "page_fetch_total",
			Help:      "Source page downloads by outcome.",
		}, []string{"outcome"}),
		PageCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "landmask",
			Name:      "page_cache_total",
			Help:      "Source page cache lookups by layer and result.",
		}, []string{"layer", "result"}),
	}
}
