// Package metrics provides Prometheus metrics for chunk extraction and
// challenge generation runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "gittype"
)

// Extraction metrics track per-file chunk extraction.
var (
	// FilesProcessedTotal is the number of files extracted by language.
	FilesProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_processed_total",
		Help:      "Total number of source files extracted",
	}, []string{"language"})

	// FilesSkippedTotal is the number of files skipped by reason.
	FilesSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_skipped_total",
		Help:      "Total number of source files skipped",
	}, []string{"reason"})

	// ChunksExtractedTotal is the number of chunks emitted by kind.
	ChunksExtractedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunks_extracted_total",
		Help:      "Total number of chunks extracted",
	}, []string{"kind"})

	// ExtractionDuration is a histogram of per-file extraction time.
	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "extraction_duration_seconds",
		Help:      "Duration of single-file chunk extraction in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"language"})
)

// Generation metrics track challenge generation.
var (
	// ChallengesGeneratedTotal is the number of challenges by difficulty.
	ChallengesGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challenges_generated_total",
		Help:      "Total number of challenges generated",
	}, []string{"difficulty"})

	// ChunksRejectedTotal is the number of chunks dropped before generation.
	ChunksRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chunks_rejected_total",
		Help:      "Total number of chunks rejected by validation",
	})

	// GenerationDuration is a histogram of whole-batch generation time.
	GenerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "generation_duration_seconds",
		Help:      "Duration of challenge generation batches in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
	})
)

// Cache metrics track challenge cache operations.
var (
	// CacheHitsTotal is the total number of cache hits by backend.
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total number of challenge cache hits",
	}, []string{"backend"})

	// CacheMissesTotal is the total number of cache misses by backend.
	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total number of challenge cache misses",
	}, []string{"backend"})
)
