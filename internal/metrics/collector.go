package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordFileExtraction records one extracted file and the chunk kinds it
// produced.
func RecordFileExtraction(language string, duration time.Duration, kinds map[string]int) {
	FilesProcessedTotal.WithLabelValues(language).Inc()
	ExtractionDuration.WithLabelValues(language).Observe(duration.Seconds())
	for kind, n := range kinds {
		ChunksExtractedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

// RecordFileSkipped records a file that produced no chunks.
func RecordFileSkipped(reason string) {
	FilesSkippedTotal.WithLabelValues(reason).Inc()
}

// RecordGeneration records a finished generation batch.
func RecordGeneration(duration time.Duration, rejected int, perDifficulty map[string]int) {
	GenerationDuration.Observe(duration.Seconds())
	ChunksRejectedTotal.Add(float64(rejected))
	for difficulty, n := range perDifficulty {
		ChallengesGeneratedTotal.WithLabelValues(difficulty).Add(float64(n))
	}
}

// RecordCacheAccess records a cache access.
func RecordCacheAccess(backend string, hit bool) {
	if hit {
		CacheHitsTotal.WithLabelValues(backend).Inc()
	} else {
		CacheMissesTotal.WithLabelValues(backend).Inc()
	}
}

// WriteTextfile writes the default registry in the Prometheus text format,
// suitable for the node exporter textfile collector.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// WriteTextfileFrom writes the metrics gathered by g to path.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create metrics directory %q; %w", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s; %w", path, err)
	}
	return nil
}
