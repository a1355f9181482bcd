package cmdutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/unhappychoice/gittype-sub005/internal/cache"
	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code/languages"
	"github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/metrics"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
	"github.com/unhappychoice/gittype-sub005/internal/walker"
)

// Pipeline wires discovery, extraction and generation from one config.
type Pipeline struct {
	Config    *config.Config
	Registry  *code.Registry
	Walker    *walker.Walker
	Parser    *code.SourceParser
	Generator *challenge.Generator

	logger *slog.Logger
}

// RunStats summarizes one pipeline run for the command summaries.
type RunStats struct {
	Root       string
	Files      int
	Skipped    int
	Chunks     int
	Challenges int
	CacheHit   bool
	Elapsed    time.Duration
}

// NewPipeline builds a pipeline over the default language registry.
func NewPipeline(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := languages.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build language registry; %w", err)
	}

	for _, name := range cfg.Extraction.Languages {
		if _, ok := reg.Get(name); !ok {
			return nil, fmt.Errorf("%w: %q", code.ErrUnsupportedLanguage, name)
		}
	}

	return &Pipeline{
		Config:   cfg,
		Registry: reg,
		Walker: walker.New(reg,
			walker.WithLogger(logger),
			walker.WithSkipHidden(cfg.Extraction.SkipHidden)),
		Parser: code.NewSourceParser(
			code.WithLogger(logger),
			code.WithWorkers(cfg.Workers)),
		Generator: challenge.NewGenerator(
			challenge.WithLogger(logger),
			challenge.WithWorkers(cfg.Workers)),
		logger: logger,
	}, nil
}

// Extract discovers the files under root and extracts their chunks.
func (p *Pipeline) Extract(ctx context.Context, root string, reporter progress.Reporter) ([]chunkers.Chunk, *RunStats, error) {
	start := time.Now()
	opts := p.Config.Extraction.Options(root)

	files, err := p.Walker.Walk(ctx, root, opts, reporter)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := p.Parser.ExtractChunks(ctx, files, opts, reporter)
	if err != nil {
		return nil, nil, err
	}

	ws := p.Walker.Stats()
	return chunks, &RunStats{
		Root:    root,
		Files:   len(files),
		Skipped: int(ws.FilesSkipped + ws.FilesUnknown),
		Chunks:  len(chunks),
		Elapsed: time.Since(start),
	}, nil
}

// Generate turns chunks into challenges, going through the configured
// cache unless useCache is false. A failed cache write is logged and the
// fresh challenges are still returned.
func (p *Pipeline) Generate(ctx context.Context, chunks []chunkers.Chunk, useCache bool, reporter progress.Reporter) ([]challenge.Challenge, bool, error) {
	var store cache.Store
	if useCache {
		var err error
		store, err = cache.Open(ctx, p.Config.Cache.StoreConfig())
		if err != nil {
			p.logger.Warn("challenge cache unavailable; generating without it", "error", err)
			store = nil
		}
	}
	if store != nil {
		defer store.Close()
	}

	generate := func() ([]challenge.Challenge, error) {
		return p.Generator.GenerateContext(ctx, chunks, reporter)
	}

	challenges, hit, err := cache.GetOrGenerate(ctx, store, chunks, generate)
	if err != nil && challenges == nil {
		return nil, false, err
	}
	if err != nil {
		p.logger.Warn("failed to cache challenges", "error", err)
	}
	if hit {
		p.logger.Info("loaded challenges from cache", "backend", store.Backend(), "challenges", len(challenges))
	}
	return challenges, hit, nil
}

// WriteMetrics writes the metrics textfile when one is configured.
func (p *Pipeline) WriteMetrics() {
	if p.Config.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(p.Config.MetricsFile); err != nil {
		p.logger.Warn("failed to write metrics file", "path", p.Config.MetricsFile, "error", err)
	}
}

// NewReporter returns a progress bar drawing to out when enabled, or a
// reporter that logs at debug level. The returned func finishes the bar.
func NewReporter(out io.Writer, enabled bool, logger *slog.Logger) (progress.Reporter, func()) {
	if !enabled {
		return progress.NewLogReporter(logger), func() {}
	}
	bar := progress.NewBarReporter(out)
	return bar, bar.Close
}
