package challenge

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/metrics"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
)

// Generator expands chunks into challenges on a bounded worker pool.
type Generator struct {
	logger  *slog.Logger
	workers int
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the generator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithWorkers bounds the number of chunks processed concurrently.
// Values below one select runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:  slog.Default(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.workers < 1 {
		g.workers = runtime.NumCPU()
	}
	return g
}

// Generate returns every challenge derivable from chunks. Chunks with blank
// content or an invalid line span are dropped. The result depends only on
// the input: chunks are handled longest first and each chunk's challenges
// follow tier order.
func (g *Generator) Generate(chunks []chunkers.Chunk, reporter progress.Reporter) []Challenge {
	challenges, _ := g.GenerateContext(context.Background(), chunks, reporter)
	return challenges
}

// GenerateContext is Generate with cancellation. On cancellation it returns
// the context error and no challenges.
func (g *Generator) GenerateContext(ctx context.Context, chunks []chunkers.Chunk, reporter progress.Reporter) ([]Challenge, error) {
	reporter = progress.OrNop(reporter)
	reporter.SetStep(progress.StepGenerating)
	start := time.Now()

	valid := validChunks(chunks)
	rejected := len(chunks) - len(valid)
	if len(valid) == 0 {
		metrics.RecordGeneration(time.Since(start), rejected, nil)
		return nil, nil
	}

	tracker := progress.NewTracker(reporter, progress.StepGenerating, len(valid))
	results := make([][]Challenge, len(valid))

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i := range valid {
		eg.Go(func() error {
			if err := ectx.Err(); err != nil {
				return err
			}
			results[i] = challengesFor(valid[i])
			tracker.Done(valid[i].FilePath)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	tracker.Finish()

	var out []Challenge
	perDifficulty := make(map[string]int)
	for _, cs := range results {
		for _, c := range cs {
			perDifficulty[c.Difficulty.String()]++
		}
		out = append(out, cs...)
	}

	metrics.RecordGeneration(time.Since(start), rejected, perDifficulty)
	g.logger.Info("challenge generation complete",
		"chunks", len(valid),
		"rejected", rejected,
		"challenges", len(out),
		"duration", time.Since(start))

	return out, nil
}

// challengesFor expands one chunk across its applicable difficulties.
func challengesFor(chunk chunkers.Chunk) []Challenge {
	n := ChunkCodeCharacters(chunk)
	var out []Challenge
	for _, d := range ApplicableDifficulties(chunk.Kind, n) {
		if c, ok := challengeFor(chunk, d, n); ok {
			out = append(out, c)
		}
	}
	return out
}

func challengeFor(chunk chunkers.Chunk, d Difficulty, codeChars int) (Challenge, bool) {
	_, maxChars := d.CharLimits()
	if d == Wild || d == Zen || codeChars <= maxChars {
		return FromChunk(chunk, d), true
	}
	t, ok := Split(chunk, d)
	if !ok {
		return Challenge{}, false
	}
	return FromTruncation(chunk, d, t), true
}

// validChunks drops unusable chunks and orders the rest by descending
// content length, keeping input order among equal lengths.
func validChunks(chunks []chunkers.Chunk) []chunkers.Chunk {
	valid := make([]chunkers.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c.Content) == "" || !c.HasValidLines() {
			continue
		}
		valid = append(valid, c)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return len(valid[i].Content) > len(valid[j].Content)
	})
	return valid
}
