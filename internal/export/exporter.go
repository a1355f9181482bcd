// Package export renders chunk and challenge sets through registered
// formatters after applying path, language and difficulty filters.
package export

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/export/formatters"
)

// ExportStats contains statistics about an export operation.
type ExportStats struct {
	ChunkCount     int           `json:"chunk_count"`
	ChallengeCount int           `json:"challenge_count"`
	ExportedAt     time.Time     `json:"exported_at"`
	Duration       time.Duration `json:"duration"`
	Format         string        `json:"format"`
	OutputSize     int           `json:"output_size"`
}

// ExportOptions configures an export operation.
type ExportOptions struct {
	// Format specifies the output format (json, yaml, toml, toon).
	Format string

	// Root is recorded in the document header.
	Root string

	// MaxItems limits the number of chunks and of challenges exported
	// (0 = unlimited).
	MaxItems int

	// FilterPaths limits export to items whose file path matches one of
	// the doublestar patterns.
	FilterPaths []string

	// FilterLanguages limits export to the named languages.
	FilterLanguages []string

	// FilterDifficulties limits exported challenges to these difficulties.
	FilterDifficulties []challenge.Difficulty
}

// DefaultExportOptions returns sensible defaults.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Format:   "json",
		MaxItems: 0,
	}
}

// Exporter renders chunk and challenge sets in various formats.
type Exporter struct {
	formatters map[string]formatters.Formatter
}

// NewExporter creates a new exporter with the built-in formatters.
func NewExporter() *Exporter {
	e := &Exporter{
		formatters: make(map[string]formatters.Formatter),
	}

	// Register default formatters
	e.RegisterFormatter(formatters.NewJSONFormatter(true))
	e.RegisterFormatter(formatters.NewYAMLFormatter())
	e.RegisterFormatter(formatters.NewTOMLFormatter())
	e.RegisterFormatter(formatters.NewTOONFormatter())

	return e
}

// RegisterFormatter registers a formatter, replacing one of the same name.
func (e *Exporter) RegisterFormatter(f formatters.Formatter) {
	e.formatters[f.Name()] = f
}

// Formatter returns the formatter registered under name.
func (e *Exporter) Formatter(name string) (formatters.Formatter, bool) {
	f, ok := e.formatters[strings.ToLower(name)]
	return f, ok
}

// Export filters chunks and challenges according to opts and renders them.
func (e *Exporter) Export(ctx context.Context, chunks []chunkers.Chunk, challenges []challenge.Challenge, opts ExportOptions) ([]byte, *ExportStats, error) {
	start := time.Now()

	formatter, ok := e.Formatter(opts.Format)
	if !ok {
		return nil, nil, fmt.Errorf("unknown format %q; available: %s", opts.Format, strings.Join(e.ListFormats(), ", "))
	}

	for _, pattern := range opts.FilterPaths {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("invalid path filter %q", pattern)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	doc := formatters.NewDocument(opts.Root,
		applyLimit(filterChunks(chunks, opts), opts.MaxItems),
		applyLimit(filterChallenges(challenges, opts), opts.MaxItems))

	data, err := formatter.Format(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to format output; %w", err)
	}

	stats := &ExportStats{
		ChunkCount:     len(doc.Chunks),
		ChallengeCount: len(doc.Challenges),
		ExportedAt:     doc.ExportedAt,
		Duration:       time.Since(start),
		Format:         formatter.Name(),
		OutputSize:     len(data),
	}

	return data, stats, nil
}

func filterChunks(chunks []chunkers.Chunk, opts ExportOptions) []chunkers.Chunk {
	var out []chunkers.Chunk
	for _, c := range chunks {
		if matchesFilters(c.FilePath, c.Language, opts) {
			out = append(out, c)
		}
	}
	return out
}

func filterChallenges(challenges []challenge.Challenge, opts ExportOptions) []challenge.Challenge {
	var out []challenge.Challenge
	for _, c := range challenges {
		if !matchesFilters(c.SourceFilePath, c.Language, opts) {
			continue
		}
		if len(opts.FilterDifficulties) > 0 && !slices.Contains(opts.FilterDifficulties, c.Difficulty) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// matchesFilters checks if an item matches the path and language filters.
func matchesFilters(path, language string, opts ExportOptions) bool {
	// Language filter
	if len(opts.FilterLanguages) > 0 && !slices.Contains(opts.FilterLanguages, language) {
		return false
	}

	// Path filter
	if len(opts.FilterPaths) > 0 {
		matched := false
		for _, pattern := range opts.FilterPaths {
			if matchPath(path, pattern) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// matchPath checks if a path matches a doublestar pattern. An empty
// pattern matches everything.
func matchPath(path, pattern string) bool {
	if pattern == "" {
		return true
	}
	matched, err := doublestar.Match(pattern, path)
	return err == nil && matched
}

// ListFormats returns available format names, sorted.
func (e *Exporter) ListFormats() []string {
	formats := make([]string, 0, len(e.formatters))
	for name := range e.formatters {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}
