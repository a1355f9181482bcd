package code

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/fsutil"
	"github.com/unhappychoice/gittype-sub005/internal/metrics"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
)

// DefaultMaxFileSizeBytes is the largest file extracted by default.
const DefaultMaxFileSizeBytes int64 = 1 << 20

// DefaultExcludePatterns are doublestar globs for dependency, build and
// generated trees that never yield useful chunks.
var DefaultExcludePatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/target/**",
	"**/build/**",
	"**/dist/**",
	"**/out/**",
	"**/.next/**",
	"**/__pycache__/**",
	"**/.venv/**",
	"**/venv/**",
	"**/.gradle/**",
	"**/.idea/**",
	"**/.vscode/**",
	"**/coverage/**",
	"**/*.min.js",
	"**/*.min.css",
	"**/*.pb.go",
	"**/*_generated.*",
}

// Options controls which files are extracted.
type Options struct {
	// IncludePatterns restricts discovery to matching paths when non-empty.
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns removes matching paths from discovery.
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Languages is an optional allow-list of registry names.
	Languages []string `mapstructure:"languages" yaml:"languages"`

	// MaxFileSizeBytes skips larger files; zero disables the limit.
	MaxFileSizeBytes int64 `mapstructure:"max_file_size_bytes" yaml:"max_file_size_bytes"`

	// Root, when set, makes chunk file paths relative to it.
	Root string `mapstructure:"-" yaml:"-"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	excludes := make([]string, len(DefaultExcludePatterns))
	copy(excludes, DefaultExcludePatterns)
	return Options{
		ExcludePatterns:  excludes,
		MaxFileSizeBytes: DefaultMaxFileSizeBytes,
	}
}

// AllowsLanguage reports whether the allow-list admits the language.
func (o Options) AllowsLanguage(name string) bool {
	if len(o.Languages) == 0 {
		return true
	}
	for _, l := range o.Languages {
		if strings.EqualFold(l, name) {
			return true
		}
	}
	return false
}

// FileInput pairs a file with the language that parses it.
type FileInput struct {
	Path     string
	Language *Language
}

// SourceParser extracts chunks from many files in parallel.
type SourceParser struct {
	extractor *Extractor
	logger    *slog.Logger
	workers   int
}

// ParserOption configures a SourceParser.
type ParserOption func(*SourceParser)

// WithLogger sets the logger for the parser and its extractor.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *SourceParser) {
		p.logger = logger
	}
}

// WithWorkers bounds the number of files extracted concurrently.
// Values below one select runtime.NumCPU().
func WithWorkers(n int) ParserOption {
	return func(p *SourceParser) {
		p.workers = n
	}
}

// NewSourceParser creates a SourceParser.
func NewSourceParser(opts ...ParserOption) *SourceParser {
	p := &SourceParser{
		logger:  slog.Default(),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 1 {
		p.workers = runtime.NumCPU()
	}
	p.extractor = NewExtractor(WithExtractorLogger(p.logger))
	return p
}

type sizedInput struct {
	FileInput
	size int64
}

// ExtractChunks extracts every file and returns the chunks grouped by file,
// largest file first. A file that cannot be read or parsed is logged and
// skipped. ErrNoChunksProduced is returned when nothing was extracted.
func (p *SourceParser) ExtractChunks(ctx context.Context, files []FileInput, opts Options, reporter progress.Reporter) ([]chunkers.Chunk, error) {
	reporter = progress.OrNop(reporter)
	reporter.SetStep(progress.StepExtracting)

	inputs := p.prepare(files, opts)
	results := make([][]chunkers.Chunk, len(inputs))
	tracker := progress.NewTracker(reporter, progress.StepExtracting, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			display := displayPath(in.Path, opts.Root)
			reporter.SetCurrentFile(display)

			chunks, err := p.extractFile(gctx, in.FileInput, display)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				p.logger.Warn("skipping file", "path", in.Path, "error", err)
				metrics.RecordFileSkipped("extraction_failed")
			} else {
				results[i] = chunks
			}

			tracker.Done(display)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("chunk extraction interrupted; %w", err)
	}
	tracker.Finish()
	reporter.SetCurrentFile("")

	var all []chunkers.Chunk
	for _, chunks := range results {
		all = append(all, chunks...)
	}

	p.logger.Info("chunk extraction complete",
		"files", len(inputs),
		"chunks", len(all))

	if len(all) == 0 {
		return nil, ErrNoChunksProduced
	}
	return all, nil
}

// prepare drops oversized, unreadable and disallowed files and orders the
// rest largest first so the slowest files start early.
func (p *SourceParser) prepare(files []FileInput, opts Options) []sizedInput {
	inputs := make([]sizedInput, 0, len(files))
	for _, f := range files {
		if f.Language == nil || !opts.AllowsLanguage(f.Language.Name()) {
			continue
		}

		info, err := os.Stat(f.Path)
		if err != nil {
			p.logger.Warn("skipping file", "path", f.Path, "error", &FileExtractionError{Path: f.Path, Err: err})
			metrics.RecordFileSkipped("unreadable")
			continue
		}
		if opts.MaxFileSizeBytes > 0 && info.Size() > opts.MaxFileSizeBytes {
			p.logger.Warn("skipping large file",
				"path", f.Path,
				"size", info.Size(),
				"max_size", opts.MaxFileSizeBytes)
			metrics.RecordFileSkipped("too_large")
			continue
		}
		inputs = append(inputs, sizedInput{FileInput: f, size: info.Size()})
	}

	sort.SliceStable(inputs, func(i, j int) bool {
		return inputs[i].size > inputs[j].size
	})
	return inputs
}

func (p *SourceParser) extractFile(ctx context.Context, in FileInput, display string) ([]chunkers.Chunk, error) {
	start := time.Now()

	source, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, &FileExtractionError{Path: in.Path, Err: err}
	}
	if fsutil.IsBinary(source) {
		return nil, &FileExtractionError{Path: in.Path, Err: ErrBinaryFile}
	}

	tree, err := in.Language.Parse(ctx, source)
	if err != nil {
		return nil, &FileExtractionError{Path: in.Path, Err: err}
	}
	defer tree.Close()

	chunks := p.extractor.Extract(tree, source, display, in.Language)

	kinds := make(map[string]int)
	for _, c := range chunks {
		kinds[c.Kind.String()]++
	}
	metrics.RecordFileExtraction(in.Language.Name(), time.Since(start), kinds)

	return chunks, nil
}

// ExtractFile extracts a single file outside of a batch.
func (p *SourceParser) ExtractFile(ctx context.Context, in FileInput) ([]chunkers.Chunk, error) {
	if in.Language == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, in.Path)
	}
	return p.extractFile(ctx, in, in.Path)
}

// IsNoChunks reports whether err signals an empty extraction.
func IsNoChunks(err error) bool {
	return errors.Is(err, ErrNoChunksProduced)
}

func displayPath(path, root string) string {
	if root == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
