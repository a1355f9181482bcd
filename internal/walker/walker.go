package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
)

// WalkerStats contains statistics about the last walk.
type WalkerStats struct {
	FilesDiscovered int64
	FilesSkipped    int64
	FilesUnknown    int64
	DirsTraversed   int64
	LastWalkAt      time.Time
	LastWalkPath    string
}

// WalkerOption configures the Walker.
type WalkerOption func(*Walker)

// WithLogger sets the walker's logger.
func WithLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithSkipHidden controls whether dot files and directories are skipped.
// Hidden entries are skipped by default.
func WithSkipHidden(skip bool) WalkerOption {
	return func(w *Walker) {
		w.skipHidden = skip
	}
}

// Walker discovers source files under a root and pairs each with the
// language that parses it.
type Walker struct {
	registry   *code.Registry
	logger     *slog.Logger
	skipHidden bool

	mu    sync.RWMutex
	stats WalkerStats
}

// New creates a new Walker resolving languages through reg.
func New(reg *code.Registry, opts ...WalkerOption) *Walker {
	w := &Walker{
		registry:   reg,
		logger:     slog.Default(),
		skipHidden: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Stats returns statistics of the last walk.
func (w *Walker) Stats() WalkerStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// Walk returns the supported files under root that pass the include,
// exclude and language filters of opts, sorted by path. Symlinks are not
// followed. root may also name a single file.
func (w *Walker) Walk(ctx context.Context, root string, opts code.Options, reporter progress.Reporter) ([]code.FileInput, error) {
	reporter = progress.OrNop(reporter)
	reporter.SetStep(progress.StepScanning)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path; %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path; %w", err)
	}

	stats := WalkerStats{LastWalkPath: absRoot}
	defer func() {
		stats.LastWalkAt = time.Now()
		w.mu.Lock()
		w.stats = stats
		w.mu.Unlock()
	}()

	if !info.IsDir() {
		in, ok := w.resolve(absRoot, opts, &stats)
		if !ok {
			return nil, nil
		}
		return []code.FileInput{in}, nil
	}

	filter := NewFilter(opts.IncludePatterns, opts.ExcludePatterns, w.skipHidden)
	var files []code.FileInput

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			w.logger.Debug("skipping unreadable entry", "path", path, "error", walkErr)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if path != absRoot && !filter.ShouldProcessDir(rel) {
				stats.FilesSkipped++
				return fs.SkipDir
			}
			stats.DirsTraversed++
			return nil
		}

		if !filter.ShouldProcessFile(rel) {
			stats.FilesSkipped++
			return nil
		}

		if in, ok := w.resolve(path, opts, &stats); ok {
			files = append(files, in)
			reporter.SetCurrentFile(filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s; %w", absRoot, err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	reporter.SetCurrentFile("")
	reporter.SetFileCounts(progress.StepScanning, len(files), len(files), "")

	w.logger.Debug("walk complete",
		"root", absRoot,
		"files", len(files),
		"skipped", stats.FilesSkipped,
		"unsupported", stats.FilesUnknown)

	return files, nil
}

func (w *Walker) resolve(path string, opts code.Options, stats *WalkerStats) (code.FileInput, bool) {
	lang, ok := w.registry.ForPath(path)
	if !ok {
		stats.FilesUnknown++
		return code.FileInput{}, false
	}
	if !opts.AllowsLanguage(lang.Name()) {
		stats.FilesSkipped++
		return code.FileInput{}, false
	}
	stats.FilesDiscovered++
	return code.FileInput{Path: path, Language: lang}, true
}
