package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which files and directories a walk visits. Patterns are
// doublestar globs matched against slash-separated paths relative to the
// walk root.
type Filter struct {
	includes   []string
	excludes   []string
	skipHidden bool
}

// NewFilter creates a Filter. Invalid patterns are dropped.
func NewFilter(includes, excludes []string, skipHidden bool) *Filter {
	return &Filter{
		includes:   validPatterns(includes),
		excludes:   validPatterns(excludes),
		skipHidden: skipHidden,
	}
}

func validPatterns(patterns []string) []string {
	var out []string
	for _, p := range patterns {
		p = filepath.ToSlash(strings.TrimSpace(p))
		if p != "" && doublestar.ValidatePattern(p) {
			out = append(out, p)
		}
	}
	return out
}

// ShouldProcessFile returns true if the file at rel should be processed.
func (f *Filter) ShouldProcessFile(rel string) bool {
	rel = filepath.ToSlash(rel)
	if f.skipHidden && isHidden(rel) {
		return false
	}
	if matchAny(f.excludes, rel) {
		return false
	}
	if len(f.includes) > 0 && !matchAny(f.includes, rel) {
		return false
	}
	return true
}

// ShouldProcessDir returns true if the directory at rel should be traversed.
func (f *Filter) ShouldProcessDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return true
	}
	if f.skipHidden && isHidden(rel) {
		return false
	}

	for _, p := range f.excludes {
		if match(p, rel) || match(p, rel+"/") {
			return false
		}
		// "**/vendor/**" prunes the vendor directory itself.
		if trimmed, ok := strings.CutSuffix(p, "/**"); ok && match(trimmed, rel) {
			return false
		}
	}
	return true
}

func isHidden(rel string) bool {
	name := rel[strings.LastIndex(rel, "/")+1:]
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if match(p, rel) {
			return true
		}
	}
	return false
}

func match(pattern, rel string) bool {
	matched, err := doublestar.Match(pattern, rel)
	return err == nil && matched
}
