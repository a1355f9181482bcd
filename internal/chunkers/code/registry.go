package code

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// Language is a strategy with its queries compiled against its grammar.
// It is immutable after construction and safe for concurrent use.
type Language struct {
	Strategy LanguageStrategy
	Grammar  *sitter.Language

	ChunkQuery   *sitter.Query
	CommentQuery *sitter.Query
	NestedQuery  *sitter.Query

	parsers sync.Pool
}

// Name returns the registry name of the language.
func (l *Language) Name() string {
	return l.Strategy.Language()
}

func compileLanguage(strategy LanguageStrategy) (*Language, error) {
	grammar := strategy.GetLanguage()
	if grammar == nil {
		return nil, fmt.Errorf("%w: %s has no grammar", ErrLanguageSetup, strategy.Language())
	}

	compile := func(kind, source string) (*sitter.Query, error) {
		q, err := sitter.NewQuery([]byte(source), grammar)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s query; %v", ErrLanguageSetup, strategy.Language(), kind, err)
		}
		return q, nil
	}

	chunks, err := compile("chunk", strategy.ChunkQuery())
	if err != nil {
		return nil, err
	}
	if !capturesKinds(chunks) {
		return nil, fmt.Errorf("%w: %s chunk query matches no node type the grammar defines", ErrLanguageSetup, strategy.Language())
	}
	comments, err := compile("comment", strategy.CommentQuery())
	if err != nil {
		return nil, err
	}
	nested, err := compile("nested", strategy.NestedQuery())
	if err != nil {
		return nil, err
	}

	l := &Language{
		Strategy:     strategy,
		Grammar:      grammar,
		ChunkQuery:   chunks,
		CommentQuery: comments,
		NestedQuery:  nested,
	}
	l.parsers.New = func() any {
		p := sitter.NewParser()
		p.SetLanguage(grammar)
		return p
	}
	return l, nil
}

// capturesKinds reports whether q has at least one capture named after a
// chunk kind.
func capturesKinds(q *sitter.Query) bool {
	for i := uint32(0); i < q.CaptureCount(); i++ {
		kind, err := chunkers.ParseKind(q.CaptureNameForId(i))
		if err == nil && kind != chunkers.KindFile {
			return true
		}
	}
	return false
}

// Registry maps language names, aliases and file extensions to compiled
// languages. It is built once and read concurrently afterwards.
type Registry struct {
	languages    map[string]*Language // keyed by name and alias
	extensionMap map[string]*Language // keyed by extension (e.g., ".go")
	names        []string
}

// NewRegistry compiles every strategy. Any query compilation failure aborts
// construction with an error wrapping ErrLanguageSetup.
func NewRegistry(strategies ...LanguageStrategy) (*Registry, error) {
	r := &Registry{
		languages:    make(map[string]*Language),
		extensionMap: make(map[string]*Language),
	}

	for _, strategy := range strategies {
		lang, err := compileLanguage(strategy)
		if err != nil {
			return nil, err
		}

		name := strings.ToLower(strategy.Language())
		if _, dup := r.languages[name]; dup {
			return nil, fmt.Errorf("%w: duplicate language %q", ErrLanguageSetup, name)
		}
		r.languages[name] = lang
		r.names = append(r.names, name)

		for _, alias := range strategy.Aliases() {
			r.languages[strings.ToLower(alias)] = lang
		}
		for _, ext := range strategy.Extensions() {
			r.extensionMap[normalizeExt(ext)] = lang
		}
	}

	sort.Strings(r.names)
	return r, nil
}

// Get returns a language by name or alias.
func (r *Registry) Get(name string) (*Language, bool) {
	lang, ok := r.languages[strings.ToLower(strings.TrimSpace(name))]
	return lang, ok
}

// GetByExtension returns a language by file extension, with or without the
// leading dot.
func (r *Registry) GetByExtension(ext string) (*Language, bool) {
	lang, ok := r.extensionMap[normalizeExt(ext)]
	return lang, ok
}

// ForPath returns the language handling path based on its extension.
func (r *Registry) ForPath(path string) (*Language, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, false
	}
	return r.GetByExtension(ext)
}

// Languages returns the sorted registry names.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Extensions returns the sorted extensions handled by the named language.
func (r *Registry) Extensions(name string) []string {
	lang, ok := r.Get(name)
	if !ok {
		return nil
	}
	var exts []string
	for ext, l := range r.extensionMap {
		if l == lang {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// CanHandle reports whether any language handles path.
func (r *Registry) CanHandle(path string) bool {
	_, ok := r.ForPath(path)
	return ok
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
