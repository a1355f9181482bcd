package code

import (
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// LanguageStrategy describes how chunks are carved out of one grammar.
//
// Query captures are named after chunk kinds (for example @function or
// @loop); captures whose names are not kind names are helper captures used
// by predicates and never produce chunks.
type LanguageStrategy interface {
	// Language returns the registry name (e.g., "go", "python").
	Language() string

	// Aliases returns alternative names accepted on lookup.
	Aliases() []string

	// Extensions returns file extensions this strategy handles (e.g., ".go").
	Extensions() []string

	// GetLanguage returns the tree-sitter grammar.
	GetLanguage() *sitter.Language

	// ChunkQuery returns the query matching named top-level constructs.
	ChunkQuery() string

	// CommentQuery returns the query matching comment nodes.
	CommentQuery() string

	// NestedQuery returns the query matching implementation constructs
	// (loops, conditionals, calls) inside a top-level chunk.
	NestedQuery() string

	// ExtractName returns the identifier of a matched node, or "".
	ExtractName(node *sitter.Node, source []byte) string

	// IsComment filters comment query matches down to real comments.
	IsComment(node *sitter.Node) bool
}

// QueryBuilder assembles tree-sitter query source. Node types that the
// grammar does not define are skipped so that a query keeps compiling when
// a grammar release renames or drops a production.
type QueryBuilder struct {
	known    map[string]bool
	patterns []string
}

var namedSymbols sync.Map // *sitter.Language -> map[string]bool

// NewQueryBuilder returns a builder for the given grammar.
func NewQueryBuilder(lang *sitter.Language) *QueryBuilder {
	return &QueryBuilder{known: NodeTypes(lang)}
}

// NodeTypes returns the set of named node types defined by a grammar.
func NodeTypes(lang *sitter.Language) map[string]bool {
	if cached, ok := namedSymbols.Load(lang); ok {
		return cached.(map[string]bool)
	}

	types := make(map[string]bool)
	count := lang.SymbolCount()
	for i := uint32(0); i < count; i++ {
		sym := sitter.Symbol(i)
		if lang.SymbolType(sym) != sitter.SymbolTypeRegular {
			continue
		}
		types[lang.SymbolName(sym)] = true
	}

	actual, _ := namedSymbols.LoadOrStore(lang, types)
	return actual.(map[string]bool)
}

// Has reports whether the grammar defines the named node type.
func (b *QueryBuilder) Has(nodeType string) bool {
	return b.known[nodeType]
}

// Kind captures every listed node type as the given chunk kind.
func (b *QueryBuilder) Kind(kind chunkers.Kind, nodeTypes ...string) *QueryBuilder {
	return b.Nodes(kind.String(), nodeTypes...)
}

// Nodes captures every listed node type under the given capture name.
func (b *QueryBuilder) Nodes(capture string, nodeTypes ...string) *QueryBuilder {
	var alts []string
	for _, t := range nodeTypes {
		if b.known[t] {
			alts = append(alts, "("+t+")")
		}
	}
	switch len(alts) {
	case 0:
	case 1:
		b.patterns = append(b.patterns, alts[0]+" @"+capture)
	default:
		b.patterns = append(b.patterns, "["+strings.Join(alts, " ")+"] @"+capture)
	}
	return b
}

// Pattern adds a raw pattern carrying its own captures. The pattern is kept
// only when the grammar defines every node type listed in requires.
func (b *QueryBuilder) Pattern(pattern string, requires ...string) *QueryBuilder {
	for _, t := range requires {
		if !b.known[t] {
			return b
		}
	}
	b.patterns = append(b.patterns, pattern)
	return b
}

// String renders the query source. An empty builder renders a pattern that
// captures nothing useful so the query still compiles.
func (b *QueryBuilder) String() string {
	if len(b.patterns) == 0 {
		return "(ERROR) @_unused"
	}
	return strings.Join(b.patterns, "\n")
}

// CommentTypes wraps a fixed set of comment node types as an IsComment
// implementation.
type CommentTypes map[string]bool

// NewCommentTypes returns a CommentTypes for the listed node types.
func NewCommentTypes(nodeTypes ...string) CommentTypes {
	ct := make(CommentTypes, len(nodeTypes))
	for _, t := range nodeTypes {
		ct[t] = true
	}
	return ct
}

// Query renders a comment query for the types the grammar defines.
func (ct CommentTypes) Query(lang *sitter.Language) string {
	types := make([]string, 0, len(ct))
	for t := range ct {
		types = append(types, t)
	}
	sort.Strings(types)
	return NewQueryBuilder(lang).Nodes("comment", types...).String()
}

// IsComment reports whether node is a non-empty node of a comment type.
func (ct CommentTypes) IsComment(node *sitter.Node) bool {
	if node == nil || !ct[node.Type()] {
		return false
	}
	return node.EndByte() > node.StartByte()
}
