package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// TypeScriptStrategy extracts chunks from TypeScript source. The TSX
// variant uses the same queries with the TSX grammar.
type TypeScriptStrategy struct {
	commentSet
	tsx bool
}

// NewTypeScriptStrategy creates a new TypeScript language strategy.
func NewTypeScriptStrategy() *TypeScriptStrategy {
	return &TypeScriptStrategy{commentSet: comments("comment")}
}

// NewTSXStrategy creates a strategy for TypeScript with JSX.
func NewTSXStrategy() *TypeScriptStrategy {
	return &TypeScriptStrategy{commentSet: comments("comment"), tsx: true}
}

// Language returns the language identifier.
func (s *TypeScriptStrategy) Language() string {
	if s.tsx {
		return "tsx"
	}
	return "typescript"
}

// Aliases returns alternative language names.
func (s *TypeScriptStrategy) Aliases() []string {
	if s.tsx {
		return nil
	}
	return []string{"ts"}
}

// Extensions returns file extensions this strategy handles.
func (s *TypeScriptStrategy) Extensions() []string {
	if s.tsx {
		return []string{".tsx"}
	}
	return []string{".ts", ".mts", ".cts"}
}

// GetLanguage returns the tree-sitter Language for TypeScript or TSX.
func (s *TypeScriptStrategy) GetLanguage() *sitter.Language {
	if s.tsx {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// ChunkQuery matches the JavaScript constructs plus interfaces, type
// aliases, enums and namespaces.
func (s *TypeScriptStrategy) ChunkQuery() string {
	return ecmaChunks(code.NewQueryBuilder(s.GetLanguage())).
		Kind(chunkers.KindClass, "abstract_class_declaration").
		Kind(chunkers.KindInterface, "interface_declaration").
		Kind(chunkers.KindTypeAlias, "type_alias_declaration").
		Kind(chunkers.KindEnum, "enum_declaration").
		Kind(chunkers.KindNamespace, "internal_module").
		Kind(chunkers.KindModule, "module").
		String()
}

// CommentQuery matches line and block comments.
func (s *TypeScriptStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches control flow, callbacks and calls.
func (s *TypeScriptStrategy) NestedQuery() string {
	return ecmaNested(code.NewQueryBuilder(s.GetLanguage())).String()
}

// ExtractName returns the declared name of a matched node.
func (s *TypeScriptStrategy) ExtractName(node *sitter.Node, source []byte) string {
	return ecmaName(node, source)
}
