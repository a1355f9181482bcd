package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// CPPStrategy extracts chunks from C++ source.
type CPPStrategy struct {
	commentSet
}

// NewCPPStrategy creates a new C++ language strategy.
func NewCPPStrategy() *CPPStrategy {
	return &CPPStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *CPPStrategy) Language() string {
	return "cpp"
}

// Aliases returns alternative language names.
func (s *CPPStrategy) Aliases() []string {
	return []string{"c++", "cxx"}
}

// Extensions returns file extensions this strategy handles.
func (s *CPPStrategy) Extensions() []string {
	return []string{".cpp", ".cc", ".cxx", ".c++", ".hpp", ".hh", ".hxx", ".h++"}
}

// GetLanguage returns the tree-sitter Language for C++.
func (s *CPPStrategy) GetLanguage() *sitter.Language {
	return cpp.GetLanguage()
}

// ChunkQuery matches the C constructs plus classes and namespaces.
func (s *CPPStrategy) ChunkQuery() string {
	return cFamilyChunks(code.NewQueryBuilder(s.GetLanguage())).
		Pattern("(class_specifier body: (field_declaration_list)) @class", "class_specifier", "field_declaration_list").
		Kind(chunkers.KindNamespace, "namespace_definition").
		Kind(chunkers.KindTypeAlias, "alias_declaration").
		String()
}

// CommentQuery matches line and block comments.
func (s *CPPStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops including range-for, conditionals, try blocks,
// lambdas and calls.
func (s *CPPStrategy) NestedQuery() string {
	return cFamilyNested(code.NewQueryBuilder(s.GetLanguage())).String()
}

// ExtractName returns the declared name of a matched node.
func (s *CPPStrategy) ExtractName(node *sitter.Node, source []byte) string {
	return cFamilyName(node, source)
}
