package languages

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ocaml"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// OCamlStrategy extracts chunks from OCaml implementation files.
type OCamlStrategy struct {
	commentSet
}

// NewOCamlStrategy creates a new OCaml language strategy.
func NewOCamlStrategy() *OCamlStrategy {
	return &OCamlStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *OCamlStrategy) Language() string {
	return "ocaml"
}

// Aliases returns alternative language names.
func (s *OCamlStrategy) Aliases() []string {
	return []string{"ml"}
}

// Extensions returns file extensions this strategy handles.
func (s *OCamlStrategy) Extensions() []string {
	return []string{".ml"}
}

// GetLanguage returns the tree-sitter Language for OCaml.
func (s *OCamlStrategy) GetLanguage() *sitter.Language {
	return ocaml.GetLanguage()
}

// ChunkQuery matches top-level let bindings, types, modules, module types
// and classes. Local let ... in bindings are left to nested extraction.
func (s *OCamlStrategy) ChunkQuery() string {
	b := code.NewQueryBuilder(s.GetLanguage())
	if b.Has("compilation_unit") {
		b.Pattern("(compilation_unit (value_definition) @function)", "value_definition")
	} else {
		b.Kind(chunkers.KindFunction, "value_definition")
	}
	return b.
		Kind(chunkers.KindTypeAlias, "type_definition").
		Kind(chunkers.KindModule, "module_definition").
		Kind(chunkers.KindInterface, "module_type_definition").
		Kind(chunkers.KindClass, "class_definition").
		String()
}

// CommentQuery matches (* *) comments.
func (s *OCamlStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, if and match, try, anonymous functions, local
// bindings and applications.
func (s *OCamlStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_expression", "while_expression").
		Kind(chunkers.KindConditional, "if_expression", "match_expression").
		Kind(chunkers.KindErrorHandling, "try_expression").
		Kind(chunkers.KindLambda, "fun_expression", "function_expression").
		Kind(chunkers.KindCodeBlock, "let_expression").
		Kind(chunkers.KindFunctionCall, "application_expression").
		String()
}

// ExtractName returns the first bound, type, module or class name.
func (s *OCamlStrategy) ExtractName(node *sitter.Node, source []byte) string {
	n := code.FindDescendant(node, 3,
		"value_name", "type_constructor", "module_name", "module_type_name", "class_name")
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content(source))
}
