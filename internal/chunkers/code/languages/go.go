package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// GoStrategy extracts chunks from Go source.
type GoStrategy struct {
	commentSet
}

// NewGoStrategy creates a new Go language strategy.
func NewGoStrategy() *GoStrategy {
	return &GoStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *GoStrategy) Language() string {
	return "go"
}

// Aliases returns alternative language names.
func (s *GoStrategy) Aliases() []string {
	return []string{"golang"}
}

// Extensions returns file extensions this strategy handles.
func (s *GoStrategy) Extensions() []string {
	return []string{".go"}
}

// GetLanguage returns the tree-sitter Language for Go.
func (s *GoStrategy) GetLanguage() *sitter.Language {
	return golang.GetLanguage()
}

// ChunkQuery matches functions, methods, single-spec type declarations and
// top-level const and var blocks. The whole declaration is captured so the
// chunk keeps its type keyword.
func (s *GoStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_declaration").
		Kind(chunkers.KindMethod, "method_declaration").
		Pattern("(type_declaration . (type_spec type: (struct_type)) .) @struct", "type_declaration", "type_spec", "struct_type").
		Pattern("(type_declaration . (type_spec type: (interface_type)) .) @interface", "type_declaration", "type_spec", "interface_type").
		Pattern("(type_declaration . (type_alias) .) @type_alias", "type_declaration", "type_alias").
		Pattern("(source_file (const_declaration) @const)", "source_file", "const_declaration").
		Pattern("(source_file (var_declaration) @variable)", "source_file", "var_declaration").
		String()
}

// CommentQuery matches line and block comments.
func (s *GoStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches control flow, closures and calls inside bodies.
func (s *GoStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement").
		Kind(chunkers.KindConditional,
			"if_statement",
			"expression_switch_statement",
			"type_switch_statement",
			"select_statement").
		Kind(chunkers.KindLambda, "func_literal").
		Kind(chunkers.KindSpecialBlock, "go_statement", "defer_statement").
		Kind(chunkers.KindFunctionCall, "call_expression").
		String()
}

// ExtractName returns the declared name of a matched node.
func (s *GoStrategy) ExtractName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "const_declaration", "var_declaration":
		if spec := code.FindDescendant(node, 2, "identifier"); spec != nil {
			return spec.Content(source)
		}
		return ""
	case "type_declaration":
		return code.DefaultName(code.ChildOfType(node, "type_spec", "type_alias"), source)
	case "call_expression":
		return code.FieldText(node, source, "function")
	}
	return code.DefaultName(node, source)
}
