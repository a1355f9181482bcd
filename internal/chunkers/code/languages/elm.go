package languages

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/elm"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// ElmStrategy extracts chunks from Elm source.
type ElmStrategy struct {
	commentSet
}

// NewElmStrategy creates a new Elm language strategy.
func NewElmStrategy() *ElmStrategy {
	return &ElmStrategy{commentSet: comments("line_comment", "block_comment")}
}

// Language returns the language identifier.
func (s *ElmStrategy) Language() string {
	return "elm"
}

// Aliases returns alternative language names.
func (s *ElmStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *ElmStrategy) Extensions() []string {
	return []string{".elm"}
}

// GetLanguage returns the tree-sitter Language for Elm.
func (s *ElmStrategy) GetLanguage() *sitter.Language {
	return elm.GetLanguage()
}

// ChunkQuery matches value declarations, custom types and type aliases.
func (s *ElmStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "value_declaration").
		Kind(chunkers.KindEnum, "type_declaration").
		Kind(chunkers.KindTypeAlias, "type_alias_declaration").
		String()
}

// CommentQuery matches -- and {- -} comments.
func (s *ElmStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches if and case expressions, let blocks, lambdas and
// function applications.
func (s *ElmStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindConditional, "if_else_expr", "case_of_expr").
		Kind(chunkers.KindCodeBlock, "let_in_expr").
		Kind(chunkers.KindLambda, "anonymous_function_expr").
		Kind(chunkers.KindFunctionCall, "function_call_expr").
		String()
}

// ExtractName returns the declared value or type name.
func (s *ElmStrategy) ExtractName(node *sitter.Node, source []byte) string {
	n := code.FindDescendant(node, 2, "lower_case_identifier", "upper_case_identifier")
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Content(source))
}
