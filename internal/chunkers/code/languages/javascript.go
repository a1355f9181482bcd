package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// JavaScriptStrategy extracts chunks from JavaScript source.
type JavaScriptStrategy struct {
	commentSet
}

// NewJavaScriptStrategy creates a new JavaScript language strategy.
func NewJavaScriptStrategy() *JavaScriptStrategy {
	return &JavaScriptStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *JavaScriptStrategy) Language() string {
	return "javascript"
}

// Aliases returns alternative language names.
func (s *JavaScriptStrategy) Aliases() []string {
	return []string{"js", "jsx"}
}

// Extensions returns file extensions this strategy handles.
func (s *JavaScriptStrategy) Extensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs"}
}

// GetLanguage returns the tree-sitter Language for JavaScript.
func (s *JavaScriptStrategy) GetLanguage() *sitter.Language {
	return javascript.GetLanguage()
}

// ChunkQuery matches functions, classes, methods and functions bound to
// const/let declarations.
func (s *JavaScriptStrategy) ChunkQuery() string {
	return ecmaChunks(code.NewQueryBuilder(s.GetLanguage())).String()
}

// CommentQuery matches line and block comments.
func (s *JavaScriptStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches control flow, callbacks and calls.
func (s *JavaScriptStrategy) NestedQuery() string {
	return ecmaNested(code.NewQueryBuilder(s.GetLanguage())).String()
}

// ExtractName returns the declared name of a matched node.
func (s *JavaScriptStrategy) ExtractName(node *sitter.Node, source []byte) string {
	return ecmaName(node, source)
}

// ecmaChunks adds the top-level patterns shared by JavaScript and TypeScript.
func ecmaChunks(b *code.QueryBuilder) *code.QueryBuilder {
	b.Kind(chunkers.KindFunction, "function_declaration", "generator_function_declaration").
		Kind(chunkers.KindClass, "class_declaration").
		Kind(chunkers.KindMethod, "method_definition")

	for _, fn := range []string{"arrow_function", "function_expression", "function"} {
		b.Pattern("(lexical_declaration (variable_declarator value: ("+fn+"))) @function",
			"lexical_declaration", "variable_declarator", fn)
	}
	return b
}

// ecmaNested adds the nested patterns shared by JavaScript and TypeScript.
func ecmaNested(b *code.QueryBuilder) *code.QueryBuilder {
	return b.
		Kind(chunkers.KindLoop, "for_statement", "for_in_statement", "while_statement", "do_statement").
		Kind(chunkers.KindConditional, "if_statement", "switch_statement").
		Kind(chunkers.KindErrorHandling, "try_statement").
		Kind(chunkers.KindLambda, "arrow_function", "function_expression", "function").
		Kind(chunkers.KindFunctionCall, "call_expression", "new_expression")
}

func ecmaName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "lexical_declaration":
		return code.FieldText(code.ChildOfType(node, "variable_declarator"), source, "name")
	case "call_expression":
		return code.FieldText(node, source, "function")
	case "new_expression":
		return code.FieldText(node, source, "constructor")
	}
	return code.DefaultName(node, source)
}
