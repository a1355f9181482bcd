package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// KotlinStrategy extracts chunks from Kotlin source.
type KotlinStrategy struct {
	commentSet
}

// NewKotlinStrategy creates a new Kotlin language strategy.
func NewKotlinStrategy() *KotlinStrategy {
	return &KotlinStrategy{commentSet: comments("comment", "line_comment", "multiline_comment")}
}

// Language returns the language identifier.
func (s *KotlinStrategy) Language() string {
	return "kotlin"
}

// Aliases returns alternative language names.
func (s *KotlinStrategy) Aliases() []string {
	return []string{"kt"}
}

// Extensions returns file extensions this strategy handles.
func (s *KotlinStrategy) Extensions() []string {
	return []string{".kt", ".kts"}
}

// GetLanguage returns the tree-sitter Language for Kotlin.
func (s *KotlinStrategy) GetLanguage() *sitter.Language {
	return kotlin.GetLanguage()
}

// ChunkQuery matches classes, interfaces, objects, functions and type
// aliases. Interfaces share the class_declaration production.
func (s *KotlinStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindClass, "class_declaration", "object_declaration", "companion_object").
		Kind(chunkers.KindFunction, "function_declaration").
		Kind(chunkers.KindTypeAlias, "type_alias").
		String()
}

// CommentQuery matches line and block comments.
func (s *KotlinStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, if and when expressions, try, lambdas and
// calls.
func (s *KotlinStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "while_statement", "do_while_statement").
		Kind(chunkers.KindConditional, "if_expression", "when_expression").
		Kind(chunkers.KindErrorHandling, "try_expression").
		Kind(chunkers.KindLambda, "lambda_literal", "anonymous_function").
		Kind(chunkers.KindFunctionCall, "call_expression").
		String()
}

// ExtractName returns the declared identifier.
func (s *KotlinStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if name := code.ChildText(node, source, "type_identifier", "simple_identifier"); name != "" {
		return name
	}
	return code.DefaultName(node, source)
}
