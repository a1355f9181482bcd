package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/scala"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// ScalaStrategy extracts chunks from Scala source.
type ScalaStrategy struct {
	commentSet
}

// NewScalaStrategy creates a new Scala language strategy.
func NewScalaStrategy() *ScalaStrategy {
	return &ScalaStrategy{commentSet: comments("comment", "block_comment")}
}

// Language returns the language identifier.
func (s *ScalaStrategy) Language() string {
	return "scala"
}

// Aliases returns alternative language names.
func (s *ScalaStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *ScalaStrategy) Extensions() []string {
	return []string{".scala", ".sc"}
}

// GetLanguage returns the tree-sitter Language for Scala.
func (s *ScalaStrategy) GetLanguage() *sitter.Language {
	return scala.GetLanguage()
}

// ChunkQuery matches classes, objects, traits, enums, functions and type
// definitions.
func (s *ScalaStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindClass, "class_definition", "object_definition").
		Kind(chunkers.KindInterface, "trait_definition").
		Kind(chunkers.KindEnum, "enum_definition").
		Kind(chunkers.KindFunction, "function_definition").
		Kind(chunkers.KindTypeAlias, "type_definition").
		String()
}

// CommentQuery matches line and block comments.
func (s *ScalaStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, for comprehensions, conditionals, match, try,
// lambdas and calls.
func (s *ScalaStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "while_expression", "do_while_expression").
		Kind(chunkers.KindComprehension, "for_expression").
		Kind(chunkers.KindConditional, "if_expression", "match_expression").
		Kind(chunkers.KindErrorHandling, "try_expression").
		Kind(chunkers.KindLambda, "lambda_expression").
		Kind(chunkers.KindFunctionCall, "call_expression").
		String()
}

// ExtractName returns the declared name of a matched node.
func (s *ScalaStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if node.Type() == "call_expression" {
		return code.FieldText(node, source, "function")
	}
	return code.DefaultName(node, source)
}
