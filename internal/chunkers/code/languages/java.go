package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// JavaStrategy extracts chunks from Java source.
type JavaStrategy struct {
	commentSet
}

// NewJavaStrategy creates a new Java language strategy.
func NewJavaStrategy() *JavaStrategy {
	return &JavaStrategy{commentSet: comments("line_comment", "block_comment", "comment")}
}

// Language returns the language identifier.
func (s *JavaStrategy) Language() string {
	return "java"
}

// Aliases returns alternative language names.
func (s *JavaStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *JavaStrategy) Extensions() []string {
	return []string{".java"}
}

// GetLanguage returns the tree-sitter Language for Java.
func (s *JavaStrategy) GetLanguage() *sitter.Language {
	return java.GetLanguage()
}

// ChunkQuery matches type declarations, methods and constructors.
func (s *JavaStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindClass, "class_declaration", "record_declaration").
		Kind(chunkers.KindInterface, "interface_declaration", "annotation_type_declaration").
		Kind(chunkers.KindEnum, "enum_declaration").
		Kind(chunkers.KindMethod, "method_declaration", "constructor_declaration").
		String()
}

// CommentQuery matches line, block and Javadoc comments.
func (s *JavaStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, try blocks, lambdas and calls.
func (s *JavaStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "enhanced_for_statement", "while_statement", "do_statement").
		Kind(chunkers.KindConditional, "if_statement", "switch_statement", "switch_expression").
		Kind(chunkers.KindErrorHandling, "try_statement", "try_with_resources_statement").
		Kind(chunkers.KindSpecialBlock, "synchronized_statement", "static_initializer").
		Kind(chunkers.KindLambda, "lambda_expression").
		Kind(chunkers.KindFunctionCall, "method_invocation", "object_creation_expression").
		String()
}

// ExtractName returns the declared name or the invoked method.
func (s *JavaStrategy) ExtractName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "object_creation_expression":
		return code.FieldText(node, source, "type")
	}
	return code.DefaultName(node, source)
}
