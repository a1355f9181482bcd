package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// SwiftStrategy extracts chunks from Swift source.
type SwiftStrategy struct {
	commentSet
}

// NewSwiftStrategy creates a new Swift language strategy.
func NewSwiftStrategy() *SwiftStrategy {
	return &SwiftStrategy{commentSet: comments("comment", "multiline_comment")}
}

// Language returns the language identifier.
func (s *SwiftStrategy) Language() string {
	return "swift"
}

// Aliases returns alternative language names.
func (s *SwiftStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *SwiftStrategy) Extensions() []string {
	return []string{".swift"}
}

// GetLanguage returns the tree-sitter Language for Swift.
func (s *SwiftStrategy) GetLanguage() *sitter.Language {
	return swift.GetLanguage()
}

// ChunkQuery matches type declarations, protocols, functions and
// initializers. Classes, structs, enums and extensions share
// class_declaration.
func (s *SwiftStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindClass, "class_declaration").
		Kind(chunkers.KindInterface, "protocol_declaration").
		Kind(chunkers.KindFunction, "function_declaration").
		Kind(chunkers.KindMethod, "init_declaration", "deinit_declaration").
		Kind(chunkers.KindTypeAlias, "typealias_declaration").
		String()
}

// CommentQuery matches line and block comments.
func (s *SwiftStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, guard, do/catch, closures and
// calls.
func (s *SwiftStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "while_statement", "repeat_while_statement").
		Kind(chunkers.KindConditional, "if_statement", "guard_statement", "switch_statement").
		Kind(chunkers.KindErrorHandling, "do_statement").
		Kind(chunkers.KindLambda, "lambda_literal").
		Kind(chunkers.KindFunctionCall, "call_expression").
		String()
}

// ExtractName returns the declared identifier.
func (s *SwiftStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if name := code.FieldText(node, source, "name"); name != "" {
		return name
	}
	return code.ChildText(node, source, "type_identifier", "simple_identifier", "user_type")
}
