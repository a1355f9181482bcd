package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// PHPStrategy extracts chunks from PHP source.
type PHPStrategy struct {
	commentSet
}

// NewPHPStrategy creates a new PHP language strategy.
func NewPHPStrategy() *PHPStrategy {
	return &PHPStrategy{commentSet: comments("comment", "shell_comment_line")}
}

// Language returns the language identifier.
func (s *PHPStrategy) Language() string {
	return "php"
}

// Aliases returns alternative language names.
func (s *PHPStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *PHPStrategy) Extensions() []string {
	return []string{".php", ".phtml"}
}

// GetLanguage returns the tree-sitter Language for PHP.
func (s *PHPStrategy) GetLanguage() *sitter.Language {
	return php.GetLanguage()
}

// ChunkQuery matches functions, methods, classes, interfaces, traits,
// enums and namespaces.
func (s *PHPStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_definition").
		Kind(chunkers.KindMethod, "method_declaration").
		Kind(chunkers.KindClass, "class_declaration", "trait_declaration").
		Kind(chunkers.KindInterface, "interface_declaration").
		Kind(chunkers.KindEnum, "enum_declaration").
		Kind(chunkers.KindNamespace, "namespace_definition").
		String()
}

// CommentQuery matches //, # and block comments.
func (s *PHPStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, try blocks, closures and calls.
func (s *PHPStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "foreach_statement", "while_statement", "do_statement").
		Kind(chunkers.KindConditional, "if_statement", "switch_statement", "match_expression").
		Kind(chunkers.KindErrorHandling, "try_statement").
		Kind(chunkers.KindLambda, "anonymous_function_creation_expression", "anonymous_function", "arrow_function").
		Kind(chunkers.KindFunctionCall, "function_call_expression", "member_call_expression", "scoped_call_expression").
		String()
}

// ExtractName returns the declared name or the called function.
func (s *PHPStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if node.Type() == "function_call_expression" {
		return code.FieldText(node, source, "function")
	}
	return code.DefaultName(node, source)
}
