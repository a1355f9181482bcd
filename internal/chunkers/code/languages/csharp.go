package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// CSharpStrategy extracts chunks from C# source.
type CSharpStrategy struct {
	commentSet
}

// NewCSharpStrategy creates a new C# language strategy.
func NewCSharpStrategy() *CSharpStrategy {
	return &CSharpStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *CSharpStrategy) Language() string {
	return "csharp"
}

// Aliases returns alternative language names.
func (s *CSharpStrategy) Aliases() []string {
	return []string{"c#", "cs"}
}

// Extensions returns file extensions this strategy handles.
func (s *CSharpStrategy) Extensions() []string {
	return []string{".cs"}
}

// GetLanguage returns the tree-sitter Language for C#.
func (s *CSharpStrategy) GetLanguage() *sitter.Language {
	return csharp.GetLanguage()
}

// ChunkQuery matches type declarations, methods, constructors and
// namespaces.
func (s *CSharpStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindClass, "class_declaration", "record_declaration").
		Kind(chunkers.KindStruct, "struct_declaration", "record_struct_declaration").
		Kind(chunkers.KindInterface, "interface_declaration").
		Kind(chunkers.KindEnum, "enum_declaration").
		Kind(chunkers.KindMethod, "method_declaration", "constructor_declaration").
		Kind(chunkers.KindNamespace, "namespace_declaration", "file_scoped_namespace_declaration").
		String()
}

// CommentQuery matches line, block and XML doc comments.
func (s *CSharpStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, exception handling, using and
// lock blocks, lambdas and calls.
func (s *CSharpStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "for_each_statement", "foreach_statement", "while_statement", "do_statement").
		Kind(chunkers.KindConditional, "if_statement", "switch_statement", "switch_expression").
		Kind(chunkers.KindErrorHandling, "try_statement").
		Kind(chunkers.KindSpecialBlock, "using_statement", "lock_statement").
		Kind(chunkers.KindLambda, "lambda_expression", "anonymous_method_expression").
		Kind(chunkers.KindComprehension, "query_expression").
		Kind(chunkers.KindFunctionCall, "invocation_expression", "object_creation_expression").
		String()
}

// ExtractName returns the declared name of a matched node.
func (s *CSharpStrategy) ExtractName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "invocation_expression":
		return code.FieldText(node, source, "function")
	case "object_creation_expression":
		return code.FieldText(node, source, "type")
	}
	return code.DefaultName(node, source)
}
