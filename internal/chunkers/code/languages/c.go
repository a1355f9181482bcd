package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// CStrategy extracts chunks from C source.
type CStrategy struct {
	commentSet
}

// NewCStrategy creates a new C language strategy.
func NewCStrategy() *CStrategy {
	return &CStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *CStrategy) Language() string {
	return "c"
}

// Aliases returns alternative language names.
func (s *CStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *CStrategy) Extensions() []string {
	return []string{".c", ".h"}
}

// GetLanguage returns the tree-sitter Language for C.
func (s *CStrategy) GetLanguage() *sitter.Language {
	return c.GetLanguage()
}

// ChunkQuery matches function definitions, typedefs and aggregate types
// that carry a body. Forward declarations are not matched.
func (s *CStrategy) ChunkQuery() string {
	return cFamilyChunks(code.NewQueryBuilder(s.GetLanguage())).String()
}

// CommentQuery matches line and block comments.
func (s *CStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals and calls.
func (s *CStrategy) NestedQuery() string {
	return cFamilyNested(code.NewQueryBuilder(s.GetLanguage())).String()
}

// ExtractName returns the declared name of a matched node.
func (s *CStrategy) ExtractName(node *sitter.Node, source []byte) string {
	return cFamilyName(node, source)
}

func cFamilyChunks(b *code.QueryBuilder) *code.QueryBuilder {
	return b.
		Kind(chunkers.KindFunction, "function_definition").
		Pattern("(struct_specifier body: (field_declaration_list)) @struct", "struct_specifier", "field_declaration_list").
		Pattern("(union_specifier body: (field_declaration_list)) @struct", "union_specifier", "field_declaration_list").
		Pattern("(enum_specifier body: (enumerator_list)) @enum", "enum_specifier", "enumerator_list").
		Kind(chunkers.KindTypeAlias, "type_definition")
}

func cFamilyNested(b *code.QueryBuilder) *code.QueryBuilder {
	return b.
		Kind(chunkers.KindLoop, "for_statement", "for_range_loop", "while_statement", "do_statement").
		Kind(chunkers.KindConditional, "if_statement", "switch_statement").
		Kind(chunkers.KindErrorHandling, "try_statement").
		Kind(chunkers.KindLambda, "lambda_expression").
		Kind(chunkers.KindFunctionCall, "call_expression")
}

func cFamilyName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "function_definition", "type_definition":
		return code.DeclaratorName(node.ChildByFieldName("declarator"), source)
	case "call_expression":
		return code.FieldText(node, source, "function")
	}
	return code.DefaultName(node, source)
}
