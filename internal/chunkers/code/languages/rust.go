package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// RustStrategy extracts chunks from Rust source.
type RustStrategy struct {
	commentSet
}

// NewRustStrategy creates a new Rust language strategy.
func NewRustStrategy() *RustStrategy {
	return &RustStrategy{commentSet: comments("line_comment", "block_comment")}
}

// Language returns the language identifier.
func (s *RustStrategy) Language() string {
	return "rust"
}

// Aliases returns alternative language names.
func (s *RustStrategy) Aliases() []string {
	return []string{"rs"}
}

// Extensions returns file extensions this strategy handles.
func (s *RustStrategy) Extensions() []string {
	return []string{".rs"}
}

// GetLanguage returns the tree-sitter Language for Rust.
func (s *RustStrategy) GetLanguage() *sitter.Language {
	return rust.GetLanguage()
}

// ChunkQuery matches items: functions, impls, types, traits and modules.
func (s *RustStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_item", "macro_definition").
		Kind(chunkers.KindClass, "impl_item").
		Kind(chunkers.KindStruct, "struct_item", "union_item").
		Kind(chunkers.KindEnum, "enum_item").
		Kind(chunkers.KindInterface, "trait_item").
		Kind(chunkers.KindModule, "mod_item").
		Kind(chunkers.KindTypeAlias, "type_item").
		Kind(chunkers.KindConst, "const_item", "static_item").
		String()
}

// CommentQuery matches line, block and doc comments.
func (s *RustStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, closures, calls and blocks.
func (s *RustStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_expression", "while_expression", "loop_expression").
		Kind(chunkers.KindConditional, "if_expression", "if_let_expression", "match_expression").
		Kind(chunkers.KindLambda, "closure_expression").
		Kind(chunkers.KindSpecialBlock, "unsafe_block", "async_block").
		Kind(chunkers.KindFunctionCall, "call_expression", "macro_invocation").
		String()
}

// ExtractName returns the item name; impl blocks are named by their type.
func (s *RustStrategy) ExtractName(node *sitter.Node, source []byte) string {
	switch node.Type() {
	case "impl_item":
		typ := code.FieldText(node, source, "type")
		if trait := code.FieldText(node, source, "trait"); trait != "" {
			return trait + " for " + typ
		}
		return typ
	case "call_expression":
		return code.FieldText(node, source, "function")
	case "macro_invocation":
		return code.FieldText(node, source, "macro")
	}
	return code.DefaultName(node, source)
}
