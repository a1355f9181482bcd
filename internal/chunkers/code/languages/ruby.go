package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/ruby"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// RubyStrategy extracts chunks from Ruby source.
type RubyStrategy struct {
	commentSet
}

// NewRubyStrategy creates a new Ruby language strategy.
func NewRubyStrategy() *RubyStrategy {
	return &RubyStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *RubyStrategy) Language() string {
	return "ruby"
}

// Aliases returns alternative language names.
func (s *RubyStrategy) Aliases() []string {
	return []string{"rb"}
}

// Extensions returns file extensions this strategy handles.
func (s *RubyStrategy) Extensions() []string {
	return []string{".rb", ".rake", ".gemspec"}
}

// GetLanguage returns the tree-sitter Language for Ruby.
func (s *RubyStrategy) GetLanguage() *sitter.Language {
	return ruby.GetLanguage()
}

// ChunkQuery matches methods, classes and modules.
func (s *RubyStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindMethod, "method", "singleton_method").
		Kind(chunkers.KindClass, "class", "singleton_class").
		Kind(chunkers.KindModule, "module").
		String()
}

// CommentQuery matches # and =begin/=end comments.
func (s *RubyStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, begin/rescue, blocks and calls.
func (s *RubyStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "while", "until", "for").
		Kind(chunkers.KindConditional, "if", "unless", "case", "case_match").
		Kind(chunkers.KindErrorHandling, "begin").
		Kind(chunkers.KindLambda, "lambda", "do_block", "block").
		Kind(chunkers.KindFunctionCall, "call").
		String()
}

// ExtractName returns the method, class or module name, or the called
// method.
func (s *RubyStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if node.Type() == "call" {
		return code.FieldText(node, source, "method")
	}
	return code.FieldText(node, source, "name")
}
