package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// BashStrategy extracts chunks from shell scripts.
type BashStrategy struct {
	commentSet
}

// NewBashStrategy creates a new Bash language strategy.
func NewBashStrategy() *BashStrategy {
	return &BashStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *BashStrategy) Language() string {
	return "bash"
}

// Aliases returns alternative language names.
func (s *BashStrategy) Aliases() []string {
	return []string{"sh", "shell", "zsh"}
}

// Extensions returns file extensions this strategy handles.
func (s *BashStrategy) Extensions() []string {
	return []string{".sh", ".bash", ".zsh"}
}

// GetLanguage returns the tree-sitter Language for Bash.
func (s *BashStrategy) GetLanguage() *sitter.Language {
	return bash.GetLanguage()
}

// ChunkQuery matches function definitions.
func (s *BashStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_definition").
		String()
}

// CommentQuery matches # comments. The shebang line is a comment too.
func (s *BashStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, if and case, subshells and multi-line
// pipelines.
func (s *BashStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "c_style_for_statement", "while_statement").
		Kind(chunkers.KindConditional, "if_statement", "case_statement").
		Kind(chunkers.KindCodeBlock, "subshell").
		Kind(chunkers.KindFunctionCall, "pipeline").
		String()
}

// ExtractName returns the function name.
func (s *BashStrategy) ExtractName(node *sitter.Node, source []byte) string {
	return code.FieldText(node, source, "name")
}
