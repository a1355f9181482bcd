package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// PythonStrategy extracts chunks from Python source.
type PythonStrategy struct {
	commentSet
}

// NewPythonStrategy creates a new Python language strategy.
func NewPythonStrategy() *PythonStrategy {
	return &PythonStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *PythonStrategy) Language() string {
	return "python"
}

// Aliases returns alternative language names.
func (s *PythonStrategy) Aliases() []string {
	return []string{"py"}
}

// Extensions returns file extensions this strategy handles.
func (s *PythonStrategy) Extensions() []string {
	return []string{".py", ".pyi", ".pyw"}
}

// GetLanguage returns the tree-sitter Language for Python.
func (s *PythonStrategy) GetLanguage() *sitter.Language {
	return python.GetLanguage()
}

// ChunkQuery matches function and class definitions at any depth.
func (s *PythonStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_definition").
		Kind(chunkers.KindClass, "class_definition").
		String()
}

// CommentQuery matches # comments. Docstrings are string literals and are
// typed like code.
func (s *PythonStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, exception handling, context
// managers, lambdas, comprehensions and calls.
func (s *PythonStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "while_statement").
		Kind(chunkers.KindConditional, "if_statement", "match_statement").
		Kind(chunkers.KindErrorHandling, "try_statement").
		Kind(chunkers.KindSpecialBlock, "with_statement").
		Kind(chunkers.KindLambda, "lambda").
		Kind(chunkers.KindComprehension,
			"list_comprehension",
			"dictionary_comprehension",
			"set_comprehension",
			"generator_expression").
		Kind(chunkers.KindFunctionCall, "call").
		String()
}

// ExtractName returns the definition name or the called function.
func (s *PythonStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if node.Type() == "call" {
		return code.FieldText(node, source, "function")
	}
	return code.FieldText(node, source, "name")
}
