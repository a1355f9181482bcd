package languages

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/elixir"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// ElixirStrategy extracts chunks from Elixir source. Elixir definitions are
// ordinary calls (def, defmodule, ...) so the queries match call targets by
// name.
type ElixirStrategy struct {
	commentSet
}

// NewElixirStrategy creates a new Elixir language strategy.
func NewElixirStrategy() *ElixirStrategy {
	return &ElixirStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *ElixirStrategy) Language() string {
	return "elixir"
}

// Aliases returns alternative language names.
func (s *ElixirStrategy) Aliases() []string {
	return []string{"ex"}
}

// Extensions returns file extensions this strategy handles.
func (s *ElixirStrategy) Extensions() []string {
	return []string{".ex", ".exs"}
}

// GetLanguage returns the tree-sitter Language for Elixir.
func (s *ElixirStrategy) GetLanguage() *sitter.Language {
	return elixir.GetLanguage()
}

func elixirCall(keywords, capture string) string {
	return `(call target: (identifier) @_kw (#match? @_kw "^(` + keywords + `)$")) @` + capture
}

// ChunkQuery matches def-style definitions, modules, protocols,
// implementations and structs.
func (s *ElixirStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Pattern(elixirCall("def|defp|defmacro|defmacrop|defguard|defguardp|defdelegate", "function"), "call", "identifier").
		Pattern(elixirCall("defmodule", "module"), "call", "identifier").
		Pattern(elixirCall("defprotocol", "interface"), "call", "identifier").
		Pattern(elixirCall("defimpl", "class"), "call", "identifier").
		Pattern(elixirCall("defstruct|defexception", "struct"), "call", "identifier").
		String()
}

// CommentQuery matches # comments.
func (s *ElixirStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches control-flow macros, comprehensions, anonymous
// functions and remote calls.
func (s *ElixirStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Pattern(elixirCall("if|unless|case|cond|with", "conditional"), "call", "identifier").
		Pattern(elixirCall("for", "comprehension"), "call", "identifier").
		Pattern(elixirCall("try|receive", "error_handling"), "call", "identifier").
		Kind(chunkers.KindLambda, "anonymous_function").
		Pattern("(call target: (dot)) @function_call", "call", "dot").
		String()
}

// ExtractName returns the defined function or module name.
func (s *ElixirStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if node.Type() != "call" {
		return ""
	}
	target := code.FieldText(node, source, "target")
	args := code.ChildOfType(node, "arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return target
	}

	first := args.NamedChild(0)
	switch first.Type() {
	case "alias", "identifier":
		return strings.TrimSpace(first.Content(source))
	case "call":
		return code.FieldText(first, source, "target")
	case "binary_operator":
		left := first.ChildByFieldName("left")
		if left != nil && left.Type() == "call" {
			return code.FieldText(left, source, "target")
		}
		if left != nil {
			return strings.TrimSpace(left.Content(source))
		}
	}
	return target
}
