package languages

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/lua"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// LuaStrategy extracts chunks from Lua source.
type LuaStrategy struct {
	commentSet
}

// NewLuaStrategy creates a new Lua language strategy.
func NewLuaStrategy() *LuaStrategy {
	return &LuaStrategy{commentSet: comments("comment")}
}

// Language returns the language identifier.
func (s *LuaStrategy) Language() string {
	return "lua"
}

// Aliases returns alternative language names.
func (s *LuaStrategy) Aliases() []string {
	return nil
}

// Extensions returns file extensions this strategy handles.
func (s *LuaStrategy) Extensions() []string {
	return []string{".lua"}
}

// GetLanguage returns the tree-sitter Language for Lua.
func (s *LuaStrategy) GetLanguage() *sitter.Language {
	return lua.GetLanguage()
}

// ChunkQuery matches named and local function statements.
func (s *LuaStrategy) ChunkQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindFunction, "function_statement").
		String()
}

// CommentQuery matches -- and --[[ ]] comments.
func (s *LuaStrategy) CommentQuery() string {
	return s.query(s.GetLanguage())
}

// NestedQuery matches loops, conditionals, do blocks, anonymous functions
// and calls.
func (s *LuaStrategy) NestedQuery() string {
	return code.NewQueryBuilder(s.GetLanguage()).
		Kind(chunkers.KindLoop, "for_statement", "while_statement", "repeat_statement").
		Kind(chunkers.KindConditional, "if_statement").
		Kind(chunkers.KindCodeBlock, "do_statement").
		Kind(chunkers.KindLambda, "function").
		Kind(chunkers.KindFunctionCall, "function_call").
		String()
}

// ExtractName returns the function name, including any table prefix
// (M.greet, obj:draw), or the callee of a call.
func (s *LuaStrategy) ExtractName(node *sitter.Node, source []byte) string {
	if name := code.ChildText(node, source, "function_name"); name != "" {
		return name
	}
	if node.Type() == "function_call" {
		return code.FieldText(node, source, "prefix")
	}
	return code.DefaultName(node, source)
}
