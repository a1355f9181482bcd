package languages

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// commentSet provides IsComment and CommentQuery for strategies whose
// comments are a fixed set of node types.
type commentSet struct {
	types code.CommentTypes
}

func comments(nodeTypes ...string) commentSet {
	return commentSet{types: code.NewCommentTypes(nodeTypes...)}
}

// IsComment reports whether node is one of the language's comment types.
func (c commentSet) IsComment(node *sitter.Node) bool {
	return c.types.IsComment(node)
}

func (c commentSet) query(lang *sitter.Language) string {
	return c.types.Query(lang)
}
