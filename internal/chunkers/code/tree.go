package code

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parse produces a syntax tree for source. Parsers are pooled per language
// because a tree-sitter parser cannot be shared between goroutines. The
// caller owns the returned tree and must Close it.
func (l *Language) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	parser := l.parsers.Get().(*sitter.Parser)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		parser.Reset()
		l.parsers.Put(parser)
		return nil, fmt.Errorf("tree-sitter parse failed; %w", err)
	}
	l.parsers.Put(parser)

	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("tree-sitter produced no root node")
	}
	return tree, nil
}
