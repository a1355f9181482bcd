package code

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// ExtractComments returns the character ranges of every comment in the
// tree, sorted by start. Offsets index the whole document.
func ExtractComments(tree *sitter.Tree, source []byte, lang *Language, cache *chunkers.PositionCache) []chunkers.CommentRange {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(lang.CommentQuery, tree.RootNode())

	seen := make(map[chunkers.CommentRange]bool)
	var ranges []chunkers.CommentRange
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			if !lang.Strategy.IsComment(c.Node) {
				continue
			}
			r := chunkers.CommentRange{
				Start: cache.ByteToChar(int(c.Node.StartByte())),
				End:   cache.ByteToChar(int(c.Node.EndByte())),
			}
			if r.Start >= r.End || seen[r] {
				continue
			}
			seen[r] = true
			ranges = append(ranges, r)
		}
	}

	chunkers.SortRanges(ranges)
	return ranges
}

// eachCapture runs q over node and calls fn for every capture named after a
// chunk kind. Helper captures are ignored.
func eachCapture(q *sitter.Query, node *sitter.Node, source []byte, fn func(kind chunkers.Kind, node *sitter.Node)) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, node)

	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			kind, err := chunkers.ParseKind(q.CaptureNameForId(c.Index))
			if err != nil || kind == chunkers.KindFile {
				continue
			}
			fn(kind, c.Node)
		}
	}
}
