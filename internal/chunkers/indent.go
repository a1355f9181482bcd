package chunkers

import (
	"strings"
	"unicode"
)

// NormalizeIndent re-attaches the leading whitespace a syntax node left
// behind on its first line. row and column are the node's 0-indexed start
// position, column measured in bytes. It returns the adjusted content and
// the indentation that was prepended.
//
// When the text before the node on its line is not pure whitespace the node
// starts mid-line after other code, and content is returned unchanged.
func NormalizeIndent(content, source string, row, column int, cache *PositionCache) (string, string) {
	if column <= 0 {
		return content, ""
	}

	lineStart, lineEnd := cache.LineRange(row)
	indentEnd := min(lineStart+column, lineEnd, len(source))
	if lineStart >= indentEnd {
		return content, ""
	}

	indent := source[lineStart:indentEnd]
	if strings.TrimLeftFunc(indent, unicode.IsSpace) != "" {
		return content, ""
	}
	return indent + content, indent
}
