package challenge

import (
	"slices"
	"unicode"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// CountCodeCharacters counts the characters of content that are neither
// whitespace nor inside a comment range. Ranges are character offsets and
// may be given in any order.
func CountCodeCharacters(content string, ranges []chunkers.CommentRange) int {
	sorted := slices.Clone(ranges)
	chunkers.SortRanges(sorted)

	count, pos, cursor := 0, 0, 0
	for _, r := range content {
		if !unicode.IsSpace(r) && !inComment(sorted, &cursor, pos) {
			count++
		}
		pos++
	}
	return count
}

// inComment reports whether pos falls inside a range at or after *cursor.
// Positions must be queried in increasing order; ranges wholly before pos
// are skipped permanently.
func inComment(ranges []chunkers.CommentRange, cursor *int, pos int) bool {
	for *cursor < len(ranges) && ranges[*cursor].End <= pos {
		*cursor++
	}
	for i := *cursor; i < len(ranges) && ranges[i].Start <= pos; i++ {
		if ranges[i].Contains(pos) {
			return true
		}
	}
	return false
}

// ChunkCodeCharacters counts the meaningful characters of a chunk.
func ChunkCodeCharacters(c chunkers.Chunk) int {
	return CountCodeCharacters(c.Content, c.CommentRanges)
}
