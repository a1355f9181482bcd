package challenge

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// Truncation is the part of a chunk kept for a bounded difficulty.
type Truncation struct {
	Content       string
	CommentRanges []chunkers.CommentRange
	EndLine       int
}

// Split cuts chunk down to the longest prefix of whole lines whose
// meaningful character count fits the difficulty's maximum. When even the
// first non-blank line is over the limit the prefix ends at that line. Trailing blank
// lines are dropped. The boolean is false when nothing but whitespace would
// remain.
//
// A chunk that already fits is returned whole.
func Split(chunk chunkers.Chunk, d Difficulty) (Truncation, bool) {
	_, maxChars := d.CharLimits()
	if strings.TrimSpace(chunk.Content) == "" {
		return Truncation{}, false
	}
	if ChunkCodeCharacters(chunk) <= maxChars {
		return Truncation{
			Content:       chunk.Content,
			CommentRanges: chunk.CommentRanges,
			EndLine:       chunk.EndLine,
		}, true
	}

	lines := strings.Split(chunk.Content, "\n")
	retained := fittingLines(lines, chunk.CommentRanges, maxChars)
	if first := firstCodeLine(lines); retained <= first {
		retained = first + 1
	}
	for retained > 0 && strings.TrimSpace(lines[retained-1]) == "" {
		retained--
	}
	if retained == 0 {
		return Truncation{}, false
	}

	content := strings.Join(lines[:retained], "\n")
	return Truncation{
		Content:       content,
		CommentRanges: chunkers.ClipRanges(chunk.CommentRanges, 0, utf8.RuneCountInString(content)),
		EndLine:       chunk.StartLine + retained - 1,
	}, true
}

// firstCodeLine returns the index of the first line holding anything but
// whitespace, or 0 when there is none.
func firstCodeLine(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return 0
}

// fittingLines returns how many leading lines stay within maxChars
// meaningful characters.
func fittingLines(lines []string, ranges []chunkers.CommentRange, maxChars int) int {
	sorted := slices.Clone(ranges)
	chunkers.SortRanges(sorted)

	count, pos, cursor := 0, 0, 0
	for i, line := range lines {
		for _, r := range line {
			if !unicode.IsSpace(r) && !inComment(sorted, &cursor, pos) {
				count++
			}
			pos++
		}
		if count > maxChars {
			return i
		}
		pos++ // newline
	}
	return len(lines)
}
