package chunkers

import "unicode/utf8"

// PositionCache maps byte offsets of one source text to character offsets
// and records where each line starts. Syntax trees report byte offsets while
// content is sliced and displayed by character.
type PositionCache struct {
	byteToChar []int
	lineStarts []int
	size       int
}

// NewPositionCache builds the lookup tables for source in a single pass.
func NewPositionCache(source string) *PositionCache {
	pc := &PositionCache{
		byteToChar: make([]int, len(source)+1),
		lineStarts: []int{0},
		size:       len(source),
	}

	chars := 0
	for i := 0; i < len(source); {
		_, width := utf8.DecodeRuneInString(source[i:])
		for j := i; j < i+width && j < len(source); j++ {
			pc.byteToChar[j] = chars
		}
		if source[i] == '\n' {
			pc.lineStarts = append(pc.lineStarts, i+1)
		}
		chars++
		i += width
	}
	pc.byteToChar[len(source)] = chars

	return pc
}

// ByteToChar returns the index of the character containing byte pos.
// Out-of-range positions are clamped to the first or last valid value.
func (pc *PositionCache) ByteToChar(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= len(pc.byteToChar) {
		return pc.byteToChar[len(pc.byteToChar)-1]
	}
	return pc.byteToChar[pos]
}

// CharCount returns the number of characters in the source.
func (pc *PositionCache) CharCount() int {
	return pc.byteToChar[len(pc.byteToChar)-1]
}

// LineCount returns the number of line-start entries, including the empty
// line that follows a trailing newline.
func (pc *PositionCache) LineCount() int {
	return len(pc.lineStarts)
}

// LineRange returns the [start,end) byte span of a 0-indexed line. The end
// excludes the line's newline. Lines past the end yield an empty span at the
// end of the source.
func (pc *PositionCache) LineRange(line int) (int, int) {
	if line < 0 || line >= len(pc.lineStarts) {
		return pc.size, pc.size
	}
	start := pc.lineStarts[line]
	end := pc.size
	if line+1 < len(pc.lineStarts) {
		end = pc.lineStarts[line+1] - 1
	}
	return start, end
}
