package chunkers

import (
	"sort"
	"strings"
)

// CommentRange is a half-open [Start,End) span of character offsets that
// the grammar classifies as a comment.
type CommentRange struct {
	Start int `json:"start" yaml:"start" toml:"start"`
	End   int `json:"end" yaml:"end" toml:"end"`
}

// Len returns the number of characters covered by the range.
func (r CommentRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether character position pos falls inside the range.
func (r CommentRange) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// SortRanges orders ranges by start, then end, in place.
func SortRanges(ranges []CommentRange) {
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
}

// ClipRanges intersects every range with the character window [start,end)
// and translates the overlapping parts so the window begins at zero.
// Ranges that do not overlap the window are dropped.
func ClipRanges(ranges []CommentRange, start, end int) []CommentRange {
	if end < start {
		return nil
	}

	var out []CommentRange
	for _, r := range ranges {
		s := max(r.Start, start)
		e := min(r.End, end)
		if s >= e {
			continue
		}
		out = append(out, CommentRange{Start: s - start, End: e - start})
	}
	return out
}

// ShiftRanges moves every range right by n characters.
func ShiftRanges(ranges []CommentRange, n int) []CommentRange {
	if n == 0 || len(ranges) == 0 {
		return ranges
	}
	out := make([]CommentRange, len(ranges))
	for i, r := range ranges {
		out[i] = CommentRange{Start: r.Start + n, End: r.End + n}
	}
	return out
}

// RemapToChild projects comment ranges of parentSource onto childContent,
// which must be a substring of parentSource. The child is located at its
// first occurrence. A child that cannot be found gets no ranges.
func RemapToChild(parentRanges []CommentRange, parentCache *PositionCache, parentSource, childContent string) []CommentRange {
	if len(parentRanges) == 0 || childContent == "" {
		return nil
	}

	offset := strings.Index(parentSource, childContent)
	if offset < 0 {
		return nil
	}

	start := parentCache.ByteToChar(offset)
	end := parentCache.ByteToChar(offset + len(childContent))
	return ClipRanges(parentRanges, start, end)
}
