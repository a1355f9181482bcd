package formatters

import (
	"bytes"
	"fmt"
	"strings"
)

// TOONFormatter formats documents in Token-Optimized Notation.
// TOON is a compact line-oriented listing that omits code content and
// keeps one record per chunk or challenge.
//
// Format:
//
//	@gt v=1 t=2024-01-01T00:00:00Z
//	#c lang|kind|name|path|start-end|lines
//	#x id|difficulty|lang|path|start-end|chars
//	@stats c=100 x=250
type TOONFormatter struct{}

// NewTOONFormatter creates a new TOON formatter.
func NewTOONFormatter() *TOONFormatter {
	return &TOONFormatter{}
}

// Name returns the formatter name.
func (f *TOONFormatter) Name() string {
	return "toon"
}

// ContentType returns the MIME content type.
func (f *TOONFormatter) ContentType() string {
	return "text/plain"
}

// FileExtension returns the typical file extension.
func (f *TOONFormatter) FileExtension() string {
	return ".toon"
}

// Format converts the document to TOON format.
func (f *TOONFormatter) Format(doc *Document) ([]byte, error) {
	var buf bytes.Buffer

	// Header
	fmt.Fprintf(&buf, "@gt v=%d t=%s\n",
		doc.Version,
		doc.ExportedAt.Format("2006-01-02T15:04:05Z"))

	if len(doc.Chunks) > 0 {
		buf.WriteString("#c\n")
		for _, c := range doc.Chunks {
			fmt.Fprintf(&buf, "%s|%s|%s|%s|%d-%d|%d\n",
				c.Language,
				c.Kind,
				escapeTOON(truncate(c.Name, 60)),
				escapeTOON(c.FilePath),
				c.StartLine,
				c.EndLine,
				c.LineCount())
		}
	}

	if len(doc.Challenges) > 0 {
		buf.WriteString("#x\n")
		for _, c := range doc.Challenges {
			fmt.Fprintf(&buf, "%s|%s|%s|%s|%d-%d|%d\n",
				shortID(c.ID),
				c.Difficulty,
				c.Language,
				escapeTOON(c.SourceFilePath),
				c.StartLine,
				c.EndLine,
				c.CodeCharacters())
		}
	}

	// Stats footer
	fmt.Fprintf(&buf, "@stats c=%d x=%d\n",
		doc.Summary.ChunkCount,
		doc.Summary.ChallengeCount)

	return buf.Bytes(), nil
}

// truncate shortens a string to max length, adding ellipsis if needed.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// escapeTOON escapes special characters for TOON format.
func escapeTOON(s string) string {
	// Replace pipe and newline which are delimiters
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// shortID keeps the first UUID group, which is enough to tell records apart
// in a listing.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
