package chunkers

import (
	"fmt"
	"strings"
)

// Kind classifies what syntactic construct a chunk was carved from.
type Kind int

const (
	KindFile Kind = iota
	KindFunction
	KindMethod
	KindClass
	KindStruct
	KindEnum
	KindInterface
	KindNamespace
	KindVariable
	KindConst
	KindTypeAlias
	KindModule
	KindConditional
	KindLoop
	KindErrorHandling
	KindFunctionCall
	KindLambda
	KindComprehension
	KindSpecialBlock
	KindCodeBlock
)

var kindNames = [...]string{
	KindFile:          "file",
	KindFunction:      "function",
	KindMethod:        "method",
	KindClass:         "class",
	KindStruct:        "struct",
	KindEnum:          "enum",
	KindInterface:     "interface",
	KindNamespace:     "namespace",
	KindVariable:      "variable",
	KindConst:         "const",
	KindTypeAlias:     "type_alias",
	KindModule:        "module",
	KindConditional:   "conditional",
	KindLoop:          "loop",
	KindErrorHandling: "error_handling",
	KindFunctionCall:  "function_call",
	KindLambda:        "lambda",
	KindComprehension: "comprehension",
	KindSpecialBlock:  "special_block",
	KindCodeBlock:     "code_block",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind from its snake_case name.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown chunk kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsImplementation reports whether the kind is produced by nested
// extraction inside another construct rather than by a top-level match.
func (k Kind) IsImplementation() bool {
	switch k {
	case KindConditional, KindLoop, KindErrorHandling, KindFunctionCall,
		KindLambda, KindComprehension, KindSpecialBlock, KindCodeBlock:
		return true
	}
	return false
}

// Chunk is a syntactically bounded fragment of one source file.
// Chunks are built once during extraction and never mutated afterwards.
type Chunk struct {
	// Language is the registry name of the grammar that produced the chunk.
	Language string `json:"language" yaml:"language" toml:"language"`

	Kind Kind `json:"kind" yaml:"kind" toml:"kind"`

	// Name is the identifier of the construct, empty when it has none.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	FilePath string `json:"file_path" yaml:"file_path" toml:"file_path"`

	// StartLine and EndLine are 1-indexed and inclusive.
	StartLine int `json:"start_line" yaml:"start_line" toml:"start_line"`
	EndLine   int `json:"end_line" yaml:"end_line" toml:"end_line"`

	Content string `json:"content" yaml:"content" toml:"content"`

	// CommentRanges are character offsets into Content, sorted by start.
	CommentRanges []CommentRange `json:"comment_ranges,omitempty" yaml:"comment_ranges,omitempty" toml:"comment_ranges,omitempty"`

	// Indent is the leading whitespace that was re-attached to Content.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty" toml:"indent,omitempty"`
}

// LineCount returns the number of lines spanned by the chunk.
func (c Chunk) LineCount() int {
	if c.EndLine < c.StartLine {
		return 0
	}
	return c.EndLine - c.StartLine + 1
}

// HasValidLines reports whether the line span is 1-indexed and ordered.
func (c Chunk) HasValidLines() bool {
	return c.StartLine > 0 && c.EndLine > 0 && c.StartLine <= c.EndLine
}

// CountLines counts lines the way a line iterator does: a trailing newline
// does not open a new line and empty text has zero lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
