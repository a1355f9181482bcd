package challenge

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

// idNamespace scopes challenge IDs so equal inputs always map to the same
// UUID across runs and machines.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/unhappychoice/gittype/challenge"))

// Challenge is one chunk rendered at one difficulty.
type Challenge struct {
	ID             string                  `json:"id" yaml:"id" toml:"id"`
	SourceFilePath string                  `json:"source_file_path,omitempty" yaml:"source_file_path,omitempty" toml:"source_file_path,omitempty"`
	CodeContent    string                  `json:"code_content" yaml:"code_content" toml:"code_content"`
	StartLine      int                     `json:"start_line,omitempty" yaml:"start_line,omitempty" toml:"start_line,omitempty"`
	EndLine        int                     `json:"end_line,omitempty" yaml:"end_line,omitempty" toml:"end_line,omitempty"`
	Language       string                  `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	CommentRanges  []chunkers.CommentRange `json:"comment_ranges,omitempty" yaml:"comment_ranges,omitempty" toml:"comment_ranges,omitempty"`
	Difficulty     Difficulty              `json:"difficulty" yaml:"difficulty" toml:"difficulty"`

	// Kind and Name describe the chunk the challenge was cut from.
	Kind chunkers.Kind `json:"kind" yaml:"kind" toml:"kind"`
	Name string        `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
}

// FromChunk builds the challenge for chunk at difficulty d using the whole
// chunk content.
func FromChunk(chunk chunkers.Chunk, d Difficulty) Challenge {
	return FromTruncation(chunk, d, Truncation{
		Content:       chunk.Content,
		CommentRanges: chunk.CommentRanges,
		EndLine:       chunk.EndLine,
	})
}

// FromTruncation builds the challenge for chunk at difficulty d using the
// truncated content t.
func FromTruncation(chunk chunkers.Chunk, d Difficulty, t Truncation) Challenge {
	return Challenge{
		ID:             challengeID(chunk, d, t),
		SourceFilePath: chunk.FilePath,
		CodeContent:    t.Content,
		StartLine:      chunk.StartLine,
		EndLine:        t.EndLine,
		Language:       chunk.Language,
		CommentRanges:  t.CommentRanges,
		Difficulty:     d,
		Kind:           chunk.Kind,
		Name:           chunk.Name,
	}
}

func challengeID(chunk chunkers.Chunk, d Difficulty, t Truncation) string {
	key := make([]byte, 0, len(chunk.FilePath)+len(t.Content)+48)
	key = append(key, chunk.FilePath...)
	key = append(key, 0)
	key = strconv.AppendInt(key, int64(chunk.StartLine), 10)
	key = append(key, ':')
	key = strconv.AppendInt(key, int64(t.EndLine), 10)
	key = append(key, 0)
	key = append(key, chunk.Kind.String()...)
	key = append(key, 0)
	key = append(key, d.String()...)
	key = append(key, 0)
	key = append(key, t.Content...)
	return uuid.NewSHA1(idNamespace, key).String()
}

// DisplayTitle returns "dir/file:start-end", shortening the path to its
// last two elements.
func (c Challenge) DisplayTitle() string {
	if c.SourceFilePath == "" {
		return "Challenge " + c.ID
	}
	path := shortPath(c.SourceFilePath)
	if c.StartLine > 0 && c.EndLine > 0 {
		return fmt.Sprintf("%s:%d-%d", path, c.StartLine, c.EndLine)
	}
	return path
}

// CodeCharacters returns the meaningful character count of the content.
func (c Challenge) CodeCharacters() int {
	return CountCodeCharacters(c.CodeContent, c.CommentRanges)
}

func shortPath(path string) string {
	clean := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(clean)
	parent := filepath.Base(filepath.Dir(clean))
	if parent == "." || parent == "/" || parent == "" {
		return base
	}
	return parent + "/" + base
}
