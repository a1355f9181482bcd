package formatters

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
)

func testDocument() *Document {
	chunks := []chunkers.Chunk{
		{
			Language:      "go",
			Kind:          chunkers.KindFunction,
			Name:          "Add",
			FilePath:      "pkg/add.go",
			StartLine:     3,
			EndLine:       6,
			Content:       "func Add(a, b int) int {\n\t// sum\n\treturn a + b\n}",
			CommentRanges: []chunkers.CommentRange{{Start: 26, End: 32}},
		},
		{
			Language:  "python",
			Kind:      chunkers.KindFile,
			Name:      "a|b.py",
			FilePath:  "scripts/a|b.py",
			StartLine: 1,
			EndLine:   1,
			Content:   "print(1)\n",
		},
	}
	challenges := []challenge.Challenge{
		challenge.FromChunk(chunks[0], challenge.Wild),
		challenge.FromChunk(chunks[1], challenge.Zen),
	}

	doc := NewDocument("/repo", chunks, challenges)
	doc.ExportedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return doc
}

func TestNewDocument(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, DocumentVersion, doc.Version)
	assert.Equal(t, 2, doc.Summary.ChunkCount)
	assert.Equal(t, 2, doc.Summary.ChallengeCount)
	assert.Equal(t, map[string]int{"go": 1, "python": 1}, doc.Summary.Languages)
	assert.Equal(t, map[string]int{"wild": 1, "zen": 1}, doc.Summary.Difficulties)

	empty := NewDocument("", nil, nil)
	assert.Nil(t, empty.Summary.Languages)
	assert.Zero(t, empty.Summary.ChunkCount)
}

func TestFormatterMetadata(t *testing.T) {
	tests := []struct {
		formatter   Formatter
		name        string
		contentType string
		extension   string
	}{
		{NewJSONFormatter(true), "json", "application/json", ".json"},
		{NewYAMLFormatter(), "yaml", "application/yaml", ".yaml"},
		{NewTOMLFormatter(), "toml", "application/toml", ".toml"},
		{NewTOONFormatter(), "toon", "text/plain", ".toon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.formatter.Name())
			assert.Equal(t, tt.contentType, tt.formatter.ContentType())
			assert.Equal(t, tt.extension, tt.formatter.FileExtension())
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	doc := testDocument()

	t.Run("Pretty", func(t *testing.T) {
		data, err := NewJSONFormatter(true).Format(doc)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  \"version\": 1")

		var decoded Document
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, doc.Chunks, decoded.Chunks)
		assert.Equal(t, doc.Challenges, decoded.Challenges)
	})

	t.Run("Compact", func(t *testing.T) {
		data, err := NewJSONFormatter(false).Format(doc)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "\n")
		assert.Contains(t, string(data), `"kind":"function"`)
		assert.Contains(t, string(data), `"difficulty":"wild"`)
	})
}

func TestYAMLFormatter(t *testing.T) {
	doc := testDocument()
	data, err := NewYAMLFormatter().Format(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "kind: function")
	assert.Contains(t, out, "difficulty: zen")

	var decoded Document
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Chunks, decoded.Chunks)
	assert.Equal(t, doc.Challenges[0].CodeContent, decoded.Challenges[0].CodeContent)
}

func TestTOMLFormatter(t *testing.T) {
	doc := testDocument()
	data, err := NewTOMLFormatter().Format(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "[[chunks]]")
	assert.Contains(t, out, "[[challenges]]")

	var decoded Document
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, doc.Chunks, decoded.Chunks)
	assert.Equal(t, doc.Summary, decoded.Summary)
}

func TestTOONFormatter(t *testing.T) {
	doc := testDocument()
	data, err := NewTOONFormatter().Format(doc)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "@gt v=1 t=2024-01-15T10:30:00Z", lines[0])
	assert.Equal(t, "#c", lines[1])
	assert.Equal(t, "go|function|Add|pkg/add.go|3-6|4", lines[2])
	assert.Equal(t, `python|file|a\|b.py|scripts/a\|b.py|1-1|1`, lines[3])
	assert.Equal(t, "#x", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], doc.Challenges[0].ID[:8]+"|wild|go|pkg/add.go|3-6|"))
	assert.True(t, strings.HasPrefix(lines[6], doc.Challenges[1].ID[:8]+"|zen|python|"))
	assert.Equal(t, "@stats c=2 x=2", lines[7])
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is longer", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max))
	}
}
