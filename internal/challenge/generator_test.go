package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
)

type countingReporter struct {
	mu     sync.Mutex
	steps  []progress.Step
	counts []int
	total  int
}

func (r *countingReporter) SetStep(step progress.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *countingReporter) SetCurrentFile(string) {}

func (r *countingReporter) SetFileCounts(_ progress.Step, processed, total int, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, processed)
	r.total = total
}

func difficultiesOf(cs []Challenge) []Difficulty {
	out := make([]Difficulty, len(cs))
	for i, c := range cs {
		out[i] = c.Difficulty
	}
	return out
}

func TestGenerate_ScenarioA(t *testing.T) {
	// Five lines of eight characters: 40 meaningful characters.
	chunk := chunkers.Chunk{
		Language:  "go",
		Kind:      chunkers.KindFunction,
		Name:      "f",
		FilePath:  "pkg/f.go",
		StartLine: 10,
		EndLine:   14,
		Content:   linesOf(5, 8),
	}
	require.Equal(t, 40, ChunkCodeCharacters(chunk))

	got := NewGenerator().Generate([]chunkers.Chunk{chunk}, nil)

	require.Len(t, got, 2)
	assert.Equal(t, []Difficulty{Easy, Wild}, difficultiesOf(got))
	for _, c := range got {
		assert.Equal(t, chunk.Content, c.CodeContent)
		assert.Equal(t, 10, c.StartLine)
		assert.Equal(t, 14, c.EndLine)
		assert.Equal(t, "go", c.Language)
		assert.Equal(t, "pkg/f.go", c.SourceFilePath)
	}
}

func TestGenerate_ScenarioB(t *testing.T) {
	chunk := chunkers.Chunk{
		Language:  "go",
		Kind:      chunkers.KindFile,
		Name:      "big.go",
		FilePath:  "big.go",
		StartLine: 1,
		EndLine:   100,
		Content:   linesOf(100, 50),
	}
	require.Equal(t, 5000, ChunkCodeCharacters(chunk))

	got := NewGenerator().Generate([]chunkers.Chunk{chunk}, nil)

	require.Len(t, got, 5)
	assert.Equal(t, []Difficulty{Easy, Normal, Hard, Wild, Zen}, difficultiesOf(got))

	prev := 0
	for _, c := range got[:3] {
		_, maxChars := c.Difficulty.CharLimits()
		assert.LessOrEqual(t, c.CodeCharacters(), maxChars, c.Difficulty)
		assert.Greater(t, c.EndLine, prev, c.Difficulty)
		assert.True(t, strings.HasPrefix(chunk.Content, c.CodeContent))
		prev = c.EndLine
	}
	for _, c := range got[3:] {
		assert.Equal(t, chunk.Content, c.CodeContent, c.Difficulty)
		assert.Equal(t, 100, c.EndLine, c.Difficulty)
	}
}

func TestGenerate_ScenarioC(t *testing.T) {
	base := chunkers.Chunk{
		Language:      "go",
		StartLine:     1,
		EndLine:       1,
		Content:       "// comment",
		CommentRanges: []chunkers.CommentRange{{Start: 0, End: 10}},
	}

	fn := base
	fn.Kind = chunkers.KindFunction
	file := base
	file.Kind = chunkers.KindFile

	assert.Equal(t, []Difficulty{Wild}, difficultiesOf(NewGenerator().Generate([]chunkers.Chunk{fn}, nil)))
	assert.Equal(t, []Difficulty{Wild, Zen}, difficultiesOf(NewGenerator().Generate([]chunkers.Chunk{file}, nil)))
}

func TestGenerate_DropsInvalidChunks(t *testing.T) {
	chunks := []chunkers.Chunk{
		{Kind: chunkers.KindFunction, StartLine: 1, EndLine: 1, Content: "   \n\t"},
		{Kind: chunkers.KindFunction, StartLine: 0, EndLine: 1, Content: "valid()"},
		{Kind: chunkers.KindFunction, StartLine: 5, EndLine: 4, Content: "valid()"},
		{Kind: chunkers.KindFunction, StartLine: 2, EndLine: 2, Content: "kept()"},
	}

	got := NewGenerator().Generate(chunks, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "kept()", got[0].CodeContent)
	assert.Equal(t, Wild, got[0].Difficulty)
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, NewGenerator().Generate(nil, nil))
}

func TestGenerate_LongestFirstAndDeterministic(t *testing.T) {
	var chunks []chunkers.Chunk
	for i := 1; i <= 25; i++ {
		chunks = append(chunks, chunkers.Chunk{
			Kind:      chunkers.KindFunction,
			FilePath:  fmt.Sprintf("f%02d.go", i),
			StartLine: 1,
			EndLine:   1,
			Content:   strings.Repeat("x", i*3),
		})
	}

	first := NewGenerator(WithWorkers(4)).Generate(chunks, nil)
	second := NewGenerator(WithWorkers(1)).Generate(chunks, nil)
	require.Equal(t, first, second)

	assert.Equal(t, "f25.go", first[0].SourceFilePath)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, len(first[i-1].CodeContent), len(first[i].CodeContent))
	}

	ids := make(map[string]bool)
	for _, c := range first {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
	}
}

func TestGenerate_ReportsProgress(t *testing.T) {
	var chunks []chunkers.Chunk
	for i := 0; i < 25; i++ {
		chunks = append(chunks, chunkers.Chunk{
			Kind:      chunkers.KindFunction,
			StartLine: 1,
			EndLine:   1,
			Content:   fmt.Sprintf("call%d()", i),
		})
	}

	reporter := &countingReporter{}
	NewGenerator(WithWorkers(3)).Generate(chunks, reporter)

	assert.Equal(t, []progress.Step{progress.StepGenerating}, reporter.steps)
	assert.Equal(t, 25, reporter.total)
	require.NotEmpty(t, reporter.counts)
	assert.Equal(t, 25, reporter.counts[len(reporter.counts)-1])
	assert.Contains(t, reporter.counts, 10)
	assert.Contains(t, reporter.counts, 20)
}

func TestGenerateContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := []chunkers.Chunk{{Kind: chunkers.KindFunction, StartLine: 1, EndLine: 1, Content: "x()"}}
	got, err := NewGenerator().GenerateContext(ctx, chunks, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, got)
}

func TestChallenge_DisplayTitle(t *testing.T) {
	tests := []struct {
		name string
		c    Challenge
		want string
	}{
		{"nested path", Challenge{SourceFilePath: "/repo/src/lib/util.go", StartLine: 3, EndLine: 9}, "lib/util.go:3-9"},
		{"bare file", Challenge{SourceFilePath: "main.go", StartLine: 1, EndLine: 2}, "main.go:1-2"},
		{"no lines", Challenge{SourceFilePath: "src/main.go"}, "src/main.go"},
		{"no path", Challenge{ID: "abc"}, "Challenge abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.DisplayTitle())
		})
	}
}

func TestFromChunk_StableID(t *testing.T) {
	chunk := chunkers.Chunk{Kind: chunkers.KindLoop, FilePath: "a.go", StartLine: 2, EndLine: 4, Content: "for {\n}\n"}

	a, b := FromChunk(chunk, Easy), FromChunk(chunk, Easy)
	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, FromChunk(chunk, Wild).ID)
	assert.Len(t, a.ID, 36)
}
