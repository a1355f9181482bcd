package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
	"github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/progress"
)

func testdataRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", "..", "testdata", "code"))
	require.NoError(t, err)
	return root
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Cache.Backend = "none"
	cfg.Workers = 2
	return &cfg
}

func TestNewPipeline_UnknownLanguage(t *testing.T) {
	cfg := newConfig()
	cfg.Extraction.Languages = []string{"go", "fortran"}

	_, err := NewPipeline(cfg, quietLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrUnsupportedLanguage))
}

func TestPipeline_Extract(t *testing.T) {
	p, err := NewPipeline(newConfig(), quietLogger())
	require.NoError(t, err)

	chunks, stats, err := p.Extract(context.Background(), testdataRoot(t), progress.Nop{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, len(chunks), stats.Chunks)

	files := make(map[string]bool)
	names := make(map[string]bool)
	for _, c := range chunks {
		if c.Kind == chunkers.KindFile {
			files[c.Language] = true
		}
		names[c.Name] = true
	}
	assert.True(t, files["go"])
	assert.True(t, files["python"])
	for _, want := range []string{"Scoreboard", "NewScoreboard", "Record", "Best", "average", "Timer"} {
		assert.True(t, names[want], "missing chunk %q", want)
	}
}

func TestPipeline_ExtractLanguageFilter(t *testing.T) {
	cfg := newConfig()
	cfg.Extraction.Languages = []string{"python"}
	p, err := NewPipeline(cfg, quietLogger())
	require.NoError(t, err)

	chunks, _, err := p.Extract(context.Background(), testdataRoot(t), progress.Nop{})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.Equal(t, "python", c.Language)
	}
}

func TestPipeline_GenerateWithCache(t *testing.T) {
	cfg := newConfig()
	cfg.Cache.Backend = "bolt"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "challenges.db")
	p, err := NewPipeline(cfg, quietLogger())
	require.NoError(t, err)

	ctx := context.Background()
	chunks, _, err := p.Extract(ctx, testdataRoot(t), progress.Nop{})
	require.NoError(t, err)

	first, hit, err := p.Generate(ctx, chunks, true, progress.Nop{})
	require.NoError(t, err)
	assert.False(t, hit)
	require.NotEmpty(t, first)

	second, hit, err := p.Generate(ctx, chunks, true, progress.Nop{})
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, len(first), len(second))

	zen := 0
	for _, c := range second {
		if c.Difficulty == challenge.Zen {
			zen++
		}
	}
	assert.Equal(t, 2, zen, "one zen challenge per file")
}

func TestPipeline_GenerateUnavailableCache(t *testing.T) {
	cfg := newConfig()
	cfg.Cache.Backend = "redis"
	cfg.Cache.RedisAddr = "127.0.0.1:1"
	p, err := NewPipeline(cfg, quietLogger())
	require.NoError(t, err)

	chunks := []chunkers.Chunk{{
		Language: "go", Kind: chunkers.KindFunction, Name: "f", FilePath: "f.go",
		StartLine: 1, EndLine: 1, Content: "func f() { println(\"typing practice\") }",
	}}
	challenges, hit, err := p.Generate(context.Background(), chunks, true, progress.Nop{})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotEmpty(t, challenges)
}

func TestNewReporter(t *testing.T) {
	var buf bytes.Buffer
	reporter, finish := NewReporter(&buf, false, quietLogger())
	_, isBar := reporter.(*progress.BarReporter)
	assert.False(t, isBar)
	finish()

	reporter, finish = NewReporter(&buf, true, quietLogger())
	_, isBar = reporter.(*progress.BarReporter)
	assert.True(t, isBar)
	finish()
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, "", []byte("abc")))
	assert.Equal(t, "abc\n", buf.String())

	path := filepath.Join(t.TempDir(), "sub", "out.json")
	require.NoError(t, WriteOutput(&buf, path, []byte("{}")))
	assert.FileExists(t, path)
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveRoot([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	_, err = ResolveRoot([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}
