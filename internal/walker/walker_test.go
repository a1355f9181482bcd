package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code/languages"
)

func testRegistry(t *testing.T) *code.Registry {
	t.Helper()
	reg, err := code.NewRegistry(languages.NewGoStrategy(), languages.NewPythonStrategy())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

func createTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir; %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write file; %v", err)
		}
	}
	return root
}

func relPaths(t *testing.T, root string, files []code.FileInput) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			t.Fatalf("Rel() error = %v", err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWalker_Walk(t *testing.T) {
	root := createTree(t, map[string]string{
		"main.go":                 "package main\n",
		"pkg/util.go":             "package pkg\n",
		"scripts/tool.py":         "print(1)\n",
		"README.md":               "# readme\n",
		"vendor/dep/dep.go":       "package dep\n",
		"node_modules/x/index.py": "x = 1\n",
		".hidden/secret.go":       "package secret\n",
	})

	w := New(testRegistry(t))
	files, err := w.Walk(context.Background(), root, code.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"main.go", "pkg/util.go", "scripts/tool.py"}
	if got := relPaths(t, root, files); !equalStrings(got, want) {
		t.Errorf("Walk() = %v, want %v", got, want)
	}

	for _, f := range files {
		if f.Language == nil {
			t.Errorf("%s: missing language", f.Path)
		}
	}

	stats := w.Stats()
	if stats.FilesDiscovered != 3 {
		t.Errorf("FilesDiscovered = %d, want 3", stats.FilesDiscovered)
	}
	if stats.FilesUnknown != 1 {
		t.Errorf("FilesUnknown = %d, want 1", stats.FilesUnknown)
	}
	if stats.LastWalkAt.IsZero() {
		t.Error("LastWalkAt not set")
	}
}

func TestWalker_LanguageAllowList(t *testing.T) {
	root := createTree(t, map[string]string{
		"a.go": "package a\n",
		"b.py": "b = 1\n",
	})

	opts := code.DefaultOptions()
	opts.Languages = []string{"python"}

	files, err := New(testRegistry(t)).Walk(context.Background(), root, opts, nil)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got := relPaths(t, root, files); !equalStrings(got, []string{"b.py"}) {
		t.Errorf("Walk() = %v, want [b.py]", got)
	}
}

func TestWalker_IncludePatterns(t *testing.T) {
	root := createTree(t, map[string]string{
		"src/a.go":   "package src\n",
		"tools/b.go": "package tools\n",
	})

	opts := code.DefaultOptions()
	opts.IncludePatterns = []string{"src/**"}

	files, err := New(testRegistry(t)).Walk(context.Background(), root, opts, nil)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if got := relPaths(t, root, files); !equalStrings(got, []string{"src/a.go"}) {
		t.Errorf("Walk() = %v, want [src/a.go]", got)
	}
}

func TestWalker_SingleFile(t *testing.T) {
	root := createTree(t, map[string]string{"one.go": "package one\n"})

	files, err := New(testRegistry(t)).Walk(context.Background(), filepath.Join(root, "one.go"), code.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	_, err := New(testRegistry(t)).Walk(context.Background(), filepath.Join(t.TempDir(), "nope"), code.DefaultOptions(), nil)
	if err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalker_Cancelled(t *testing.T) {
	root := createTree(t, map[string]string{"a.go": "package a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(testRegistry(t)).Walk(ctx, root, code.DefaultOptions(), nil); err == nil {
		t.Error("expected error for cancelled context")
	}
}
