package languages_test

import (
	"context"
	"testing"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code/languages"
)

func registry(t *testing.T) *code.Registry {
	t.Helper()
	r, err := languages.DefaultRegistry()
	require.NoError(t, err)
	return r
}

func TestDefaultRegistry(t *testing.T) {
	r := registry(t)

	assert.Len(t, r.Languages(), len(languages.AllStrategies()))

	again, err := languages.DefaultRegistry()
	require.NoError(t, err)
	assert.Same(t, r, again, "DefaultRegistry should be a singleton")
}

func TestAllStrategiesCompile(t *testing.T) {
	for _, s := range languages.AllStrategies() {
		t.Run(s.Language(), func(t *testing.T) {
			r, err := code.NewRegistry(s)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Extensions())

			lang, ok := r.Get(s.Language())
			require.True(t, ok)
			assert.NotEmpty(t, kindCaptures(lang.ChunkQuery), "chunk query captures no chunk kind")
			assert.NotEmpty(t, kindCaptures(lang.NestedQuery), "nested query captures no chunk kind")
		})
	}
}

func TestAllStrategiesHaveExtractionCase(t *testing.T) {
	covered := map[string]bool{
		"go": true, "python": true, "rust": true, "javascript": true,
		"java": true, "c": true, "ruby": true, "elixir": true, "lua": true,
		"bash": true, "typescript": true, "tsx": true, "cpp": true,
		"csharp": true, "php": true, "kotlin": true, "swift": true,
		"scala": true, "ocaml": true, "elm": true, "groovy": true,
	}
	for _, s := range languages.AllStrategies() {
		assert.True(t, covered[s.Language()], "%s has no TestExtraction case", s.Language())
	}
}

func kindCaptures(q *sitter.Query) []string {
	var kinds []string
	for i := uint32(0); i < q.CaptureCount(); i++ {
		name := q.CaptureNameForId(i)
		if kind, err := chunkers.ParseKind(name); err == nil && kind != chunkers.KindFile {
			kinds = append(kinds, name)
		}
	}
	return kinds
}

func TestRegistryLookup(t *testing.T) {
	r := registry(t)

	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"lib.rs", "rust"},
		{"app.py", "python"},
		{"index.js", "javascript"},
		{"index.mjs", "javascript"},
		{"app.ts", "typescript"},
		{"App.tsx", "tsx"},
		{"Main.java", "java"},
		{"util.c", "c"},
		{"util.hpp", "cpp"},
		{"Program.cs", "csharp"},
		{"app.rb", "ruby"},
		{"index.php", "php"},
		{"Main.kt", "kotlin"},
		{"App.swift", "swift"},
		{"Main.scala", "scala"},
		{"lib.ex", "elixir"},
		{"init.lua", "lua"},
		{"build.sh", "bash"},
		{"main.ml", "ocaml"},
		{"Main.elm", "elm"},
		{"build.gradle", "groovy"},
		{"UPPER.GO", "go"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := r.ForPath(tt.path)
			require.True(t, ok, "no language for %s", tt.path)
			assert.Equal(t, tt.want, lang.Name())
		})
	}

	_, ok := r.ForPath("README.md")
	assert.False(t, ok)
	_, ok = r.ForPath("Makefile")
	assert.False(t, ok)
}

func TestRegistryAliases(t *testing.T) {
	r := registry(t)

	for alias, want := range map[string]string{
		"py":     "python",
		"js":     "javascript",
		"ts":     "typescript",
		"sh":     "bash",
		"Golang": "go",
	} {
		lang, ok := r.Get(alias)
		if !assert.True(t, ok, "alias %q", alias) {
			continue
		}
		assert.Equal(t, want, lang.Name(), "alias %q", alias)
	}
}

func TestExtraction(t *testing.T) {
	r := registry(t)

	tests := []struct {
		name   string
		path   string
		source string
		kind   chunkers.Kind
		want   string
	}{
		{
			name:   "go function",
			path:   "add.go",
			source: "package m\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n",
			kind:   chunkers.KindFunction,
			want:   "Add",
		},
		{
			name:   "python function",
			path:   "greet.py",
			source: "def greet(name):\n    return \"hi \" + name\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "python class",
			path:   "box.py",
			source: "class Box:\n    def size(self):\n        return 1\n",
			kind:   chunkers.KindClass,
			want:   "Box",
		},
		{
			name:   "rust function",
			path:   "lib.rs",
			source: "fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n",
			kind:   chunkers.KindFunction,
			want:   "add",
		},
		{
			name:   "rust struct",
			path:   "point.rs",
			source: "struct Point {\n    x: i32,\n    y: i32,\n}\n",
			kind:   chunkers.KindStruct,
			want:   "Point",
		},
		{
			name:   "javascript function",
			path:   "sum.js",
			source: "function sum(xs) {\n  return xs.reduce((a, b) => a + b, 0);\n}\n",
			kind:   chunkers.KindFunction,
			want:   "sum",
		},
		{
			name:   "java class",
			path:   "Point.java",
			source: "class Point {\n  int x;\n  int y;\n}\n",
			kind:   chunkers.KindClass,
			want:   "Point",
		},
		{
			name:   "c function",
			path:   "add.c",
			source: "int add(int a, int b) {\n  return a + b;\n}\n",
			kind:   chunkers.KindFunction,
			want:   "add",
		},
		{
			name:   "ruby method",
			path:   "hello.rb",
			source: "def hello\n  puts \"hi\"\nend\n",
			kind:   chunkers.KindMethod,
			want:   "hello",
		},
		{
			name:   "elixir module",
			path:   "greeter.ex",
			source: "defmodule Greeter do\n  def hello(name) do\n    \"hi \" <> name\n  end\nend\n",
			kind:   chunkers.KindModule,
			want:   "Greeter",
		},
		{
			name:   "elixir def",
			path:   "greeter.ex",
			source: "defmodule Greeter do\n  def hello(name) do\n    \"hi \" <> name\n  end\nend\n",
			kind:   chunkers.KindFunction,
			want:   "hello",
		},
		{
			name:   "lua function",
			path:   "greet.lua",
			source: "function greet(name)\n  return \"hi \" .. name\nend\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "lua table function",
			path:   "m.lua",
			source: "local M = {}\n\nfunction M.greet(name)\n  return \"hi \" .. name\nend\n\nreturn M\n",
			kind:   chunkers.KindFunction,
			want:   "M.greet",
		},
		{
			name:   "lua local function",
			path:   "helper.lua",
			source: "local function helper(x)\n  return x * 2\nend\n",
			kind:   chunkers.KindFunction,
			want:   "helper",
		},
		{
			name:   "typescript interface",
			path:   "point.ts",
			source: "interface Point {\n  x: number;\n  y: number;\n}\n",
			kind:   chunkers.KindInterface,
			want:   "Point",
		},
		{
			name:   "tsx function",
			path:   "App.tsx",
			source: "function App() {\n  return <div>hi</div>;\n}\n",
			kind:   chunkers.KindFunction,
			want:   "App",
		},
		{
			name:   "cpp class",
			path:   "point.cpp",
			source: "class Point {\npublic:\n  int x;\n  int y;\n};\n",
			kind:   chunkers.KindClass,
			want:   "Point",
		},
		{
			name:   "csharp class",
			path:   "Point.cs",
			source: "class Point\n{\n    public int X;\n    public int Y;\n}\n",
			kind:   chunkers.KindClass,
			want:   "Point",
		},
		{
			name:   "php function",
			path:   "greet.php",
			source: "<?php\nfunction greet($name) {\n  return \"hi \" . $name;\n}\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "kotlin function",
			path:   "Greet.kt",
			source: "fun greet(name: String): String {\n    return \"hi \" + name\n}\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "swift function",
			path:   "Greet.swift",
			source: "func greet(name: String) -> String {\n    return \"hi \" + name\n}\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "scala object",
			path:   "Greeter.scala",
			source: "object Greeter {\n  def greet(name: String): String = \"hi \" + name\n}\n",
			kind:   chunkers.KindClass,
			want:   "Greeter",
		},
		{
			name:   "ocaml let binding",
			path:   "greet.ml",
			source: "let greet name =\n  \"hi \" ^ name\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "elm value",
			path:   "Main.elm",
			source: "module Main exposing (..)\n\ngreet name =\n    \"hi \" ++ name\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
		{
			name:   "groovy class",
			path:   "Example.groovy",
			source: "class Example {\n   static void main(String[] args) {\n      println('Hello World');\n   }\n}\n",
			kind:   chunkers.KindClass,
			want:   "Example",
		},
		{
			name:   "bash function",
			path:   "greet.sh",
			source: "greet() {\n  echo \"hi $1\"\n}\n",
			kind:   chunkers.KindFunction,
			want:   "greet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lang, ok := r.ForPath(tt.path)
			require.True(t, ok)

			chunks := extract(t, lang, tt.path, tt.source)
			require.NotEmpty(t, chunks)
			assert.Equal(t, chunkers.KindFile, chunks[0].Kind)

			var found bool
			for _, c := range chunks {
				if c.Kind == tt.kind && c.Name == tt.want {
					found = true
					break
				}
			}
			assert.True(t, found, "no %v chunk named %q in %v", tt.kind, tt.want, summarize(chunks))
		})
	}
}

func TestExtraction_NestedChunks(t *testing.T) {
	r := registry(t)

	tests := []struct {
		path   string
		source string
		kind   chunkers.Kind
	}{
		{
			path: "loop.py",
			source: "def total(items):\n" +
				"    result = 0\n" +
				"    for item in items:\n" +
				"        result += item.value\n" +
				"    return result\n",
			kind: chunkers.KindLoop,
		},
		{
			path: "branch.rs",
			source: "fn sign(x: i32) -> i32 {\n" +
				"    if x > 0 {\n" +
				"        return 1;\n" +
				"    }\n" +
				"    0\n" +
				"}\n",
			kind: chunkers.KindConditional,
		},
		{
			path: "count.lua",
			source: "function count(items)\n" +
				"  local n = 0\n" +
				"  for _, item in ipairs(items) do\n" +
				"    n = n + item.size\n" +
				"  end\n" +
				"  return n\n" +
				"end\n",
			kind: chunkers.KindLoop,
		},
		{
			path: "guard.js",
			source: "function load(path) {\n" +
				"  try {\n" +
				"    return readFileSync(path);\n" +
				"  } catch (err) {\n" +
				"    return null;\n" +
				"  }\n" +
				"}\n",
			kind: chunkers.KindErrorHandling,
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := r.ForPath(tt.path)
			require.True(t, ok)

			var found bool
			for _, c := range extract(t, lang, tt.path, tt.source) {
				if c.Kind == tt.kind {
					found = true
					assert.GreaterOrEqual(t, c.EndLine-c.StartLine+1, code.MinNestedLines)
				}
			}
			assert.True(t, found, "no %v chunk", tt.kind)
		})
	}
}

func TestExtraction_CommentRangeBounds(t *testing.T) {
	r := registry(t)

	sources := map[string]string{
		"a.py":  "# ünïcode\ndef f(x):\n    # inner\n    if x:\n        return x  # tail\n    return 0\n",
		"a.rs":  "/// doc ✓\nfn f(x: i32) -> i32 {\n    // inner\n    match x {\n        0 => 1, // zero\n        _ => x,\n    }\n}\n",
		"a.js":  "/** doc */\nfunction f(x) {\n  // inner ü\n  for (const y of x) {\n    console.log(y); /* log */\n  }\n}\n",
		"a.rb":  "# top\ndef f(x)\n  # inner\n  x.each do |y|\n    puts y # print\n  end\nend\n",
		"a.lua": "-- top\nfunction f(x)\n  -- inner\n  for i = 1, x do\n    print(i) -- out\n  end\nend\n",
	}

	for path, source := range sources {
		t.Run(path, func(t *testing.T) {
			lang, ok := r.ForPath(path)
			require.True(t, ok)

			for _, c := range extract(t, lang, path, source) {
				n := utf8.RuneCountInString(c.Content)
				for _, rg := range c.CommentRanges {
					assert.True(t, rg.Start >= 0 && rg.Start <= rg.End && rg.End <= n,
						"%v %q: range %v outside %d chars", c.Kind, c.Name, rg, n)
				}
				assert.LessOrEqual(t, c.StartLine, c.EndLine)
			}
		})
	}
}

func extract(t *testing.T, lang *code.Language, path, source string) []chunkers.Chunk {
	t.Helper()
	tree, err := lang.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	defer tree.Close()
	return code.NewExtractor().Extract(tree, []byte(source), path, lang)
}

func summarize(chunks []chunkers.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Kind.String() + ":" + c.Name
	}
	return out
}
