package chunkers

import (
	"strings"
	"testing"
)

func TestNormalizeIndent(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		node        string
		row         int
		wantContent string
		wantIndent  string
	}{
		{
			name:        "column zero",
			source:      "fn a() {}\n",
			node:        "fn a() {}",
			row:         0,
			wantContent: "fn a() {}",
		},
		{
			name:        "spaces",
			source:      "impl X {\n    fn a() {}\n}",
			node:        "fn a() {}",
			row:         1,
			wantContent: "    fn a() {}",
			wantIndent:  "    ",
		},
		{
			name:        "tabs",
			source:      "class A:\n\tdef b(self):\n\t\tpass",
			node:        "def b(self):\n\t\tpass",
			row:         1,
			wantContent: "\tdef b(self):\n\t\tpass",
			wantIndent:  "\t",
		},
		{
			name:        "mixed",
			source:      "{\n \t  call()\n}",
			node:        "call()",
			row:         1,
			wantContent: " \t  call()",
			wantIndent:  " \t  ",
		},
		{
			name:        "full-width space",
			source:      "x\n　　y()\n",
			node:        "y()",
			row:         1,
			wantContent: "　　y()",
			wantIndent:  "　　",
		},
		{
			name:        "starts after code",
			source:      "let f = foo(1)\n",
			node:        "foo(1)",
			row:         0,
			wantContent: "foo(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewPositionCache(tt.source)
			lineStart, _ := cache.LineRange(tt.row)
			column := strings.Index(tt.source[lineStart:], tt.node)

			content, indent := NormalizeIndent(tt.node, tt.source, tt.row, column, cache)
			if content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
			if indent != tt.wantIndent {
				t.Errorf("indent = %q, want %q", indent, tt.wantIndent)
			}
		})
	}
}

func TestNormalizeIndent_StaleColumnIsBounded(t *testing.T) {
	src := "a\n  b\n"
	cache := NewPositionCache(src)

	content, indent := NormalizeIndent("b", src, 1, 40, cache)
	if content != "b" || indent != "" {
		t.Errorf("NormalizeIndent() = (%q,%q), want unchanged content", content, indent)
	}
}
