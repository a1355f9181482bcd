package walker

import (
	"testing"
)

func TestFilter_ShouldProcessFile(t *testing.T) {
	tests := []struct {
		name       string
		includes   []string
		excludes   []string
		skipHidden bool
		path       string
		want       bool
	}{
		{
			name: "no patterns allows all",
			path: "src/main.go",
			want: true,
		},
		{
			name:     "exclude by extension glob",
			excludes: []string{"**/*.min.js"},
			path:     "web/app.min.js",
			want:     false,
		},
		{
			name:     "exclude matches at root",
			excludes: []string{"**/*.pb.go"},
			path:     "api.pb.go",
			want:     false,
		},
		{
			name:     "exclude directory contents",
			excludes: []string{"**/vendor/**"},
			path:     "vendor/github.com/x/y.go",
			want:     false,
		},
		{
			name:     "allow non-excluded file",
			excludes: []string{"**/vendor/**"},
			path:     "internal/vendorlike.go",
			want:     true,
		},
		{
			name:     "include restricts",
			includes: []string{"src/**/*.rs"},
			path:     "tests/it.rs",
			want:     false,
		},
		{
			name:     "include matches",
			includes: []string{"src/**/*.rs"},
			path:     "src/a/b/lib.rs",
			want:     true,
		},
		{
			name:     "exclude wins over include",
			includes: []string{"**/*.go"},
			excludes: []string{"**/*_test.go"},
			path:     "pkg/x_test.go",
			want:     false,
		},
		{
			name:       "skip hidden file",
			skipHidden: true,
			path:       "src/.secret.go",
			want:       false,
		},
		{
			name:       "allow hidden file when not skipping",
			skipHidden: false,
			path:       "src/.secret.go",
			want:       true,
		},
		{
			name:     "invalid pattern ignored",
			excludes: []string{"[unclosed"},
			path:     "main.go",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(tt.includes, tt.excludes, tt.skipHidden)
			if got := f.ShouldProcessFile(tt.path); got != tt.want {
				t.Errorf("ShouldProcessFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestFilter_ShouldProcessDir(t *testing.T) {
	tests := []struct {
		name       string
		excludes   []string
		skipHidden bool
		path       string
		want       bool
	}{
		{
			name: "root always processed",
			path: ".",
			want: true,
		},
		{
			name:     "prune excluded directory",
			excludes: []string{"**/node_modules/**"},
			path:     "node_modules",
			want:     false,
		},
		{
			name:     "prune nested excluded directory",
			excludes: []string{"**/node_modules/**"},
			path:     "web/node_modules",
			want:     false,
		},
		{
			name:     "keep similar directory",
			excludes: []string{"**/node_modules/**"},
			path:     "web/node_modules_docs",
			want:     true,
		},
		{
			name:       "skip hidden directory",
			skipHidden: true,
			path:       ".git",
			want:       false,
		},
		{
			name:       "keep hidden directory when not skipping",
			skipHidden: false,
			path:       ".github",
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFilter(nil, tt.excludes, tt.skipHidden)
			if got := f.ShouldProcessDir(tt.path); got != tt.want {
				t.Errorf("ShouldProcessDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
