package version

import (
	"regexp"
	"runtime"
	"strings"
	"testing"
)

var semver = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?$`)

func TestGetVersion_EmbeddedSemver(t *testing.T) {
	got := getVersion()
	if got != strings.TrimSpace(got) {
		t.Errorf("getVersion() = %q, contains surrounding whitespace", got)
	}
	if !semver.MatchString(got) {
		t.Errorf("getVersion() = %q, want semver", got)
	}
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "without grammars",
			info: Info{Version: "1.0.0", GitCommit: "abc1234", BuildDate: "2026-01-10T15:04:05Z", GoVersion: "go1.25.1"},
			want: "Version:    1.0.0\nGit Commit: abc1234\nBuild Date: 2026-01-10T15:04:05Z\nGo Version: go1.25.1",
		},
		{
			name: "with grammars",
			info: Info{Version: "0.1.0", GitCommit: "unknown", BuildDate: "unknown", GoVersion: "go1.25.1", Grammars: 21},
			want: "Version:    0.1.0\nGit Commit: unknown\nBuild Date: unknown\nGo Version: go1.25.1\nGrammars:   21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestInfoShort(t *testing.T) {
	info := Info{Version: "0.3.1", GitCommit: "deadbee-dirty"}
	if got, want := info.Short(), "gittype 0.3.1 (deadbee-dirty)"; got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}

func TestGet(t *testing.T) {
	info := Get()

	if info.Version != getVersion() {
		t.Errorf("Version = %q, want embedded %q", info.Version, getVersion())
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.GitCommit == "" || info.BuildDate == "" {
		t.Errorf("Get() left empty fields: %+v", info)
	}
	if info.Grammars != 0 {
		t.Errorf("Grammars = %d, want 0 until the caller fills it in", info.Grammars)
	}
}

func TestLinkerValuesTakePriority(t *testing.T) {
	oldCommit, oldDate := gitCommit, buildDate
	t.Cleanup(func() { gitCommit, buildDate = oldCommit, oldDate })

	gitCommit, buildDate = "", ""
	if got := getBuildDate(); got != "unknown" {
		t.Errorf("getBuildDate() = %q, want unknown", got)
	}
	commit := getGitCommit()
	if commit != "unknown" && !regexp.MustCompile(`^[0-9a-f]{1,7}(-dirty)?$`).MatchString(commit) {
		t.Errorf("getGitCommit() = %q, want unknown or a short hash", commit)
	}

	gitCommit, buildDate = "1234567", "2026-10-16T00:00:00Z"
	if got := getGitCommit(); got != "1234567" {
		t.Errorf("getGitCommit() = %q, want linker value", got)
	}
	if got := getBuildDate(); got != "2026-10-16T00:00:00Z" {
		t.Errorf("getBuildDate() = %q, want linker value", got)
	}
}

func TestReadBuildInfo_ShortRevision(t *testing.T) {
	revision, _ := readBuildInfo()
	if len(revision) > 7 {
		t.Errorf("readBuildInfo() revision %q longer than 7 characters", revision)
	}
}
