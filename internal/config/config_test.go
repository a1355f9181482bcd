package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

// isolate points every config search location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("GITTYPE_CONFIG_DIR", tmpDir)
	t.Setenv("HOME", tmpDir)

	origDir, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	Reset()
	t.Cleanup(Reset)
	return tmpDir
}

func TestInit_NoConfigFile_UsesDefaults(t *testing.T) {
	isolate(t)

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error when no config file exists: %v", err)
	}
	if path := ConfigFilePath(); path != "" {
		t.Errorf("ConfigFilePath() = %q, want empty string when no config file", path)
	}
	if GetString("log_level") != DefaultLogLevel {
		t.Errorf("log_level = %q, want %q", GetString("log_level"), DefaultLogLevel)
	}

	cfg, err := Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if cfg.Cache.Backend != DefaultCacheBackend {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, DefaultCacheBackend)
	}
}

func TestInit_ConfigInEnvDir_LoadsFromEnvDir(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if ConfigFilePath() != configPath {
		t.Errorf("ConfigFilePath() = %q, want %q", ConfigFilePath(), configPath)
	}
	if GetInt("workers") != 3 {
		t.Errorf("workers = %d, want 3", GetInt("workers"))
	}
}

func TestInit_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	SetConfigFile(configPath)
	if err := Init(); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if GetString("output.format") != "yaml" {
		t.Errorf("output.format = %q, want %q", GetString("output.format"), "yaml")
	}
}

func TestInit_ExplicitFileMissing_ReturnsError(t *testing.T) {
	dir := isolate(t)
	SetConfigFile(filepath.Join(dir, "missing.yaml"))

	if err := Init(); err == nil {
		t.Error("Init() expected error for missing explicit config file")
	}
}

func TestInit_InvalidYAML_ReturnsError(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("workers: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err == nil {
		t.Error("Init() expected error for invalid YAML")
	}
}

func TestBindFlag_OverridesConfig(t *testing.T) {
	isolate(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatal(err)
	}
	if err := BindFlag("log_level", flags.Lookup("log-level")); err != nil {
		t.Fatal(err)
	}
	if GetString("log_level") != "debug" {
		t.Errorf("log_level = %q, want flag value %q", GetString("log_level"), "debug")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/x/y", filepath.Join(home, "x/y")},
		{"~user/x", "~user/x"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
