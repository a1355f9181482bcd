package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v\n%s", err, scanner.Text())
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestManager_BootstrapWritesTextToConsole(t *testing.T) {
	var console bytes.Buffer
	mgr := NewManagerWithWriter(&console)
	defer func() { _ = mgr.Close() }()

	if mgr.Logger() != mgr.Logger() {
		t.Error("Logger() should return a stable instance")
	}

	mgr.Logger().Info("walking tree", "root", "/src")
	mgr.Logger().Debug("hidden at info")

	out := console.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("bootstrap output should be text, got %q", out)
	}
	if !strings.Contains(out, "root=/src") {
		t.Errorf("bootstrap output missing attrs: %q", out)
	}
	if strings.Contains(out, "hidden at info") {
		t.Error("debug record written at info level")
	}
}

func TestManager_UpgradeFansOutToConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	mgr := NewManagerWithWriter(&console)
	defer func() { _ = mgr.Close() }()

	logFile := filepath.Join(t.TempDir(), "nested", "dirs", "gittype.log")
	if err := mgr.Upgrade(logFile, slog.LevelInfo); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	mgr.Logger().Info("extracted file", "language", "go", "chunks", 12)

	if !strings.Contains(console.String(), "language=go") {
		t.Errorf("console missing record: %q", console.String())
	}

	entries := readJSONLines(t, logFile)
	if len(entries) != 1 {
		t.Fatalf("expected 1 JSON entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "extracted file" || entries[0]["language"] != "go" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
	if chunks, ok := entries[0]["chunks"].(float64); !ok || chunks != 12 {
		t.Errorf("chunks attr = %v, want numeric 12", entries[0]["chunks"])
	}
}

func TestManager_UpgradeEmptyPathOnlySetsLevel(t *testing.T) {
	var console bytes.Buffer
	mgr := NewManagerWithWriter(&console)
	defer func() { _ = mgr.Close() }()

	if err := mgr.Upgrade("", slog.LevelDebug); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}
	mgr.Logger().Debug("debug now visible")

	if !strings.Contains(console.String(), "debug now visible") {
		t.Errorf("console output = %q", console.String())
	}
	if mgr.logFile != nil {
		t.Error("no log file should be opened for an empty path")
	}
}

func TestManager_LoggersCreatedBeforeUpgradeReachFile(t *testing.T) {
	mgr := NewManagerWithWriter(&bytes.Buffer{})
	defer func() { _ = mgr.Close() }()

	walker := mgr.Logger().With("component", "walker")

	logFile := filepath.Join(t.TempDir(), "gittype.log")
	if err := mgr.Upgrade(logFile, slog.LevelInfo); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}
	walker.Warn("skipping file", "path", "huge.min.js", "reason", "too_large")

	entries := readJSONLines(t, logFile)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["component"] != "walker" || entries[0]["reason"] != "too_large" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
}

func TestManager_SetLevel(t *testing.T) {
	mgr := NewManagerWithWriter(&bytes.Buffer{})
	defer func() { _ = mgr.Close() }()

	logFile := filepath.Join(t.TempDir(), "gittype.log")
	if err := mgr.Upgrade(logFile, slog.LevelInfo); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	logger := mgr.Logger()
	logger.Debug("debug message 1")
	mgr.SetLevel(slog.LevelDebug)
	logger.Debug("debug message 2")
	mgr.SetLevel(slog.LevelError)
	logger.Warn("warn suppressed")
	logger.Error("error kept")

	content, _ := os.ReadFile(logFile)
	out := string(content)
	for _, tt := range []struct {
		msg  string
		want bool
	}{
		{"debug message 1", false},
		{"debug message 2", true},
		{"warn suppressed", false},
		{"error kept", true},
	} {
		if strings.Contains(out, tt.msg) != tt.want {
			t.Errorf("record %q present = %v, want %v", tt.msg, !tt.want, tt.want)
		}
	}
}

func TestManager_UpgradeTwiceSwitchesFile(t *testing.T) {
	mgr := NewManagerWithWriter(&bytes.Buffer{})
	defer func() { _ = mgr.Close() }()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")

	if err := mgr.Upgrade(first, slog.LevelInfo); err != nil {
		t.Fatal(err)
	}
	mgr.Logger().Info("to first")
	if err := mgr.Upgrade(second, slog.LevelInfo); err != nil {
		t.Fatal(err)
	}
	mgr.Logger().Info("to second")

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !strings.Contains(string(a), "to first") || strings.Contains(string(a), "to second") {
		t.Errorf("first log = %q", a)
	}
	if !strings.Contains(string(b), "to second") {
		t.Errorf("second log = %q", b)
	}
}

func TestManager_UpgradeErrors(t *testing.T) {
	t.Run("path is directory", func(t *testing.T) {
		mgr := NewManagerWithWriter(&bytes.Buffer{})
		defer func() { _ = mgr.Close() }()

		if err := mgr.Upgrade(t.TempDir(), slog.LevelInfo); err == nil {
			t.Error("Upgrade() expected error when path is a directory")
		}
	})

	t.Run("read-only directory", func(t *testing.T) {
		if runtime.GOOS == "windows" || os.Getuid() == 0 {
			t.Skip("permission bits are not enforced here")
		}
		dir := filepath.Join(t.TempDir(), "ro")
		if err := os.Mkdir(dir, 0500); err != nil {
			t.Fatal(err)
		}

		mgr := NewManagerWithWriter(&bytes.Buffer{})
		defer func() { _ = mgr.Close() }()
		if err := mgr.Upgrade(filepath.Join(dir, "gittype.log"), slog.LevelInfo); err == nil {
			t.Error("Upgrade() expected error for read-only directory")
		}
	})
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	mgr := NewManagerWithWriter(&bytes.Buffer{})
	if err := mgr.Upgrade(filepath.Join(t.TempDir(), "gittype.log"), slog.LevelInfo); err != nil {
		t.Fatal(err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
