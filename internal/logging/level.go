package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel is the log level used when not configured.
const DefaultLevel = slog.LevelInfo

// LevelNames lists the accepted level names in increasing severity.
var LevelNames = []string{"debug", "info", "warn", "error"}

var levelsByName = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ParseLevel resolves a level name, ignoring case and surrounding space.
// "warning" is accepted as an alias of "warn". Unknown names return
// (DefaultLevel, false).
func ParseLevel(s string) (slog.Level, bool) {
	level, ok := levelsByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return DefaultLevel, false
	}
	return level, true
}
