// Package config loads gittype settings from a YAML file, GITTYPE_*
// environment variables and command-line flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "GITTYPE"

var (
	// configFilePath stores the path to the loaded config file
	configFilePath string

	// explicitFile is set by SetConfigFile and bypasses the search path
	explicitFile string
)

// SetConfigFile makes Init read path instead of searching for config.yaml.
func SetConfigFile(path string) {
	explicitFile = path
}

// Init initializes the configuration subsystem.
// Unless SetConfigFile was called, it searches for config.yaml in priority
// order:
//  1. Directory specified by GITTYPE_CONFIG_DIR environment variable
//  2. ~/.config/gittype/
//  3. Current working directory (.)
//
// If no config file is found, defaults are used.
// If a config file exists but is invalid or unreadable, Init returns an error.
func Init() error {
	configureViper(viper.GetViper())

	if explicitFile != "" {
		viper.SetConfigFile(expandHome(explicitFile))
	} else {
		addSearchPaths(viper.GetViper())
	}

	err := viper.ReadInConfig()
	if err != nil {
		// A missing file is only acceptable when we searched for one
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && explicitFile == "" {
			configFilePath = ""
			return nil
		}
		return fmt.Errorf("failed to read config; %w", err)
	}

	configFilePath = viper.ConfigFileUsed()
	slog.Debug("config initialized", "file", configFilePath)

	return nil
}

// configureViper applies the env and default setup shared by the global
// and standalone viper instances.
func configureViper(v *viper.Viper) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
}

func addSearchPaths(v *viper.Viper) {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG_DIR"); envPath != "" {
		v.AddConfigPath(envPath)
	}
	if dir := ConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
}

// ConfigFilePath returns the path to the loaded config file,
// or empty string if using defaults only.
func ConfigFilePath() string {
	return configFilePath
}

// Reset clears the configuration state for testing purposes.
func Reset() {
	viper.Reset()
	configFilePath = ""
	explicitFile = ""
}

// BindFlag makes a command-line flag override the value of key when the
// flag is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if err := viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s; %w", flag.Name, err)
	}
	return nil
}

// GetString returns the string value for the given key.
// Returns empty string if key is not found.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns the integer value for the given key.
// Returns 0 if key is not found or value cannot be converted to int.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set sets a value for the given key, overriding defaults and config file values.
// Primarily used for testing.
func Set(key string, value any) {
	viper.Set(key, value)
}

// GetPath returns the string value for the given key with ~ expanded to $HOME.
// Returns empty string if key is not found.
func GetPath(key string) string {
	return expandHome(viper.GetString(key))
}

// Current returns the typed, validated configuration held by the global
// viper instance. Init must have been called.
func Current() (*Config, error) {
	return unmarshalConfig(viper.GetViper())
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	return expandHome(path)
}

// expandHome expands a leading ~ in path to the user's home directory.
// Only expands "~" alone or "~/..." patterns. Patterns like "~user" are not expanded.
// Returns the path unchanged if it doesn't start with ~/ or if home dir cannot be determined.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	// Only expand "~" or "~/..."
	if len(path) > 1 && path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return home
	}

	return filepath.Join(home, path[2:])
}
