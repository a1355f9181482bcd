package config

import (
	"github.com/spf13/viper"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = ""

	DefaultWorkers     = 0
	DefaultMetricsFile = ""

	DefaultMaxFileSizeBytes = code.DefaultMaxFileSizeBytes
	DefaultSkipHidden       = true

	DefaultCacheBackend = "file"
	DefaultCachePath    = ""
	DefaultRedisAddr    = "localhost:6379"
	DefaultRedisDB      = 0
	DefaultCacheTTL     = 0

	DefaultOutputFormat = "json"

	// RedisPasswordEnv names the environment variable consulted when no
	// redis password is configured.
	RedisPasswordEnv = "GITTYPE_REDIS_PASSWORD"
)

// NewDefaultConfig returns a configuration populated with defaults.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:    DefaultLogLevel,
		LogFile:     DefaultLogFile,
		Workers:     DefaultWorkers,
		MetricsFile: DefaultMetricsFile,
		Extraction: ExtractionConfig{
			ExcludePatterns:  append([]string(nil), code.DefaultExcludePatterns...),
			MaxFileSizeBytes: DefaultMaxFileSizeBytes,
			SkipHidden:       DefaultSkipHidden,
		},
		Cache: CacheConfig{
			Backend:   DefaultCacheBackend,
			Path:      DefaultCachePath,
			RedisAddr: DefaultRedisAddr,
			RedisDB:   DefaultRedisDB,
			TTLHours:  DefaultCacheTTL,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// setDefaults registers all default configuration values with v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("metrics_file", DefaultMetricsFile)

	// Extraction defaults
	v.SetDefault("extraction.include_patterns", []string{})
	v.SetDefault("extraction.exclude_patterns", code.DefaultExcludePatterns)
	v.SetDefault("extraction.languages", []string{})
	v.SetDefault("extraction.max_file_size_bytes", DefaultMaxFileSizeBytes)
	v.SetDefault("extraction.skip_hidden", DefaultSkipHidden)

	// Cache defaults
	v.SetDefault("cache.backend", DefaultCacheBackend)
	v.SetDefault("cache.path", DefaultCachePath)
	v.SetDefault("cache.redis_addr", DefaultRedisAddr)
	v.SetDefault("cache.redis_db", DefaultRedisDB)
	v.SetDefault("cache.ttl_hours", DefaultCacheTTL)

	v.SetDefault("output.format", DefaultOutputFormat)
}
