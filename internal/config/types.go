package config

import (
	"os"

	"github.com/unhappychoice/gittype-sub005/internal/cache"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code"
)

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel    string           `yaml:"log_level" mapstructure:"log_level"`
	LogFile     string           `yaml:"log_file" mapstructure:"log_file"`
	Workers     int              `yaml:"workers" mapstructure:"workers"` // 0 = one per CPU
	MetricsFile string           `yaml:"metrics_file" mapstructure:"metrics_file"`
	Extraction  ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
	Cache       CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig     `yaml:"output" mapstructure:"output"`
}

// ExtractionConfig holds file discovery and parsing configuration.
type ExtractionConfig struct {
	IncludePatterns  []string `yaml:"include_patterns,flow" mapstructure:"include_patterns"`
	ExcludePatterns  []string `yaml:"exclude_patterns,flow" mapstructure:"exclude_patterns"`
	Languages        []string `yaml:"languages,flow" mapstructure:"languages"`
	MaxFileSizeBytes int64    `yaml:"max_file_size_bytes" mapstructure:"max_file_size_bytes"`
	SkipHidden       bool     `yaml:"skip_hidden" mapstructure:"skip_hidden"`
}

// Options converts the extraction settings into parser options rooted at
// root.
func (c *ExtractionConfig) Options(root string) code.Options {
	return code.Options{
		IncludePatterns:  c.IncludePatterns,
		ExcludePatterns:  c.ExcludePatterns,
		Languages:        c.Languages,
		MaxFileSizeBytes: c.MaxFileSizeBytes,
		Root:             root,
	}
}

// CacheConfig holds challenge cache configuration.
type CacheConfig struct {
	Backend       string  `yaml:"backend" mapstructure:"backend"`
	Path          string  `yaml:"path" mapstructure:"path"`
	RedisAddr     string  `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisDB       int     `yaml:"redis_db" mapstructure:"redis_db"`
	RedisPassword *string `yaml:"redis_password,omitempty" mapstructure:"redis_password"`
	TTLHours      int     `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// ResolveRedisPassword returns the password from config or falls back to
// the environment variable.
func (c *CacheConfig) ResolveRedisPassword() string {
	if c.RedisPassword != nil && *c.RedisPassword != "" {
		return *c.RedisPassword
	}
	return os.Getenv(RedisPasswordEnv)
}

// StoreConfig converts the cache settings for cache.Open.
func (c *CacheConfig) StoreConfig() cache.Config {
	return cache.Config{
		Backend:       c.Backend,
		Path:          expandHome(c.Path),
		RedisAddr:     c.RedisAddr,
		RedisDB:       c.RedisDB,
		RedisPassword: c.ResolveRedisPassword(),
		TTLHours:      c.TTLHours,
	}
}

// OutputConfig holds export configuration.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}
