package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/unhappychoice/gittype-sub005/internal/logging"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

var validCacheBackends = map[string]bool{
	"none":  true,
	"file":  true,
	"bolt":  true,
	"redis": true,
}

var validOutputFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"toml": true,
	"toon": true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: %s; got %q", strings.Join(logging.LevelNames, ", "), cfg.LogLevel),
		})
	}

	if cfg.Workers < 0 {
		errs = append(errs, ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Workers),
		})
	}

	// Validate extraction config
	if cfg.Extraction.MaxFileSizeBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "extraction.max_file_size_bytes",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Extraction.MaxFileSizeBytes),
		})
	}

	errs = append(errs, validatePatterns("extraction.include_patterns", cfg.Extraction.IncludePatterns)...)
	errs = append(errs, validatePatterns("extraction.exclude_patterns", cfg.Extraction.ExcludePatterns)...)

	// Validate cache config
	if !validCacheBackends[strings.ToLower(cfg.Cache.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "cache.backend",
			Message: fmt.Sprintf("must be one of: none, file, bolt, redis; got %q", cfg.Cache.Backend),
		})
	}

	if strings.EqualFold(cfg.Cache.Backend, "redis") && cfg.Cache.RedisAddr == "" {
		errs = append(errs, ValidationError{
			Field:   "cache.redis_addr",
			Message: "must not be empty when the redis backend is selected",
		})
	}

	if cfg.Cache.RedisDB < 0 {
		errs = append(errs, ValidationError{
			Field:   "cache.redis_db",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Cache.RedisDB),
		})
	}

	if cfg.Cache.TTLHours < 0 {
		errs = append(errs, ValidationError{
			Field:   "cache.ttl_hours",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Cache.TTLHours),
		})
	}

	// Validate output config
	if !validOutputFormats[strings.ToLower(cfg.Output.Format)] {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Message: fmt.Sprintf("must be one of: json, yaml, toml, toon; got %q", cfg.Output.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validatePatterns(field string, patterns []string) []ValidationError {
	var errs []ValidationError
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid glob pattern %q", p),
			})
		}
	}
	return errs
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
