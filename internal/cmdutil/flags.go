package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/config"
)

// ExtractionFlags are the discovery flags shared by extract and generate.
// Set flags override the loaded configuration.
type ExtractionFlags struct {
	Include     []string
	Exclude     []string
	Languages   []string
	MaxFileSize int64
	Workers     int
	Format      string
	Output      string
	NoProgress  bool
}

// Register adds the flags to cmd.
func (f *ExtractionFlags) Register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.Include, "include", nil, "Only process paths matching these glob patterns")
	flags.StringSliceVar(&f.Exclude, "exclude", nil, "Skip paths matching these glob patterns (added to configured excludes)")
	flags.StringSliceVarP(&f.Languages, "language", "l", nil, "Only process these languages")
	flags.Int64Var(&f.MaxFileSize, "max-file-size", 0, "Skip files larger than this many bytes")
	flags.IntVarP(&f.Workers, "workers", "w", 0, "Number of parallel workers (default: one per CPU)")
	flags.StringVarP(&f.Format, "format", "f", "", "Output format: json, yaml, toml or toon")
	flags.StringVarP(&f.Output, "output", "o", "", "Write output to this file instead of stdout")
	flags.BoolVar(&f.NoProgress, "no-progress", false, "Disable the progress bar")
}

// Apply copies set flags onto cfg and re-validates it.
func (f *ExtractionFlags) Apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("include") {
		cfg.Extraction.IncludePatterns = f.Include
	}
	if flags.Changed("exclude") {
		cfg.Extraction.ExcludePatterns = append(cfg.Extraction.ExcludePatterns, f.Exclude...)
	}
	if flags.Changed("language") {
		cfg.Extraction.Languages = f.Languages
	}
	if flags.Changed("max-file-size") {
		cfg.Extraction.MaxFileSizeBytes = f.MaxFileSize
	}
	if flags.Changed("workers") {
		cfg.Workers = f.Workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.Format
	}
	return config.Validate(cfg)
}
