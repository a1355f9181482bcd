// Package extract implements the extract command, which prints the chunks
// found under a directory.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/cmdutil"
	"github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/export"
	"github.com/unhappychoice/gittype-sub005/internal/tui/styles"
)

var (
	extractFlags   cmdutil.ExtractionFlags
	extractSummary bool
)

// ExtractCmd extracts chunks from the files under a directory.
var ExtractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract code chunks from source files",
	Long: "Extract code chunks from source files.\n\n" +
		"Walks the directory (default: the current directory), parses every file " +
		"with a supported extension and prints the resulting chunks: one whole-file " +
		"chunk per file, then named constructs such as functions and classes, then " +
		"nested blocks such as loops and conditionals.",
	Example: `  # Extract chunks from the current directory as JSON
  gittype extract

  # Only Go and Rust files, written as YAML to a file
  gittype extract ./src -l go -l rust -f yaml -o chunks.yaml

  # Compact listing with a summary
  gittype extract --format toon --summary`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateExtract,
	RunE:    runExtract,
}

func init() {
	extractFlags.Register(ExtractCmd)
	ExtractCmd.Flags().BoolVar(&extractSummary, "summary", false, "Print a summary to stderr")
}

func validateExtract(cmd *cobra.Command, args []string) error {
	if extractFlags.MaxFileSize < 0 {
		return fmt.Errorf("--max-file-size must be non-negative")
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root, err := cmdutil.ResolveRoot(args)
	if err != nil {
		return err
	}

	cfg, err := config.Current()
	if err != nil {
		return err
	}
	if err := extractFlags.Apply(cmd, cfg); err != nil {
		return err
	}

	logger := slog.Default().With("command", "extract")
	pipeline, err := cmdutil.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer pipeline.WriteMetrics()

	reporter, finish := cmdutil.NewReporter(cmd.ErrOrStderr(), !extractFlags.NoProgress, logger)
	chunks, stats, err := pipeline.Extract(ctx, root, reporter)
	finish()
	if err != nil {
		return fmt.Errorf("failed to extract chunks; %w", err)
	}

	data, exportStats, err := export.NewExporter().Export(ctx, chunks, nil, export.ExportOptions{
		Format: cfg.Output.Format,
		Root:   root,
	})
	if err != nil {
		return err
	}
	if err := cmdutil.WriteOutput(cmd.OutOrStdout(), extractFlags.Output, data); err != nil {
		return err
	}

	if extractSummary {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Summary("Extraction", []styles.Row{
			{Label: "Root", Value: stats.Root},
			{Label: "Files", Value: strconv.Itoa(stats.Files)},
			{Label: "Skipped", Value: strconv.Itoa(stats.Skipped)},
			{Label: "Chunks", Value: strconv.Itoa(stats.Chunks)},
			{Label: "Format", Value: exportStats.Format},
			{Label: "Elapsed", Value: stats.Elapsed.Round(1e6).String()},
		}))
	}

	return nil
}
