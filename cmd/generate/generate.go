// Package generate implements the generate command, which turns extracted
// chunks into typing challenges.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/challenge"
	"github.com/unhappychoice/gittype-sub005/internal/chunkers"
	"github.com/unhappychoice/gittype-sub005/internal/cmdutil"
	"github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/export"
	"github.com/unhappychoice/gittype-sub005/internal/tui/styles"
)

var (
	generateFlags        cmdutil.ExtractionFlags
	generateDifficulties []string
	generateNoCache      bool
	generateWithChunks   bool
	generateLimit        int
	generateSummary      bool
)

// GenerateCmd extracts chunks and generates challenges from them.
var GenerateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Generate typing challenges from source files",
	Long: "Generate typing challenges from source files.\n\n" +
		"Extracts chunks like the extract command, then produces one challenge per " +
		"chunk and difficulty. Chunks that fit a difficulty's character range are " +
		"used whole; larger chunks are cut at a line boundary. Zen challenges are " +
		"whole files and Wild challenges are any chunk at its natural size.\n\n" +
		"Generated challenges are cached by the configured cache backend, keyed " +
		"by the extracted chunk set.",
	Example: `  # Generate challenges for the current directory
  gittype generate

  # Only normal and hard challenges, compact output
  gittype generate -d normal -d hard -f toon

  # Bypass the cache and include the chunks in the output
  gittype generate ./src --no-cache --with-chunks -o challenges.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: validateGenerate,
	RunE:    runGenerate,
}

func init() {
	generateFlags.Register(GenerateCmd)
	flags := GenerateCmd.Flags()
	flags.StringSliceVarP(&generateDifficulties, "difficulty", "d", nil, "Only output these difficulties: easy, normal, hard, wild or zen")
	flags.BoolVar(&generateNoCache, "no-cache", false, "Skip the challenge cache")
	flags.BoolVar(&generateWithChunks, "with-chunks", false, "Include the extracted chunks in the output")
	flags.IntVar(&generateLimit, "limit", 0, "Maximum number of challenges to output (0 = all)")
	flags.BoolVar(&generateSummary, "summary", false, "Print a summary to stderr")
}

func validateGenerate(cmd *cobra.Command, args []string) error {
	if _, err := parseDifficulties(generateDifficulties); err != nil {
		return err
	}
	if generateLimit < 0 {
		return fmt.Errorf("--limit must be non-negative")
	}

	// All validation passed - errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func parseDifficulties(names []string) ([]challenge.Difficulty, error) {
	var out []challenge.Difficulty
	for _, name := range names {
		d, err := challenge.ParseDifficulty(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	if err := generateFlags.Apply(cmd, cfg); err != nil {
		return err
	}
	difficulties, err := parseDifficulties(generateDifficulties)
	if err != nil {
		return err
	}

	logger := slog.Default().With("command", "generate")
	pipeline, err := cmdutil.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer pipeline.WriteMetrics()

	reporter, finish := cmdutil.NewReporter(cmd.ErrOrStderr(), !generateFlags.NoProgress, logger)
	chunks, stats, err := pipeline.Extract(ctx, root, reporter)
	if err != nil {
		finish()
		return fmt.Errorf("failed to extract chunks; %w", err)
	}
	challenges, hit, err := pipeline.Generate(ctx, chunks, !generateNoCache, reporter)
	finish()
	if err != nil {
		return fmt.Errorf("failed to generate challenges; %w", err)
	}
	stats.Challenges = len(challenges)
	stats.CacheHit = hit

	var exported []chunkers.Chunk
	if generateWithChunks {
		exported = chunks
	}
	data, exportStats, err := export.NewExporter().Export(ctx, exported, challenges, export.ExportOptions{
		Format:             cfg.Output.Format,
		Root:               root,
		MaxItems:           generateLimit,
		FilterDifficulties: difficulties,
	})
	if err != nil {
		return err
	}
	if err := cmdutil.WriteOutput(cmd.OutOrStdout(), generateFlags.Output, data); err != nil {
		return err
	}

	if generateSummary {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Summary("Generation", []styles.Row{
			{Label: "Root", Value: stats.Root},
			{Label: "Files", Value: strconv.Itoa(stats.Files)},
			{Label: "Chunks", Value: strconv.Itoa(stats.Chunks)},
			{Label: "Challenges", Value: strconv.Itoa(stats.Challenges)},
			{Label: "Exported", Value: strconv.Itoa(exportStats.ChallengeCount)},
			{Label: "Cache", Value: cacheLabel(cfg.Cache.Backend, generateNoCache, hit)},
			{Label: "Elapsed", Value: stats.Elapsed.Round(1e6).String()},
		}))
	}

	return nil
}

func cacheLabel(backend string, disabled, hit bool) string {
	switch {
	case disabled || backend == "none":
		return "disabled"
	case hit:
		return backend + " (hit)"
	default:
		return backend + " (miss)"
	}
}
