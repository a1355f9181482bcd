// Package cache implements the cache command for inspecting and clearing
// the challenge cache.
package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/cache"
	"github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/tui/styles"
)

// CacheCmd is the parent command for challenge cache maintenance.
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the challenge cache",
	Long: "Inspect or clear the challenge cache.\n\n" +
		"Generated challenge sets are cached by the backend configured under " +
		"cache.backend (file, bolt or redis). These subcommands operate on that " +
		"backend.",
}

// StatsCmd prints entry counts and sizes.
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show challenge cache statistics",
	Example: `  # Show statistics for the configured backend
  gittype cache stats`,
	Args:    cobra.NoArgs,
	PreRunE: silenceUsage,
	RunE:    runStats,
}

// ClearCmd removes every cached challenge set.
var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached challenge sets",
	Example: `  # Clear the configured backend
  gittype cache clear`,
	Args:    cobra.NoArgs,
	PreRunE: silenceUsage,
	RunE:    runClear,
}

func init() {
	CacheCmd.AddCommand(StatsCmd)
	CacheCmd.AddCommand(ClearCmd)
}

func silenceUsage(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

// openStore opens the configured backend. A nil store means caching is
// disabled.
func openStore(ctx context.Context) (cache.Store, error) {
	cfg, err := config.Current()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, cfg.Cache.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open challenge cache; %w", err)
	}
	return store, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Challenge cache is disabled (cache.backend: none).")
		return nil
	}
	defer store.Close()

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache statistics; %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), styles.Summary("Challenge cache", []styles.Row{
		{Label: "Backend", Value: store.Backend()},
		{Label: "Entries", Value: strconv.FormatInt(stats.EntryCount, 10)},
		{Label: "Size", Value: formatBytes(stats.TotalSize)},
		{Label: "Version", Value: strconv.Itoa(cache.Version)},
	}))
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "Challenge cache is disabled (cache.backend: none).")
		return nil
	}
	defer store.Close()

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache; %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), styles.SuccessText.Render(fmt.Sprintf("Cleared %s challenge cache.", store.Backend())))
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
