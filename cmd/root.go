package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/cmd/cache"
	"github.com/unhappychoice/gittype-sub005/cmd/config"
	"github.com/unhappychoice/gittype-sub005/cmd/config/subcommands"
	"github.com/unhappychoice/gittype-sub005/cmd/extract"
	"github.com/unhappychoice/gittype-sub005/cmd/generate"
	"github.com/unhappychoice/gittype-sub005/cmd/languages"
	"github.com/unhappychoice/gittype-sub005/cmd/version"
	internalconfig "github.com/unhappychoice/gittype-sub005/internal/config"
	"github.com/unhappychoice/gittype-sub005/internal/logging"
)

// AnnotationSkipConfigLoad marks commands that run without reading the
// config file.
const AnnotationSkipConfigLoad = subcommands.AnnotationSkipConfigLoad

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

// Persistent flag values.
var (
	configFile string
	logLevel   string
)

var gittypeCmd = &cobra.Command{
	Use:   "gittype",
	Short: "Turn source code into typing challenges",
	Long: "gittype extracts syntactically bounded chunks from source files and derives " +
		"typing challenges from them at five difficulty levels.\n\n" +
		"Files are discovered under a directory, parsed with tree-sitter grammars for " +
		"twenty-one languages, split into functions, types and nested blocks, and then " +
		"sized into Easy, Normal, Hard, Wild and Zen challenges.",
	PersistentPreRunE: runInitialize,
}

func init() {
	// Bootstrap mode (stderr text only) until config is loaded
	logManager = logging.NewManager()
	slog.SetDefault(logManager.Logger())

	gittypeCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: $GITTYPE_CONFIG_DIR, ~/.config/gittype or ./config.yaml)")
	gittypeCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn or error")

	gittypeCmd.AddCommand(extract.ExtractCmd)
	gittypeCmd.AddCommand(generate.GenerateCmd)
	gittypeCmd.AddCommand(languages.LanguagesCmd)
	gittypeCmd.AddCommand(cache.CacheCmd)
	gittypeCmd.AddCommand(config.ConfigCmd)
	gittypeCmd.AddCommand(version.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	// Initialize config subsystem
	if configFile != "" {
		internalconfig.SetConfigFile(configFile)
	}
	// Commands that create the config file must not require it to exist
	if cmd.Annotations[AnnotationSkipConfigLoad] == "true" {
		return nil
	}
	if err := internalconfig.Init(); err != nil {
		return err
	}
	if err := internalconfig.BindFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	// Upgrade logging after config is available
	logFile := internalconfig.GetPath("log_file")
	levelStr := internalconfig.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		level = logging.DefaultLevel
		if levelStr != "" {
			logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
		}
	}

	if err := logManager.Upgrade(logFile, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
	}

	return nil
}

func Execute() error {
	gittypeCmd.SilenceErrors = true
	gittypeCmd.SilenceUsage = true

	// Ensure logging is properly closed on exit
	defer func() { _ = logManager.Close() }()

	err := gittypeCmd.Execute()

	if err != nil {
		cmd, _, _ := gittypeCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = gittypeCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintf(os.Stderr, "\n")
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
