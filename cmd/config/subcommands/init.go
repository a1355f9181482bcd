package subcommands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/config"
)

// AnnotationSkipConfigLoad marks commands that run without reading the
// config file.
const AnnotationSkipConfigLoad = "gittype/skip-config-load"

var (
	initForce bool
)

// InitCmd writes a configuration file populated with the defaults.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: "Write a configuration file with default values.\n\n" +
		"Creates the configuration file at the active config path (see --config) " +
		"filled with every setting at its default value, ready to be edited. An " +
		"existing file is left untouched unless --force is given.",
	Example: `  # Create ~/.config/gittype/config.yaml
  gittype config init

  # Overwrite an existing file
  gittype config init --force`,
	Annotations: map[string]string{AnnotationSkipConfigLoad: "true"},
	PreRunE:     validateInit,
	RunE:        runInit,
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func validateInit(cmd *cobra.Command, args []string) error {
	// All errors after this are runtime errors
	cmd.SilenceUsage = true
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.GetConfigPath()
	if configPath == "" {
		return fmt.Errorf("cannot determine config path; set HOME or use --config")
	}

	if config.ConfigExistsAt(configPath) && !initForce {
		return fmt.Errorf("configuration file already exists at %s; use --force to overwrite", configPath)
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(&cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written: %s\n", configPath)
	return nil
}
