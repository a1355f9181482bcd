// Package config provides the config parent command and subcommands.
package config

import (
	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/cmd/config/subcommands"
)

// ConfigCmd is the parent command for all config-related subcommands.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gittype configuration",
	Long: "Manage gittype configuration.\n\n" +
		"The config command allows you to create, view, validate, and reset the " +
		"gittype configuration. Configuration is stored in a YAML file located at " +
		"~/.config/gittype/config.yaml by default.",
}

func init() {
	// Register subcommands
	ConfigCmd.AddCommand(subcommands.ShowCmd)
	ConfigCmd.AddCommand(subcommands.InitCmd)
	ConfigCmd.AddCommand(subcommands.ResetCmd)
	ConfigCmd.AddCommand(subcommands.ValidateCmd)
}
