package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code/languages"
	"github.com/unhappychoice/gittype-sub005/internal/version"
)

var versionShort bool

// VersionCmd displays version and build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version and build information",
	Long: "Display version and build information.\n\n" +
		"Shows the semantic version, git commit hash, build date, Go toolchain " +
		"and the number of compiled language grammars of the current gittype " +
		"binary. This information is useful for troubleshooting and verifying " +
		"the installed version.",
	Example: `  # Display version information
  gittype version

  # One-line form
  gittype version --short`,
	PreRunE: validateVersion,
	RunE:    runVersion,
}

func init() {
	VersionCmd.Flags().BoolVar(&versionShort, "short", false, "Print a single line")
}

func validateVersion(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()
	if versionShort {
		fmt.Fprintln(cmd.OutOrStdout(), info.Short())
		return nil
	}

	if reg, err := languages.DefaultRegistry(); err == nil {
		info.Grammars = len(reg.Languages())
	}
	fmt.Fprintln(cmd.OutOrStdout(), info.String())
	return nil
}
