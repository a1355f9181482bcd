// Package languages implements the languages command.
package languages

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unhappychoice/gittype-sub005/internal/chunkers/code/languages"
	"github.com/unhappychoice/gittype-sub005/internal/tui/styles"
)

var languagesJSON bool

// LanguagesCmd lists the supported languages.
var LanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and file extensions",
	Long: "List supported languages and file extensions.\n\n" +
		"Every language listed here has a compiled tree-sitter grammar and can be " +
		"passed to --language. Files are matched to languages by extension.",
	Example: `  # List languages
  gittype languages

  # Machine-readable list
  gittype languages --json`,
	Args:    cobra.NoArgs,
	PreRunE: validateLanguages,
	RunE:    runLanguages,
}

func init() {
	LanguagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "Output as JSON")
}

func validateLanguages(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

// languageInfo is one entry of the JSON listing.
type languageInfo struct {
	Name       string   `json:"name"`
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions"`
}

func runLanguages(cmd *cobra.Command, args []string) error {
	reg, err := languages.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("failed to build language registry; %w", err)
	}

	var infos []languageInfo
	for _, name := range reg.Languages() {
		lang, _ := reg.Get(name)
		infos = append(infos, languageInfo{
			Name:       name,
			Aliases:    lang.Strategy.Aliases(),
			Extensions: reg.Extensions(name),
		})
	}

	out := cmd.OutOrStdout()
	if languagesJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal languages; %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	width := 0
	for _, info := range infos {
		width = max(width, len(info.Name))
	}

	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Supported languages (%d)", len(infos))))
	for _, info := range infos {
		line := styles.Value.Render(fmt.Sprintf("%-*s", width, info.Name)) + "  " +
			styles.Label.Render(strings.Join(info.Extensions, " "))
		if len(info.Aliases) > 0 {
			line += "  " + styles.MutedText.Render("aliases: "+strings.Join(info.Aliases, ", "))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
