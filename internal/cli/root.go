// Package cli implements the doclint command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/dgallion1/doclint/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:          "doclint [command]",
		SilenceUsage: true,
		Short:        "doclint checks link integrity across a Markdown documentation corpus.",
		Long: `doclint scans a set of Markdown documents, derives the anchor slug of every
heading, and verifies that every internal link (anchors, relative document
references, cross-document anchors) resolves. External links are never
fetched. Findings are data-quality output: exit code 1 means the docs need
fixing, exit code 2 means the checker itself failed.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML; environment variables override it)")
	rootCmd.AddCommand(newCheckCmd(), newServeCmd(), newWatchCmd(), newVersionCmd())
}

// Execute runs the CLI. Tool-level failures exit 2; the check command exits
// 1 itself when the corpus has findings.
func Execute() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "doclint: %v\n", err)
		os.Exit(2)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(cfgFile)
}
