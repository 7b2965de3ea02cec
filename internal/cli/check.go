package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/doclint/internal/corpus"
	"github.com/dgallion1/doclint/internal/outline"
	"github.com/dgallion1/doclint/internal/pipeline"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOut     bool
		showOutline bool
	)
	cmd := &cobra.Command{
		Use:   "check <dir>",
		Short: "Check link integrity of the Markdown files under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := corpus.FromDir(args[0])
			if err != nil {
				return err
			}
			c, rep, err := pipeline.Run(files)
			if err != nil {
				return err
			}

			if jsonOut {
				if err := rep.RenderJSON(os.Stdout); err != nil {
					return err
				}
			} else {
				rep.Render(os.Stdout)
				if showOutline {
					for _, d := range c.Docs {
						fmt.Fprintf(os.Stdout, "\n%s\n", d.Path)
						printOutline(os.Stdout, outline.Build(d), 1)
					}
				}
			}

			if rep.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the report as JSON")
	cmd.Flags().BoolVar(&showOutline, "outline", false, "print each document's section tree after the report")
	return cmd
}

func printOutline(w io.Writer, nodes []*outline.Node, depth int) {
	for _, n := range nodes {
		fmt.Fprintf(w, "%s- %s (#%s)\n", strings.Repeat("  ", depth), n.Title, n.Slug)
		printOutline(w, n.Children, depth+1)
	}
}
