package cmd

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/damianphung/docsite/internal/config"
	"github.com/damianphung/docsite/internal/pages"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Prints every section with its pages and their titles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTree(cmd.OutOrStdout(), appConfig)
	},
}

func printTree(out io.Writer, cfg config.Config) error {
	def, err := loadDefinition(cfg)
	if err != nil {
		return err
	}

	docs := os.DirFS(cfg.DocsDir)
	builder := newSidebarBuilder(cfg)

	for _, section := range def.Sections {
		groups, err := builder.Build(section.Folder, section.Title)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s)\n", section.Title, section.Prefix())
		for _, child := range groups[0].Children {
			if child == "" {
				fmt.Fprintln(out, "  - [index]")
				continue
			}
			title, err := pages.Title(docs, path.Join(section.Folder, child))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "  - %s: %s\n", child, title)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
