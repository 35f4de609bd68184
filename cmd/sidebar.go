package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/damianphung/docsite/internal/config"
)

var sidebarCmd = &cobra.Command{
	Use:   "sidebar <folder> <title>",
	Short: "Prints the sidebar group for one section folder",
	Long: `The sidebar command lists the markdown pages of a single section folder
under the docs directory and prints the resulting sidebar group as JSON.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printSidebar(cmd.OutOrStdout(), appConfig, args[0], args[1])
	},
}

func printSidebar(out io.Writer, cfg config.Config, folder, title string) error {
	groups, err := newSidebarBuilder(cfg).Build(folder, title)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sidebar: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(sidebarCmd)
}
