package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/damianphung/docsite/internal/config"
	"github.com/damianphung/docsite/internal/emit"
	"github.com/damianphung/docsite/internal/model"
	"github.com/damianphung/docsite/internal/sidebar"
	"github.com/damianphung/docsite/internal/site"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Resolves the site configuration and writes it for the theme",
	Long: `The build command loads the site definition, builds a sidebar for every
section by listing the markdown pages in its folder under the docs directory,
and writes the resolved configuration plus the rendered head tags into the
output directory (default './.docsite/').`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess(cmd.OutOrStdout(), appConfig)
	},
}

func runBuildProcess(out io.Writer, cfg config.Config) error {
	resolved, err := resolveSite(cfg)
	if err != nil {
		return err
	}

	written, err := emit.WriteFiles(cfg.OutputDir, resolved, cfg.Format)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintf(out, "Wrote %s\n", p)
	}
	slog.Info("build complete", "sections", len(resolved.Theme.Sidebar), "output", cfg.OutputDir)
	return nil
}

// loadDefinition reads the site file. When the default site file does not
// exist the built-in definition is used, with its package manifest resolved
// against the docs dir. A missing site file that was asked for is an error.
func loadDefinition(cfg config.Config) (*site.Definition, error) {
	def, err := site.Load(cfg.SiteFile)
	if err == nil {
		return def, nil
	}
	if cfg.SiteFileExplicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if _, statErr := os.Stat(cfg.SiteFile); !os.IsNotExist(statErr) {
		return nil, err
	}

	slog.Info("no site file found, using built-in definition", "path", cfg.SiteFile)
	def = site.Defaults()
	if err := def.ResolveDescription(cfg.DocsDir); err != nil {
		return nil, err
	}
	return def, nil
}

func newSidebarBuilder(cfg config.Config) *sidebar.Builder {
	return sidebar.New(os.DirFS(cfg.DocsDir))
}

func resolveSite(cfg config.Config) (*model.Site, error) {
	def, err := loadDefinition(cfg)
	if err != nil {
		return nil, err
	}
	resolved, err := site.Resolve(def, newSidebarBuilder(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve site in '%s': %w", cfg.DocsDir, err)
	}
	return resolved, nil
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output directory (default is ./.docsite)")
	buildCmd.Flags().StringP("format", "f", "", "output format: json or yaml (default is json)")
	rootCmd.AddCommand(buildCmd)
}
