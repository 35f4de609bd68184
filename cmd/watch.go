package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/damianphung/docsite/internal/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Builds the site configuration and rebuilds it on changes",
	Long: `The watch command performs an initial build, then watches the docs
directory and the site file for changes and rebuilds the configuration
whenever pages are added, removed or renamed. Stop it with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := runBuildProcess(out, appConfig); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := &watch.Watcher{
			Rebuild: func() error { return runBuildProcess(out, appConfig) },
			Ignore:  []string{appConfig.OutputDir},
		}
		if !withinDir(appConfig.DocsDir, appConfig.SiteFile) {
			w.Files = append(w.Files, appConfig.SiteFile)
		}
		slog.Info("watching for changes", "dir", appConfig.DocsDir, "files", w.Files)
		return w.Run(ctx, appConfig.DocsDir)
	},
}

// withinDir reports whether path lies inside dir.
func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func init() {
	watchCmd.Flags().StringP("output", "o", "", "output directory (default is ./.docsite)")
	watchCmd.Flags().StringP("format", "f", "", "output format: json or yaml (default is json)")
	rootCmd.AddCommand(watchCmd)
}
