package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/damianphung/docsite/internal/config"
	"github.com/damianphung/docsite/internal/emit"
)

var cfgFile string
var configFileUsed string
var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "docsite - site configuration and sidebar builder",
	Long: `docsite resolves the site configuration of a documentation site:
page metadata, head tags, navigation and a sidebar per section, built by
scanning each section folder for markdown pages.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(cmd); err != nil {
			return err
		}
		initializeLogging(appConfig.Verbose)
		if configFileUsed != "" {
			slog.Debug("using config file", "path", configFileUsed)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./docsite.yaml)")
	rootCmd.PersistentFlags().String("docs-dir", "", "documentation root containing the section folders (default is ./docs)")
	rootCmd.PersistentFlags().String("site", "", "site definition file (default is <docs-dir>/site.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	v.SetDefault("docsDir", "docs")
	v.SetDefault("outputDir", ".docsite")
	v.SetDefault("format", "json")
	v.SetDefault("verbose", false)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("docsite")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("DOCSITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"docsDir":   "docs-dir",
		"siteFile":  "site",
		"verbose":   "verbose",
		"outputDir": "output",
		"format":    "format",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	appConfig.SiteFile = v.GetString("siteFile")
	appConfig.SiteFileExplicit = v.IsSet("siteFile")
	if appConfig.SiteFile == "" {
		appConfig.SiteFile = filepath.Join(appConfig.DocsDir, "site.yaml")
	}
	if err := emit.ValidateFormat(appConfig.Format); err != nil {
		return err
	}
	configFileUsed = v.ConfigFileUsed()
	return nil
}

func initializeLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
