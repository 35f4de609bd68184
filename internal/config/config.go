package config

// Config holds the CLI settings, read by viper from docsite.yaml and
// DOCSITE_* environment variables.
type Config struct {
	DocsDir   string `mapstructure:"docsDir"`
	SiteFile  string `mapstructure:"siteFile"`
	OutputDir string `mapstructure:"outputDir"`
	Format    string `mapstructure:"format"`
	Verbose   bool   `mapstructure:"verbose"`

	// SiteFileExplicit is true when siteFile came from a flag, the
	// environment or the config file rather than the docs dir default.
	SiteFileExplicit bool `mapstructure:"-"`
}
