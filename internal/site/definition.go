// Package site loads the site definition and resolves it into the
// read-only configuration consumed by the theme.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/damianphung/docsite/internal/model"
	"gopkg.in/yaml.v2"
)

// Definition is the site as written by the author, before sidebars are
// discovered on disk.
type Definition struct {
	Title           string           `yaml:"title"`
	Description     string           `yaml:"description"`
	DescriptionFrom string           `yaml:"descriptionFrom"`
	Head            []model.HeadTag  `yaml:"head"`
	Analytics       Analytics        `yaml:"analytics"`
	Theme           ThemeOptions     `yaml:"theme"`
	Nav             []model.NavEntry `yaml:"nav"`
	Sections        []model.Section  `yaml:"sections"`
	Plugins         []string         `yaml:"plugins"`
}

// Analytics describes the tracking snippet injected into every page header.
// Both values are copied verbatim.
type Analytics struct {
	Src     string `yaml:"src"`
	Snippet string `yaml:"snippet"`
}

// ThemeOptions are the default theme switches.
type ThemeOptions struct {
	Logo                 string `yaml:"logo"`
	SmoothScroll         bool   `yaml:"smoothScroll"`
	EditLinks            bool   `yaml:"editLinks"`
	LastUpdated          bool   `yaml:"lastUpdated"`
	SearchMaxSuggestions int    `yaml:"searchMaxSuggestions"`
	SearchPlaceholder    string `yaml:"searchPlaceholder"`
}

// Defaults returns the built-in definition of the portfolio site.
func Defaults() *Definition {
	return &Definition{
		Title:           "Damian Phung",
		DescriptionFrom: "../package.json",
		Head: []model.HeadTag{
			{Tag: "meta", Attrs: map[string]string{"name": "theme-color", "content": "#3eaf7c"}},
			{Tag: "meta", Attrs: map[string]string{"name": "apple-mobile-web-app-capable", "content": "yes"}},
			{Tag: "meta", Attrs: map[string]string{"name": "apple-mobile-web-app-status-bar-style", "content": "black"}},
		},
		Theme: ThemeOptions{
			SmoothScroll:         true,
			EditLinks:            false,
			LastUpdated:          true,
			SearchMaxSuggestions: 10,
			SearchPlaceholder:    "Search...",
		},
		Nav: []model.NavEntry{
			{
				Text: "Blog Topics",
				Items: []model.NavEntry{
					{Text: "Software Engineering", Link: "/software/"},
					{Text: "Machine Learning", Link: "/machine-learning/"},
					{Text: "No Code", Link: "/nocode/"},
				},
			},
			{Text: "Github", Link: "https://github.com/damianphung"},
		},
		Sections: []model.Section{
			{Folder: "resume", Title: "Resume"},
			{Folder: "software", Title: "Software"},
			{Folder: "machine-learning", Title: "Machine Learning"},
			{Folder: "nocode", Title: "No Code"},
		},
		Plugins: []string{
			"@vuepress/plugin-back-to-top",
			"@vuepress/plugin-medium-zoom",
		},
	}
}

// Load reads the YAML definition at filename on top of Defaults. Keys absent
// from the file keep their default values; lists present in the file replace
// the defaults entirely.
func Load(filename string) (*Definition, error) {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading site file %s: %w", filename, err)
	}

	def := Defaults()
	if err := yaml.Unmarshal(yamlFile, def); err != nil {
		return nil, fmt.Errorf("error unmarshalling site file %s: %w", filename, err)
	}

	if err := def.ResolveDescription(filepath.Dir(filename)); err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site file %s: %w", filename, err)
	}
	return def, nil
}

// ResolveDescription fills Description from the DescriptionFrom manifest,
// resolved against baseDir when relative. An explicit Description is kept.
func (d *Definition) ResolveDescription(baseDir string) error {
	if d.Description != "" || d.DescriptionFrom == "" {
		return nil
	}
	manifest := d.DescriptionFrom
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(baseDir, manifest)
	}
	desc, err := ReadDescription(manifest)
	if err != nil {
		return err
	}
	d.Description = desc
	return nil
}

// ReadDescription returns the "description" field of a package manifest.
func ReadDescription(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("error reading package manifest %s: %w", filename, err)
	}
	var pkg struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("error decoding package manifest %s: %w", filename, err)
	}
	return pkg.Description, nil
}

// Validate checks the parts of the definition the theme cannot recover from.
func (d *Definition) Validate() error {
	var errs []error

	seen := make(map[string]string, len(d.Sections))
	for i, s := range d.Sections {
		if s.Folder == "" {
			errs = append(errs, fmt.Errorf("section %d: folder is required", i))
		}
		if s.Title == "" {
			errs = append(errs, fmt.Errorf("section %d: title is required", i))
		}
		prefix := s.Prefix()
		if other, ok := seen[prefix]; ok {
			errs = append(errs, fmt.Errorf("section %q: path %s already used by section %q", s.Folder, prefix, other))
			continue
		}
		seen[prefix] = s.Folder
	}

	for i, n := range d.Nav {
		if err := validateNav(n, true); err != nil {
			errs = append(errs, fmt.Errorf("nav entry %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func validateNav(n model.NavEntry, allowGroup bool) error {
	if n.Text == "" {
		return errors.New("text is required")
	}
	switch {
	case n.IsGroup() && n.Link != "":
		return fmt.Errorf("%q has both a link and items", n.Text)
	case n.IsGroup() && !allowGroup:
		return fmt.Errorf("%q: groups cannot be nested", n.Text)
	case n.IsGroup():
		for _, item := range n.Items {
			if err := validateNav(item, false); err != nil {
				return fmt.Errorf("%q: %w", n.Text, err)
			}
		}
	case n.Link == "":
		return fmt.Errorf("%q needs a link or items", n.Text)
	}
	return nil
}
