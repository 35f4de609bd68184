package site

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/damianphung/docsite/internal/model"
	"github.com/damianphung/docsite/internal/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{"name": "site", "description": "Notes on software and ML"}`)
	siteFile := writeFile(t, dir, "site.yaml", `
title: My Notes
descriptionFrom: package.json
theme:
  searchMaxSuggestions: 5
`)

	def, err := Load(siteFile)
	require.NoError(t, err)

	assert.Equal(t, "My Notes", def.Title)
	assert.Equal(t, "Notes on software and ML", def.Description)
	assert.Equal(t, 5, def.Theme.SearchMaxSuggestions)
	assert.True(t, def.Theme.SmoothScroll)
	assert.Equal(t, "Search...", def.Theme.SearchPlaceholder)
	assert.Len(t, def.Sections, 4)
	assert.Len(t, def.Head, 3)
}

func TestLoad_ExplicitDescriptionWins(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeFile(t, dir, "site.yaml", `
description: Explicit
descriptionFrom: missing.json
`)

	def, err := Load(siteFile)
	require.NoError(t, err)
	assert.Equal(t, "Explicit", def.Description)
}

func TestLoad_MissingManifest(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeFile(t, dir, "site.yaml", "descriptionFrom: package.json\n")

	_, err := Load(siteFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_ReplacesSections(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeFile(t, dir, "site.yaml", `
description: Guide notes
sections:
  - folder: guide
    title: Guide
  - folder: api
    title: API
    path: /reference/
`)

	def, err := Load(siteFile)
	require.NoError(t, err)
	require.Len(t, def.Sections, 2)
	assert.Equal(t, "/guide/", def.Sections[0].Prefix())
	assert.Equal(t, "/reference/", def.Sections[1].Prefix())
}

func TestLoad_DefaultManifestIsParentPackageJSON(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	writeFile(t, root, "package.json", `{"description": "Portfolio"}`)
	siteFile := writeFile(t, docs, "site.yaml", "title: Portfolio Site\n")

	def, err := Load(siteFile)
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", def.Description)
}

func TestResolveDescription(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"description": "From manifest"}`)

	tests := []struct {
		name     string
		def      *Definition
		want     string
		notFound bool
	}{
		{name: "relative manifest", def: &Definition{DescriptionFrom: "package.json"}, want: "From manifest"},
		{name: "absolute manifest", def: &Definition{DescriptionFrom: filepath.Join(root, "package.json")}, want: "From manifest"},
		{name: "explicit description", def: &Definition{Description: "Set", DescriptionFrom: "missing.json"}, want: "Set"},
		{name: "no manifest", def: &Definition{}, want: ""},
		{name: "missing manifest", def: &Definition{DescriptionFrom: "missing.json"}, notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.ResolveDescription(root)
			if tt.notFound {
				require.Error(t, err)
				assert.True(t, errors.Is(err, fs.ErrNotExist))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.def.Description)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	siteFile := writeFile(t, dir, "site.yaml", "title: [unterminated\n")

	_, err := Load(siteFile)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Definition)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(d *Definition) {},
		},
		{
			name: "duplicate prefix",
			mutate: func(d *Definition) {
				d.Sections = append(d.Sections, model.Section{Folder: "other", Title: "Other", Path: "/software/"})
			},
			wantErr: "already used",
		},
		{
			name: "missing section title",
			mutate: func(d *Definition) {
				d.Sections[0].Title = ""
			},
			wantErr: "title is required",
		},
		{
			name: "nav entry without link or items",
			mutate: func(d *Definition) {
				d.Nav = append(d.Nav, model.NavEntry{Text: "Dangling"})
			},
			wantErr: "needs a link or items",
		},
		{
			name: "nested nav group",
			mutate: func(d *Definition) {
				d.Nav[0].Items[0].Items = []model.NavEntry{{Text: "Deep", Link: "/deep/"}}
				d.Nav[0].Items[0].Link = ""
			},
			wantErr: "cannot be nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Defaults()
			tt.mutate(def)
			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func docsFS() fstest.MapFS {
	return fstest.MapFS{
		"resume/README.md":               {Data: []byte("# Resume")},
		"software/README.md":             {Data: []byte("# Software")},
		"software/go-concurrency.md":     {Data: []byte("# Go")},
		"machine-learning/README.md":     {Data: []byte("# ML")},
		"machine-learning/regression.md": {Data: []byte("# Regression")},
		"nocode/README.md":               {Data: []byte("# No Code")},
	}
}

func TestResolve_BuildsSidebarPerSection(t *testing.T) {
	def := Defaults()
	def.Analytics = Analytics{
		Src:     "https://www.googletagmanager.com/gtag/js?id=G-TEST",
		Snippet: "window.dataLayer = window.dataLayer || [];",
	}

	s, err := Resolve(def, sidebar.New(docsFS()))
	require.NoError(t, err)

	assert.Equal(t, "Damian Phung", s.Title)
	require.Len(t, s.Theme.Sidebar, 4)
	assert.Equal(t, []model.SidebarGroup{{
		Title:        "Software",
		SidebarDepth: 2,
		Children:     []string{"", "go-concurrency.md"},
	}}, s.Theme.Sidebar["/software/"])
	assert.Equal(t, []string{""}, s.Theme.Sidebar["/resume/"][0].Children)

	require.Len(t, s.Head, 5)
	assert.Equal(t, "https://www.googletagmanager.com/gtag/js?id=G-TEST", s.Head[3].Attrs["src"])
	assert.Equal(t, "window.dataLayer = window.dataLayer || [];", s.Head[4].Content)
	assert.Equal(t, def.Nav, s.Theme.Nav)
}

func TestResolve_DoesNotShareDefinitionState(t *testing.T) {
	def := Defaults()
	s, err := Resolve(def, sidebar.New(docsFS()))
	require.NoError(t, err)

	def.Head[0].Attrs["content"] = "#000000"
	def.Plugins[0] = "changed"

	assert.Equal(t, "#3eaf7c", s.Head[0].Attrs["content"])
	assert.Equal(t, "@vuepress/plugin-back-to-top", s.Plugins[0])
}

func TestResolve_MissingFolderAborts(t *testing.T) {
	fsys := docsFS()
	delete(fsys, "nocode/README.md")

	s, err := Resolve(Defaults(), sidebar.New(fsys))
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "nocode")
}
