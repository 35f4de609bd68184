// Package pages discovers display titles for markdown pages.
package pages

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var mdParser = goldmark.New(goldmark.WithExtensions(extension.GFM))

type matter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Title returns the display title of the page at name within fsys: the front
// matter title, else the first level-1 heading, else the filename title-cased.
func Title(fsys fs.FS, name string) (string, error) {
	fileBytes, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("failed to read page '%s': %w", name, err)
	}

	var fm matter
	body, err := frontmatter.Parse(bytes.NewReader(fileBytes), &fm)
	if err != nil {
		// Broken front matter: fall back to the whole file as markdown.
		body = fileBytes
	}
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t, nil
	}

	if h := firstHeading(body); h != "" {
		return h, nil
	}
	return FromFilename(path.Base(name)), nil
}

// FromFilename turns "go-concurrency_notes.md" into "Go Concurrency Notes".
func FromFilename(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
	return cases.Title(language.English).String(base)
}

func firstHeading(source []byte) string {
	doc := mdParser.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(h.Text(source)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
