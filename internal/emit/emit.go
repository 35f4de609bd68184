// Package emit writes the resolved site for the theme renderer.
package emit

import (
	"encoding/json"
	"fmt"
	"text/template"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/damianphung/docsite/internal/model"
	"gopkg.in/yaml.v2"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const headFileName = "head.html"

// Names and attribute values go through the html escaper; Content is the
// opaque snippet and is written as is.
var headTemplate = template.Must(template.New("head").Parse(
	`{{range .}}<{{html .Tag}}{{range .Attrs}} {{html .Name}}{{if .Value}}="{{html .Value}}"{{end}}{{end}}>{{if not .Void}}{{.Content}}</{{html .Tag}}>{{end}}
{{end}}`))

// Elements without a closing tag.
var voidTags = map[string]bool{"meta": true, "link": true, "base": true}

type headAttr struct {
	Name  string
	Value string
}

type headElement struct {
	Tag     string
	Attrs   []headAttr
	Content string
	Void    bool
}

// ValidateFormat reports whether format is a supported output format. The
// empty string selects JSON.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, "":
		return nil
	}
	return fmt.Errorf("unsupported output format '%s'", format)
}

// Write serialises site in the given format.
func Write(w io.Writer, site *model.Site, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(site); err != nil {
			return fmt.Errorf("failed to encode site as json: %w", err)
		}
	case FormatYAML:
		out, err := yaml.Marshal(site)
		if err != nil {
			return fmt.Errorf("failed to encode site as yaml: %w", err)
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("failed to write yaml output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format '%s'", format)
	}
	return nil
}

// WriteHead renders the head tags as HTML. Tag content (the analytics
// snippet) is written verbatim; attribute values are escaped.
func WriteHead(w io.Writer, site *model.Site) error {
	elements := make([]headElement, 0, len(site.Head))
	for _, tag := range site.Head {
		names := make([]string, 0, len(tag.Attrs))
		for name := range tag.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)

		el := headElement{
			Tag:     tag.Tag,
			Content: tag.Content,
			Void:    voidTags[tag.Tag],
		}
		for _, name := range names {
			el.Attrs = append(el.Attrs, headAttr{Name: name, Value: tag.Attrs[name]})
		}
		elements = append(elements, el)
	}

	if err := headTemplate.Execute(w, elements); err != nil {
		return fmt.Errorf("failed to render head tags: %w", err)
	}
	return nil
}

// WriteFiles writes site.<format> and head.html into outputDir and returns
// the paths written.
func WriteFiles(outputDir string, site *model.Site, format string) ([]string, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatJSON
	}
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", outputDir, err)
	}

	sitePath := filepath.Join(outputDir, "site."+format)
	headPath := filepath.Join(outputDir, headFileName)

	if err := writeFile(sitePath, func(w io.Writer) error { return Write(w, site, format) }); err != nil {
		return nil, err
	}
	if err := writeFile(headPath, func(w io.Writer) error { return WriteHead(w, site) }); err != nil {
		return nil, err
	}
	return []string{sitePath, headPath}, nil
}

func writeFile(path string, render func(io.Writer) error) error {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file '%s': %w", path, err)
	}
	defer outFile.Close()

	if err := render(outFile); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return outFile.Close()
}
