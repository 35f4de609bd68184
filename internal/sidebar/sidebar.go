// Package sidebar builds sidebar groups by listing markdown pages in a
// documentation folder.
package sidebar

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/damianphung/docsite/internal/model"
)

const (
	// Depth is the nesting depth hint given to every group.
	Depth = 2

	defaultIndexName = "readme.md"
)

var defaultExtensions = []string{".md"}

// Builder lists section folders below a fixed base directory.
type Builder struct {
	fsys       fs.FS
	extensions []string
	indexName  string
}

// Option customises a Builder.
type Option func(*Builder)

// WithExtensions replaces the set of extensions treated as markdown pages.
// Matching is case-insensitive.
func WithExtensions(exts ...string) Option {
	return func(b *Builder) {
		b.extensions = b.extensions[:0]
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			b.extensions = append(b.extensions, strings.ToLower(ext))
		}
	}
}

// WithIndexName sets the filename of the section index page, which is
// excluded from the child list regardless of case.
func WithIndexName(name string) Option {
	return func(b *Builder) {
		b.indexName = strings.ToLower(name)
	}
}

// New returns a Builder rooted at fsys, usually os.DirFS(docsDir).
func New(fsys fs.FS, opts ...Option) *Builder {
	b := &Builder{
		fsys:       fsys,
		extensions: append([]string(nil), defaultExtensions...),
		indexName:  defaultIndexName,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the single sidebar group for folder. Children start with ""
// for the index page followed by every markdown file in the folder, in
// filename order. Any filesystem error aborts the build.
func (b *Builder) Build(folder, title string) ([]model.SidebarGroup, error) {
	files, err := b.Pages(folder)
	if err != nil {
		return nil, err
	}

	children := make([]string, 0, len(files)+1)
	children = append(children, "")
	children = append(children, files...)

	return []model.SidebarGroup{{
		Title:        title,
		SidebarDepth: Depth,
		Children:     children,
	}}, nil
}

// Pages returns the markdown files directly within folder, excluding the
// index page.
func (b *Builder) Pages(folder string) ([]string, error) {
	dir := path.Clean(folder)
	entries, err := fs.ReadDir(b.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read section folder '%s': %w", folder, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.ToLower(name) == b.indexName {
			continue
		}
		// Every other entry is stat'ed, markdown or not, and stat follows
		// symlinks so linked pages count as files.
		info, err := fs.Stat(b.fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to stat '%s' in section folder '%s': %w", name, folder, err)
		}
		if !info.Mode().IsRegular() || !b.isMarkdown(name) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func (b *Builder) isMarkdown(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range b.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
