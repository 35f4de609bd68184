package model

// Site is the resolved configuration handed to the theme renderer.
// It is built once per run and never mutated afterwards.
type Site struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Head        []HeadTag   `json:"head" yaml:"head"`
	Theme       ThemeConfig `json:"themeConfig" yaml:"themeConfig"`
	Plugins     []string    `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// HeadTag is a single element injected into every page's <head>.
// Content is emitted verbatim and is never parsed.
type HeadTag struct {
	Tag     string            `json:"tag" yaml:"tag"`
	Attrs   map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Content string            `json:"content,omitempty" yaml:"content,omitempty"`
}

// ThemeConfig holds the default theme options.
type ThemeConfig struct {
	Logo                 string                    `json:"logo,omitempty" yaml:"logo,omitempty"`
	SmoothScroll         bool                      `json:"smoothScroll" yaml:"smoothScroll"`
	EditLinks            bool                      `json:"editLinks" yaml:"editLinks"`
	LastUpdated          bool                      `json:"lastUpdated" yaml:"lastUpdated"`
	SearchMaxSuggestions int                       `json:"searchMaxSuggestions" yaml:"searchMaxSuggestions"`
	SearchPlaceholder    string                    `json:"searchPlaceholder" yaml:"searchPlaceholder"`
	Nav                  []NavEntry                `json:"nav" yaml:"nav"`
	Sidebar              map[string][]SidebarGroup `json:"sidebar" yaml:"sidebar"`
}

// NavEntry is either a direct link (Text + Link) or a labeled group of
// links (Text + Items).
type NavEntry struct {
	Text  string     `json:"text" yaml:"text"`
	Link  string     `json:"link,omitempty" yaml:"link,omitempty"`
	Items []NavEntry `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsGroup reports whether the entry is a labeled group rather than a link.
func (n NavEntry) IsGroup() bool {
	return len(n.Items) > 0
}

// SidebarGroup describes one documentation section in the sidebar.
// Children holds page identifiers relative to the section folder; the empty
// string stands for the section's index page.
type SidebarGroup struct {
	Title        string   `json:"title" yaml:"title"`
	SidebarDepth int      `json:"sidebarDepth" yaml:"sidebarDepth"`
	Children     []string `json:"children" yaml:"children"`
}

// Section maps a content folder to a sidebar group under a URL prefix.
type Section struct {
	Folder string `json:"folder" yaml:"folder"`
	Title  string `json:"title" yaml:"title"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Prefix returns the URL path prefix for the section, "/<folder>/" unless
// Path is set.
func (s Section) Prefix() string {
	if s.Path != "" {
		return s.Path
	}
	return "/" + s.Folder + "/"
}
