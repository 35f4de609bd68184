package site

import (
	"fmt"
	"log/slog"

	"github.com/damianphung/docsite/internal/model"
)

// SidebarBuilder produces the sidebar groups for one section folder.
type SidebarBuilder interface {
	Build(folder, title string) ([]model.SidebarGroup, error)
}

// Resolve builds every section sidebar and assembles the final site. The
// first sidebar error aborts resolution; no partial site is returned.
func Resolve(def *Definition, sidebars SidebarBuilder) (*model.Site, error) {
	sidebar := make(map[string][]model.SidebarGroup, len(def.Sections))
	for _, section := range def.Sections {
		groups, err := sidebars.Build(section.Folder, section.Title)
		if err != nil {
			return nil, fmt.Errorf("failed to build sidebar for section '%s': %w", section.Folder, err)
		}
		slog.Debug("sidebar built", "section", section.Folder, "prefix", section.Prefix(), "groups", len(groups))
		sidebar[section.Prefix()] = groups
	}

	return &model.Site{
		Title:       def.Title,
		Description: def.Description,
		Head:        headTags(def),
		Theme: model.ThemeConfig{
			Logo:                 def.Theme.Logo,
			SmoothScroll:         def.Theme.SmoothScroll,
			EditLinks:            def.Theme.EditLinks,
			LastUpdated:          def.Theme.LastUpdated,
			SearchMaxSuggestions: def.Theme.SearchMaxSuggestions,
			SearchPlaceholder:    def.Theme.SearchPlaceholder,
			Nav:                  append([]model.NavEntry(nil), def.Nav...),
			Sidebar:              sidebar,
		},
		Plugins: append([]string(nil), def.Plugins...),
	}, nil
}

func headTags(def *Definition) []model.HeadTag {
	tags := make([]model.HeadTag, 0, len(def.Head)+2)
	for _, tag := range def.Head {
		attrs := make(map[string]string, len(tag.Attrs))
		for k, v := range tag.Attrs {
			attrs[k] = v
		}
		tags = append(tags, model.HeadTag{Tag: tag.Tag, Attrs: attrs, Content: tag.Content})
	}

	if def.Analytics.Src != "" {
		tags = append(tags, model.HeadTag{
			Tag:   "script",
			Attrs: map[string]string{"async": "", "src": def.Analytics.Src},
		})
	}
	if def.Analytics.Snippet != "" {
		tags = append(tags, model.HeadTag{Tag: "script", Content: def.Analytics.Snippet})
	}
	return tags
}
