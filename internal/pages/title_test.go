package pages

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	fsys := fstest.MapFS{
		"software/frontmatter.md":  {Data: []byte("---\ntitle: Working With Channels\n---\n# Ignored Heading\n")},
		"software/heading.md":      {Data: []byte("Some intro.\n\n## Sub\n\n# Real *Title*\n")},
		"software/go-tips_2024.md": {Data: []byte("no headings here\n")},
		"software/broken.md":       {Data: []byte("---\ntitle: [oops\n---\n# From Heading\n")},
	}

	tests := []struct {
		name string
		want string
	}{
		{"software/frontmatter.md", "Working With Channels"},
		{"software/heading.md", "Real Title"},
		{"software/go-tips_2024.md", "Go Tips 2024"},
		{"software/broken.md", "From Heading"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Title(fsys, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitle_MissingPage(t *testing.T) {
	_, err := Title(fstest.MapFS{}, "nope.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFromFilename(t *testing.T) {
	assert.Equal(t, "Machine Learning", FromFilename("machine-learning.md"))
	assert.Equal(t, "Readme", FromFilename("README.md"))
}
