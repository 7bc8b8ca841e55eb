package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		mods     map[string]string
		expected string
	}{
		{
			name:     "no_modifiers",
			endpoint: "https://contoso/_api/web/lists",
			mods:     nil,
			expected: "https://contoso/_api/web/lists",
		},
		{
			name:     "select_and_top",
			endpoint: "https://contoso/_api/web/lists",
			mods:     map[string]string{"$select": "Id,Title", "$top": "5"},
			expected: "https://contoso/_api/web/lists?%24select=Id%2CTitle&%24top=5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods := NewODataMods()
			for k, v := range tt.mods {
				mods.Add(k, v)
			}
			assert.Equal(t, tt.expected, toURL(tt.endpoint, mods))
		})
	}
}

func TestByTitleSegmentEscapesQuotes(t *testing.T) {
	assert.Equal(t, "getByTitle('Bob''s Docs')", byTitleSegment("Bob's Docs"))
}

func TestExtractWebURL(t *testing.T) {
	assert.Equal(t, "https://contoso/sites/a",
		extractWebURL("https://contoso/sites/a/_api/web/lists"))
	assert.Equal(t, "https://contoso",
		extractWebURL("https://contoso/_API/Web/Lists(guid'x')"))
	// No /_api marker passes through unchanged
	assert.Equal(t, "https://contoso/sites/a", extractWebURL("https://contoso/sites/a"))
}

func TestParentOf(t *testing.T) {
	assert.Equal(t, "https://contoso/_api/web/lists",
		parentOf("https://contoso/_api/web/lists/getByTitle('Docs')"))
}

func TestTrimMultiline(t *testing.T) {
	selector := `
		Id,Title,Hidden,
		RootFolder/ServerRelativeUrl
	`
	assert.Equal(t, "Id,Title,Hidden,RootFolder/ServerRelativeUrl", trimMultiline(selector))
}
