package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/packdocs/internal/dom"
)

func TestTruncatePoint(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		limit     int
		wantCut   int
		wantTrunc bool
	}{
		{"within limit", "short text", 20, 10, false},
		{"exactly limit", "0123456789", 10, 10, false},
		{"space before limit", "hello world again", 8, 5, true},
		{"boundary at limit", "hello world", 5, 5, true},
		{"newline boundary", "line one\nline two", 10, 8, true},
		{"no boundary hard cut", "abcdefghijklmnop", 5, 5, true},
		{"space only at zero hard cut", " abcdefghij", 5, 5, true},
		{"runes not bytes", "ééééé ééééé", 7, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cut, trunc := TruncatePoint(tt.text, tt.limit)
			if cut != tt.wantCut || trunc != tt.wantTrunc {
				t.Errorf("TruncatePoint(%q, %d) = (%d, %v), want (%d, %v)",
					tt.text, tt.limit, cut, trunc, tt.wantCut, tt.wantTrunc)
			}
		})
	}
}

func TestExpandableShortTextHasNoControl(t *testing.T) {
	n := Expandable("A **short** description", 150)

	assert.Empty(t, dom.ByClass(n, "toggle-text"))
	assert.Equal(t, "A short description", dom.TextContent(n))
	assert.Len(t, dom.ByTag(n, "strong"), 1)
}

func TestExpandableLongText(t *testing.T) {
	text := strings.Repeat("word ", 40) + "end"
	limit := 23
	n := Expandable(text, limit)

	views := dom.Elements(n)
	require.Len(t, views, 2)
	collapsed, expanded := views[0], views[1]

	assert.True(t, dom.Visible(collapsed))
	assert.False(t, dom.Visible(expanded))
	assert.False(t, IsExpanded(n))

	more := dom.ByClass(collapsed, "toggle-text")
	require.Len(t, more, 1, "exactly one show more control")
	assert.Equal(t, "show more", dom.TextContent(more[0]))

	// Collapsed text ends at a boundary at or before the limit.
	shown := strings.TrimSuffix(dom.TextContent(collapsed), "... show more")
	assert.LessOrEqual(t, len([]rune(shown)), limit)
	assert.Equal(t, "word word word word", shown)

	less := dom.ByClass(expanded, "toggle-text")
	require.Len(t, less, 1)
	assert.Equal(t, "show less", dom.TextContent(less[0]))
	assert.True(t, strings.HasPrefix(dom.TextContent(expanded), text))
}

func TestSetExpandedToggles(t *testing.T) {
	n := Expandable(strings.Repeat("x", 200), 150)
	collapsed, expanded := dom.Elements(n)[0], dom.Elements(n)[1]

	SetExpanded(n, true)
	assert.True(t, IsExpanded(n))
	assert.False(t, dom.Visible(collapsed))
	assert.True(t, dom.Visible(expanded))

	SetExpanded(n, false)
	assert.False(t, IsExpanded(n))
	assert.True(t, dom.Visible(collapsed))
	assert.False(t, dom.Visible(expanded))

	// Hard cut at the limit when there is no boundary.
	assert.Equal(t, strings.Repeat("x", 150)+"... show more", dom.TextContent(collapsed))
}

func TestExpandableFreshConstructionStartsCollapsed(t *testing.T) {
	text := strings.Repeat("long text ", 30)
	first := Expandable(text, 50)
	SetExpanded(first, true)

	second := Expandable(text, 50)
	assert.False(t, IsExpanded(second))
}
