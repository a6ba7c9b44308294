package site

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/dom"
)

// DefaultDescriptionLimit is the display length used when none is configured.
const DefaultDescriptionLimit = 150

// TruncatePoint returns where text should be cut for a limit (in runes) and
// whether any cut is needed. The cut lands on the last space or newline at or
// before the limit; with no boundary after position 0 it is a hard cut.
func TruncatePoint(text string, limit int) (int, bool) {
	r := []rune(text)
	if limit < 0 {
		limit = 0
	}
	if len(r) <= limit {
		return len(r), false
	}
	for i := limit; i > 0; i-- {
		if r[i] == ' ' || r[i] == '\n' {
			return i, true
		}
	}
	return limit, true
}

// Expandable renders text through MarkdownLite. Text longer than limit gets a
// collapsed view with a "show more" control and a hidden expanded view with a
// "show less" control. Every call starts collapsed.
func Expandable(text string, limit int) *html.Node {
	cut, truncated := TruncatePoint(text, limit)
	if !truncated {
		return dom.Append(dom.El("span", "class", "expandable-text"), MarkdownLite(text)...)
	}

	collapsed := dom.Append(dom.El("span", "class", "text-collapsed"), MarkdownLite(string([]rune(text)[:cut]))...)
	dom.Append(collapsed,
		dom.Text("... "),
		dom.Append(dom.El("button", "type", "button", "class", "toggle-text", "data-action", "expand"), dom.Text("show more")),
	)

	expanded := dom.Append(dom.El("span", "class", "text-expanded", "style", "display: none"), MarkdownLite(text)...)
	dom.Append(expanded,
		dom.Text(" "),
		dom.Append(dom.El("button", "type", "button", "class", "toggle-text", "data-action", "collapse"), dom.Text("show less")),
	)

	return dom.Append(dom.El("span", "class", "expandable-text expandable", "data-expanded", "false"), collapsed, expanded)
}

// SetExpanded switches an expandable to the given view. It is a no-op for
// text that was never truncated.
func SetExpanded(n *html.Node, expanded bool) {
	var collapsedView, expandedView *html.Node
	for _, c := range dom.Elements(n) {
		switch {
		case dom.HasClass(c, "text-collapsed"):
			collapsedView = c
		case dom.HasClass(c, "text-expanded"):
			expandedView = c
		}
	}
	if collapsedView == nil || expandedView == nil {
		return
	}
	if expanded {
		dom.SetStyle(collapsedView, "display", "none")
		dom.SetStyle(expandedView, "display", "")
		dom.SetAttr(n, "data-expanded", "true")
	} else {
		dom.SetStyle(collapsedView, "display", "")
		dom.SetStyle(expandedView, "display", "none")
		dom.SetAttr(n, "data-expanded", "false")
	}
}

// IsExpanded reports the current view of an expandable.
func IsExpanded(n *html.Node) bool {
	return dom.AttrOr(n, "data-expanded", "false") == "true"
}
