package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Classes returns the element's class list.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n is an element carrying class.
func HasClass(n *html.Node, class string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	return slices.Contains(Classes(n), class)
}

// AddClass adds class unless already present.
func AddClass(n *html.Node, class string) {
	cs := Classes(n)
	if slices.Contains(cs, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(cs, class), " "))
}

// RemoveClass removes every occurrence of class.
func RemoveClass(n *html.Node, class string) {
	cs := slices.DeleteFunc(Classes(n), func(c string) bool { return c == class })
	if len(cs) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(cs, " "))
}

// ToggleClass flips class and reports whether it is now present.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}

type declaration struct {
	prop, val string
}

func parseStyle(s string) []declaration {
	var out []declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, val: strings.TrimSpace(val)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.val)
	}
	return strings.Join(parts, "; ")
}

// Style returns the inline value of a CSS property, or "" when unset.
func Style(n *html.Node, prop string) string {
	v, _ := Attr(n, "style")
	for _, d := range parseStyle(v) {
		if d.prop == prop {
			return d.val
		}
	}
	return ""
}

// SetStyle sets an inline CSS property. An empty value removes the property,
// as assigning "" to element.style does in a browser.
func SetStyle(n *html.Node, prop, val string) {
	v, _ := Attr(n, "style")
	decls := slices.DeleteFunc(parseStyle(v), func(d declaration) bool { return d.prop == prop })
	if val != "" {
		decls = append(decls, declaration{prop: prop, val: val})
	}
	if len(decls) == 0 {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", formatStyle(decls))
}

// Visible reports whether n is not hidden by an inline display: none.
func Visible(n *html.Node) bool {
	return Style(n, "display") != "none"
}
