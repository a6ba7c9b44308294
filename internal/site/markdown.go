package site

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/dom"
)

// boldPattern matches a non-greedy **bold** span on a single line.
var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// MarkdownLite converts text into nodes, recognising only **bold** spans and
// newlines. Everything else, including markup, becomes literal text.
func MarkdownLite(text string) []*html.Node {
	var nodes []*html.Node
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		nodes = appendLines(nodes, text[last:m[0]])
		nodes = append(nodes, dom.Append(dom.El("strong"), dom.Text(text[m[2]:m[3]])))
		last = m[1]
	}
	return appendLines(nodes, text[last:])
}

func appendLines(nodes []*html.Node, s string) []*html.Node {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			nodes = append(nodes, dom.El("br"))
		}
		if line != "" {
			nodes = append(nodes, dom.Text(line))
		}
	}
	return nodes
}
