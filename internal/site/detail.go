package site

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
)

// DetailOptions carries what the detail renderers need beyond the record.
type DetailOptions struct {
	DescriptionLimit int
	Installer        *Installer
	// ReadmeHref returns the link to a pack's rendered README.
	ReadmeHref func(pack string) string
	// HasPack reports whether a server's pack is loaded; unknown packs are not linked.
	HasPack func(pack string) bool
}

func (o DetailOptions) limit() int {
	if o.DescriptionLimit <= 0 {
		return DefaultDescriptionLimit
	}
	return o.DescriptionLimit
}

// RenderPackDetail rebuilds root with the pack's detail view.
func RenderPackDetail(root *html.Node, pack catalog.Pack, opts DetailOptions) {
	dom.Clear(root)

	header := dom.Append(dom.El("div", "class", "detail-header"),
		dom.Append(dom.El("h2"), dom.Text(pack.Title())),
		dom.Append(dom.El("span", "class", "version-badge"), dom.Text("v"+pack.Version())),
	)
	if pack.HasReadme && opts.ReadmeHref != nil {
		dom.Append(header, readmeLink(opts.ReadmeHref(pack.Name), "View README"))
	}
	dom.Append(root, header,
		dom.Append(dom.El("p", "class", "detail-description"), Expandable(pack.Description(), opts.limit())),
	)

	if len(pack.Agents) > 0 {
		items := make([]*html.Node, 0, len(pack.Agents))
		for _, a := range pack.Agents {
			li := namedItem(a.Name, a.Description, opts.limit())
			if a.Model != "" {
				dom.Append(li, dom.Text(" "), dom.Append(dom.El("span", "class", "model-badge"), dom.Text(a.Model)))
			}
			items = append(items, li)
		}
		dom.Append(root, section("agents", fmt.Sprintf("Agents (%d)", len(pack.Agents)),
			dom.Append(dom.El("ul", "class", "item-list"), items...)))
	}

	if len(pack.Skills) > 0 {
		items := make([]*html.Node, 0, len(pack.Skills))
		for _, s := range pack.Skills {
			items = append(items, namedItem(s.Name, s.Description, opts.limit()))
		}
		dom.Append(root, section("skills", fmt.Sprintf("Skills (%d)", len(pack.Skills)),
			dom.Append(dom.El("ul", "class", "item-list"), items...)))
	}

	if len(pack.Docs) > 0 {
		dom.Append(root, section("docs", fmt.Sprintf("Documentation (%d)", pack.DocSourceCount()), docsByCategory(pack.Docs)...))
	}

	installer := opts.Installer
	if installer == nil {
		installer, _ = NewInstaller("", catalog.Repository{})
	}
	dom.Append(root, section("installation", "Installation", codeBlock(installer.Snippet(pack.Name))))
}

// RenderServerDetail rebuilds root with the server's detail view.
func RenderServerDetail(root *html.Node, s catalog.MCPServer, opts DetailOptions) {
	dom.Clear(root)

	header := dom.Append(dom.El("div", "class", "detail-header"),
		dom.Append(dom.El("h2"), dom.Text(s.Name)),
	)
	if href := SafeURL(s.Repository); href != "" {
		dom.Append(header, readmeLink(href, "README"))
	}
	dom.Append(root, header)

	from := dom.Append(dom.El("p", "class", "from-pack"), dom.Text("From pack: "))
	packName := dom.Append(dom.El("strong"), dom.Text(s.Pack))
	if opts.HasPack != nil && opts.HasPack(s.Pack) {
		dom.Append(from, dom.Append(dom.El("a",
			"href", PackHref(s.Pack),
			"data-action", "show-pack",
			"data-pack", s.Pack,
		), packName))
	} else {
		dom.Append(from, packName)
	}
	dom.Append(root, from)

	if s.Description != "" {
		dom.Append(root, dom.Append(dom.El("p", "class", "detail-description"), Expandable(s.Description, opts.limit())))
	}

	dom.Append(root, section("command", "Command", codeBlock(CommandLine(s.Command, s.Args))))

	if len(s.Env) > 0 {
		ul := dom.El("ul", "class", "env-list")
		for _, name := range s.Env {
			dom.Append(ul, dom.Append(dom.El("li"), dom.Append(dom.El("code"), dom.Text(name))))
		}
		dom.Append(root, section("env", fmt.Sprintf("Environment Variables (%d)", len(s.Env)), ul))
	}

	sec := dom.El("ul", "class", "security-list")
	for _, key := range catalog.SecurityKeys {
		dom.Append(sec, dom.Append(dom.El("li"), dom.Text(Capitalize(key)+": "+s.Security.Get(key))))
	}
	dom.Append(root, section("security", "Security", sec))

	if len(s.Tools) > 0 {
		items := make([]*html.Node, 0, len(s.Tools))
		for _, t := range s.Tools {
			items = append(items, namedItem(t.Name, t.Description, opts.limit()))
		}
		dom.Append(root, section("tools", fmt.Sprintf("Tools (%d)", len(s.Tools)),
			dom.Append(dom.El("ul", "class", "item-list"), items...)))
	}
}

// CommandLine formats a server command for display: the first argument stays
// on the command line and every later argument gets its own indented
// continuation line.
func CommandLine(command string, args []string) string {
	var b strings.Builder
	b.WriteString(command)
	for i, a := range args {
		if i == 0 {
			b.WriteString(" " + a)
			continue
		}
		b.WriteString(" \\\n  " + a)
	}
	return b.String()
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SafeURL returns raw when it is an http(s), mailto or relative URL, and ""
// otherwise, so data-supplied links can never carry a script scheme.
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return raw
	case "":
		if u.Host != "" || strings.HasPrefix(raw, "//") {
			return ""
		}
		return raw
	}
	return ""
}

func docsByCategory(docs []catalog.Doc) []*html.Node {
	groups := make(map[string][]catalog.Doc)
	for _, d := range docs {
		groups[d.CategoryOf()] = append(groups[d.CategoryOf()], d)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*html.Node, 0, len(keys))
	for _, k := range keys {
		list := dom.El("ul", "class", "doc-list")
		for _, d := range groups[k] {
			li := dom.Append(dom.El("li"), dom.Append(dom.El("span", "class", "doc-title"), dom.Text(d.Title)))
			if len(d.Sources) > 0 {
				sources := dom.El("ul", "class", "doc-sources")
				for _, src := range d.Sources {
					dom.Append(sources, dom.Append(dom.El("li"), sourceLink(src)))
				}
				dom.Append(li, sources)
			}
			dom.Append(list, li)
		}
		out = append(out, dom.Append(dom.El("div", "class", "doc-category", "data-category", k),
			dom.Append(dom.El("h4"), dom.Text(Capitalize(k))),
			list,
		))
	}
	return out
}

func sourceLink(src catalog.Source) *html.Node {
	title := src.Title
	if title == "" {
		title = src.URL
	}
	href := SafeURL(src.URL)
	if href == "" {
		return dom.Append(dom.El("span"), dom.Text(title))
	}
	return dom.Append(dom.El("a", "href", href, "target", "_blank", "rel", "noopener noreferrer"), dom.Text(title))
}

func readmeLink(href, label string) *html.Node {
	return dom.Append(dom.El("a",
		"class", "readme-link",
		"href", href,
		"target", "_blank",
		"rel", "noopener noreferrer",
	), dom.Text(label))
}

func namedItem(name, description string, limit int) *html.Node {
	li := dom.Append(dom.El("li"), dom.Append(dom.El("strong"), dom.Text(name)))
	if description != "" {
		dom.Append(li, dom.Text(": "), Expandable(description, limit))
	}
	return li
}

func codeBlock(text string) *html.Node {
	return dom.Append(dom.El("div", "class", "code-block"),
		dom.Append(dom.El("pre"), dom.Append(dom.El("code"), dom.Text(text))),
		dom.Append(dom.El("button", "type", "button", "class", "copy-btn", "data-action", "copy"), dom.Text("Copy")),
	)
}

// section builds a collapsible block; id + "-section" is the element toggled.
func section(id, title string, body ...*html.Node) *html.Node {
	return dom.Append(dom.El("div", "class", "detail-section", "id", id+"-section"),
		dom.Append(dom.El("h3", "class", "section-header", "data-action", "toggle-section", "data-section", id), dom.Text(title)),
		dom.Append(dom.El("div", "class", "section-body"), body...),
	)
}
