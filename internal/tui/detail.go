package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/site"
)

// PackMarkdown is the detail overlay source for a pack. It carries the same
// sections as the web detail view.
func PackMarkdown(p catalog.Pack, inst *site.Installer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n`v%s`\n\n%s\n", p.Title(), p.Version(), p.Description())

	if len(p.Agents) > 0 {
		fmt.Fprintf(&b, "\n## Agents (%d)\n\n", len(p.Agents))
		for _, a := range p.Agents {
			model := ""
			if a.Model != "" {
				model = " _(" + a.Model + ")_"
			}
			fmt.Fprintf(&b, "- **%s**%s: %s\n", a.Name, model, a.Description)
		}
	}

	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "\n## Skills (%d)\n\n", len(p.Skills))
		for _, s := range p.Skills {
			fmt.Fprintf(&b, "- **%s**: %s\n", s.Name, s.Description)
		}
	}

	if n := p.DocSourceCount(); n > 0 {
		fmt.Fprintf(&b, "\n## Documentation (%d sources)\n", n)
		groups := lo.GroupBy(p.Docs, func(d catalog.Doc) string { return d.CategoryOf() })
		categories := lo.Keys(groups)
		sort.Strings(categories)
		for _, c := range categories {
			fmt.Fprintf(&b, "\n### %s\n\n", site.Capitalize(c))
			for _, d := range groups[c] {
				for _, src := range d.Sources {
					if u := site.SafeURL(src.URL); u != "" {
						fmt.Fprintf(&b, "- %s: [%s](%s)\n", d.Title, src.Title, u)
					} else {
						fmt.Fprintf(&b, "- %s: %s\n", d.Title, src.Title)
					}
				}
			}
		}
	}

	if inst != nil {
		fmt.Fprintf(&b, "\n## Installation\n\n```sh\n%s\n```\n", inst.Snippet(p.Name))
	}
	return b.String()
}

// ServerMarkdown is the detail overlay source for an MCP server. linked
// reports whether its pack is loaded.
func ServerMarkdown(s catalog.MCPServer, linked bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if linked {
		fmt.Fprintf(&b, "From pack: **%s**\n", s.Pack)
	} else {
		fmt.Fprintf(&b, "From pack: **%s** _(not loaded)_\n", s.Pack)
	}
	if s.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Description)
	}
	if u := site.SafeURL(s.Repository); u != "" {
		fmt.Fprintf(&b, "\n[README](%s)\n", u)
	}

	fmt.Fprintf(&b, "\n## Command\n\n```sh\n%s\n```\n", site.CommandLine(s.Command, s.Args))

	if len(s.Env) > 0 {
		fmt.Fprintf(&b, "\n## Environment Variables (%d)\n\n", len(s.Env))
		for _, e := range s.Env {
			fmt.Fprintf(&b, "- `%s`\n", e)
		}
	}

	b.WriteString("\n## Security\n\n")
	for _, key := range catalog.SecurityKeys {
		fmt.Fprintf(&b, "- %s: %s\n", site.Capitalize(key), s.Security.Get(key))
	}

	if len(s.Tools) > 0 {
		fmt.Fprintf(&b, "\n## Tools (%d)\n\n", len(s.Tools))
		for _, t := range s.Tools {
			fmt.Fprintf(&b, "- **%s**: %s\n", t.Name, t.Description)
		}
	}
	return b.String()
}
