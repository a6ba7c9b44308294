package site

import (
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
	"github.com/ziadkadry99/packdocs/internal/search"
)

// Placeholder texts shown when a grid has nothing to display.
const (
	NoPacksText   = "No packs found matching your search."
	NoServersText = "No MCP servers found matching your search."
)

// RenderPacks clears the packs grid, updates its count label and appends one
// card per pack, or a single placeholder when packs is empty.
func RenderPacks(p *Page, packs []catalog.Pack) {
	cards := make([]*html.Node, 0, len(packs))
	for _, pack := range packs {
		cards = append(cards, PackCard(pack))
	}
	fillGrid(p.PacksGrid, p.PacksCount, cards, NoPacksText)
}

// RenderServers is RenderPacks for the MCP server grid.
func RenderServers(p *Page, servers []catalog.MCPServer) {
	cards := make([]*html.Node, 0, len(servers))
	for _, s := range servers {
		cards = append(cards, ServerCard(s))
	}
	fillGrid(p.ServersGrid, p.ServersCount, cards, NoServersText)
}

func fillGrid(grid, count *html.Node, cards []*html.Node, empty string) {
	dom.Clear(grid)
	dom.SetText(count, fmt.Sprintf("(%d)", len(cards)))
	if len(cards) == 0 {
		dom.Append(grid, dom.Append(dom.El("p", "class", "no-results"), dom.Text(empty)))
		return
	}
	dom.Append(grid, cards...)
}

// PackCard builds the summary card for a pack. The data attributes let the
// client script filter and tally without refetching the document.
func PackCard(pack catalog.Pack) *html.Node {
	card := dom.El("div",
		"class", "card pack-card",
		"data-pack", pack.Name,
		"data-search", search.PackText(pack),
		"data-skills", strconv.Itoa(len(pack.Skills)),
		"data-agents", strconv.Itoa(len(pack.Agents)),
		"data-docs", strconv.Itoa(pack.DocSourceCount()),
	)
	stats := dom.Append(dom.El("div", "class", "stats"),
		stat(plural(len(pack.Skills), "skill")),
		stat(plural(len(pack.Agents), "agent")),
		stat(plural(pack.DocSourceCount(), "doc source")),
	)
	return dom.Append(card,
		dom.Append(dom.El("h3"), dom.Text(pack.Title())),
		dom.Append(dom.El("p", "class", "version"), dom.Text("v"+pack.Version())),
		dom.Append(dom.El("p", "class", "description"), dom.Text(pack.Description())),
		stats,
		dom.Append(dom.El("a",
			"class", "button",
			"href", PackHref(pack.Name),
			"data-action", "show-pack",
			"data-pack", pack.Name,
		), dom.Text("View Details")),
	)
}

// ServerCard builds the summary card for an MCP server. The action carries
// both name and pack since names are only unique within a pack.
func ServerCard(s catalog.MCPServer) *html.Node {
	card := dom.El("div",
		"class", "card mcp-card",
		"data-server", s.Name,
		"data-pack", s.Pack,
		"data-search", search.ServerText(s),
	)
	env := "No env vars"
	if len(s.Env) > 0 {
		env = plural(len(s.Env), "env var")
	}
	stats := dom.Append(dom.El("div", "class", "stats"),
		dom.Append(dom.El("span", "class", "env-vars"), dom.Text(env)),
		stat(plural(len(s.Tools), "tool")),
	)
	return dom.Append(card,
		dom.Append(dom.El("h3"), dom.Text(s.Name)),
		dom.Append(dom.El("p", "class", "pack-tag"), dom.Text("Pack: "+s.Pack)),
		dom.Append(dom.El("p", "class", "container"), dom.Text("Container: "+s.Command)),
		stats,
		dom.Append(dom.El("a",
			"class", "button",
			"href", ServerHref(s.Name, s.Pack),
			"data-action", "show-server",
			"data-server", s.Name,
			"data-pack", s.Pack,
		), dom.Text("Details")),
	)
}

// PackHref is the no-script link that opens a pack's detail.
func PackHref(name string) string {
	return "?" + url.Values{"pack": {name}}.Encode()
}

// ServerHref is the no-script link that opens a server's detail.
func ServerHref(name, pack string) string {
	return "?" + url.Values{"server": {name}, "server_pack": {pack}}.Encode()
}

func stat(text string) *html.Node {
	return dom.Append(dom.El("span"), dom.Text(text))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
