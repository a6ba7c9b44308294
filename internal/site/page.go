package site

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/dom"
)

// Element IDs shared by the Go renderers and script.js.
const (
	IDSearchInput  = "searchInput"
	IDMain         = "main"
	IDPacksGrid    = "packs-grid"
	IDPacksCount   = "packs-count"
	IDServersGrid  = "mcp-grid"
	IDServersCount = "mcp-count"
	IDPackModal    = "pack-modal"
	IDPackDetails  = "pack-details"
	IDServerModal  = "mcp-modal"
	IDServerDetail = "mcp-details"
	IDTemplates    = "detail-templates"
)

// Toolbar badge IDs, in display order.
var toolbarBadges = []struct{ id, label string }{
	{"stat-packs", "Packs"},
	{"stat-skills", "Skills"},
	{"stat-agents", "Agents"},
	{"stat-docs", "Doc Sources"},
	{"stat-servers", "MCP Servers"},
}

// PageOptions configures the host page skeleton.
type PageOptions struct {
	Title       string
	Subtitle    string
	Query       string
	BasePath    string
	CopyRevert  int
	Footer      string
	LiveReload  bool
	SearchLabel string
}

// Page is the host document plus direct handles to the containers the
// renderers populate.
type Page struct {
	Doc *html.Node

	Body          *html.Node
	Main          *html.Node
	SearchInput   *html.Node
	PacksGrid     *html.Node
	PacksCount    *html.Node
	ServersGrid   *html.Node
	ServersCount  *html.Node
	PackModal     *html.Node
	PackDetails   *html.Node
	ServerModal   *html.Node
	ServerDetails *html.Node
	Templates     *html.Node
	Badges        map[string]*html.Node
}

// NewPage builds the skeleton: header with search and toolbar, the two grid
// sections, the two modal dialogs and the script include.
func NewPage(opts PageOptions) *Page {
	p := &Page{Doc: dom.Document(), Badges: make(map[string]*html.Node)}
	if opts.Title == "" {
		opts.Title = "Agentic Collections"
	}
	if opts.SearchLabel == "" {
		opts.SearchLabel = "Search packs, skills, agents, MCP servers..."
	}

	head := dom.Append(dom.El("head"),
		dom.El("meta", "charset", "utf-8"),
		dom.El("meta", "name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		dom.Append(dom.El("title"), dom.Text(opts.Title)),
		dom.El("link", "rel", "stylesheet", "href", opts.BasePath+"style.css"),
	)

	p.SearchInput = dom.El("input",
		"type", "search",
		"id", IDSearchInput,
		"name", "q",
		"value", opts.Query,
		"placeholder", opts.SearchLabel,
		"autocomplete", "off",
		"aria-label", "Search",
	)
	form := dom.Append(dom.El("form", "class", "search-form", "method", "get", "action", ""), p.SearchInput)

	toolbar := dom.El("div", "class", "toolbar", "id", "toolbar")
	for _, b := range toolbarBadges {
		value := dom.Append(dom.El("span", "class", "badge-value", "id", b.id), dom.Text("0"))
		p.Badges[b.id] = value
		dom.Append(toolbar, dom.Append(dom.El("span", "class", "badge"),
			value, dom.Text(" "),
			dom.Append(dom.El("span", "class", "badge-label"), dom.Text(b.label)),
		))
	}

	header := dom.Append(dom.El("header", "class", "site-header"),
		dom.Append(dom.El("h1"), dom.Text(opts.Title)),
	)
	if opts.Subtitle != "" {
		dom.Append(header, dom.Append(dom.El("p", "class", "subtitle"), dom.Text(opts.Subtitle)))
	}
	dom.Append(header, form, toolbar)

	var packsSection, serversSection *html.Node
	packsSection, p.PacksGrid, p.PacksCount = gridSection("packs", "Agentic Packs", IDPacksGrid, IDPacksCount)
	serversSection, p.ServersGrid, p.ServersCount = gridSection("mcp", "MCP Servers", IDServersGrid, IDServersCount)
	p.Main = dom.Append(dom.El("main", "id", IDMain), packsSection, serversSection)

	p.PackModal, p.PackDetails = modal(IDPackModal, IDPackDetails, "Pack details")
	p.ServerModal, p.ServerDetails = modal(IDServerModal, IDServerDetail, "MCP server details")
	p.Templates = dom.El("div", "id", IDTemplates, "hidden", "")

	p.Body = dom.Append(dom.El("body", "data-copy-revert-ms", strconv.Itoa(opts.CopyRevert), "data-query", opts.Query),
		header, p.Main, p.PackModal, p.ServerModal, p.Templates)
	if opts.LiveReload {
		dom.SetAttr(p.Body, "data-live-reload", "true")
	}
	if opts.Footer != "" {
		dom.Append(p.Body, dom.Append(dom.El("footer", "class", "site-footer"), dom.Text(opts.Footer)))
	}
	dom.Append(p.Body, dom.El("script", "src", opts.BasePath+"script.js"))

	dom.Append(p.Doc, dom.Append(dom.El("html", "lang", "en"), head, p.Body))
	return p
}

func gridSection(name, heading, gridID, countID string) (section, grid, count *html.Node) {
	count = dom.Append(dom.El("span", "class", "count", "id", countID), dom.Text("(0)"))
	header := dom.Append(dom.El("h2", "class", "section-header", "data-action", "toggle-section", "data-section", name),
		dom.Text(heading+" "), count)
	grid = dom.El("div", "class", "grid", "id", gridID)
	section = dom.Append(dom.El("section", "class", "section", "id", name+"-section"),
		header,
		dom.Append(dom.El("div", "class", "section-body"), grid),
	)
	return section, grid, count
}

func modal(id, contentID, label string) (m, content *html.Node) {
	content = dom.El("div", "id", contentID, "class", "modal-body")
	panel := dom.Append(dom.El("div", "class", "modal-content"),
		dom.Append(dom.El("span", "class", "close", "role", "button", "tabindex", "0", "aria-label", "Close"), dom.Text("×")),
		content,
	)
	m = dom.Append(dom.El("div",
		"id", id,
		"class", "modal",
		"role", "dialog",
		"aria-modal", "true",
		"aria-label", label,
		"style", "display: none",
	), panel)
	return m, content
}
