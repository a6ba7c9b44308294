package site

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
)

func fixtureCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Repository: catalog.Repository{
			Name: "agentic-collections",
			URL:  "https://github.com/example/agentic-collections",
		},
		Packs: []catalog.Pack{
			{
				Name:   "rh-sre",
				Plugin: catalog.Plugin{Name: "Site Reliability", Version: "1.2.0", Description: "Operate **fleets** at scale"},
				Skills: []catalog.Skill{
					{Name: "cve-scan", Description: "Run security scanning across hosts"},
					{Name: "remediate", Description: "Apply fixes"},
				},
				Agents: []catalog.Agent{{Name: "triage", Description: "Triage incidents", Model: "sonnet"}},
				Docs: []catalog.Doc{
					{Category: "security", Title: "CVE feeds", Sources: []catalog.Source{{Title: "NVD", URL: "https://nvd.nist.gov"}}},
					{Title: "Getting started", Sources: []catalog.Source{
						{Title: "Guide", URL: "https://example.com/guide"},
						{Title: "Bad", URL: "javascript:alert(1)"},
					}},
				},
				HasReadme: true,
			},
			{
				Name:   "ocp-admin",
				Skills: []catalog.Skill{},
				Agents: []catalog.Agent{},
			},
		},
		MCPServers: []catalog.MCPServer{
			{
				Name:       "lightspeed",
				Pack:       "rh-sre",
				Command:    "podman",
				Args:       []string{"run", "--rm", "quay.io/lightspeed:latest"},
				Env:        []string{"LIGHTSPEED_CLIENT_ID", "LIGHTSPEED_CLIENT_SECRET"},
				Security:   catalog.Security{Isolation: "container", Network: "outbound"},
				Tools:      []catalog.Tool{{Name: "vulnerabilities", Description: "List CVEs"}},
				Repository: "https://github.com/example/lightspeed-mcp",
			},
			{Name: "lightspeed", Pack: "ocp-admin", Command: "npx", Args: []string{}, Env: []string{}},
			{Name: "orphan", Pack: "missing-pack", Command: "docker", Args: []string{}, Env: []string{}},
		},
	}
}

type stubFetcher struct {
	cat *catalog.Catalog
	err error
}

func (f stubFetcher) Load(context.Context, string) (*catalog.Catalog, error) {
	return f.cat, f.err
}

var errUnreachable = errors.New("connection refused")

func loadedApp(opts Options) *App {
	app := New(opts)
	if err := app.Init(context.Background(), stubFetcher{cat: fixtureCatalog()}, "data.json"); err != nil {
		panic(err)
	}
	return app
}

// headings returns the text of every h3 under n.
func headings(n *html.Node) []string {
	var out []string
	for _, h := range dom.ByTag(n, "h3") {
		out = append(out, strings.TrimSpace(dom.TextContent(h)))
	}
	return out
}

func cardsIn(grid *html.Node) []*html.Node {
	return dom.ByClass(grid, "card")
}
