// Package search implements the catalog text filter: a case-insensitive substring
// match over a per-entity concatenation of searchable fields.
package search

import (
	"strings"

	"github.com/samber/lo"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

// Result is a filtered view of a catalog. Slices are newly allocated; the
// source collections are never modified.
type Result struct {
	Query   string
	Packs   []catalog.Pack
	Servers []catalog.MCPServer
}

// Tally returns the toolbar totals for the result.
func (r Result) Tally() catalog.Tally {
	return catalog.Count(r.Packs, r.Servers)
}

// NormalizeQuery lowercases and trims a raw query.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// PackText is the searchable string for a pack.
func PackText(p catalog.Pack) string {
	parts := []string{p.Name, p.Plugin.Name, p.Plugin.Description}
	for _, s := range p.Skills {
		parts = append(parts, s.Name+" "+s.Description)
	}
	for _, a := range p.Agents {
		parts = append(parts, a.Name+" "+a.Description)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ServerText is the searchable string for an MCP server.
func ServerText(s catalog.MCPServer) string {
	parts := append([]string{s.Name, s.Pack, s.Command}, s.Env...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Filter returns the packs and servers whose searchable strings contain the
// normalized query, preserving collection order. An empty or whitespace-only
// query returns copies of the full collections.
func Filter(raw string, packs []catalog.Pack, servers []catalog.MCPServer) Result {
	q := NormalizeQuery(raw)
	if q == "" {
		return Result{
			Packs:   append([]catalog.Pack{}, packs...),
			Servers: append([]catalog.MCPServer{}, servers...),
		}
	}
	return Result{
		Query: q,
		Packs: lo.Filter(packs, func(p catalog.Pack, _ int) bool {
			return strings.Contains(PackText(p), q)
		}),
		Servers: lo.Filter(servers, func(s catalog.MCPServer, _ int) bool {
			return strings.Contains(ServerText(s), q)
		}),
	}
}

// Catalog filters a whole catalog snapshot.
func Catalog(raw string, cat *catalog.Catalog) Result {
	return Filter(raw, cat.Packs, cat.MCPServers)
}
