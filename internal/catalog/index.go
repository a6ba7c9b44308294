package catalog

import (
	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// Index provides lookups over an immutable catalog snapshot. When names repeat
// the first occurrence wins.
type Index struct {
	cat     *Catalog
	packs   map[string]int
	servers map[ServerKey]int
}

// NewIndex builds an Index for cat.
func NewIndex(cat *Catalog) *Index {
	ix := &Index{
		cat:     cat,
		packs:   make(map[string]int, len(cat.Packs)),
		servers: make(map[ServerKey]int, len(cat.MCPServers)),
	}
	for i, p := range cat.Packs {
		if _, ok := ix.packs[p.Name]; !ok {
			ix.packs[p.Name] = i
		}
	}
	for i, s := range cat.MCPServers {
		if _, ok := ix.servers[s.Key()]; !ok {
			ix.servers[s.Key()] = i
		}
	}
	return ix
}

// Catalog returns the indexed snapshot.
func (ix *Index) Catalog() *Catalog { return ix.cat }

// HasPack reports whether a pack with the given name exists.
func (ix *Index) HasPack(name string) bool {
	_, ok := ix.packs[name]
	return ok
}

// Pack returns the pack with the given name.
func (ix *Index) Pack(name string) (Pack, error) {
	i, ok := ix.packs[name]
	if !ok {
		return Pack{}, failure.New(ErrPackNotFound,
			failure.Message("Pack not found"),
			failure.Context{"pack": name})
	}
	return ix.cat.Packs[i], nil
}

// Server returns the server identified by (name, pack).
func (ix *Index) Server(name, pack string) (MCPServer, error) {
	i, ok := ix.servers[ServerKey{Name: name, Pack: pack}]
	if !ok {
		return MCPServer{}, failure.New(ErrServerNotFound,
			failure.Message("MCP server not found"),
			failure.Context{"server": name, "pack": pack})
	}
	return ix.cat.MCPServers[i], nil
}

// ServersOf returns the servers that reference the named pack, in catalog order.
func (ix *Index) ServersOf(pack string) []MCPServer {
	return lo.Filter(ix.cat.MCPServers, func(s MCPServer, _ int) bool {
		return s.Pack == pack
	})
}

// Unlinked returns servers whose pack reference matches no loaded pack.
// They stay listable but have no pack to link to.
func (ix *Index) Unlinked() []MCPServer {
	return lo.Filter(ix.cat.MCPServers, func(s MCPServer, _ int) bool {
		return !ix.HasPack(s.Pack)
	})
}
