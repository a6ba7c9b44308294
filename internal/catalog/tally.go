package catalog

import "github.com/samber/lo"

// Tally holds the toolbar totals for a (possibly filtered) view.
type Tally struct {
	Packs      int `json:"packs"`
	Skills     int `json:"skills"`
	Agents     int `json:"agents"`
	DocSources int `json:"doc_sources"`
	Servers    int `json:"servers"`
}

// Count computes the totals over the given collections.
func Count(packs []Pack, servers []MCPServer) Tally {
	return Tally{
		Packs:      len(packs),
		Skills:     lo.SumBy(packs, func(p Pack) int { return len(p.Skills) }),
		Agents:     lo.SumBy(packs, func(p Pack) int { return len(p.Agents) }),
		DocSources: lo.SumBy(packs, func(p Pack) int { return p.DocSourceCount() }),
		Servers:    len(servers),
	}
}
