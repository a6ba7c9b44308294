package site

import (
	"strconv"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
)

// UpdateToolbar writes the totals into the toolbar badges.
func UpdateToolbar(p *Page, t catalog.Tally) {
	values := map[string]int{
		"stat-packs":   t.Packs,
		"stat-skills":  t.Skills,
		"stat-agents":  t.Agents,
		"stat-docs":    t.DocSources,
		"stat-servers": t.Servers,
	}
	for id, v := range values {
		if badge := p.Badges[id]; badge != nil {
			dom.SetText(badge, strconv.Itoa(v))
		}
	}
}

// ShowError inserts the load-failure banner as the first child of main,
// replacing any banner already shown.
func ShowError(p *Page, message string) {
	for _, old := range dom.ByClass(p.Main, "error-banner") {
		dom.Remove(old)
	}
	banner := dom.El("div",
		"class", "error-banner",
		"role", "alert",
		"style", "color: #ee0000; padding: 2rem; text-align: center",
	)
	dom.SetText(banner, "Error: "+message)
	dom.Prepend(p.Main, banner)
}
