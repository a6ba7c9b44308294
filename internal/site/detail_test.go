package site

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/dom"
)

func TestRenderPackDetailSectionsInOrder(t *testing.T) {
	root := dom.El("div")
	inst, err := NewInstaller("", fixtureCatalog().Repository)
	if err != nil {
		t.Fatal(err)
	}
	RenderPackDetail(root, fixtureCatalog().Packs[0], DetailOptions{
		Installer:  inst,
		ReadmeHref: StaticReadmeHref,
	})

	want := []string{"Agents (1)", "Skills (2)", "Documentation (3)", "Installation"}
	if diff := cmp.Diff(want, headings(root)); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}

	if got := dom.TextContent(dom.ByClass(root, "version-badge")[0]); got != "v1.2.0" {
		t.Errorf("version badge = %q", got)
	}
	links := dom.ByClass(root, "readme-link")
	if len(links) != 1 || dom.AttrOr(links[0], "href", "") != "packs/rh-sre/readme.html" {
		t.Errorf("readme link = %v", links)
	}

	code := dom.TextContent(dom.ByTag(dom.ByID(root, "installation-section"), "code")[0])
	wantCode := "git clone https://github.com/example/agentic-collections\ncd agentic-collections/rh-sre"
	if code != wantCode {
		t.Errorf("install snippet = %q, want %q", code, wantCode)
	}
}

func TestRenderPackDetailDocsByCategory(t *testing.T) {
	root := dom.El("div")
	RenderPackDetail(root, fixtureCatalog().Packs[0], DetailOptions{})

	var labels []string
	for _, cat := range dom.ByClass(root, "doc-category") {
		labels = append(labels, dom.TextContent(dom.ByTag(cat, "h4")[0]))
	}
	if diff := cmp.Diff([]string{"General", "Security"}, labels); diff != "" {
		t.Errorf("category labels mismatch (-want +got):\n%s", diff)
	}

	// Script URLs are shown as text, never linked.
	for _, a := range dom.ByTag(root, "a") {
		if strings.HasPrefix(dom.AttrOr(a, "href", ""), "javascript:") {
			t.Errorf("unsafe link rendered: %s", dom.RenderString(a))
		}
	}
	if !strings.Contains(dom.TextContent(root), "Bad") {
		t.Error("unsafe source title should still be listed")
	}
}

func TestRenderPackDetailOmitsEmptySections(t *testing.T) {
	root := dom.El("div")
	RenderPackDetail(root, fixtureCatalog().Packs[1], DetailOptions{})

	if diff := cmp.Diff([]string{"Installation"}, headings(root)); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if len(dom.ByClass(root, "readme-link")) != 0 {
		t.Error("pack without README should have no readme link")
	}
}

func TestRenderDetailIsIdempotent(t *testing.T) {
	cat := fixtureCatalog()
	root := dom.El("div")

	RenderPackDetail(root, cat.Packs[0], DetailOptions{})
	RenderPackDetail(root, cat.Packs[1], DetailOptions{})
	text := dom.TextContent(root)
	if strings.Contains(text, "Site Reliability") || strings.Contains(text, "cve-scan") {
		t.Errorf("residue from first pack: %q", text)
	}

	fresh := dom.El("div")
	RenderPackDetail(fresh, cat.Packs[1], DetailOptions{})
	if dom.RenderString(root) != dom.RenderString(fresh) {
		t.Error("re-rendered root differs from a fresh render")
	}
}

func TestRenderServerDetail(t *testing.T) {
	cat := fixtureCatalog()
	ix := catalog.NewIndex(cat)
	root := dom.El("div")
	RenderServerDetail(root, cat.MCPServers[0], DetailOptions{HasPack: ix.HasPack})

	want := []string{"Command", "Environment Variables (2)", "Security", "Tools (1)"}
	if diff := cmp.Diff(want, headings(root)); diff != "" {
		t.Errorf("section order mismatch (-want +got):\n%s", diff)
	}

	code := dom.TextContent(dom.ByTag(dom.ByID(root, "command-section"), "code")[0])
	wantCode := "podman run \\\n  --rm \\\n  quay.io/lightspeed:latest"
	if code != wantCode {
		t.Errorf("command = %q, want %q", code, wantCode)
	}

	links := dom.ByClass(root, "readme-link")
	if len(links) != 1 || dom.AttrOr(links[0], "href", "") != "https://github.com/example/lightspeed-mcp" {
		t.Errorf("repository link = %v", links)
	}

	var security []string
	for _, li := range dom.ByTag(dom.ByID(root, "security-section"), "li") {
		security = append(security, dom.TextContent(li))
	}
	wantSec := []string{"Isolation: container", "Network: outbound", "Credentials: N/A"}
	if diff := cmp.Diff(wantSec, security); diff != "" {
		t.Errorf("security mismatch (-want +got):\n%s", diff)
	}

	packLink := dom.Find(root, func(n *html.Node) bool { return dom.AttrOr(n, "data-action", "") == "show-pack" })
	if packLink == nil || dom.AttrOr(packLink, "data-pack", "") != "rh-sre" {
		t.Error("server of a loaded pack should link to it")
	}
}

func TestRenderServerDetailMissingFields(t *testing.T) {
	cat := fixtureCatalog()
	ix := catalog.NewIndex(cat)
	root := dom.El("div")
	orphan := cat.MCPServers[2]
	RenderServerDetail(root, orphan, DetailOptions{HasPack: ix.HasPack})

	if len(dom.ByClass(root, "readme-link")) != 0 {
		t.Error("server without repository should have no README link")
	}
	var security []string
	for _, li := range dom.ByTag(dom.ByID(root, "security-section"), "li") {
		security = append(security, dom.TextContent(li))
	}
	wantSec := []string{"Isolation: N/A", "Network: N/A", "Credentials: N/A"}
	if diff := cmp.Diff(wantSec, security); diff != "" {
		t.Errorf("security mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Command", "Security"}, headings(root)); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if dom.Find(root, func(n *html.Node) bool { return dom.AttrOr(n, "data-action", "") == "show-pack" }) != nil {
		t.Error("unlinked server must not link to its missing pack")
	}
	if !strings.Contains(dom.TextContent(root), "From pack: missing-pack") {
		t.Errorf("pack name should still be shown: %q", dom.TextContent(root))
	}
}

func TestCommandLine(t *testing.T) {
	tests := []struct {
		cmd  string
		args []string
		want string
	}{
		{"npx", nil, "npx"},
		{"npx", []string{"server"}, "npx server"},
		{"podman", []string{"run", "-i"}, "podman run \\\n  -i"},
	}
	for _, tt := range tests {
		if got := CommandLine(tt.cmd, tt.args); got != tt.want {
			t.Errorf("CommandLine(%q, %q) = %q, want %q", tt.cmd, tt.args, got, tt.want)
		}
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com":      "https://example.com",
		"http://example.com/a?b=c": "http://example.com/a?b=c",
		"docs/guide.html":          "docs/guide.html",
		"javascript:alert(1)":      "",
		"JavaScript:alert(1)":      "",
		"data:text/html,hi":        "",
		"//evil.example.com":       "",
		"":                         "",
	}
	for in, want := range tests {
		if got := SafeURL(in); got != want {
			t.Errorf("SafeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	for in, want := range map[string]string{"general": "General", "Security": "Security", "": "", "élan": "Élan"} {
		if got := Capitalize(in); got != want {
			t.Errorf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
