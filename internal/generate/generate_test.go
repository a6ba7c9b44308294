package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/packdocs/internal/catalog"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// collection lays out two packs the way a real agentic collection does.
func collection(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "rh-sre/.claude-plugin/plugin.json",
		`{"name": "Site Reliability", "version": "1.2.0", "description": "Operate fleets", "keywords": ["sre"]}`)
	writeFile(t, root, "rh-sre/skills/remediate/SKILL.md", "---\nname: remediate\ndescription: |\n  Apply fixes\n  across hosts\n---\n# Remediate\n")
	writeFile(t, root, "rh-sre/skills/cve-scan/SKILL.md", "---\ndescription: Run security scanning\n---\nbody\n")
	writeFile(t, root, "rh-sre/agents/triage.md", "---\nname: triage\ndescription: Triage incidents\nmodel: sonnet\ntools: Read, Grep\n---\n")
	writeFile(t, root, "rh-sre/agents/helper.md", "no frontmatter here\n")
	writeFile(t, root, "rh-sre/docs.yaml", "- category: security\n  title: CVE feeds\n  sources:\n    - title: NVD\n      url: https://nvd.nist.gov\n")
	writeFile(t, root, "rh-sre/README.md", "# SRE\n")
	writeFile(t, root, "rh-sre/.mcp.json", `{
  "mcpServers": {
    "lightspeed": {
      "command": "podman",
      "args": ["run", "--rm", "quay.io/lightspeed:latest"],
      "env": {"LIGHTSPEED_CLIENT_ID": "${CLIENT_ID}", "LOG_LEVEL": "debug", "ALIAS": "${CLIENT_ID}"},
      "security": {"isolation": "container", "network": "outbound"}
    },
    "aap": {"command": "npx", "env": {}}
  }
}`)

	writeFile(t, root, "ocp-admin/skills/upgrade/SKILL.md", "---\nname: upgrade\ndescription: Upgrade clusters\n---\n")
	writeFile(t, root, "ocp-admin/.claude-plugin/plugin.json", `{not json`)

	// Not packs.
	writeFile(t, root, "docs/index.html", "")
	writeFile(t, root, "scripts/skills/x/SKILL.md", "")
	return root
}

func TestDiscover(t *testing.T) {
	root := collection(t)
	got, err := Discover(root, "*/.claude-plugin/plugin.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"ocp-admin", "rh-sre"}, got)
}

func TestParsePack(t *testing.T) {
	root := collection(t)
	pack, servers, err := ParsePack(filepath.Join(root, "rh-sre"), "rh-sre")
	require.NoError(t, err)

	assert.Equal(t, "Site Reliability", pack.Plugin.Name)
	assert.Equal(t, "1.2.0", pack.Plugin.Version)
	assert.Equal(t, []string{"sre"}, pack.Plugin.Keywords)
	assert.True(t, pack.HasReadme)

	wantSkills := []catalog.Skill{
		{Name: "cve-scan", Description: "Run security scanning", FilePath: "skills/cve-scan/SKILL.md"},
		{Name: "remediate", Description: "Apply fixes across hosts", FilePath: "skills/remediate/SKILL.md"},
	}
	if diff := cmp.Diff(wantSkills, pack.Skills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}

	wantAgents := []catalog.Agent{
		{Name: "helper", Model: DefaultAgentModel, FilePath: "agents/helper.md"},
		{Name: "triage", Description: "Triage incidents", Model: "sonnet", Tools: []string{"Read", "Grep"}, FilePath: "agents/triage.md"},
	}
	if diff := cmp.Diff(wantAgents, pack.Agents); diff != "" {
		t.Errorf("agents mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, pack.Docs, 1)
	assert.Equal(t, "https://nvd.nist.gov", pack.Docs[0].Sources[0].URL)

	require.Len(t, servers, 2)
	assert.Equal(t, "aap", servers[0].Name, "servers sorted by name")
	assert.Equal(t, []string{}, servers[0].Args)
	assert.Equal(t, []string{}, servers[0].Env)
	assert.Equal(t, "lightspeed", servers[1].Name)
	assert.Equal(t, "rh-sre", servers[1].Pack)
	assert.Equal(t, []string{"CLIENT_ID", "LOG_LEVEL"}, servers[1].Env)
	assert.Equal(t, "container", servers[1].Security.Get("isolation"))
	assert.Equal(t, catalog.NotAvailable, servers[1].Security.Get("credentials"))
}

func TestParsePluginFallsBackToDefaults(t *testing.T) {
	root := collection(t)
	pack, servers, err := ParsePack(filepath.Join(root, "ocp-admin"), "ocp-admin")
	require.NoError(t, err)
	assert.Equal(t, DefaultPlugin("ocp-admin"), pack.Plugin)
	assert.Equal(t, "ocp-admin agentic pack", pack.Plugin.Description)
	assert.False(t, pack.HasReadme)
	assert.Empty(t, servers)
	assert.Empty(t, pack.Agents)
}

func TestEnvNames(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]any
		want []string
	}{
		{"reference", map[string]any{"A": "${TOKEN}"}, []string{"TOKEN"}},
		{"literal uses key", map[string]any{"LOG_LEVEL": "info"}, []string{"LOG_LEVEL"}},
		{"non-string uses key", map[string]any{"PORT": 8080}, []string{"PORT"}},
		{"lowercase reference is literal", map[string]any{"X": "${token}"}, []string{"X"}},
		{"dedup and sort", map[string]any{"B": "${Z}", "C": "${Z}", "A": "v"}, []string{"A", "Z"}},
		{"empty", map[string]any{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvNames(tt.env))
		})
	}
}

func TestDecodeMCPRejectsBadShape(t *testing.T) {
	_, err := DecodeMCP([]byte(`{"mcpServers": {"x": {"args": "not-a-list"}}}`), "p")
	assert.NoError(t, err, "weak typing wraps a lone string into a list")

	_, err = DecodeMCP([]byte(`{"mcpServers": []}`), "p")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	root := collection(t)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cat, err := Build(context.Background(), Options{
		Root:       root,
		Packs:      []string{"rh-sre", "missing", "ocp-admin"},
		Repository: catalog.Repository{URL: "https://github.com/example/agentic-collections"},
		Now:        func() time.Time { return now },
	})
	require.NoError(t, err)

	names := []string{}
	for _, p := range cat.Packs {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"rh-sre", "ocp-admin"}, names, "configured order kept, missing skipped")
	assert.Len(t, cat.MCPServers, 2)
	assert.Equal(t, "2026-01-02T03:04:05Z", cat.GeneratedAt)
	assert.NotEmpty(t, cat.BuildID)
	assert.Equal(t, "agentic-collections", cat.Repository.Name)
	assert.Equal(t, "example", cat.Repository.Owner)
}

func TestBuildDiscoversWhenNoPacksConfigured(t *testing.T) {
	root := collection(t)
	cat, err := Build(context.Background(), Options{Root: root, PackGlob: "*/.claude-plugin/plugin.json", Concurrency: 1})
	require.NoError(t, err)
	assert.Len(t, cat.Packs, 2)
	assert.Equal(t, "ocp-admin", cat.Packs[0].Name)
}

func TestWriteRoundTrip(t *testing.T) {
	root := collection(t)
	cat, err := Build(context.Background(), Options{Root: root, PackGlob: "*/.claude-plugin/plugin.json"})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "docs", "data.json")
	require.NoError(t, Write(cat, out))

	loaded, err := catalog.Load(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, cat.BuildID, loaded.BuildID)
	assert.Len(t, loaded.Packs, 2)
}

func TestNormalizeRemoteURL(t *testing.T) {
	tests := map[string]string{
		"git@github.com:example/agentic-collections.git":       "https://github.com/example/agentic-collections",
		"ssh://git@github.com/example/agentic-collections.git": "https://github.com/example/agentic-collections",
		"https://github.com/example/agentic-collections.git":   "https://github.com/example/agentic-collections",
		"https://gitlab.com/group/repo":                        "https://gitlab.com/group/repo",
	}
	for in, want := range tests {
		if got := NormalizeRemoteURL(in); got != want {
			t.Errorf("NormalizeRemoteURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveRepositoryFromOrigin(t *testing.T) {
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:example/agentic-collections.git"},
	})
	require.NoError(t, err)

	got := ResolveRepository(catalog.Repository{Description: "Packs"}, root)
	assert.Equal(t, catalog.Repository{
		Name:        "agentic-collections",
		Owner:       "example",
		Description: "Packs",
		URL:         "https://github.com/example/agentic-collections",
	}, got)
}

func TestResolveRepositoryOutsideGit(t *testing.T) {
	got := ResolveRepository(catalog.Repository{Name: "mine"}, t.TempDir())
	assert.Equal(t, catalog.Repository{Name: "mine"}, got)
}
