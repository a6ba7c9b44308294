package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestValidPackHasNoProblems(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "rh-sre/.claude-plugin/plugin.json", `{"name": "rh-sre", "version": "1.0.0", "description": ""}`)
	writeFile(t, root, "rh-sre/.mcp.json", `{"mcpServers": {}}`)
	writeFile(t, root, "rh-sre/skills/scan/SKILL.md", "---\nname: scan\ndescription: Scan hosts\n---\n")
	writeFile(t, root, "rh-sre/agents/triage.md", "---\nname: triage\ndescription: Triage\n---\n")

	r := New().Run(root, []string{"rh-sre"})
	assert.True(t, r.OK(), "problems: %v", r.Problems)
}

func TestOptionalFilesMayBeAbsent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty-pack"), 0o755))

	r := New().Run(root, []string{"empty-pack"})
	assert.True(t, r.OK())
}

func TestProblemsAreCollected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad/.claude-plugin/plugin.json", `{"name": "bad"}`)
	writeFile(t, root, "bad/.mcp.json", `{"mcpServers": []}`)
	writeFile(t, root, "bad/skills/nofm/SKILL.md", "# no frontmatter\n")
	writeFile(t, root, "bad/skills/noname/SKILL.md", "---\ndescription: only a description\n---\n")
	writeFile(t, root, "bad/agents/broken.md", "---\nname: [unclosed\n---\n")
	writeFile(t, root, "worse/.claude-plugin/plugin.json", `{not json`)
	writeFile(t, root, "worse/.mcp.json", `{"servers": {}}`)

	r := New().Run(root, []string{"bad", "missing", "worse"})
	require.False(t, r.OK())

	got := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		got = append(got, p.String())
	}
	assert.Contains(t, got, "bad/.claude-plugin/plugin.json: missing required field 'version'")
	assert.Contains(t, got, "bad/.claude-plugin/plugin.json: missing required field 'description'")
	assert.Contains(t, got, "bad/.mcp.json: 'mcpServers' must be an object")
	assert.Contains(t, got, "bad/skills/nofm/SKILL.md: missing YAML frontmatter (should start with --- and end with ---)")
	assert.Contains(t, got, "bad/skills/noname/SKILL.md: missing required field 'name'")
	assert.Contains(t, got, "missing: pack directory does not exist")
	assert.Contains(t, got, "worse/.mcp.json: missing 'mcpServers' key")

	var agentProblem, pluginJSON bool
	for _, p := range r.Problems {
		if p.Pack == "bad" && p.File == "agents/broken.md" {
			agentProblem = true
		}
		if p.Pack == "worse" && p.File == ".claude-plugin/plugin.json" {
			pluginJSON = true
		}
	}
	assert.True(t, agentProblem, "broken YAML reported")
	assert.True(t, pluginJSON, "invalid JSON reported")
}
