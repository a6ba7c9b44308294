package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
)

// Files read from every pack directory.
const (
	PluginFile = ".claude-plugin/plugin.json"
	SkillGlob  = "skills/*/SKILL.md"
	AgentGlob  = "agents/*.md"
	DocsFile   = "docs.yaml"
	MCPFile    = ".mcp.json"
	ReadmeFile = "README.md"

	// DefaultAgentModel is recorded for agents that do not pin a model.
	DefaultAgentModel = "inherit"
)

// skillMatter is the SKILL.md frontmatter.
type skillMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// agentMatter is the agents/*.md frontmatter. Tools may be a YAML list or a
// comma-separated string.
type agentMatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Model       string `yaml:"model"`
	Tools       any    `yaml:"tools"`
}

// ParsePack reads one pack directory. name is the directory name as recorded
// in the catalog; the pack's MCP servers are returned alongside it.
func ParsePack(dir, name string) (catalog.Pack, []catalog.MCPServer, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %w", name, err)
	}
	if !info.IsDir() {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %s is not a directory", name, dir)
	}
	fsys := os.DirFS(dir)

	skills, err := parseSkills(fsys)
	if err != nil {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %w", name, err)
	}
	agents, err := parseAgents(fsys)
	if err != nil {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %w", name, err)
	}
	docs, err := parseDocs(fsys)
	if err != nil {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %w", name, err)
	}
	servers, err := parseMCP(fsys, name)
	if err != nil {
		return catalog.Pack{}, nil, fmt.Errorf("pack %s: %w", name, err)
	}

	pack := catalog.Pack{
		Name:      name,
		Path:      name,
		Plugin:    parsePlugin(fsys, name),
		Skills:    skills,
		Agents:    agents,
		Docs:      docs,
		HasReadme: exists(fsys, ReadmeFile),
	}
	return pack, servers, nil
}

// DefaultPlugin is the metadata used for fields plugin.json does not set.
func DefaultPlugin(name string) catalog.Plugin {
	return catalog.Plugin{
		Name:        name,
		Version:     catalog.DefaultVersion,
		Description: name + " agentic pack",
		Keywords:    []string{},
	}
}

// parsePlugin merges plugin.json over DefaultPlugin. A missing file yields the
// defaults; an unreadable one yields the defaults and a warning.
func parsePlugin(fsys fs.FS, name string) catalog.Plugin {
	plugin := DefaultPlugin(name)
	data, err := fs.ReadFile(fsys, PluginFile)
	if errors.Is(err, fs.ErrNotExist) {
		return plugin
	}
	if err != nil {
		logging.Warn("Failed to read plugin.json", "pack", name, "error", err)
		return plugin
	}
	merged := plugin
	if err := json.Unmarshal(data, &merged); err != nil {
		logging.Warn("Failed to parse plugin.json", "pack", name, "error", err)
		return plugin
	}
	return merged
}

func parseSkills(fsys fs.FS) ([]catalog.Skill, error) {
	files, err := doublestar.Glob(fsys, SkillGlob)
	if err != nil {
		return nil, err
	}
	skills := make([]catalog.Skill, 0, len(files))
	for _, f := range files {
		var m skillMatter
		if err := readMatter(fsys, f, &m); err != nil {
			logging.Warn("Failed to parse frontmatter", "file", f, "error", err)
		}
		if m.Name == "" {
			m.Name = path.Base(path.Dir(f))
		}
		skills = append(skills, catalog.Skill{
			Name:        m.Name,
			Description: collapse(m.Description),
			FilePath:    f,
		})
	}
	slices.SortStableFunc(skills, func(a, b catalog.Skill) int { return strings.Compare(a.Name, b.Name) })
	return skills, nil
}

func parseAgents(fsys fs.FS) ([]catalog.Agent, error) {
	files, err := doublestar.Glob(fsys, AgentGlob)
	if err != nil {
		return nil, err
	}
	agents := make([]catalog.Agent, 0, len(files))
	for _, f := range files {
		var m agentMatter
		if err := readMatter(fsys, f, &m); err != nil {
			logging.Warn("Failed to parse frontmatter", "file", f, "error", err)
		}
		if m.Name == "" {
			m.Name = strings.TrimSuffix(path.Base(f), path.Ext(f))
		}
		if m.Model == "" {
			m.Model = DefaultAgentModel
		}
		agents = append(agents, catalog.Agent{
			Name:        m.Name,
			Description: collapse(m.Description),
			Model:       m.Model,
			Tools:       toolList(m.Tools),
			FilePath:    f,
		})
	}
	slices.SortStableFunc(agents, func(a, b catalog.Agent) int { return strings.Compare(a.Name, b.Name) })
	return agents, nil
}

func parseDocs(fsys fs.FS) ([]catalog.Doc, error) {
	data, err := fs.ReadFile(fsys, DocsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var docs []catalog.Doc
	if err := yamlv3.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", DocsFile, err)
	}
	return docs, nil
}

// readMatter decodes the YAML frontmatter of a markdown file into v. Files
// without frontmatter leave v untouched.
func readMatter(fsys fs.FS, name string, v any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = frontmatter.Parse(f, v)
	return err
}

// collapse joins all whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toolList(v any) []string {
	switch t := v.(type) {
	case string:
		var out []string
		for _, p := range strings.Split(t, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, p := range t {
			out = append(out, fmt.Sprint(p))
		}
		return out
	case []string:
		return t
	}
	return nil
}

func exists(fsys fs.FS, name string) bool {
	_, err := fs.Stat(fsys, name)
	return err == nil
}

// relSlash returns target relative to base with forward slashes.
func relSlash(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}
