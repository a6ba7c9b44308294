package catalog

import "strings"

// Default display values substituted for missing optional fields.
const (
	DefaultVersion     = "0.0.0"
	DefaultDescription = "No description available"
	DefaultCategory    = "general"
	NotAvailable       = "N/A"
)

// SecurityKeys is the fixed, ordered key set shown for every MCP server.
var SecurityKeys = []string{"isolation", "network", "credentials"}

// Catalog is the document served as data.json.
type Catalog struct {
	Repository  Repository  `json:"repository"`
	Packs       []Pack      `json:"packs"`
	MCPServers  []MCPServer `json:"mcp_servers"`
	GeneratedAt string      `json:"generated_at,omitempty"`
	BuildID     string      `json:"build_id,omitempty"`
}

// Repository describes the collection the packs are published from.
type Repository struct {
	Name        string `json:"name,omitempty" yaml:"name" koanf:"name"`
	Owner       string `json:"owner,omitempty" yaml:"owner" koanf:"owner"`
	Description string `json:"description,omitempty" yaml:"description" koanf:"description"`
	URL         string `json:"url,omitempty" yaml:"url" koanf:"url"`
}

// Pack is a plugin bundling skills, agents and documentation.
type Pack struct {
	Name      string  `json:"name"`
	Path      string  `json:"path,omitempty"`
	Plugin    Plugin  `json:"plugin"`
	Skills    []Skill `json:"skills"`
	Agents    []Agent `json:"agents"`
	Docs      []Doc   `json:"docs,omitempty"`
	HasReadme bool    `json:"has_readme"`
}

// Plugin is the pack's plugin.json metadata.
type Plugin struct {
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Author      *Author  `json:"author,omitempty"`
	License     string   `json:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Author is the plugin author block.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Skill is a named capability definition within a pack.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FilePath    string `json:"file_path,omitempty"`
}

// Agent is a named agent definition within a pack.
type Agent struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Model       string   `json:"model,omitempty"`
	Tools       []string `json:"tools,omitempty"`
	FilePath    string   `json:"file_path,omitempty"`
}

// Doc is a documentation entry referencing one or more external sources.
type Doc struct {
	Category string   `json:"category,omitempty" yaml:"category"`
	Title    string   `json:"title" yaml:"title"`
	Sources  []Source `json:"sources" yaml:"sources"`
}

// Source is a single documentation link.
type Source struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// MCPServer is a tool-execution endpoint associated with a pack.
type MCPServer struct {
	Name        string   `json:"name"`
	Pack        string   `json:"pack"`
	Command     string   `json:"command"`
	Args        []string `json:"args"`
	Env         []string `json:"env"`
	Security    Security `json:"security"`
	Tools       []Tool   `json:"tools,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Security is the server's declared isolation profile.
type Security struct {
	Isolation   string `json:"isolation,omitempty" mapstructure:"isolation"`
	Network     string `json:"network,omitempty" mapstructure:"network"`
	Credentials string `json:"credentials,omitempty" mapstructure:"credentials"`
}

// Tool is a tool exposed by an MCP server.
type Tool struct {
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
}

// ServerKey identifies an MCP server; names are only unique within a pack.
type ServerKey struct {
	Name string
	Pack string
}

// Title returns the plugin name, falling back to the pack name.
func (p Pack) Title() string {
	if p.Plugin.Name != "" {
		return p.Plugin.Name
	}
	return p.Name
}

// Version returns the plugin version or DefaultVersion.
func (p Pack) Version() string {
	if p.Plugin.Version != "" {
		return p.Plugin.Version
	}
	return DefaultVersion
}

// Description returns the plugin description or DefaultDescription.
func (p Pack) Description() string {
	if p.Plugin.Description != "" {
		return p.Plugin.Description
	}
	return DefaultDescription
}

// DocSourceCount is the number of sources across all of the pack's docs.
func (p Pack) DocSourceCount() int {
	n := 0
	for _, d := range p.Docs {
		n += len(d.Sources)
	}
	return n
}

// CategoryOf returns the doc's category, or DefaultCategory when unset.
func (d Doc) CategoryOf() string {
	if strings.TrimSpace(d.Category) == "" {
		return DefaultCategory
	}
	return d.Category
}

// Key returns the composite identity of the server.
func (s MCPServer) Key() ServerKey {
	return ServerKey{Name: s.Name, Pack: s.Pack}
}

// Get returns the value for one of SecurityKeys, or NotAvailable.
func (s Security) Get(key string) string {
	var v string
	switch key {
	case "isolation":
		v = s.Isolation
	case "network":
		v = s.Network
	case "credentials":
		v = s.Credentials
	}
	if v == "" {
		return NotAvailable
	}
	return v
}
