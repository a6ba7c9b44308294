package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
)

// envRef matches a value that only forwards another variable: ${VAR}.
var envRef = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)\}$`)

// mcpEntry is one server under mcpServers in .mcp.json.
type mcpEntry struct {
	Command     string           `mapstructure:"command"`
	Args        []string         `mapstructure:"args"`
	Env         map[string]any   `mapstructure:"env"`
	Security    catalog.Security `mapstructure:"security"`
	Tools       []catalog.Tool   `mapstructure:"tools"`
	Repository  string           `mapstructure:"repository"`
	Description string           `mapstructure:"description"`
}

// parseMCP reads the pack's .mcp.json. A missing file means no servers; a
// malformed one is logged and skipped the same way.
func parseMCP(fsys fs.FS, pack string) ([]catalog.MCPServer, error) {
	data, err := fs.ReadFile(fsys, MCPFile)
	if errors.Is(err, fs.ErrNotExist) {
		return []catalog.MCPServer{}, nil
	}
	if err != nil {
		return nil, err
	}
	servers, err := DecodeMCP(data, pack)
	if err != nil {
		logging.Warn("Failed to parse .mcp.json", "pack", pack, "error", err)
		return []catalog.MCPServer{}, nil
	}
	return servers, nil
}

// DecodeMCP converts an .mcp.json document into catalog servers, sorted by
// server name.
func DecodeMCP(data []byte, pack string) ([]catalog.MCPServer, error) {
	var doc struct {
		MCPServers map[string]any `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	names := lo.Keys(doc.MCPServers)
	sort.Strings(names)

	servers := make([]catalog.MCPServer, 0, len(names))
	for _, name := range names {
		var e mcpEntry
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &e,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(doc.MCPServers[name]); err != nil {
			return nil, fmt.Errorf("server %s: %w", name, err)
		}
		if e.Args == nil {
			e.Args = []string{}
		}
		servers = append(servers, catalog.MCPServer{
			Name:        name,
			Pack:        pack,
			Command:     e.Command,
			Args:        e.Args,
			Env:         EnvNames(e.Env),
			Security:    e.Security,
			Tools:       e.Tools,
			Repository:  e.Repository,
			Description: e.Description,
		})
	}
	return servers, nil
}

// EnvNames lists the variables a server needs: a ${VAR} value names VAR, any
// other value names its key. The result is unique and sorted.
func EnvNames(env map[string]any) []string {
	names := make([]string, 0, len(env))
	for key, value := range env {
		if s, ok := value.(string); ok {
			if m := envRef.FindStringSubmatch(s); m != nil {
				names = append(names, m[1])
				continue
			}
		}
		names = append(names, key)
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}
