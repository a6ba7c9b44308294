package config

// DefaultPath is the project-local config file.
const DefaultPath = ".packdocs.yml"

// DefaultPackGlob matches the plugin manifest of every pack under the root.
const DefaultPackGlob = "*/.claude-plugin/plugin.json"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RootDir:          ".",
		PackGlob:         DefaultPackGlob,
		DataFile:         "docs/data.json",
		SiteDir:          "docs",
		Port:             8000,
		DescriptionLimit: 150,
		CopyRevertMS:     2000,
		Title:            "Agentic Collections",
		Subtitle:         "Packs, skills, agents and MCP servers",
	}
}
