package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. A double underscore
// addresses a nested key: PACKDOCS_REPOSITORY__URL -> repository.url.
const EnvPrefix = "PACKDOCS_"

// GlobalPath is the per-user config consulted when the project has none.
func GlobalPath() string {
	return filepath.Join(xdg.ConfigHome, "packdocs", "config.yml")
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PACKDOCS_*). When path is DefaultPath and
// does not exist, the per-user GlobalPath is tried instead.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	path, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// resolve returns the file to read, or "" when there is none.
func resolve(path string) (string, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case !os.IsNotExist(err):
		return "", fmt.Errorf("accessing config %s: %w", path, err)
	case path != DefaultPath:
		return "", nil
	}
	global := GlobalPath()
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}

	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}

	if c.PackGlob != "" && !doublestar.ValidatePattern(c.PackGlob) {
		return fmt.Errorf("invalid pack_glob %q", c.PackGlob)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.DescriptionLimit <= 0 {
		return fmt.Errorf("description_limit must be positive")
	}

	if c.CopyRevertMS < 0 {
		return fmt.Errorf("copy_revert_ms must be non-negative")
	}

	if c.DataURL != "" && !strings.HasPrefix(c.DataURL, "http://") && !strings.HasPrefix(c.DataURL, "https://") {
		return fmt.Errorf("data_url %q must be an http(s) URL", c.DataURL)
	}

	if c.InstallTemplate != "" {
		if _, err := template.New("install").Parse(c.InstallTemplate); err != nil {
			return fmt.Errorf("invalid install_template: %w", err)
		}
	}

	return nil
}

// PackDir resolves a configured pack entry against the root directory.
func (c *Config) PackDir(pack string) string {
	if filepath.IsAbs(pack) {
		return pack
	}
	return filepath.Join(c.RootDir, pack)
}
