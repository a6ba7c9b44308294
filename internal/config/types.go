package config

import "github.com/ziadkadry99/packdocs/internal/catalog"

// Config is the top-level packdocs configuration, corresponding to .packdocs.yml.
type Config struct {
	RootDir          string             `yaml:"root_dir" koanf:"root_dir"`
	Packs            []string           `yaml:"packs" koanf:"packs"`
	PackGlob         string             `yaml:"pack_glob" koanf:"pack_glob"`
	DataFile         string             `yaml:"data_file" koanf:"data_file"`
	DataURL          string             `yaml:"data_url,omitempty" koanf:"data_url"`
	SiteDir          string             `yaml:"site_dir" koanf:"site_dir"`
	Repository       catalog.Repository `yaml:"repository" koanf:"repository"`
	InstallTemplate  string             `yaml:"install_template,omitempty" koanf:"install_template"`
	Port             int                `yaml:"port" koanf:"port"`
	DescriptionLimit int                `yaml:"description_limit" koanf:"description_limit"`
	CopyRevertMS     int                `yaml:"copy_revert_ms" koanf:"copy_revert_ms"`
	Title            string             `yaml:"title" koanf:"title"`
	Subtitle         string             `yaml:"subtitle,omitempty" koanf:"subtitle"`
}

// Source is the catalog document browsing commands read: the remote URL when
// one is configured, otherwise the generated data file.
func (c *Config) Source() string {
	if c.DataURL != "" {
		return c.DataURL
	}
	return c.DataFile
}
