package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/manifoldco/promptui"
	"github.com/samber/lo"
)

// detectPacks lists the pack directories under root whose plugin manifest
// matches glob, in lexical order.
func detectPacks(root, glob string) []string {
	matches, err := doublestar.Glob(os.DirFS(root), glob)
	if err != nil {
		return nil
	}
	dirs := lo.Map(matches, func(m string, _ int) string {
		// */.claude-plugin/plugin.json -> the pack directory.
		return path.Dir(path.Dir(m))
	})
	return lo.Uniq(dirs)
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to dest.
func RunWizard(dest string, repo RepositoryHint) (*Config, error) {
	fmt.Println("Welcome to packdocs! Let's configure your collection.")
	fmt.Println()

	cfg := DefaultConfig()

	found := detectPacks(cfg.RootDir, cfg.PackGlob)
	if len(found) > 0 {
		fmt.Printf("Detected %d pack(s): %s\n\n", len(found), strings.Join(found, ", "))
	}

	// 1. Site title.
	title, err := (&promptui.Prompt{Label: "Site title", Default: cfg.Title}).Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	cfg.Title = title

	// 2. Repository.
	name, err := (&promptui.Prompt{Label: "Repository name", Default: repo.Name}).Run()
	if err != nil {
		return nil, fmt.Errorf("repository name: %w", err)
	}
	url, err := (&promptui.Prompt{Label: "Repository URL", Default: repo.URL}).Run()
	if err != nil {
		return nil, fmt.Errorf("repository URL: %w", err)
	}
	cfg.Repository.Name = name
	cfg.Repository.URL = url
	cfg.Repository.Owner = repo.Owner

	// 3. Which packs to document.
	packMode := promptui.Select{
		Label: "Packs to document",
		Items: []string{
			"discover by pack_glob on every run",
			"pin the packs detected now",
			"enter a comma-separated list",
		},
	}
	mode, _, err := packMode.Run()
	if err != nil {
		return nil, fmt.Errorf("pack selection: %w", err)
	}
	switch mode {
	case 1:
		cfg.Packs = found
	case 2:
		list, err := (&promptui.Prompt{Label: "Pack directories", Default: strings.Join(found, ",")}).Run()
		if err != nil {
			return nil, fmt.Errorf("pack list: %w", err)
		}
		cfg.Packs = splitAndTrim(list)
	}

	// 4. Output locations.
	siteDir, err := (&promptui.Prompt{Label: "Site output directory", Default: cfg.SiteDir}).Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir
	cfg.DataFile = siteDir + "/data.json"

	// 5. Port for packdocs serve.
	portPrompt := promptui.Prompt{
		Label:   "Port for packdocs serve",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(dest); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", dest)
	return cfg, nil
}

// RepositoryHint pre-fills the repository prompts, usually from the git remote.
type RepositoryHint struct {
	Name  string
	Owner string
	URL   string
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Compact(parts)
}
