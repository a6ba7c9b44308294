package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/browser"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/config"
	"github.com/ziadkadry99/packdocs/internal/generate"
	"github.com/ziadkadry99/packdocs/internal/logging"
	"github.com/ziadkadry99/packdocs/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `packdocs init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// loadCatalog performs the single fetch of the configured catalog source.
// The returned error carries the banner message for display.
func loadCatalog(ctx context.Context, source string) (*catalog.Catalog, error) {
	return catalog.NewLoader().Load(ctx, source)
}

// packList resolves the packs a generate or validate run covers.
func packList(cfg *config.Config) ([]string, error) {
	if len(cfg.Packs) > 0 {
		return cfg.Packs, nil
	}
	packs, err := generate.Discover(cfg.RootDir, cfg.PackGlob)
	if err != nil {
		return nil, fmt.Errorf("discovering packs in %s: %w", cfg.RootDir, err)
	}
	return packs, nil
}

// newInstaller builds the installation snippet renderer, falling back to the
// default template when the configured one does not parse.
func newInstaller(cfg *config.Config, repo catalog.Repository) *site.Installer {
	inst, err := site.NewInstaller(cfg.InstallTemplate, repo)
	if err != nil {
		logging.Warn("Invalid install template, using default", "error", err)
		inst, _ = site.NewInstaller("", repo)
	}
	return inst
}

func pageOptions(cfg *config.Config) site.PageOptions {
	return site.PageOptions{
		Title:      cfg.Title,
		Subtitle:   cfg.Subtitle,
		CopyRevert: cfg.CopyRevertMS,
		Footer:     footer(cfg),
	}
}

func footer(cfg *config.Config) string {
	if cfg.Repository.Name == "" {
		return ""
	}
	return fmt.Sprintf("%s catalog, rendered %s", cfg.Repository.Name, time.Now().UTC().Format("2006-01-02"))
}

// openURL opens url in the default browser after a short delay so the
// server is listening first.
func openURL(url string) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := browser.OpenURL(url); err != nil {
			logging.Warn("Could not open browser", "url", url, "error", err)
		}
	}()
}
