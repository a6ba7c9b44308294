package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
)

// Stylesheet returns the page stylesheet.
func Stylesheet() string { return cssContent }

// Script returns the client script.
func Script() string { return jsContent }

// StaticReadmeHref is the README link used by the static site.
func StaticReadmeHref(pack string) string {
	return "packs/" + url.PathEscape(pack) + "/readme.html"
}

// SiteGenerator writes the catalog browser as a static site.
type SiteGenerator struct {
	Catalog   *catalog.Catalog
	RootDir   string
	OutputDir string
	Options   Options
}

// NewSiteGenerator creates a SiteGenerator. rootDir is where pack directories
// (and their READMEs) live.
func NewSiteGenerator(cat *catalog.Catalog, rootDir, outputDir string, opts Options) *SiteGenerator {
	return &SiteGenerator{
		Catalog:   cat,
		RootDir:   rootDir,
		OutputDir: outputDir,
		Options:   opts,
	}
}

// Generate writes index.html, data.json, style.css, script.js and one README
// page per pack that has one. Returns the number of HTML pages written.
func (g *SiteGenerator) Generate() (int, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	opts := g.Options
	opts.EmbedDetails = true
	if opts.Detail.ReadmeHref == nil {
		opts.Detail.ReadmeHref = StaticReadmeHref
	}

	app := New(opts)
	app.SetCatalog(g.Catalog)

	var page bytes.Buffer
	if err := app.Render(&page); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}
	if err := g.write("index.html", page.Bytes()); err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(g.Catalog, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding data.json: %w", err)
	}
	if err := g.write("data.json", append(data, '\n')); err != nil {
		return 0, err
	}

	// Write static assets.
	if err := g.write("style.css", []byte(cssContent)); err != nil {
		return 0, err
	}
	if err := g.write("script.js", []byte(jsContent)); err != nil {
		return 0, err
	}

	pages := 1
	readmes := NewReadmeRenderer()
	for _, p := range g.Catalog.Packs {
		if !p.HasReadme {
			continue
		}
		if !safeDirName(p.Name) {
			logging.Warn("Skipping README for pack with unsafe name", "pack", p.Name)
			continue
		}
		source, err := ReadReadme(g.RootDir, p.Path, p.Name)
		if err != nil {
			logging.Warn("README not found", "pack", p.Name, "error", err)
			continue
		}
		var buf bytes.Buffer
		err = readmes.Render(&buf, source, ReadmePage{
			Title:       p.Title(),
			ProjectName: opts.Page.Title,
			BasePath:    "../../",
			IndexHref:   "../../index.html",
		})
		if err != nil {
			return 0, fmt.Errorf("rendering README for %s: %w", p.Name, err)
		}
		if err := g.write(filepath.Join("packs", p.Name, "readme.html"), buf.Bytes()); err != nil {
			return 0, err
		}
		pages++
	}

	return pages, nil
}

func (g *SiteGenerator) write(rel string, data []byte) error {
	out := filepath.Join(g.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

func safeDirName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`) && filepath.IsLocal(name)
}
