package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/logging"
	"github.com/ziadkadry99/packdocs/internal/progress"
)

// Options controls a catalog build.
type Options struct {
	Root       string
	Packs      []string // pack directories relative to Root; empty means Discover
	PackGlob   string
	Repository catalog.Repository
	Reporter   progress.Reporter
	// Concurrency bounds the packs parsed at once. Zero means 4.
	Concurrency int
	// Now stamps generated_at; tests pin it.
	Now func() time.Time
}

type packResult struct {
	pack    catalog.Pack
	servers []catalog.MCPServer
	ok      bool
}

// Build parses every pack and assembles the catalog document. Packs keep the
// configured (or discovered) order and their servers follow the same order.
// A pack directory that does not exist is skipped with a warning.
func Build(ctx context.Context, opts Options) (*catalog.Catalog, error) {
	start := time.Now()
	defer logging.LogPerformance("generate.Build", start)

	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	dirs := opts.Packs
	if len(dirs) == 0 {
		found, err := Discover(opts.Root, opts.PackGlob)
		if err != nil {
			return nil, fmt.Errorf("discovering packs in %s: %w", opts.Root, err)
		}
		dirs = found
	}

	results := make([]packResult, len(dirs))
	counter := progress.NewCounter(opts.Reporter, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, rel := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dir := rel
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(opts.Root, rel)
			}
			name := relSlash(opts.Root, dir)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				logging.Warn("Pack directory does not exist, skipping", "pack", name)
				counter.Step(name + " (missing)")
				return nil
			}
			pack, servers, err := ParsePack(dir, name)
			if err != nil {
				return err
			}
			results[i] = packResult{pack: pack, servers: servers, ok: true}
			counter.Step(fmt.Sprintf("%s: %d skills, %d agents, %d MCP servers",
				name, len(pack.Skills), len(pack.Agents), len(servers)))
			return nil
		})
	}
	err := g.Wait()
	counter.Finish()
	if err != nil {
		return nil, err
	}

	parsed := lo.Filter(results, func(r packResult, _ int) bool { return r.ok })
	cat := &catalog.Catalog{
		Repository:  ResolveRepository(opts.Repository, opts.Root),
		Packs:       lo.Map(parsed, func(r packResult, _ int) catalog.Pack { return r.pack }),
		MCPServers:  lo.FlatMap(parsed, func(r packResult, _ int) []catalog.MCPServer { return r.servers }),
		GeneratedAt: opts.Now().UTC().Format(time.RFC3339),
		BuildID:     uuid.NewString(),
	}
	return cat, nil
}

// Write stores the catalog as indented JSON at path, creating parent
// directories.
func Write(cat *catalog.Catalog, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Summary prints the totals of a build.
func Summary(w io.Writer, cat *catalog.Catalog) {
	t := catalog.Count(cat.Packs, cat.MCPServers)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d agentic packs\n", t.Packs)
	fmt.Fprintf(w, "  %d skills\n", t.Skills)
	fmt.Fprintf(w, "  %d agents\n", t.Agents)
	fmt.Fprintf(w, "  %d documentation sources\n", t.DocSources)
	fmt.Fprintf(w, "  %d MCP servers\n", t.Servers)
}
