package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/generate"
	"github.com/ziadkadry99/packdocs/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build data.json from the pack directories",
	Long: `Parses every pack directory (plugin.json, skills, agents, docs.yaml, .mcp.json
and README) and writes the catalog document the site and server read.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("root", "", "collection root directory (overrides config)")
	generateCmd.Flags().String("output", "", "output file (overrides data_file)")
	generateCmd.Flags().Int("concurrency", 0, "packs parsed in parallel")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.RootDir = root
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.DataFile
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning packs in %s...\n", cfg.RootDir)
	}

	cat, err := generate.Build(context.Background(), generate.Options{
		Root:        cfg.RootDir,
		Packs:       cfg.Packs,
		PackGlob:    cfg.PackGlob,
		Repository:  generate.ResolveRepository(cfg.Repository, cfg.RootDir),
		Reporter:    progress.NewReporter(),
		Concurrency: concurrency,
	})
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	if err := generate.Write(cat, output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Printf("\nGenerated %s in %s\n\n", output, time.Since(start).Round(time.Millisecond))
	generate.Summary(os.Stdout, cat)
	return nil
}
