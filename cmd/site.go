package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/server"
	"github.com/ziadkadry99/packdocs/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the static catalog website",
	Long: `Renders index.html, data.json, style.css, script.js and one README page per
pack into the site directory. The page is fully pre-rendered and works without
JavaScript; the script adds live search, modals and copy buttons.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().String("output", "", "output directory (overrides site_dir)")
	siteCmd.Flags().Bool("serve", false, "start a local HTTP server after generating")
	siteCmd.Flags().Int("port", 0, "port for the local server (overrides config)")
	siteCmd.Flags().Bool("open", false, "open browser automatically when serving")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DataFile); os.IsNotExist(err) && !catalog.IsRemote(cfg.Source()) {
		return fmt.Errorf("data file not found at %s\nRun `packdocs generate` first", cfg.DataFile)
	}

	cat, err := loadCatalog(context.Background(), cfg.Source())
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.SiteDir
	}

	generator := site.NewSiteGenerator(cat, cfg.RootDir, outputDir, site.Options{
		Page: pageOptions(cfg),
		Detail: site.DetailOptions{
			DescriptionLimit: cfg.DescriptionLimit,
			Installer:        newInstaller(cfg, cat.Repository),
		},
	})
	pages, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}
	fmt.Printf("Static site generated: %s (%d pages)\n", outputDir, pages)

	if serve, _ := cmd.Flags().GetBool("serve"); !serve {
		return nil
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Port
	}
	srv := server.New(server.Config{
		Port:             port,
		Source:           cfg.Source(),
		RootDir:          cfg.RootDir,
		Page:             pageOptions(cfg),
		DescriptionLimit: cfg.DescriptionLimit,
		InstallTemplate:  cfg.InstallTemplate,
	}, catalog.NewLoader())
	_ = srv.Load(context.Background())

	if open, _ := cmd.Flags().GetBool("open"); open {
		openURL(fmt.Sprintf("http://localhost:%d/", port))
	}
	fmt.Printf("Serving at http://localhost:%d (press Ctrl+C to stop)\n", port)
	return runUntilSignal(srv)
}

// runUntilSignal starts srv and shuts it down on SIGINT or SIGTERM.
func runUntilSignal(srv *server.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		_ = srv.Shutdown(context.Background())
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
