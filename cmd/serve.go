package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog browser over HTTP",
	Long: `Starts an HTTP server rendering the catalog page per request, with a JSON
search API, rendered pack READMEs and, with --watch, live reload whenever the
data file changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().String("data", "", "data.json path or URL (overrides config)")
	serveCmd.Flags().Bool("watch", false, "reload browsers when the data file changes")
	serveCmd.Flags().Bool("open", false, "open browser automatically")
	serveCmd.Flags().Bool("cors-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Port
	}
	source, _ := cmd.Flags().GetString("data")
	if source == "" {
		source = cfg.Source()
	}
	watch, _ := cmd.Flags().GetBool("watch")
	if watch && catalog.IsRemote(source) {
		return fmt.Errorf("--watch needs a local data file, got %s", source)
	}
	allowAll, _ := cmd.Flags().GetBool("cors-all")

	page := pageOptions(cfg)
	page.BasePath = "/"
	srv := server.New(server.Config{
		Port:             port,
		Source:           source,
		RootDir:          cfg.RootDir,
		AllowAll:         allowAll,
		Watch:            watch,
		Page:             page,
		DescriptionLimit: cfg.DescriptionLimit,
		InstallTemplate:  cfg.InstallTemplate,
	}, catalog.NewLoader())

	// A failed load is served as the error banner, not a startup failure.
	if err := srv.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s: %v\n", source, err)
	}

	fmt.Fprintf(os.Stderr, "packdocs server %s starting on port %d\n", Version, port)
	fmt.Fprintf(os.Stderr, "  Data: %s\n", source)
	if watch {
		fmt.Fprintln(os.Stderr, "  Live reload: on")
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		openURL(fmt.Sprintf("http://localhost:%d/", port))
	}
	return runUntilSignal(srv)
}
