package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog in the terminal",
	Long:  `Opens a terminal browser with live search over packs and MCP servers and a detail view per entry.`,
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().String("style", "dark", "glamour style for detail views (dark, light, notty)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// A failed load still opens the browser with the error in place of the list.
	cat, loadErr := loadCatalog(context.Background(), cfg.Source())

	style, _ := cmd.Flags().GetString("style")
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		style = "notty"
	}

	opts := tui.Options{GlamourStyle: style, LoadErr: loadErr}
	if cat != nil {
		opts.Installer = newInstaller(cfg, cat.Repository)
	}
	return tui.Run(cat, opts)
}
