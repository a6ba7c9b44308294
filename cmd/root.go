package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/config"
	"github.com/ziadkadry99/packdocs/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "packdocs",
	Short: "Browse and publish a catalog of agentic packs and MCP servers",
	Long: `packdocs builds a data.json catalog from a collection of agentic packs
(skills, agents, documentation sources and MCP servers), renders it as a
searchable static site, serves it with live reload, and exposes the same
catalog in the terminal and to AI agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Configure(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
