package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/packdocs/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio exposing catalog search, pack and MCP server lookups, and catalog totals.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := loadCatalog(context.Background(), cfg.Source())
		if err != nil {
			return fmt.Errorf("loading catalog: %w\nRun `packdocs generate` first", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "packdocs MCP server started on stdio (packs=%d, mcp_servers=%d)\n", len(cat.Packs), len(cat.MCPServers))
		return mcpserver.NewServer(cat).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
