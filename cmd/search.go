package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search packs and MCP servers from the terminal",
	Long: `Runs the catalog text filter: a case-insensitive substring match over a
pack's names, descriptions, skills and agents, or a server's name, pack,
command and environment variables. No query lists everything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(context.Background(), cfg.Source())
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	res := search.Catalog(query, cat)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(searchJSON{
			Query:      res.Query,
			Packs:      res.Packs,
			MCPServers: res.Servers,
			Tally:      res.Tally(),
		})
	}

	printSearchResults(res)
	return nil
}

type searchJSON struct {
	Query      string              `json:"query"`
	Packs      []catalog.Pack      `json:"packs"`
	MCPServers []catalog.MCPServer `json:"mcp_servers"`
	Tally      catalog.Tally       `json:"tally"`
}

func printSearchResults(res search.Result) {
	if len(res.Packs) == 0 && len(res.Servers) == 0 {
		fmt.Println("No packs or MCP servers found matching your search.")
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if len(res.Packs) > 0 {
		fmt.Printf("%s (%d)\n\n", bold("Agentic Packs"), len(res.Packs))
		for _, p := range res.Packs {
			fmt.Printf("  %s %s\n", bold(p.Title()), dim("v"+p.Version()))
			fmt.Printf("     %s\n", truncate(p.Description(), 120))
			fmt.Printf("     %s\n\n", dim(fmt.Sprintf("%d skills, %d agents, %d doc sources",
				len(p.Skills), len(p.Agents), p.DocSourceCount())))
		}
	}

	if len(res.Servers) > 0 {
		fmt.Printf("%s (%d)\n\n", bold("MCP Servers"), len(res.Servers))
		for _, s := range res.Servers {
			fmt.Printf("  %s %s\n", bold(s.Name), dim("("+s.Pack+")"))
			fmt.Printf("     %s\n", strings.TrimSpace(s.Command+" "+strings.Join(s.Args, " ")))
			if len(s.Env) > 0 {
				fmt.Printf("     %s\n", dim("env: "+strings.Join(s.Env, ", ")))
			}
			fmt.Println()
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
