package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Summarize the catalog and print the manual site checklist",
	Long: `Loads the catalog and prints what the site should show: the repository, each
pack with its counts and first skills, and each MCP server. Then prints the
checklist for testing the page by hand against a running server.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

const rule = "============================================================"

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(context.Background(), cfg.Source())
	if err != nil {
		return fmt.Errorf("%w\nRun `packdocs generate` first", err)
	}

	printCatalogSummary(cat)
	printChecklist(cfg)
	return nil
}

func printCatalogSummary(cat *catalog.Catalog) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Println("\n" + rule)
	fmt.Println(bold("Documentation Site Summary"))
	fmt.Println(rule)

	fmt.Printf("\nRepository: %s\n", cat.Repository.Name)
	fmt.Printf("   Owner: %s\n", cat.Repository.Owner)
	fmt.Printf("   Generated: %s\n", lo.CoalesceOrEmpty(cat.GeneratedAt, catalog.NotAvailable))

	fmt.Printf("\n%s (%d total)\n", bold("Agentic Packs"), len(cat.Packs))
	fmt.Println("   " + strings.Repeat("-", 56))
	for _, p := range cat.Packs {
		fmt.Printf("   • %s v%s\n", p.Title(), p.Version())
		fmt.Printf("     Skills: %d, Agents: %d\n", len(p.Skills), len(p.Agents))
		if len(p.Skills) > 0 {
			names := lo.Map(lo.Slice(p.Skills, 0, 3), func(s catalog.Skill, _ int) string { return s.Name })
			fmt.Printf("     Skills: %s\n", strings.Join(names, ", "))
			if len(p.Skills) > 3 {
				fmt.Printf("             %s\n", dim(fmt.Sprintf("... and %d more", len(p.Skills)-3)))
			}
		}
	}

	fmt.Printf("\n%s (%d total)\n", bold("MCP Servers"), len(cat.MCPServers))
	fmt.Println("   " + strings.Repeat("-", 56))
	for _, s := range cat.MCPServers {
		fmt.Printf("   • %s (from %s)\n", s.Name, s.Pack)
		fmt.Printf("     Command: %s\n", s.Command)
		if len(s.Env) > 0 {
			fmt.Printf("     Env vars: %s\n", strings.Join(s.Env, ", "))
		}
		fmt.Printf("     Security: %s\n", s.Security.Get("isolation"))
	}

	fmt.Println("\n" + rule)
}

func printChecklist(cfg *config.Config) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Println("\n" + green("Manual Testing Checklist"))
	fmt.Println(rule)
	fmt.Printf(`
1. Run `+"`packdocs serve`"+` and open http://localhost:%d in your browser

2. Verify the header:
   [ ] Title displays: %q
   [ ] Subtitle displays
   [ ] Search bar is visible

3. Test Agentic Packs section:
   [ ] Section header shows correct count
   [ ] Pack cards display in a grid
   [ ] Each card shows: name, version, skill/agent counts
   [ ] Clicking a card opens the detail modal
   [ ] Modal shows: skills list, agents list, installation code
   [ ] Modal closes with the close button, the backdrop and Escape

4. Test MCP Servers section:
   [ ] Section header shows correct count
   [ ] Server cards display in a grid
   [ ] Each card shows: name, pack, command, env var count
   [ ] Modal shows: command, env vars, security settings
   [ ] Modal closes correctly

5. Test collapsible sections:
   [ ] Click section headers to collapse/expand
   [ ] Grid hides/shows

6. Test search functionality:
   [ ] Type in search bar
   [ ] Results filter on every keystroke
   [ ] Search works across: pack names, skills, agents, MCP servers
   [ ] Toolbar counts follow the filter

7. Test copy buttons and long descriptions:
   [ ] Copy shows "Copied!" and reverts
   [ ] "show more" expands and "show less" collapses

8. Test responsive design:
   [ ] Resize browser window
   [ ] Cards reflow in grid
   [ ] Mobile view works
`, cfg.Port, cfg.Title)
	fmt.Println(rule)

	fmt.Println("\nTips:")
	fmt.Println("   - Run `packdocs serve --watch` to reload the page whenever data.json changes")
	fmt.Println("   - Run `packdocs generate` after editing packs to update data.json")
}
