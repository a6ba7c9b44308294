package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check pack directories for structural problems",
	Long: `Validates every pack: plugin.json and .mcp.json must be well-formed JSON with
their required keys, and every skill and agent file must carry YAML
frontmatter with a name and description. Exits non-zero on any problem.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("root", "", "collection root directory (overrides config)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.RootDir = root
	}

	packs, err := packList(cfg)
	if err != nil {
		return err
	}
	if len(packs) == 0 {
		return fmt.Errorf("no packs found in %s", cfg.RootDir)
	}

	fmt.Printf("Validating %d pack(s)...\n\n", len(packs))
	report := validate.New().Run(cfg.RootDir, packs)

	red := color.New(color.FgRed).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	if report.OK() {
		fmt.Println(green("✓ All packs passed validation"))
		return nil
	}

	fmt.Println(red(fmt.Sprintf("✗ Found %d problem(s):", len(report.Problems))))
	fmt.Println()
	for _, p := range report.Problems {
		fmt.Printf("  %s %s\n", red("•"), p)
	}
	return fmt.Errorf("validation failed with %d problem(s)", len(report.Problems))
}
