package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/packdocs/internal/catalog"
	"github.com/ziadkadry99/packdocs/internal/config"
	"github.com/ziadkadry99/packdocs/internal/generate"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize packdocs configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure packdocs for your collection and writes a .packdocs.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := generate.ResolveRepository(catalog.Repository{}, ".")
		_, err := config.RunWizard(cfgFile, config.RepositoryHint{
			Name:  repo.Name,
			Owner: repo.Owner,
			URL:   repo.URL,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
