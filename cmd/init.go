package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize instructgen configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider, model and output file, and writes the result to the --config path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
