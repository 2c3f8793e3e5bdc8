package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/logging"
)

var (
	cfgFile string
	verbose bool
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "instructgen",
	Short: "Synthesize instruction-tuning datasets with chained chat completions",
	Long: `instructgen runs small prompt pipelines against a chat-completion API.
Each pipeline asks the model for a question or task, feeds the reply into the
next prompt, and assembles the results into an instruction record
(system, user and assistant turns) ready for fine-tuning.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verbose)
		slog.SetDefault(logger)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".instructgen.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
