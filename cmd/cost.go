package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

var costCmd = &cobra.Command{
	Use:   "cost <pipeline>",
	Short: "Estimate API costs for generating records",
	Long: `Performs a dry run that builds each stage prompt, estimates tokens, and
calculates an upper-bound API cost without making any calls. Every stage is
assumed to produce max_tokens of output.`,
	Args: cobra.ExactArgs(1),
	RunE: runCost,
}

func init() {
	costCmd.Flags().Int("count", 100, "number of invocations to estimate")
	costCmd.Flags().String("input", "", "sample input bound to the first parameter")
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	v, err := pipeline.Default.Lookup(args[0])
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetInt("count")
	input, _ := cmd.Flags().GetString("input")
	vars := pipeline.Vars{}
	if len(v.Params) > 0 {
		vars[v.Params[0]] = input
	}

	per := pipeline.EstimateUsage(v, vars, cfg.MaxTokens, estimateMessages)
	var total pipeline.Usage
	for range count {
		total.Add(per)
	}
	cost := llm.EstimateCost(cfg.Model, total.InputTokens, total.OutputTokens)

	fmt.Println("Cost Estimate")
	fmt.Println("=============")
	fmt.Printf("  Pipeline:            %s (%d stages)\n", v.Name, len(v.Stages))
	fmt.Printf("  Invocations:         %d\n", count)
	fmt.Printf("  API calls:           %d\n", total.Calls)
	fmt.Printf("  Input tokens (max):  %d\n", total.InputTokens)
	fmt.Printf("  Output tokens (max): %d\n", total.OutputTokens)
	fmt.Println()
	if llm.KnownPrice(cfg.Model) {
		fmt.Printf("  Estimated cost:      $%.4f\n", cost)
	} else {
		fmt.Printf("  Estimated cost:      unknown (no price for %s)\n", cfg.Model)
	}
	fmt.Println()
	fmt.Printf("  Provider: %s\n", cfg.Provider)
	fmt.Printf("  Model:    %s\n", cfg.Model)

	return nil
}

// estimateMessages approximates prompt tokens without loading a tokenizer.
func estimateMessages(msgs []llm.Message) int {
	n := 0
	for _, m := range msgs {
		n += llm.EstimateTokens(m.Content) + 4
	}
	return n
}
