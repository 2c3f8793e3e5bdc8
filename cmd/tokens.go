package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/batch"
	"github.com/ziadkadry99/instructgen/internal/llm"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <dataset.jsonl>...",
	Short: "Count tokens in generated JSONL datasets",
	Long:  `Tallies tiktoken tokens for every record in the given datasets, including the per-message chat framing overhead.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().String("encoding", "", "tiktoken encoding (overrides config, default cl100k_base)")
	rootCmd.AddCommand(tokensCmd)
}

// datasetStats summarizes one dataset file.
type datasetStats struct {
	Records int
	Tokens  int
	Max     int
}

func runTokens(cmd *cobra.Command, args []string) error {
	encoding, _ := cmd.Flags().GetString("encoding")
	if encoding == "" {
		if cfg, err := loadConfig(); err == nil {
			encoding = cfg.Encoding
		}
	}

	counter, err := llm.NewTokenCounter(encoding)
	if err != nil {
		return err
	}

	var total datasetStats
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		stats, err := countDataset(f, counter.Messages)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: %d records, %d tokens (max %d per record)\n", path, stats.Records, stats.Tokens, stats.Max)
		total.Records += stats.Records
		total.Tokens += stats.Tokens
		total.Max = max(total.Max, stats.Max)
	}

	if len(args) > 1 {
		fmt.Printf("total: %d records, %d tokens\n", total.Records, total.Tokens)
	}
	if total.Records > 0 {
		fmt.Printf("average: %.1f tokens per record (%s)\n", float64(total.Tokens)/float64(total.Records), counter.Encoding())
	}
	return nil
}

// countDataset reads JSONL records from r and counts each with count.
// Blank lines are skipped.
func countDataset(r io.Reader, count func([]llm.Message) int) (datasetStats, error) {
	var stats datasetStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec batch.Line
		if err := json.Unmarshal(raw, &rec); err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
		n := count(rec.Messages)
		stats.Records++
		stats.Tokens += n
		stats.Max = max(stats.Max, n)
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("reading dataset: %w", err)
	}
	return stats, nil
}
