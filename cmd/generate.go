package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/batch"
	"github.com/ziadkadry99/instructgen/internal/document"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
	"github.com/ziadkadry99/instructgen/internal/progress"
)

var generateCmd = &cobra.Command{
	Use:   "generate <pipeline>",
	Short: "Generate instruction records and append them to a JSONL dataset",
	Long: `Runs the named pipeline once per input and writes every assembled record
as one JSON line. Inputs come from --input values and from files matched by
--file (markdown and PDF files are split into sections). Pipelines driven by a
language or domain can be repeated with --count.`,
	Example: `  instructgen generate qa --file "docs/**/*.md"
  instructgen generate review --input Go --input Rust --count 5
  instructgen generate translation --var from=Python --var to=Go --count 10`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArray("input", nil, "input bound to the pipeline's first parameter (repeatable)")
	generateCmd.Flags().StringArray("file", nil, "glob of input files; ** is supported (repeatable)")
	generateCmd.Flags().StringToString("var", nil, "named input, e.g. --var to=Go (repeatable)")
	generateCmd.Flags().Int("count", 1, "invocations per input")
	generateCmd.Flags().Int("section-level", 2, "deepest markdown heading level that starts a new section")
	generateCmd.Flags().StringP("output", "o", "", "output JSONL file, - for stdout (overrides config)")
	generateCmd.Flags().Bool("append", false, "append to the output file instead of replacing it")
	generateCmd.Flags().Bool("metadata", false, "include id, pipeline and inputs in every line")
	generateCmd.Flags().Int("concurrency", 0, "max parallel invocations (overrides config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if concurrency, _ := cmd.Flags().GetInt("concurrency"); concurrency > 0 {
		cfg.MaxConcurrency = concurrency
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.Output = output
	}
	if cmd.Flags().Changed("metadata") {
		cfg.IncludeMetadata, _ = cmd.Flags().GetBool("metadata")
	}

	variant, err := pipeline.Default.Lookup(args[0])
	if err != nil {
		return fmt.Errorf("%w (run `instructgen pipelines` to list them)", err)
	}

	inputs, _ := cmd.Flags().GetStringArray("input")
	patterns, _ := cmd.Flags().GetStringArray("file")
	level, _ := cmd.Flags().GetInt("section-level")
	fileInputs, err := readInputFiles(patterns, level)
	if err != nil {
		return err
	}
	inputs = append(inputs, fileInputs...)

	vars, _ := cmd.Flags().GetStringToString("var")
	count, _ := cmd.Flags().GetInt("count")
	jobs, err := buildJobs(variant, inputs, vars, count)
	if err != nil {
		return err
	}

	runner, err := createRunner(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info("generating records",
		"pipeline", variant.Name,
		"jobs", len(jobs),
		"provider", cfg.Provider,
		"model", cfg.Model,
		"concurrency", cfg.MaxConcurrency,
	)

	br := batch.NewRunner(runner,
		batch.WithConcurrency(cfg.MaxConcurrency),
		batch.WithReporter(progress.NewReporter()),
		batch.WithLogger(logger),
	)
	res, err := br.Run(ctx, jobs)
	if err != nil {
		return err
	}

	appendMode, _ := cmd.Flags().GetBool("append")
	out, closeOut, err := openOutput(cfg.Output, appendMode)
	if err != nil {
		return err
	}
	w := batch.NewWriter(out, cfg.IncludeMetadata)
	writeErr := w.WriteAll(res.Items)
	if err := closeOut(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, writeErr)
	}

	for _, f := range res.Errors {
		logger.Warn("invocation failed", "job", f.Index, "pipeline", f.Job.Pipeline, "err", f.Err)
	}

	fmt.Fprintf(os.Stderr, "\nGenerated %d record(s) in %s", w.Count(), time.Since(start).Round(time.Millisecond))
	if len(res.Errors) > 0 {
		fmt.Fprintf(os.Stderr, " (%d failed)", len(res.Errors))
	}
	fmt.Fprintf(os.Stderr, "\nOutput: %s\n", cfg.Output)

	if w.Count() == 0 && len(res.Errors) > 0 {
		return fmt.Errorf("all %d invocations failed; first error: %w", len(res.Errors), res.Errors[0].Err)
	}
	return nil
}

// readInputFiles expands patterns and loads each file as content strings.
func readInputFiles(patterns []string, level int) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	files, err := document.Glob(patterns, document.DefaultExcludes)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files match %v", patterns)
	}
	var inputs []string
	for _, f := range files {
		contents, err := document.Load(f, level)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded input file", "path", f, "sections", len(contents))
		inputs = append(inputs, contents...)
	}
	return inputs, nil
}

// buildJobs turns the collected inputs into batch jobs. Without inputs the
// pipeline runs count times on vars alone, which requires either a
// parameterless pipeline or its first parameter to be set in vars.
func buildJobs(v *pipeline.Variant, inputs []string, vars map[string]string, count int) ([]batch.Job, error) {
	if count < 1 {
		return nil, fmt.Errorf("--count must be at least 1")
	}
	extra := pipeline.Vars(vars)

	if len(inputs) == 0 {
		if len(v.Params) > 0 {
			if _, ok := extra[v.Params[0]]; !ok {
				return nil, fmt.Errorf("pipeline %s needs --input, --file or --var %s=...", v.Name, v.Params[0])
			}
		}
		return batch.Repeat(v.Name, extra, count), nil
	}

	repeated := make([]string, 0, len(inputs)*count)
	for _, in := range inputs {
		for range count {
			repeated = append(repeated, in)
		}
	}
	return batch.Jobs(v, repeated, extra), nil
}

// openOutput opens the dataset destination. "-" writes to stdout.
func openOutput(path string, appendMode bool) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendMode {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}
	return f, f.Close, nil
}
