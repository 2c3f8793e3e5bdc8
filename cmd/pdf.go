package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/document"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Prepare PDF sources for generation",
}

var pdfExtractCmd = &cobra.Command{
	Use:   "extract <input.pdf> <output.pdf>",
	Short: "Copy a page range into a new PDF",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetInt("start")
		end, _ := cmd.Flags().GetInt("end")
		if err := document.ExtractPages(args[0], args[1], start, end); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Pages %d-%d of %s saved to %s\n", start, end, args[0], args[1])
		return nil
	},
}

var pdfMarkdownCmd = &cobra.Command{
	Use:   "markdown <input.pdf>",
	Short: "Convert a PDF to markdown text with one section per page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := document.PDFToMarkdown(args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" || out == "-" {
			_, err := os.Stdout.WriteString(text)
			return err
		}
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d page section(s) to %s\n", strings.Count(text, "## Page "), out)
		return nil
	},
}

func init() {
	pdfExtractCmd.Flags().Int("start", 1, "first page (1-based)")
	pdfExtractCmd.Flags().Int("end", 1, "last page (inclusive)")
	pdfMarkdownCmd.Flags().StringP("output", "o", "", "output markdown file (default stdout)")
	pdfCmd.AddCommand(pdfExtractCmd, pdfMarkdownCmd)
	rootCmd.AddCommand(pdfCmd)
}
