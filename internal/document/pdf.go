package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// ValidatePageRange checks a 1-based inclusive range against a page count.
func ValidatePageRange(start, end, pages int) error {
	if start < 1 || end < start || end > pages {
		return fmt.Errorf("invalid page range %d-%d: must satisfy 1 <= start <= end <= %d", start, end, pages)
	}
	return nil
}

// ExtractPages writes pages start..end (1-based, inclusive) of in to out.
func ExtractPages(in, out string, start, end int) error {
	pages, err := PageCount(in)
	if err != nil {
		return err
	}
	if err := ValidatePageRange(start, end, pages); err != nil {
		return err
	}
	sel := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.TrimFile(in, out, sel, nil); err != nil {
		return fmt.Errorf("extracting pages %d-%d of %s: %w", start, end, in, err)
	}
	return nil
}

// PDFToMarkdown extracts the plain text of every page, each under a
// "## Page N" heading. Pages without a content stream or text are skipped.
func PDFToMarkdown(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		writePage(&b, i, text)
	}
	return b.String(), nil
}

func writePage(b *strings.Builder, n int, text string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "## Page %d\n\n%s\n", n, text)
}
