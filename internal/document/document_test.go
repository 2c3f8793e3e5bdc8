package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const guide = `Intro paragraph.

# Channels

Channels connect goroutines.

` + "```sh\n# not a heading\necho hi\n```" + `

## Buffered

Buffered channels have capacity.

# Select

Select waits on several channels.
`

func TestSections(t *testing.T) {
	got := Sections([]byte(guide), 1)

	titles := make([]string, len(got))
	for i, s := range got {
		titles[i] = s.Title
	}
	if diff := cmp.Diff([]string{"", "Channels", "Select"}, titles); diff != "" {
		t.Fatalf("titles mismatch (-want +got):\n%s", diff)
	}
	if got[0].Text != "Intro paragraph." {
		t.Errorf("preamble = %q", got[0].Text)
	}
	if !strings.HasPrefix(got[1].Text, "# Channels") {
		t.Errorf("section does not start with its heading: %q", got[1].Text)
	}
	if !strings.Contains(got[1].Text, "# not a heading") || !strings.Contains(got[1].Text, "## Buffered") {
		t.Errorf("section lost nested content: %q", got[1].Text)
	}
	if got[2].Level != 1 || !strings.HasSuffix(got[2].Text, "several channels.") {
		t.Errorf("last section = %+v", got[2])
	}
}

func TestSectionsDeeperLevel(t *testing.T) {
	got := Sections([]byte(guide), 2)
	if len(got) != 4 {
		t.Fatalf("sections = %d, want 4", len(got))
	}
	if got[2].Title != "Buffered" || got[2].Level != 2 {
		t.Errorf("third section = %+v, want Buffered at level 2", got[2])
	}
}

func TestSectionsSkipsBlank(t *testing.T) {
	if got := Sections([]byte("  \n\n"), 2); len(got) != 0 {
		t.Errorf("blank input produced %d sections", len(got))
	}
	got := Sections([]byte("# Only\n"), 0)
	if len(got) != 1 || got[0].Title != "Only" {
		t.Errorf("got %+v, want one section titled Only", got)
	}
}

func TestValidatePageRange(t *testing.T) {
	tests := []struct {
		start, end, pages int
		wantErr           bool
	}{
		{1, 1, 1, false},
		{3, 7, 10, false},
		{1, 10, 10, false},
		{0, 2, 10, true},
		{5, 4, 10, true},
		{2, 11, 10, true},
		{1, 1, 0, true},
	}
	for _, tt := range tests {
		err := ValidatePageRange(tt.start, tt.end, tt.pages)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePageRange(%d, %d, %d) = %v, wantErr %v", tt.start, tt.end, tt.pages, err, tt.wantErr)
		}
	}
}

func TestPDFErrorsOnMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pdf")
	if _, err := PDFToMarkdown(missing); err == nil {
		t.Error("PDFToMarkdown: expected error for missing file")
	}
	if err := ExtractPages(missing, filepath.Join(t.TempDir(), "out.pdf"), 1, 1); err == nil {
		t.Error("ExtractPages: expected error for missing file")
	}
}

func TestWritePage(t *testing.T) {
	var b strings.Builder
	writePage(&b, 1, "first")
	writePage(&b, 3, "third")
	want := "## Page 1\n\nfirst\n\n## Page 3\n\nthird\n"
	if b.String() != want {
		t.Errorf("got %q, want %q", b.String(), want)
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md":                 "# A",
		"docs/b.md":            "# B",
		"docs/deep/c.md":       "# C",
		"docs/notes.txt":       "notes",
		"docs/deep/skip.draft": "draft",
	})

	got, err := Glob([]string{
		filepath.Join(dir, "**", "*.md"),
		filepath.Join(dir, "docs", "*.md"),
		filepath.Join(dir, "docs", "deep", "*"),
	}, []string{"*.draft"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "docs", "b.md"),
		filepath.Join(dir, "docs", "deep", "c.md"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("glob mismatch (-want +got):\n%s", diff)
	}
}

func TestGlobBadPattern(t *testing.T) {
	if _, err := Glob([]string{"[unterminated"}, nil); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"guide.md":  guide,
		"plain.txt": "  just text  \n",
		"empty.txt": "\n",
	})

	sections, err := Load(filepath.Join(dir, "guide.md"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 3 {
		t.Errorf("markdown sections = %d, want 3", len(sections))
	}

	plain, err := Load(filepath.Join(dir, "plain.txt"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"just text"}, plain); diff != "" {
		t.Errorf("plain mismatch (-want +got):\n%s", diff)
	}

	empty, err := Load(filepath.Join(dir, "empty.txt"), 1)
	if err != nil || len(empty) != 0 {
		t.Errorf("Load(empty) = %v, %v; want no content", empty, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.md"), 1); err == nil {
		t.Error("expected error for missing file")
	}
}
