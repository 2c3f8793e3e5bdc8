package document

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are path patterns never read as input.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"**/.DS_Store",
}

// Glob expands patterns (with ** support) into a sorted, de-duplicated list
// of regular files, dropping anything matching an exclude pattern.
func Glob(patterns, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || matchesAny(m, excludes) {
				continue
			}
			info, err := os.Stat(m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// matchesAny checks if path matches any of the given glob patterns, either
// as a whole or by its base name.
func matchesAny(path string, patterns []string) bool {
	normalized := filepath.ToSlash(path)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// Load reads a file as pipeline content. PDFs are converted to markdown
// first; markdown is split into sections at maxLevel; anything else is one
// content string.
func Load(path string, maxLevel int) ([]string, error) {
	var src []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := PDFToMarkdown(path)
		if err != nil {
			return nil, err
		}
		src = []byte(text)
	case ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		src = data
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if s := strings.TrimSpace(string(data)); s != "" {
			return []string{s}, nil
		}
		return nil, nil
	}
	return Contents(Sections(src, maxLevel)), nil
}
