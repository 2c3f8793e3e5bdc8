package document

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Section is a heading and the markdown that follows it up to the next
// heading of the same or a higher level.
type Section struct {
	Title string
	Level int
	// Text is the raw markdown of the section, heading line included.
	Text string
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Sections splits markdown at top-level headings of level maxLevel or
// above. Text before the first heading becomes an untitled section. Blank
// sections are dropped. Headings inside code blocks, lists or quotes do not
// split.
func Sections(src []byte, maxLevel int) []Section {
	if maxLevel < 1 {
		maxLevel = 6
	}
	doc := md.Parser().Parse(text.NewReader(src))

	type cut struct {
		offset int
		title  string
		level  int
	}
	var cuts []cut
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level > maxLevel || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		cuts = append(cuts, cut{
			offset: bytes.LastIndexByte(src[:first.Start], '\n') + 1,
			title:  headingTitle(h, src),
			level:  h.Level,
		})
	}

	var out []Section
	add := func(s Section) {
		if strings.TrimSpace(s.Text) != "" {
			s.Text = strings.TrimSpace(s.Text)
			out = append(out, s)
		}
	}
	prev := 0
	var cur Section
	for _, c := range cuts {
		cur.Text = string(src[prev:c.offset])
		add(cur)
		cur = Section{Title: c.title, Level: c.level}
		prev = c.offset
	}
	cur.Text = string(src[prev:])
	add(cur)
	return out
}

func headingTitle(h *ast.Heading, src []byte) string {
	var b strings.Builder
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSpace(b.String())
}

// Contents returns the text of each section.
func Contents(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Text
	}
	return out
}
