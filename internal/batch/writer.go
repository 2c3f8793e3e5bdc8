package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// Line is one JSONL entry. Metadata fields are omitted unless enabled.
type Line struct {
	ID       string        `json:"id,omitempty"`
	Pipeline string        `json:"pipeline,omitempty"`
	Input    pipeline.Vars `json:"input,omitempty"`
	Messages []llm.Message `json:"messages"`
}

// Writer writes records as JSON lines.
type Writer struct {
	enc      *json.Encoder
	metadata bool
	n        int
}

// NewWriter returns a writer on w. With metadata set each line also carries
// the record id, pipeline name and inputs.
func NewWriter(w io.Writer, metadata bool) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc, metadata: metadata}
}

// Write appends one item.
func (w *Writer) Write(it Item) error {
	line := Line{Messages: it.Record}
	if w.metadata {
		line.ID = it.ID
		line.Pipeline = it.Pipeline
		line.Input = it.Input
	}
	if err := w.enc.Encode(line); err != nil {
		return fmt.Errorf("writing record %d: %w", w.n, err)
	}
	w.n++
	return nil
}

// WriteAll appends every item in order.
func (w *Writer) WriteAll(items []Item) error {
	for _, it := range items {
		if err := w.Write(it); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of lines written.
func (w *Writer) Count() int { return w.n }
