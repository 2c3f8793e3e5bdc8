package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

func TestBuildJobs(t *testing.T) {
	qa, _ := pipeline.Default.Lookup("qa")
	sql, _ := pipeline.Default.Lookup("sql")
	translation, _ := pipeline.Default.Lookup("translation")

	tests := []struct {
		name     string
		variant  *pipeline.Variant
		inputs   []string
		vars     map[string]string
		count    int
		wantJobs int
		wantErr  bool
	}{
		{"inputs times count", qa, []string{"a", "b"}, nil, 3, 6, false},
		{"parameterless", sql, nil, nil, 4, 4, false},
		{"first param from vars", translation, nil, map[string]string{"from": "C", "to": "Go"}, 2, 2, false},
		{"missing input", qa, nil, nil, 1, 0, true},
		{"zero count", qa, []string{"a"}, nil, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := buildJobs(tt.variant, tt.inputs, tt.vars, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(jobs) != tt.wantJobs {
				t.Errorf("jobs = %d, want %d", len(jobs), tt.wantJobs)
			}
		})
	}
}

func TestOpenOutputAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	for i, appendMode := range []bool{false, true} {
		w, closeFn, err := openOutput(path, appendMode)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("line\n")); err != nil {
			t.Fatal(err)
		}
		if err := closeFn(); err != nil {
			t.Fatal(err)
		}
		data, _ := os.ReadFile(path)
		if got := strings.Count(string(data), "line"); got != i+1 {
			t.Errorf("after write %d: %d lines, want %d", i, got, i+1)
		}
	}
}

func TestCountDataset(t *testing.T) {
	data := `{"messages":[{"role":"system","content":"s"},{"role":"user","content":"q"}]}

{"id":"x","messages":[{"role":"system","content":"s"}]}
`
	perTurn := func(msgs []llm.Message) int { return len(msgs) }
	stats, err := countDataset(bytes.NewBufferString(data), perTurn)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Records != 2 || stats.Tokens != 3 || stats.Max != 2 {
		t.Errorf("stats = %+v, want 2 records, 3 tokens, max 2", stats)
	}

	if _, err := countDataset(strings.NewReader("{not json}\n"), perTurn); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestEstimateMessages(t *testing.T) {
	msgs := []llm.Message{{Role: llm.RoleUser, Content: strings.Repeat("a", 40)}}
	if got := estimateMessages(msgs); got != 14 {
		t.Errorf("estimateMessages = %d, want 14", got)
	}
}
