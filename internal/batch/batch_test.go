package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/llm/mock"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

type halfSampler struct{}

func (halfSampler) Float64() float64 { return 0.5 }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echoProvider answers every call with the last prompt turn, failing when
// any turn contains "boom".
func echoProvider() *mock.Provider {
	p := &mock.Provider{ProvName: "echo"}
	p.CompleteFunc = func(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
		for _, m := range req.Messages {
			if strings.Contains(m.Content, "boom") {
				return nil, errors.New("upstream exploded")
			}
		}
		last := req.Messages[len(req.Messages)-1].Content
		return &llm.CompletionResponse{Choices: []llm.Choice{{Content: "re: " + last}}}, nil
	}
	return p
}

func newPipelineRunner(t *testing.T, p llm.Provider) *pipeline.Runner {
	t.Helper()
	r, err := pipeline.New(p, pipeline.DefaultConfig(),
		pipeline.WithRand(halfSampler{}),
		pipeline.WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

type countingReporter struct {
	started, updates, finished atomic.Int64
}

func (c *countingReporter) Start(int)          { c.started.Add(1) }
func (c *countingReporter) Update(int, string) { c.updates.Add(1) }
func (c *countingReporter) Finish()            { c.finished.Add(1) }

func TestRunCollectsRecordsAndFailures(t *testing.T) {
	prov := echoProvider()
	rep := &countingReporter{}
	br := NewRunner(newPipelineRunner(t, prov),
		WithConcurrency(3),
		WithReporter(rep),
		WithLogger(quietLogger()))

	v, err := pipeline.Default.Lookup("explanation")
	if err != nil {
		t.Fatal(err)
	}
	jobs := Jobs(v, []string{"Go", "Rust", "boom", "Python"}, nil)
	jobs = append(jobs, Job{Pipeline: "missing"})

	res, err := br.Run(context.Background(), jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(res.Items))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(res.Errors))
	}

	var langs []string
	for _, it := range res.Items {
		if it.ID == "" {
			t.Error("item without id")
		}
		if err := it.Record.Validate(); err != nil {
			t.Errorf("invalid record: %v", err)
		}
		langs = append(langs, it.Input["language"])
	}
	if diff := cmp.Diff([]string{"Go", "Rust", "Python"}, langs); diff != "" {
		t.Errorf("items out of job order (-want +got):\n%s", diff)
	}

	if res.Errors[0].Index != 2 || !errors.Is(res.Errors[0].Err, pipeline.ErrGenerationFailed) {
		t.Errorf("first failure = %v, want generation failure for job 2", res.Errors[0])
	}
	if res.Errors[1].Index != 4 || !errors.Is(res.Errors[1].Err, pipeline.ErrUnknownPipeline) {
		t.Errorf("second failure = %v, want unknown pipeline for job 4", res.Errors[1])
	}

	if rep.started.Load() != 1 || rep.finished.Load() != 1 || rep.updates.Load() != int64(len(jobs)) {
		t.Errorf("reporter saw start=%d updates=%d finish=%d",
			rep.started.Load(), rep.updates.Load(), rep.finished.Load())
	}
}

func TestRunCancelledContext(t *testing.T) {
	prov := mock.NewProvider()
	br := NewRunner(newPipelineRunner(t, prov), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := br.Run(ctx, Repeat("sql", nil, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 0 || len(res.Errors) != 3 {
		t.Fatalf("items=%d errors=%d, want 0 and 3", len(res.Items), len(res.Errors))
	}
	if !errors.Is(res.Errors[0].Err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", res.Errors[0].Err)
	}
	if prov.CallCount() != 0 {
		t.Errorf("provider called %d times after cancellation", prov.CallCount())
	}
}

func TestJobs(t *testing.T) {
	v, _ := pipeline.Default.Lookup("translation")
	jobs := Jobs(v, []string{"Python", "Java"}, pipeline.Vars{"to": "Go"})
	want := []Job{
		{Pipeline: "translation", Vars: pipeline.Vars{"from": "Python", "to": "Go"}},
		{Pipeline: "translation", Vars: pipeline.Vars{"from": "Java", "to": "Go"}},
	}
	if diff := cmp.Diff(want, jobs); diff != "" {
		t.Errorf("jobs mismatch (-want +got):\n%s", diff)
	}

	sql, _ := pipeline.Default.Lookup("sql")
	if got := Jobs(sql, []string{"ignored"}, nil); len(got[0].Vars) != 0 {
		t.Errorf("parameterless variant got vars %v", got[0].Vars)
	}
}

func TestWriter(t *testing.T) {
	item := Item{
		ID:       "id-1",
		Pipeline: "qa",
		Input:    pipeline.Vars{"content": "<b>x</b>"},
		Record: pipeline.Record{
			{Role: llm.RoleSystem, Content: pipeline.Persona},
			{Role: llm.RoleUser, Content: "Q"},
			{Role: llm.RoleAssistant, Content: "A"},
		},
	}

	tests := []struct {
		name     string
		metadata bool
		want     string
	}{
		{
			name: "messages only",
			want: `{"messages":[{"role":"system","content":"You are a programming expert."},{"role":"user","content":"Q"},{"role":"assistant","content":"A"}]}`,
		},
		{
			name:     "with metadata",
			metadata: true,
			want:     `{"id":"id-1","pipeline":"qa","input":{"content":"<b>x</b>"},"messages":[{"role":"system","content":"You are a programming expert."},{"role":"user","content":"Q"},{"role":"assistant","content":"A"}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, tt.metadata)
			if err := w.WriteAll([]Item{item, item}); err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(lines) != 2 || w.Count() != 2 {
				t.Fatalf("lines = %d, count = %d, want 2", len(lines), w.Count())
			}
			if lines[0] != tt.want {
				t.Errorf("line =\n%s\nwant\n%s", lines[0], tt.want)
			}
			var decoded Line
			if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
				t.Errorf("line is not valid JSON: %v", err)
			}
		})
	}
}
