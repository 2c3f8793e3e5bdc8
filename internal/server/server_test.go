package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/llm/mock"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

type zeroSampler struct{}

func (zeroSampler) Float64() float64 { return 0 }

func newTestServer(t *testing.T, prov llm.Provider, cfg Config) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner, err := pipeline.New(prov, pipeline.DefaultConfig(),
		pipeline.WithRand(zeroSampler{}),
		pipeline.WithLogger(logger))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return New(cfg, runner, pipeline.Default, logger)
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, mock.NewProvider(), Config{Port: 0})

	w := serve(srv, "GET", "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, mock.NewProvider(), Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestListPipelines(t *testing.T) {
	srv := newTestServer(t, mock.NewProvider(), Config{})

	w := serve(srv, "GET", "/api/pipelines/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []pipelineInfo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != len(pipeline.Default.Names()) {
		t.Fatalf("listed %d pipelines, want %d", len(list), len(pipeline.Default.Names()))
	}
	for _, p := range list {
		if p.Name == "qa" {
			if len(p.Params) != 1 || p.Params[0] != "content" || len(p.Stages) != 2 {
				t.Errorf("qa described as %+v", p)
			}
			return
		}
	}
	t.Error("qa not listed")
}

func TestInvokePipeline(t *testing.T) {
	prov := mock.NewProvider("Q1", "A1")
	srv := newTestServer(t, prov, Config{})

	w := serve(srv, "POST", "/api/pipelines/qa", `{"input":"Goroutines are cheap."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp invokeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Messages) != 4 || resp.Messages[3].Content != "A1" || resp.Messages[3].Role != llm.RoleAssistant {
		t.Errorf("unexpected messages %+v", resp.Messages)
	}
	if got := prov.Calls[0].Messages[2].Content; got != "Goroutines are cheap." {
		t.Errorf("input not bound to content: %q", got)
	}
	if prov.Calls[0].Temperature != pipeline.DefaultConfig().TempMin {
		t.Errorf("temperature = %v, want the lower bound", prov.Calls[0].Temperature)
	}
}

func TestInvokeWithVars(t *testing.T) {
	prov := mock.NewProvider("task", "code", "translated")
	srv := newTestServer(t, prov, Config{})

	w := serve(srv, "POST", "/api/pipelines/translation", `{"vars":{"from":"Java","to":"Kotlin"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Convert this Java code to Kotlin:") {
		t.Errorf("body does not carry the translation request: %s", w.Body.String())
	}
}

func TestInvokeErrors(t *testing.T) {
	failing := &mock.Provider{
		ProvName:     "mock",
		CompleteFunc: func(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) { return nil, errors.New("timeout") },
	}

	tests := []struct {
		name     string
		provider llm.Provider
		path     string
		body     string
		want     int
	}{
		{"unknown pipeline", mock.NewProvider(), "/api/pipelines/nope", `{}`, http.StatusNotFound},
		{"bad json", mock.NewProvider(), "/api/pipelines/qa", `{`, http.StatusBadRequest},
		{"upstream failure", failing, "/api/pipelines/qa", `{"input":"x"}`, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.provider, Config{})
			w := serve(srv, "POST", tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected JSON error body, got %s", w.Body.String())
			}
		})
	}
}

func summaryVariant() *pipeline.Variant {
	return &pipeline.Variant{
		Name:   "summary",
		Params: []string{"topic"},
		Stages: []pipeline.Stage{{
			Name: "summary",
			Prompt: func(v pipeline.Vars) []llm.Message {
				return []llm.Message{{Role: llm.RoleUser, Content: "Summarize " + v["topic"]}}
			},
		}},
		Pattern: []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant},
		Assemble: func(v pipeline.Vars) pipeline.Record {
			return pipeline.Record{
				{Role: llm.RoleSystem, Content: pipeline.Persona},
				{Role: llm.RoleUser, Content: v["topic"]},
				{Role: llm.RoleAssistant, Content: v["summary"]},
			}
		},
	}
}

func TestInvokeUsesServedRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	runner, err := pipeline.New(mock.NewProvider("Channels pass ownership."), pipeline.DefaultConfig(),
		pipeline.WithRand(zeroSampler{}),
		pipeline.WithLogger(logger))
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	srv := New(Config{}, runner, pipeline.NewRegistry(summaryVariant()), logger)

	w := serve(srv, "GET", "/api/pipelines/", "")
	if !strings.Contains(w.Body.String(), `"summary"`) {
		t.Fatalf("listing does not include summary: %s", w.Body.String())
	}

	w = serve(srv, "POST", "/api/pipelines/summary", `{"input":"channels"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var resp invokeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Pipeline != "summary" || len(resp.Messages) != 3 || resp.Messages[2].Content != "Channels pass ownership." {
		t.Errorf("unexpected response: %+v", resp)
	}

	// Names outside the served registry are unknown even if the runner knows them.
	if w := serve(srv, "POST", "/api/pipelines/qa", `{"input":"x"}`); w.Code != http.StatusNotFound {
		t.Errorf("qa status = %d, want 404", w.Code)
	}
}
