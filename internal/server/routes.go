package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// pipelineInfo describes a registered variant.
type pipelineInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
	Stages      []string `json:"stages"`
}

// invokeRequest is the body of POST /api/pipelines/{name}. Input is bound to
// the first parameter; Vars sets any parameter by name.
type invokeRequest struct {
	Input string            `json:"input"`
	Vars  map[string]string `json:"vars"`
}

type invokeResponse struct {
	Pipeline string        `json:"pipeline"`
	Messages []llm.Message `json:"messages"`
}

// RegisterRoutes mounts pipeline endpoints under /api/pipelines.
func RegisterRoutes(r chi.Router, runner *pipeline.Runner, registry *pipeline.Registry) {
	r.Route("/api/pipelines", func(r chi.Router) {
		r.Get("/", handleList(registry))
		r.Post("/{name}", handleInvoke(runner, registry))
	})
}

func handleList(registry *pipeline.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		variants := registry.Variants()
		out := make([]pipelineInfo, 0, len(variants))
		for _, v := range variants {
			out = append(out, describe(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func describe(v *pipeline.Variant) pipelineInfo {
	stages := make([]string, len(v.Stages))
	for i, s := range v.Stages {
		stages[i] = s.Name
	}
	params := v.Params
	if params == nil {
		params = []string{}
	}
	return pipelineInfo{Name: v.Name, Description: v.Description, Params: params, Stages: stages}
}

// handleInvoke resolves names in the same registry the listing serves.
func handleInvoke(runner *pipeline.Runner, registry *pipeline.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := registry.Lookup(chi.URLParam(r, "name"))
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}

		var req invokeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
			return
		}

		vars := pipeline.Vars{}
		for k, v := range req.Vars {
			vars[k] = v
		}
		if params := v.Params; len(params) > 0 {
			if _, set := vars[params[0]]; !set {
				vars[params[0]] = req.Input
			}
		}

		rec, err := runner.Run(r.Context(), v, vars)
		switch {
		case errors.Is(err, pipeline.ErrGenerationFailed):
			writeError(w, http.StatusBadGateway, err)
			return
		case err != nil:
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, invokeResponse{Pipeline: v.Name, Messages: rec})
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
