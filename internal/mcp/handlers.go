package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// handleListPipelines describes every registered pipeline.
func (s *Server) handleListPipelines(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	variants := s.registry.Variants()
	if len(variants) == 0 {
		return mcp.NewToolResultText("No pipelines are registered."), nil
	}

	var sb strings.Builder
	sb.WriteString("# Pipelines\n\n")
	for _, v := range variants {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", v.Name, v.Description)
		if len(v.Params) > 0 {
			fmt.Fprintf(&sb, "- **Inputs**: %s\n", strings.Join(v.Params, ", "))
		} else {
			sb.WriteString("- **Inputs**: none\n")
		}
		stages := make([]string, len(v.Stages))
		for i, st := range v.Stages {
			stages[i] = st.Name
		}
		fmt.Fprintf(&sb, "- **Stages**: %s\n\n", strings.Join(stages, " -> "))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGenerateRecord runs one pipeline invocation.
func (s *Server) handleGenerateRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("pipeline")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pipeline"), nil
	}

	v, err := s.registry.Lookup(name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v. Use list_pipelines to see the available names.", err)), nil
	}

	vars, err := varsArgument(request.GetArguments()["vars"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if params := v.Params; len(params) > 0 {
		if _, set := vars[params[0]]; !set {
			vars[params[0]] = request.GetString("input", "")
		}
	}

	rec, err := s.runner.Run(ctx, v, vars)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	b, err := json.MarshalIndent(map[string]any{"messages": rec}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling record: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// varsArgument converts the optional vars object into pipeline inputs.
func varsArgument(raw any) (pipeline.Vars, error) {
	vars := pipeline.Vars{}
	if raw == nil {
		return vars, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("vars must be an object of strings")
	}
	for k, v := range obj {
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("vars.%s must be a string", k)
		}
		vars[k] = str
	}
	return vars, nil
}
