package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPipelinesTool defines the list_pipelines MCP tool.
var listPipelinesTool = mcp.NewTool("list_pipelines",
	mcp.WithDescription("List the instruction-record pipelines with their inputs and generation stages."),
)

// generateRecordTool defines the generate_record MCP tool for the given
// pipeline names.
func generateRecordTool(names []string) mcp.Tool {
	return mcp.NewTool("generate_record",
		mcp.WithDescription("Run a pipeline once and return the assembled instruction record as JSON messages."),
		mcp.WithString("pipeline",
			mcp.Required(),
			mcp.Description("Pipeline name"),
			mcp.Enum(names...),
		),
		mcp.WithString("input",
			mcp.Description("Content, language or domain bound to the pipeline's first input"),
		),
		mcp.WithObject("vars",
			mcp.Description("Named inputs, e.g. {\"from\": \"Python\", \"to\": \"Go\"} for translation"),
		),
	)
}
