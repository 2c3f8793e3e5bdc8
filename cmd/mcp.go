package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/logging"
	mcpserver "github.com/ziadkadry99/instructgen/internal/mcp"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing list_pipelines and generate_record tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the protocol; keep logs on stderr without colour.
		logger = logging.NewWithWriter(os.Stderr, verbose, true)
		slog.SetDefault(logger)

		runner, err := createRunner(context.Background(), cfg)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "instructgen MCP server started on stdio (provider=%s, pipelines=%d)\n",
			cfg.Provider, len(pipeline.Default.Names()))

		srv := mcpserver.NewServer(runner, pipeline.Default)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
