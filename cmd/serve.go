package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/instructgen/internal/pipeline"
	"github.com/ziadkadry99/instructgen/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
	serveTimeout  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for invoking pipelines",
	Long:  `Starts an HTTP server with GET /api/pipelines to list pipelines and POST /api/pipelines/{name} to generate one record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner, err := createRunner(ctx, cfg)
		if err != nil {
			return err
		}

		srv := server.New(server.Config{
			Port:     servePort,
			AllowAll: serveAllowAll,
			Timeout:  serveTimeout,
		}, runner, pipeline.Default, logger)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdown(srv, 10*time.Second, logger)
		}()

		fmt.Fprintf(os.Stderr, "instructgen server v%s starting on port %d\n", Version, servePort)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", cfg.Provider, cfg.Model)
		fmt.Fprintf(os.Stderr, "  Pipelines: %d\n", len(pipeline.Default.Names()))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// shutdown stops srv, waiting at most timeout for in-flight requests.
func shutdown(srv interface{ Shutdown(context.Context) error }, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", "error", err)
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow CORS requests from any origin")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 5*time.Minute, "per-request timeout, covering every generation call")
	rootCmd.AddCommand(serveCmd)
}
