package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/lattice/internal/pipeline"
	"github.com/MeKo-Tech/lattice/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for page processing",
	Long: `Start an HTTP server that fuses uploaded page images and recognizer
results into markup.

The server provides the following endpoints:
  POST /v1/page  - Process a page (multipart: results JSON plus optional image)
  GET  /health   - Health check endpoint
  GET  /metrics  - Prometheus metrics

Examples:
  lattice serve
  lattice serve --port 8080
  lattice serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "host to bind to")
	serveCmd.Flags().Int("port", 0, "port to listen on")
	serveCmd.Flags().String("cors-origin", "", "CORS allowed origin")
	serveCmd.Flags().Int("timeout", 0, "request timeout in seconds")
	serveCmd.Flags().Int("max-upload-size", 0, "maximum upload size in MB")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	srvCfg := cfg.Server
	if cmd.Flags().Changed("host") {
		srvCfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		srvCfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("cors-origin") {
		srvCfg.CORSOrigin, _ = cmd.Flags().GetString("cors-origin")
	}
	if cmd.Flags().Changed("timeout") {
		srvCfg.TimeoutSeconds, _ = cmd.Flags().GetInt("timeout")
	}
	if cmd.Flags().Changed("max-upload-size") {
		srvCfg.MaxUploadMB, _ = cmd.Flags().GetInt("max-upload-size")
	}

	pl, err := pipeline.New(cfg.PipelineConfig())
	if err != nil {
		return err
	}
	srv := server.NewServer(srvCfg, pl)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
