package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/roivaz/snyk-intelhub/internal/config"
	"github.com/roivaz/snyk-intelhub/internal/logging"
	"github.com/roivaz/snyk-intelhub/internal/mcp"
)

func main() {
	root := &cobra.Command{
		Use:   "mcp-server",
		Short: "Snyk issue inventory MCP server",
		RunE:  run,
	}

	root.PersistentFlags().String("snyk-api-key", "", "Snyk API token")
	root.PersistentFlags().String("snyk-org-id", "", "Snyk organization id")
	root.PersistentFlags().String("snyk-org-slug", "", "Snyk organization slug, used in issue links")
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("mcp-transport", "stdio", "Transport: stdio or http")
	root.PersistentFlags().String("mcp-http-host", "0.0.0.0", "HTTP host")
	root.PersistentFlags().Int("mcp-http-port", 8000, "HTTP port")

	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.New(logging.NewLogger(config.LogLevel())).WithName("mcp-server")

	cfg, err := mcp.DefaultConfig(logger)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)

	switch config.Transport() {
	case "stdio":
		logger.Info("serving MCP over stdio")
		return server.ServeStdio(srv.MCP)
	case "http":
		return serveHTTP(srv, logger)
	default:
		return fmt.Errorf("unknown transport %q: must be stdio or http", config.Transport())
	}
}

func serveHTTP(srv *mcp.Server, logger logging.Logger) error {
	addr := config.HTTPHost() + ":" + strconv.Itoa(config.HTTPPort())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr, "path", mcp.EndpointPath)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
