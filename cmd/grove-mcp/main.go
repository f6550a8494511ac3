package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mcpadapter "grove/internal/adapters/mcp"
	"grove/internal/bootstrap"
	"grove/internal/config"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("grove-mcp: %v", err)
	}

	dbFlag := flag.String("db", cfg.DatabasePath, "path to the database")
	metricsFlag := flag.String("metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address (disabled when empty)")
	flag.Parse()

	cfg.DatabasePath = config.ExpandHome(*dbFlag)
	cfg.MetricsAddr = *metricsFlag

	// stdout carries the MCP protocol
	logger := config.NewLogger(cfg.LogLevel, os.Stderr)

	app, err := bootstrap.Open(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("grove-mcp: %v", err)
	}
	defer app.Close()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener stopped", "error", err)
			}
		}()
	}

	mcpServer := mcpadapter.NewServer("grove-mcp", version, mcpadapter.Deps{
		Store:    app.Store,
		Index:    app.Index,
		Sessions: app.Sessions,
		Logger:   logger,
	})

	logger.Info("grove-mcp ready", "db", cfg.DatabasePath, "indexed", app.Rebuilt.ItemsIndexed)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("grove-mcp stopped", "error", err)
		app.Close()
		os.Exit(1)
	}
}
