package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mem0mcp/internal/config"
	"mem0mcp/internal/logger"
	"mem0mcp/internal/mcpserver"
	"mem0mcp/internal/mem0"
	"mem0mcp/internal/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MegaGrindStone/go-mcp"
)

const customInstructions = `
Extract the Following Information:

- Code Snippets: Save the actual code for future reference.
- Explanation: Document a clear description of what the code does and how it works.
- Related Technical Details: Include information about the programming language, dependencies, and system specifications.
- Key Features: Highlight the main functionalities and important aspects of the snippet.
`

const shutdownTimeout = 10 * time.Second

func main() {
	flags := ParseFlags()

	cfg, err := config.LoadConfig(config.GetConfigPath(flags.ConfigFile))
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load config: %v", err)
	}

	if flags.Host != "" {
		cfg.ServerConfig.Host = flags.Host
	}
	if flags.Port != 0 {
		cfg.ServerConfig.Port = flags.Port
	}

	zLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().
		Float64("read_timeout_secs", cfg.TimeoutConfig.ReadSecs).
		Int("max_retries", cfg.RetryConfig.MaxRetries).
		Int("chunk_size", cfg.ChunkConfig.ChunkSize).
		Msg("Configuration loaded")

	holder, err := mem0.NewTransportHolder(cfg.TimeoutConfig, cfg.LimitsConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not build HTTP transport")
	}
	defer holder.Close()

	// The monitor probes through the client, and the executor consults the
	// monitor, so the probe closures capture a client assigned below. They
	// only run after Start, by which point the client exists.
	var client *mem0.Client
	monitor := mem0.NewHealthMonitor(cfg.ConnectionConfig, holder,
		func(ctx context.Context) error {
			return client.Ping(ctx)
		},
		func(ctx context.Context) error {
			_, err := client.ValidateAPIKey(ctx)
			return err
		},
		zLogger)

	executor := mem0.NewExecutor(cfg.RetryConfig, holder, monitor, zLogger)
	client = mem0.NewClient(cfg, holder, executor, zLogger)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), cfg.ConnectionConfig.ConnectionTimeout())
	if email, err := client.ValidateAPIKey(startupCtx); err != nil {
		zLogger.Warn().Err(err).Msg("Could not validate mem0 API key at startup")
	} else {
		zLogger.Info().Str("user_email", email).Msg("mem0 API key validated")
	}
	startupCancel()

	projectCtx, projectCancel := context.WithTimeout(context.Background(), cfg.TimeoutConfig.Write())
	if err := client.UpdateProject(projectCtx, customInstructions); err != nil {
		zLogger.Warn().Err(err).Msg("Could not update project custom instructions")
	}
	projectCancel()

	monitor.Start()
	defer monitor.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.ServerConfig.Host, cfg.ServerConfig.Port)
	messageURL := fmt.Sprintf("http://%s/message", addr)

	sseServer := mcp.NewSSEServer(messageURL)
	toolServer := mcpserver.NewServer(client, zLogger)
	mcpSrv := mcp.NewServer(mcp.Info{
		Name:    "mem0-mcp",
		Version: "1.0.0",
	}, sseServer, mcp.WithToolServer(toolServer))

	go mcpSrv.Serve()

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.HandleSSE())
	mux.Handle("/message", sseServer.HandleMessage())
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !monitor.Healthy() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "unhealthy")
			return
		}
		fmt.Fprintln(w, "ok")
	})

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       cfg.ServerConfig.KeepAliveTimeout(),
	}

	serveErr := make(chan error, 1)
	go func() {
		zLogger.Info().Str("address", addr).Msg("Starting SSE server")
		serveErr <- httpSrv.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		zLogger.Info().Str("signal", sig.String()).Msg("Received interrupt signal, initiating graceful shutdown...")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zLogger.Fatal().Err(err).Msg("SSE server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := mcpSrv.Shutdown(shutdownCtx); err != nil {
		zLogger.Error().Err(err).Msg("MCP server shutdown failed")
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zLogger.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	zLogger.Info().Msg("Shutdown complete")
}
