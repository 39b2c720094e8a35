package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/trusteehq/formscan/internal/compliance"
	"github.com/trusteehq/formscan/internal/config"
	"github.com/trusteehq/formscan/internal/extraction"
	"github.com/trusteehq/formscan/internal/forms"
	"github.com/trusteehq/formscan/internal/mapping"
	"github.com/trusteehq/formscan/internal/mcp"
	"github.com/trusteehq/formscan/internal/pdftext"
	"github.com/trusteehq/formscan/internal/server"
	"github.com/trusteehq/formscan/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// newLogger builds the process logger. In stdio mode log output goes to
// stderr so it cannot interfere with the MCP protocol on stdout.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := os.Stdout
	if cfg.IsStdioMode() {
		out = os.Stderr
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

// runServerMode runs the HTTP server until a shutdown signal arrives.
func runServerMode(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, srv *server.Server) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.Start(ctx)
	}()

	select {
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
		if err := <-serverErrCh; err != nil {
			logger.Error("server shutdown with error", "error", err)
			os.Exit(1)
		}
	case err := <-serverErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// runStdioMode runs the MCP server; the parent process owns the lifecycle.
func runStdioMode(ctx context.Context, logger *slog.Logger, srv *mcp.Server) {
	if err := srv.Run(ctx); err != nil {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsDebug() {
		logger.Debug("starting", "config", cfg.String())
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open compliance database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	documents, err := pdftext.NewService(cfg.DocumentDirectory, cfg.MaxFileSize)
	if err != nil {
		logger.Error("failed to create document service", "error", err)
		os.Exit(1)
	}

	registry := forms.NewRegistry()
	extractor := extraction.NewExtractorWithLogger(logger)
	mapper := mapping.NewMapperWithRegistry(registry)
	analyzer := compliance.NewAnalyzer(st, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsServerMode() {
		httpServer := server.NewServer(cfg, logger, server.Deps{
			Registry:  registry,
			Extractor: extractor,
			Mapper:    mapper,
			Analyzer:  analyzer,
			Store:     st,
			Documents: documents,
		})
		runServerMode(ctx, cancel, logger, httpServer)
		return
	}

	mcpServer, err := mcp.NewServer(cfg, mcp.Deps{
		Registry:  registry,
		Extractor: extractor,
		Mapper:    mapper,
		Analyzer:  analyzer,
		Documents: documents,
	})
	if err != nil {
		logger.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	runStdioMode(ctx, logger, mcpServer)
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("formscan\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
