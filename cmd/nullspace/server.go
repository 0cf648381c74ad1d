package nullspacecmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nullspace/nullspace"
	"github.com/nullspace/nullspace/pkg/config"
	"github.com/nullspace/nullspace/pkg/logger"
	"github.com/nullspace/nullspace/pkg/server"
	"github.com/nullspace/nullspace/pkg/source"
	"github.com/nullspace/nullspace/pkg/summarize"
	"github.com/nullspace/nullspace/pkg/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the NULLspace API server",
	Long: `Start the HTTP API server that serves the study catalog, search,
knowledge graphs and platform statistics.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Server flags
	serverCmd.Flags().String("host", "0.0.0.0", "server host")
	serverCmd.Flags().IntP("port", "p", 8000, "server port")
	serverCmd.Flags().String("mode", "debug", "gin mode (debug, release, test)")

	// Source flags
	serverCmd.Flags().String("source", "genelab", "study source driver (genelab, local)")
	serverCmd.Flags().String("search-url", "", "GeneLab search endpoint override")
	serverCmd.Flags().String("study-url", "", "GeneLab study endpoint override")
	serverCmd.Flags().Int("source-limit", 20, "number of studies fetched from the source")

	// Cache flags
	serverCmd.Flags().Bool("no-cache", false, "disable the study cache")
	serverCmd.Flags().String("cache-path", "", "cache directory (default is $HOME/.nullspace/cache)")
	serverCmd.Flags().Bool("cache-in-memory", false, "keep the cache in memory only")

	// Summarizer flags
	serverCmd.Flags().String("summarizer", "", "summarizer provider (static, openai)")
	serverCmd.Flags().String("summarizer-model", "", "summarizer model name")
	serverCmd.Flags().String("summarizer-base-url", "", "summarizer API base URL")
	serverCmd.Flags().Int("enrich-workers", 0, "enrichment worker pool size (0 disables the pool)")

	// Telemetry flags
	serverCmd.Flags().String("telemetry-parquet-path", "", "directory for error telemetry parquet files (empty disables)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command line flags when explicitly set
	if cmd.Flags().Changed("host") {
		cfg.Server.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("mode") {
		cfg.Server.Mode, _ = cmd.Flags().GetString("mode")
	}
	if cmd.Flags().Changed("source") {
		cfg.Source.Driver, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("search-url") {
		cfg.Source.SearchURL, _ = cmd.Flags().GetString("search-url")
	}
	if cmd.Flags().Changed("study-url") {
		cfg.Source.StudyURL, _ = cmd.Flags().GetString("study-url")
	}
	if cmd.Flags().Changed("source-limit") {
		cfg.Source.Limit, _ = cmd.Flags().GetInt("source-limit")
	}
	if cmd.Flags().Changed("no-cache") {
		noCache, _ := cmd.Flags().GetBool("no-cache")
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("cache-path") {
		cfg.Cache.Path, _ = cmd.Flags().GetString("cache-path")
	}
	if cmd.Flags().Changed("cache-in-memory") {
		cfg.Cache.InMemory, _ = cmd.Flags().GetBool("cache-in-memory")
	}
	if cmd.Flags().Changed("summarizer") {
		cfg.Summarizer.Provider, _ = cmd.Flags().GetString("summarizer")
	}
	if cmd.Flags().Changed("summarizer-model") {
		cfg.Summarizer.Model, _ = cmd.Flags().GetString("summarizer-model")
	}
	if cmd.Flags().Changed("summarizer-base-url") {
		cfg.Summarizer.BaseURL, _ = cmd.Flags().GetString("summarizer-base-url")
	}
	if cmd.Flags().Changed("enrich-workers") {
		cfg.Enrich.Workers, _ = cmd.Flags().GetInt("enrich-workers")
	}
	if cmd.Flags().Changed("telemetry-parquet-path") {
		cfg.Telemetry.ParquetPath, _ = cmd.Flags().GetString("telemetry-parquet-path")
	}

	log, parquetHandler, err := initializeLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(log)

	explorer, err := buildExplorer(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize explorer: %w", err)
	}
	defer explorer.Close()

	srv := server.New(cfg, explorer)
	srv.Setup()

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	log.Info("server started",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"source", cfg.Source.Driver,
		"summarizer", cfg.Summarizer.Provider)

	// Wait for interrupt signal or server error
	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop server gracefully: %w", err)
	}

	if parquetHandler != nil {
		if err := parquetHandler.Flush(); err != nil {
			log.Warn("failed to flush telemetry", "error", err)
		}
	}

	log.Info("server stopped")
	return nil
}

// initializeLogger builds the application logger, wrapping the color
// handler with parquet error telemetry when a path is configured.
func initializeLogger(cfg *config.Config) (*slog.Logger, *telemetry.ParquetHandler, error) {
	level := parseLogLevel(cfg.Log.Level)
	colorHandler := logger.NewColorHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	if cfg.Telemetry.ParquetPath == "" {
		return slog.New(colorHandler), nil, nil
	}

	parquetHandler, err := telemetry.NewParquetHandler(colorHandler, cfg.Telemetry.ParquetPath)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(parquetHandler), parquetHandler, nil
}

// buildExplorer wires the source chain, summarizer and enrichment pool
// from configuration.
func buildExplorer(cfg *config.Config, log *slog.Logger) (nullspace.Explorer, error) {
	local, err := source.NewLocal()
	if err != nil {
		return nil, fmt.Errorf("failed to load local catalog: %w", err)
	}

	var src source.Source = local
	if cfg.Source.Driver == "genelab" {
		var primary source.Source = source.NewGeneLab(cfg.Source, log)
		if cfg.CircuitBreaker.Enabled {
			primary = source.NewBreakerSource(primary, cfg.CircuitBreaker, log, "genelab")
		}
		// The bundled catalog backs the live source so requests keep
		// working when GeneLab is down.
		src = source.NewFallbackSource(primary, local, log)
	}

	if cfg.Cache.Enabled {
		src, err = source.NewCachedSource(src, cfg.Cache, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}

	summarizer, err := buildSummarizer(cfg)
	if err != nil {
		return nil, err
	}

	opts := nullspace.DefaultOptions()
	opts.Logger = log
	if cfg.Enrich.Workers > 0 {
		enricher, err := summarize.NewEnricher(summarizer, cfg.Enrich.Workers, log)
		if err != nil {
			return nil, fmt.Errorf("failed to start enrichment pool: %w", err)
		}
		opts.Enricher = enricher
	}

	return nullspace.NewClient(src, summarizer, opts)
}

func buildSummarizer(cfg *config.Config) (summarize.Summarizer, error) {
	switch strings.ToLower(cfg.Summarizer.Provider) {
	case "openai":
		inner, err := summarize.NewOpenAISummarizer(cfg.Summarizer)
		if err != nil {
			return nil, fmt.Errorf("failed to create summarizer: %w", err)
		}
		retryConfig := summarize.DefaultRetryConfig()
		retryConfig.MaxRetries = cfg.Summarizer.MaxRetries
		return summarize.NewRetrySummarizer(inner, retryConfig), nil
	case "static", "":
		return summarize.NewStatic(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider: %s", cfg.Summarizer.Provider)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
