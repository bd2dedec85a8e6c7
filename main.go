// Command jobscout runs an MCP server exposing job discovery tools: analyze a
// pasted job description, fetch and normalize a posting URL, or harvest search
// result links for a job query.
package main

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

	"github.com/FranksOps/jobscout/internal/auth"
	"github.com/FranksOps/jobscout/internal/config"
	"github.com/FranksOps/jobscout/internal/fetch"
	"github.com/FranksOps/jobscout/internal/fingerprint"
	"github.com/FranksOps/jobscout/internal/mcp"
	"github.com/FranksOps/jobscout/internal/metrics"
	"github.com/FranksOps/jobscout/internal/pipeline"
	"github.com/FranksOps/jobscout/internal/report"
	"github.com/FranksOps/jobscout/internal/serp"
	"github.com/FranksOps/jobscout/internal/storage"
	"github.com/FranksOps/jobscout/internal/storage/ndjson"
	"github.com/FranksOps/jobscout/internal/storage/postgres"
	"github.com/FranksOps/jobscout/internal/storage/sqlite"
	"github.com/FranksOps/jobscout/pkg/ratelimit"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("jobscout exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var limiter *ratelimit.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimit.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitJitter)
		defer limiter.Stop()
	}

	fetcher, err := fetch.NewFetcher(fetch.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.MaxRedirects,
		Identity:     cfg.Identity,
		Fingerprint:  fingerprint.Profile(cfg.Fingerprint),
		Limiter:      limiter,
	})
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}

	provider, err := serp.NewDuckDuckGo(serp.Config{
		Endpoint: cfg.SearchEndpoint,
		Identity: fetcher.Identity(),
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("search provider: %w", err)
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if backend != nil {
		defer backend.Close()
	}

	pipe := pipeline.New(pipeline.Config{ResultCap: cfg.ResultCap}, fetcher, provider)
	server := mcp.NewServer(pipe, cfg.OwnerNumber, backend, logger)

	opsExtra := map[string]http.Handler{}
	if backend != nil {
		opsExtra["/report"] = report.Handler(backend, 1000)
	}
	ops := metrics.Start(cfg.OpsPort, opsExtra)

	if cfg.Transport == "stdio" {
		logger.Info("jobscout serving on stdio", "ops_port", cfg.OpsPort)
		err := server.ServeStdio(ctx, os.Stdin, os.Stdout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if stopErr := ops.Stop(shutdownCtx); stopErr != nil {
			logger.Error("ops server shutdown failed", "err", stopErr)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Info("jobscout stopped")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/mcp", auth.Middleware(cfg.AuthToken, server.Handler()))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("jobscout listening", "addr", cfg.ListenAddr, "ops_port", cfg.OpsPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := ops.Stop(shutdownCtx); err != nil {
			logger.Error("ops server shutdown failed", "err", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("jobscout stopped")
	return nil
}

// openBackend builds the invocation log backend named by the config. An empty
// backend name disables invocation logging entirely.
func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.StorageBackend {
	case "":
		return nil, nil
	case "ndjson":
		dsn := cfg.StorageDSN
		if dsn == "" {
			dsn = "invocations.ndjson"
		}
		return ndjson.New(dsn)
	case "sqlite":
		dsn := cfg.StorageDSN
		if dsn == "" {
			dsn = "invocations.db"
		}
		return sqlite.New(dsn)
	case "postgres":
		if cfg.StorageDSN == "" {
			return nil, fmt.Errorf("postgres backend requires STORAGE_DSN")
		}
		return postgres.New(ctx, cfg.StorageDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
