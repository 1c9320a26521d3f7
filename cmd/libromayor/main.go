package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nlazarte/libromayor/internal/amqp"
	"github.com/nlazarte/libromayor/internal/config"
	"github.com/nlazarte/libromayor/internal/httpapi"
	"github.com/nlazarte/libromayor/internal/kv"
	kvmemory "github.com/nlazarte/libromayor/internal/kv/memory"
	kvpostgres "github.com/nlazarte/libromayor/internal/kv/postgres"
	kvredis "github.com/nlazarte/libromayor/internal/kv/redis"
	kvsqlite "github.com/nlazarte/libromayor/internal/kv/sqlite"
	"github.com/nlazarte/libromayor/internal/service/book"
	"github.com/nlazarte/libromayor/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLoggerFromEnv()
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("failed to open storage backend", "backend", cfg.Backend, "err", err)
		os.Exit(1)
	}
	defer backend.Close()
	logger.Info("storage backend ready", "backend", cfg.Backend)

	ledgerStore := store.New(backend, cfg.Currency)
	if err := ledgerStore.Load(ctx); err != nil {
		logger.Error("failed to load ledger snapshot", "err", err)
		os.Exit(1)
	}

	var pub book.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", "err", err)
			os.Exit(1)
		}
		defer client.Close()
		pub = client
		logger.Info("event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	svc := book.New(ledgerStore, cfg.Currency, cfg.MaxAmountMinor, pub, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.New(svc, ledgerStore, logger).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("bookkeeping service listening", "addr", srv.Addr, "currency", cfg.Currency)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
}

// openBackend selects the key-value backend from configuration.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return kvpostgres.Open(ctx, cfg.DatabaseURL)
	case config.BackendRedis:
		return kvredis.Open(ctx, cfg.RedisAddr)
	case config.BackendMemory:
		return kvmemory.New(), nil
	default:
		return kvsqlite.Open(cfg.SQLiteDBPath)
	}
}

// parseLogLevel maps env values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "DEBUG", "debug":
		return slog.LevelDebug
	case "WARN", "WARNING", "warn", "warning":
		return slog.LevelWarn
	case "ERROR", "ERR", "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLoggerFromEnv() *slog.Logger {
	level := parseLogLevel(os.Getenv("LOG_LEVEL"))
	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
