// Command server runs the deep-link lookup HTTP service: a bounded BFS over
// an alternate-identifier graph stored in SQLite, PostgreSQL, or memory, with
// an optional Redis profile cache and Kafka search audit log.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"deeplink/internal/audit"
	"deeplink/internal/lookup/cache"
	"deeplink/internal/lookup/handler"
	"deeplink/internal/lookup/metrics"
	"deeplink/internal/lookup/service"
	"deeplink/internal/lookup/store"
	"deeplink/internal/platform/config"
	"deeplink/internal/platform/httpserver"
	"deeplink/internal/platform/logger"
	"deeplink/internal/platform/middleware"
	platformredis "deeplink/internal/platform/redis"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
	auditBuffer     = 1024
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recordStore, engine, cleanup, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer cleanup()

	m := metrics.New()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithEngineName(engine),
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(
			cache.NewRedis(redisClient.Client, cfg.Redis.CacheTTL, cache.WithMetrics(m)),
		))
		log.Info("profile cache enabled", "ttl", cfg.Redis.CacheTTL.String())
	}

	recorder := audit.NewRecorder(auditBuffer)
	sink, err := openAuditSink(ctx, cfg.Kafka, log)
	if err != nil {
		return fmt.Errorf("open audit sink: %w", err)
	}
	if closer, ok := sink.(interface{ Close() }); ok {
		defer closer.Close()
	}
	opts = append(opts, service.WithAudit(recorder))

	svc, err := service.New(recordStore, service.Caps{
		MaxDepth:   cfg.MaxDepth,
		MaxResults: cfg.MaxResults,
	}, opts...)
	if err != nil {
		return fmt.Errorf("build lookup service: %w", err)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.ClientMetadata,
		middleware.Timeout(requestTimeout),
	)
	handler.New(svc).Routes(router)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	server := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker := audit.NewWorker(sink, recorder.Events(), log)
		if err := worker.Run(gctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "engine", engine,
			"max_depth", cfg.MaxDepth, "max_results", cfg.MaxResults)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore builds the record store selected by configuration and returns it
// with its engine label and a cleanup function.
func openStore(cfg config.Config) (store.RecordStore, string, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, "", nil, fmt.Errorf("ping postgres: %w", err)
		}
		return store.NewPostgres(db, cfg.MaxResults), "postgres", func() { db.Close() }, nil

	case config.DriverSQLite:
		s, err := store.OpenSQLite(cfg.SQLitePath, cfg.MaxResults)
		if err != nil {
			return nil, "", nil, err
		}
		return s, "sqlite", func() { s.Close() }, nil

	case config.DriverMemory:
		return store.NewMemoryStore(), "memory", func() {}, nil

	default:
		return nil, "", nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// openAuditSink returns a Kafka sink when brokers are configured, otherwise
// an in-memory sink so the worker wiring stays identical in development.
func openAuditSink(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (audit.Sink, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("audit log using in-memory sink; set DEEPLINK_KAFKA_BROKERS for kafka")
		return audit.NewMemorySink(), nil
	}
	return audit.NewKafkaSink(ctx, cfg.Brokers, cfg.Topic, log)
}
