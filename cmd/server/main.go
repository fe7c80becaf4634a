// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the engine and feature
// packages.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"skillexify/internal/audit"
	"skillexify/internal/engine"
	"skillexify/internal/kv"
	"skillexify/internal/platform/config"
	"skillexify/internal/platform/httpserver"
	"skillexify/internal/platform/logger"
	"skillexify/internal/platform/metrics"
	platformredis "skillexify/internal/platform/redis"
	"skillexify/internal/token"
	httptransport "skillexify/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	recorder := audit.NewRecorder(256, log)
	auditStore := audit.NewMemoryStore()
	var sink audit.Sink
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			return fmt.Errorf("audit kafka sink: %w", err)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit events forwarded to kafka", "topic", cfg.KafkaAuditTopic)
	}
	worker := audit.NewWorker(auditStore, sink, recorder.Inbox(), log)

	eng := engine.New(store, log,
		engine.WithMetrics(metrics.New()),
		engine.WithAudit(recorder),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := eng.Init(ctx, cfg.Deployer, cfg.AdminOverride); err != nil {
		return fmt.Errorf("engine init: %w", err)
	}

	tokens := token.NewService(cfg.JWTSigningKey, "skillexify", "skillexify-api")
	handler := httptransport.NewHandler(eng, tokens, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting skillexify proof engine", "addr", cfg.Addr, "kv_backend", cfg.KVBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore selects the persistence substrate from configuration.
func openStore(cfg config.Server) (kv.Store, func(), error) {
	switch cfg.KVBackend {
	case "", "memory":
		return kv.NewMemory(), func() {}, nil
	case "redis":
		client, err := platformredis.New(config.RedisFromEnv(cfg.RedisURL))
		if err != nil {
			return nil, nil, fmt.Errorf("redis store: %w", err)
		}
		if client == nil {
			return nil, nil, fmt.Errorf("redis store: SKILLEXIFY_REDIS_URL not set")
		}
		return kv.NewRedis(client.Client), func() { client.Close() }, nil
	case "postgres":
		store, err := kv.OpenPostgres(context.Background(), cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres store: %w", err)
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown kv backend %q", cfg.KVBackend)
	}
}
