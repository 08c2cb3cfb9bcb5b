package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/hotel-reservation/pkg/circuit_breaker"
	"github.com/Astemirdum/hotel-reservation/pkg/kafka"
	"github.com/Astemirdum/hotel-reservation/pkg/logger"
	"github.com/Astemirdum/hotel-reservation/pkg/postgres"
	"github.com/Astemirdum/hotel-reservation/pkg/sqlite"
	"github.com/Astemirdum/hotel-reservation/reservation/config"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/handler"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/metrics"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/repository"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/server"
	"github.com/Astemirdum/hotel-reservation/reservation/internal/service"
	"github.com/Astemirdum/hotel-reservation/reservation/migrations"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "reservation")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Error("close", zap.Error(err))
			}
		}
	}()

	repo, closeRepo, err := newRepository(ctx, cfg, log)
	closers = append(closers, closeRepo...)
	if err != nil {
		return fmt.Errorf("repository init: %w", err)
	}

	pub, err := newPublisher(cfg, log)
	if err != nil {
		return fmt.Errorf("kafka.NewProducer: %w", err)
	}
	closers = append(closers, pub.Close)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := service.NewService(repo, log,
		service.WithPublisher(pub),
		service.WithMetrics(metrics.New(reg)),
	)
	h := handler.New(svc, log, handler.WithRegistry(reg))
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
			zap.String("storage", string(cfg.Storage)))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gCtx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err = g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("Graceful shutdown finished")
	return nil
}

func newRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Repository, []func() error, error) {
	var (
		repo    repository.Repository
		closers []func() error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		repo = repository.NewMemoryRepository()
	case config.StorageSQLite:
		db, err := sqlite.NewSQLiteDB(ctx, &cfg.SQLite, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite init: %w", err)
		}
		closers = append(closers, db.Close)
		if repo, err = repository.NewRepository(db, log); err != nil {
			return nil, closers, err
		}
	default:
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return nil, nil, fmt.Errorf("db init: %w", err)
		}
		closers = append(closers, db.Close)
		if repo, err = repository.NewRepository(db, log); err != nil {
			return nil, closers, err
		}
	}

	if cfg.Redis.Addr == "" {
		return repo, closers, nil
	}
	client, err := repository.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return nil, closers, err
	}
	closers = append(closers, client.Close)
	return repository.NewCachedRepository(repo, client, cfg.Redis.TTL, log), closers, nil
}

func newPublisher(cfg *config.Config, log *zap.Logger) (kafka.Publisher, error) {
	if !cfg.Kafka.Enabled() {
		log.Info("kafka is not configured, reservation events are dropped")
		return kafka.NewNopPublisher(), nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	return kafka.NewPublisher(producer, circuit_breaker.New(cfg.CircuitBreaker), cfg.Kafka.Topic, log), nil
}
