package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/repair-tracker/internal/api/http"
	"github.com/spec-kit/repair-tracker/internal/api/http/handlers"
	"github.com/spec-kit/repair-tracker/internal/auth"
	"github.com/spec-kit/repair-tracker/internal/config"
	"github.com/spec-kit/repair-tracker/internal/demo"
	"github.com/spec-kit/repair-tracker/internal/events"
	"github.com/spec-kit/repair-tracker/internal/observability"
	"github.com/spec-kit/repair-tracker/internal/persistence"
	"github.com/spec-kit/repair-tracker/internal/repository"
	"github.com/spec-kit/repair-tracker/internal/service"
	"github.com/spec-kit/repair-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open request store", zap.String("driver", cfg.ResolvedDriver()), zap.Error(err))
	}
	defer store.close()

	if cfg.Store.SeedDemo {
		if _, err := demo.Seed(ctx, store.repo, time.Now(), logger); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		if _, err := demo.SeedAssets(ctx, store.assets, logger); err != nil {
			logger.Fatal("failed to seed demo assets", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: store.repo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger.Named("requests"),
	})
	assetService := service.NewAssetService(service.AssetDependencies{
		AssetRepo: store.assets,
		Logger:    logger.Named("assets"),
	})
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store.checks),
		Requests:       handlers.NewRequestsHandler(requestService),
		Dashboard:      handlers.NewDashboardHandler(requestService),
		Assets:         handlers.NewAssetsHandler(assetService),
		Metrics:        metrics,
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", store.driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// requestStore holds the repositories chosen by STORE_DRIVER plus what the
// readiness probe and shutdown need to know about them.
type requestStore struct {
	driver  string
	repo    repository.RequestRepository
	assets  repository.AssetRepository
	checks  map[string]handlers.HealthCheck
	closers []func()
}

func (s *requestStore) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*requestStore, error) {
	store := &requestStore{driver: cfg.ResolvedDriver(), checks: map[string]handlers.HealthCheck{}}

	switch store.driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		store.closers = append(store.closers, pg.Close)
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, persistence.DefaultMigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		store.repo = repository.NewPostgresRequestRepository(pg.Pool)
		store.assets = repository.NewPostgresAssetRepository(pg.Pool)
		store.checks["postgres"] = pg.Ping

	case config.StoreDriverRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
		store.closers = append(store.closers, rdb.Close)
		store.repo = repository.NewSlotRequestRepository(repository.NewRedisSlot(rdb.Client, cfg.Store.LocalKey))
		store.assets = repository.NewSlotAssetRepository(repository.NewRedisSlot(rdb.Client, cfg.Store.AssetKey))
		store.checks["redis"] = rdb.Ping

	case config.StoreDriverFile:
		slot, err := repository.NewFileSlot(cfg.Store.LocalPath)
		if err != nil {
			return nil, err
		}
		assetSlot, err := repository.NewFileSlot(cfg.Store.AssetPath)
		if err != nil {
			return nil, err
		}
		store.repo = repository.NewSlotRequestRepository(slot)
		store.assets = repository.NewSlotAssetRepository(assetSlot)
		store.checks["file"] = slot.Ping

	case config.StoreDriverMemory:
		store.repo = repository.NewSlotRequestRepository(repository.NewMemorySlot())
		store.assets = repository.NewSlotAssetRepository(repository.NewMemorySlot())

	default:
		return nil, fmt.Errorf("unsupported store driver %q", store.driver)
	}

	logger.Info("request store ready", zap.String("driver", store.driver))
	return store, nil
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
