package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staff-service/internal/api/http"
	"github.com/spec-kit/staff-service/internal/api/http/handlers"
	"github.com/spec-kit/staff-service/internal/auth"
	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/events"
	"github.com/spec-kit/staff-service/internal/observability"
	"github.com/spec-kit/staff-service/internal/persistence"
	"github.com/spec-kit/staff-service/internal/repository"
	"github.com/spec-kit/staff-service/internal/roledir"
	"github.com/spec-kit/staff-service/internal/service"
	"github.com/spec-kit/staff-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	staffRepo := repository.NewStaffRepository(pg.PoolHandle())
	roleDirectory := roledir.NewClient(cfg.RoleDirectory, logger)
	sessions := auth.NewRedisSessionStore(redis.Client, cfg.Auth.SessionTTLMinutes)
	dispatcher := events.NewInMemoryDispatcher()

	staffService := service.NewStaffService(*cfg, service.StaffDependencies{
		StaffRepo:  staffRepo,
		Roles:      roleDirectory,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	auditService := service.NewAuditService(dispatcher, logger, cfg.Audit)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(staffService.TokenManager(), sessions, staffRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	staffHandler := handlers.NewStaffHandler(staffService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Staff:          staffHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
