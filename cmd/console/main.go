package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hospital-console/internal/api/http"
	"github.com/spec-kit/hospital-console/internal/api/http/handlers"
	"github.com/spec-kit/hospital-console/internal/apiclient"
	"github.com/spec-kit/hospital-console/internal/auth"
	"github.com/spec-kit/hospital-console/internal/config"
	"github.com/spec-kit/hospital-console/internal/events"
	"github.com/spec-kit/hospital-console/internal/observability"
	"github.com/spec-kit/hospital-console/internal/persistence"
	"github.com/spec-kit/hospital-console/internal/repository"
	"github.com/spec-kit/hospital-console/internal/service"
	"github.com/spec-kit/hospital-console/internal/worker"
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

	metrics := observability.NewMetrics()

	store, deps, closeStore, err := openCredentialStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open credential store", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	signin := apiclient.NewSigninClient(cfg.API.BaseURL, cfg.API.SigninPath, &http.Client{Timeout: cfg.API.Timeout()})
	sessions := service.NewAuthService(service.AuthDependencies{
		Credentials:   store,
		Authenticator: signin,
		Dispatcher:    dispatcher,
		Logger:        logger.Named("session"),
	})
	go func() {
		if err := sessions.Bootstrap(ctx); err != nil {
			logger.Warn("session bootstrap failed", zap.Error(err))
		}
	}()

	authorizer := apiclient.NewAuthorizer(apiclient.AuthorizerConfig{
		Session:    sessions,
		Store:      store,
		SigninPath: cfg.API.SigninPath,
		Metrics:    metrics,
		Logger:     logger.Named("authorizer"),
	})
	client := apiclient.NewClient(cfg.API.BaseURL, apiclient.NewHTTPClient(authorizer, cfg.API.Timeout()), logger)
	patients := apiclient.NewPatientService(client)
	admissions := apiclient.NewAdmissionService(client)

	guardCfg := auth.GuardConfig{LoginPath: cfg.Auth.LoginPath, UnauthorizedPath: cfg.Auth.UnauthorizedPath}
	if cfg.Auth.EnforceExpiry {
		guardCfg.Expiry = sessions
	}
	guard := auth.NewGuard(sessions, guardCfg)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.Auth.LoginPath)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:              handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, sessions.Ready(), deps, metrics),
		Session:             handlers.NewSessionHandler(sessions, "/", cfg.Auth.LoginPath),
		Patients:            handlers.NewPatientsHandler(patients, admissions),
		Admissions:          handlers.NewAdmissionsHandler(admissions),
		Users:               handlers.NewUsersHandler(apiclient.NewUserService(client)),
		Reports:             handlers.NewReportsHandler(apiclient.NewReportService(client)),
		Guard:               guard,
		LoginPath:           cfg.Auth.LoginPath,
		UnauthorizedPath:    cfg.Auth.UnauthorizedPath,
		LoginAttemptsPerMin: cfg.Auth.LoginAttemptsPerMin,
	})

	go func() {
		logger.Info("console listening", zap.String("addr", cfg.App.Addr()), zap.String("backend", cfg.API.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// openCredentialStore selects the credential backend. The returned pingers
// feed the readiness probe.
func openCredentialStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.CredentialRepository, map[string]handlers.Pinger, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		logger.Warn("credential store is in memory; sessions will not survive a restart")
		return repository.NewMemoryCredentialRepository(), nil, noop, nil

	case config.StoreBackendRedis:
		rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		store := repository.NewRedisCredentialRepository(rdb.Client, cfg.Store.RedisPrefix, cfg.Store.Slot)
		return store, map[string]handlers.Pinger{"redis": rdb}, rdb.Close, nil

	case config.StoreBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, noop, err
		}
		store := repository.NewPostgresCredentialRepository(pg.Pool, cfg.Store.Slot)
		return store, map[string]handlers.Pinger{"postgres": pg}, pg.Close, nil

	case config.StoreBackendFile:
		var key *[32]byte
		if cfg.Store.SealSecret != "" {
			key = repository.SealKey(cfg.Store.SealSecret)
		} else {
			logger.Warn("STORE_SEAL_SECRET not set; credential is stored unsealed", zap.String("dir", cfg.Store.Dir))
		}
		return repository.NewFileCredentialRepository(cfg.Store.Dir, cfg.Store.Slot, key), nil, noop, nil
	}
	return nil, nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
