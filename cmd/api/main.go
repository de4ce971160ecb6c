package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/blindspot-radar/internal/application"
	appanalysis "github.com/bryanwahyu/blindspot-radar/internal/application/analysis"
	appcatalog "github.com/bryanwahyu/blindspot-radar/internal/application/catalog"
	"github.com/bryanwahyu/blindspot-radar/internal/application/workspace"
	"github.com/bryanwahyu/blindspot-radar/internal/config"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/memory"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/migrations"
	mysqlp "github.com/bryanwahyu/blindspot-radar/internal/infra/db/mysql"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/postgres"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/httpserver"
	identityinfra "github.com/bryanwahyu/blindspot-radar/internal/infra/identity"
	minioStore "github.com/bryanwahyu/blindspot-radar/internal/infra/storage"
	"github.com/bryanwahyu/blindspot-radar/internal/logging"
	"github.com/bryanwahyu/blindspot-radar/internal/metrics"
	"github.com/bryanwahyu/blindspot-radar/internal/middleware"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blindspot-radar: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checkers := map[string]middleware.HealthChecker{}

	// init repo
	repo, db, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		go metrics.StartDBStatsCollector(ctx, db, 15*time.Second)
	}

	svc := &appanalysis.Service{
		Repo:   repo,
		Clock:  application.SystemClock{},
		Delay:  *cfg.Analysis.Delay,
		Logger: logger.Named("analysis"),
	}

	// init minio
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:  cfg.Minio.Endpoint,
			Region:    cfg.Minio.Region,
			Bucket:    cfg.Minio.BucketName,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Presign:   cfg.Minio.Presign,
		})
		if err != nil {
			return fmt.Errorf("minio init: %w", err)
		}
		svc.Reports = store
		checkers["minio"] = store
	}

	users := make(map[string]identity.User, len(cfg.Auth.Users))
	for token, u := range cfg.Auth.Users {
		users[token] = identity.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, BusinessType: u.BusinessType}
	}
	auth := identityinfra.NewTokenProvider(users)
	if len(users) == 0 {
		logger.Warn("no auth users configured; every /v1 request will be rejected")
	}

	dims := radar.Dimensions{Width: cfg.Radar.Width, Height: cfg.Radar.Height}
	registry := workspace.NewRegistry(svc, auth, dims, logger.Named("workspace"))
	defer registry.Close()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSecond)
	go limiter.Run(ctx, 5*time.Minute)

	handler := httpserver.NewRouter(httpserver.Deps{
		Analyses:       svc,
		Catalog:        &appcatalog.Service{Logger: logger.Named("catalog")},
		Workspaces:     registry,
		Auth:           auth,
		Logger:         logger.Named("http"),
		Limiter:        limiter,
		Checkers:       checkers,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Radar:          dims,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// run server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// graceful shutdown
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.Repository, *sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory repository; data is lost on restart")
		return memory.NewRepository(), nil, nil
	case config.DriverPostgres:
		db, err = postgres.Connect(ctx, cfg.PostgresDSN())
	case config.DriverMySQL:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, db, cfg.Database.Driver); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("migrations applied", zap.String("dialect", cfg.Database.Driver))
	}

	if cfg.Database.Driver == config.DriverPostgres {
		return postgres.NewRepository(db), db, nil
	}
	return mysqlp.NewRepository(db), db, nil
}
