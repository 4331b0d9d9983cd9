package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/edusync-api/api/swagger"
	"github.com/noah-isme/edusync-api/internal/app"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/repository/memory"
	"github.com/noah-isme/edusync-api/internal/seed"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/cache"
	"github.com/noah-isme/edusync-api/pkg/config"
	"github.com/noah-isme/edusync-api/pkg/database"
	"github.com/noah-isme/edusync-api/pkg/logger"
	"github.com/noah-isme/edusync-api/pkg/password"
)

// @title EduSync API
// @version 1.0.0
// @description Role-based school management dashboard.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metrics := service.NewMetricsService()

	var (
		db  *sqlx.DB
		rdb *redis.Client
	)
	defer func() {
		if db != nil {
			_ = db.Close()
		}
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	var store repository.Storage
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.AutoMigrate {
			if err := database.RunMigrations(db.DB, logr); err != nil {
				logr.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		store = repository.NewDatabaseStorage(db, metrics)
	case config.StorageMemory, "":
		store = memory.New()
	default:
		logr.Fatal("unknown storage backend", zap.String("backend", cfg.StorageBackend))
	}

	if cfg.Session.Store == config.SessionStoreRedis || cfg.Reports.CacheEnabled {
		rdb, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			if cfg.Session.Store == config.SessionStoreRedis {
				logr.Fatal("failed to connect to redis", zap.Error(err))
			}
			logr.Warn("redis unavailable, report cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	var sessions repository.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		sessions = repository.NewRedisSessionStore(rdb)
	case config.SessionStorePostgres:
		dbStore, ok := store.(*repository.DatabaseStorage)
		if !ok {
			logr.Fatal("postgres session store requires the postgres storage backend")
		}
		sessions = dbStore
		go memory.RunPruner(ctx, memory.PrunerFunc(dbStore.PruneSessions), cfg.Session.PruneInterval, logr)
	default:
		memSessions := memory.NewSessionStore()
		sessions = memSessions
		go memory.RunPruner(ctx, memSessions, cfg.Session.PruneInterval, logr)
	}

	hasher, err := password.New(cfg.Password)
	if err != nil {
		logr.Fatal("failed to init password hasher", zap.Error(err))
	}

	deps := app.Dependencies{
		Storage:  store,
		Sessions: sessions,
		Hasher:   hasher,
		Metrics:  metrics,
		Logger:   logr,
	}
	if rdb != nil && cfg.Reports.CacheEnabled {
		deps.Cache = repository.NewCacheRepository(rdb)
	}

	application, err := app.New(cfg, deps)
	if err != nil {
		logr.Fatal("failed to assemble application", zap.Error(err))
	}

	if cfg.SeedDemoData {
		if _, err := seed.Run(ctx, store, hasher, logr); err != nil {
			logr.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("storage", cfg.StorageBackend),
			zap.String("sessions", cfg.Session.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
