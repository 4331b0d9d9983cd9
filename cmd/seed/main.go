// Command seed loads the demo school into the configured PostgreSQL database.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/seed"
	"github.com/noah-isme/edusync-api/pkg/config"
	"github.com/noah-isme/edusync-api/pkg/database"
	"github.com/noah-isme/edusync-api/pkg/logger"
	"github.com/noah-isme/edusync-api/pkg/password"
)

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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, logr); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	hasher, err := password.New(cfg.Password)
	if err != nil {
		logr.Fatal("failed to init password hasher", zap.Error(err))
	}

	loaded, err := seed.Run(ctx, repository.NewDatabaseStorage(db, nil), hasher, logr)
	if err != nil {
		logr.Fatal("seed failed", zap.Error(err))
	}
	logr.Info("seed finished", zap.Bool("loaded", loaded))
}
