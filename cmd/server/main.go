package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rutamundi/backoffice/internal/api"
	"github.com/rutamundi/backoffice/internal/infrastructure/config"
	mongodb "github.com/rutamundi/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/rutamundi/backoffice/internal/infrastructure/db/redis"
	"github.com/rutamundi/backoffice/internal/infrastructure/notify"
	"github.com/rutamundi/backoffice/internal/infrastructure/queue"
	"github.com/rutamundi/backoffice/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.AuthSecret == config.InsecureAuthSecretDefault {
		log.Warn().Msg("AUTH_SECRET is the built-in default; set a real secret before exposing this service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, mongoClient, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Lead notifications run on a sharded worker pool behind the request
	// path.
	sender := notify.NewResendSender(notify.Config{
		APIKey: cfg.Notify.ResendAPIKey,
		To:     cfg.Notify.To,
		From:   cfg.Notify.From,
	}, log)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, sender, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(mongoClient, db, rdb, dispatcher, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
