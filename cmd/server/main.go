package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/usermgmt/user-address-api/internal/api"
	"github.com/usermgmt/user-address-api/internal/infrastructure/config"
	mongodb "github.com/usermgmt/user-address-api/internal/infrastructure/db/mongo"
	redisdb "github.com/usermgmt/user-address-api/internal/infrastructure/db/redis"
	"github.com/usermgmt/user-address-api/internal/infrastructure/viacep"
	"github.com/usermgmt/user-address-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "user-address-api",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	counters := mongodb.NewCounters(db)
	if err := mongodb.NewUserRepository(db, counters).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := mongodb.NewAddressRepository(db, counters).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create address indexes")
	}

	cepClient := viacep.NewClient(viacep.Config{
		BaseURL: cfg.ViaCep.BaseURL,
		Timeout: cfg.ViaCep.Timeout,
	})
	cep := redisdb.NewCepCache(cepClient, rdb, cfg.ViaCep.CacheTTL, log)

	e := api.NewRouter(db, rdb, cep, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
