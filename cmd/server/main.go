package main

import (
	"github.com/authcore/identity-api/internal/api"
	"github.com/authcore/identity-api/internal/core/service"
	"github.com/authcore/identity-api/internal/infrastructure/config"
	"github.com/authcore/identity-api/internal/infrastructure/db/gormstore"
	"github.com/authcore/identity-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log := logger.Get()

	gdb, err := gormstore.Connect(cfg.MySQL.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	if err := gormstore.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	e := api.NewRouter(api.Deps{
		Repo:   gormstore.NewUserRepository(gdb),
		Hasher: service.NewBcryptHasher(cfg.BcryptCost),
		Tokens: service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		DB:     gdb,
		Log:    log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("identity api listening")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
