package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gigboard/gigboard/internal/config"
	"github.com/gigboard/gigboard/internal/database"
	"github.com/gigboard/gigboard/internal/handler"
	"github.com/gigboard/gigboard/internal/middleware"
	"github.com/gigboard/gigboard/internal/queue"
	"github.com/gigboard/gigboard/internal/repository"
	"github.com/gigboard/gigboard/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter passes through

	go queue.StartListingConsumer()

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger())

	router.RegisterRoutes(e)
	router.RegisterDirectory(e,
		handler.NewVenueHandler(venues, shows),
		handler.NewArtistHandler(artists, shows),
		handler.NewShowHandler(shows, venues, artists),
		config.LoadRateLimitConfig(), rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
