package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/moneta-app/moneta-backend/internal/repository/postgres"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	log.Info().Msg("Applying migrations")
	if err := postgres.RunMigrations(databaseURL); err != nil {
		log.Fatal().Err(err).Msg("Migrations failed")
	}
	log.Info().Msg("Migrations applied")
}
