// Command addaddresses backfills street addresses for places that have
// none, reverse-geocoding their coordinates one at a time. It runs to
// completion and exits.
package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/placedir/backend/internal/config"
	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/enrich"
	"github.com/placedir/backend/internal/geocode"
	"github.com/placedir/backend/internal/service"
)

const connectTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("job", "add_addresses").Logger()

	ctx := context.Background()
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	// The scan must not start before the store is reachable.
	store, err := db.Connect(connectCtx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()
	logger.Info().Msg("connected to database")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	places := service.NewPlaceService(store, rng, logger)

	pipeline := &enrich.Pipeline{
		Places:   places,
		Geocoder: &geocode.USIGGeocoder{BaseURL: cfg.GeocoderURL},
		Logger:   logger,
	}
	if err := pipeline.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("run failed")
		return
	}
	logger.Info().Msg("run complete")
}
