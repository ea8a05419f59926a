// Package enrich backfills missing place addresses by reverse-geocoding
// coordinates against an external service, one item at a time.
package enrich

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/placedir/backend/internal/address"
	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/geocode"
	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/service"
)

// BatchSize is the fixed page size of the scan.
const BatchSize = 1024

// PlaceDirectory is the slice of the place service the pipeline drives.
type PlaceDirectory interface {
	GetPlaces(ctx context.Context, filter db.PlaceFilter, page db.Page) (service.PlacePage, error)
	UpdatePlace(ctx context.Context, id string, patch db.PlacePatch) (models.Place, error)
	DeletePlace(ctx context.Context, id string) (models.Place, error)
}

// Pipeline scans addressless places in batches, resolving each through
// the geocoder. A place the geocoder cannot resolve is deleted; any
// other per-item failure is logged and skipped.
type Pipeline struct {
	Places   PlaceDirectory
	Geocoder geocode.ReverseGeocoder
	Logger   zerolog.Logger
}

// Run processes every place missing an address. The geocoder is called
// strictly one item at a time; the loop re-reads the live matching count
// on each fetch and stops once it no longer exceeds the accumulated skip.
func (p *Pipeline) Run(ctx context.Context) error {
	filter := db.PlaceFilter{MissingAddress: true}
	skip := 0
	batch := 0
	for {
		page, err := p.Places.GetPlaces(ctx, filter, db.Page{Skip: skip, Limit: BatchSize})
		if err != nil {
			return err
		}
		p.processBatch(ctx, batch, page.Data, page.Count)
		skip += BatchSize
		batch++
		if skip >= page.Count {
			return nil
		}
	}
}

func (p *Pipeline) processBatch(ctx context.Context, batch int, items []models.Place, count int) {
	for index, item := range items {
		current := batch*BatchSize + index + 1
		p.Logger.Info().
			Int("current", current).
			Int("total", count).
			Str("place_id", item.ID).
			Msg("Processing item")
		if err := p.processItem(ctx, item); err != nil {
			p.Logger.Warn().Err(err).Str("place_id", item.ID).Msg("item skipped")
		}
	}
}

func (p *Pipeline) processItem(ctx context.Context, item models.Place) error {
	if item.Address != nil && *item.Address != "" {
		return nil
	}

	door, err := p.Geocoder.ReverseGeocode(ctx, item.Longitude, item.Latitude)
	if err != nil && !errors.Is(err, geocode.ErrUnresolved) {
		return err
	}

	resolved := ""
	if err == nil {
		resolved = address.FromDoor(door)
	}
	if resolved == "" {
		// Unresolvable places are invalid data, not retry candidates.
		_, err := p.Places.DeletePlace(ctx, item.ID)
		return err
	}

	_, err = p.Places.UpdatePlace(ctx, item.ID, db.PlacePatch{Address: &resolved})
	return err
}
