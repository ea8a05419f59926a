package service

import (
	"context"
	"errors"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/utils"
)

const (
	// LocateMaxDistanceM rejects boxes whose corner-to-corner distance
	// exceeds this many meters.
	LocateMaxDistanceM = 3000
	// SampleCap bounds search and locate result sizes.
	SampleCap = 50
)

// PlaceStore is the slice of the store the place service needs.
type PlaceStore interface {
	InsertPlace(ctx context.Context, p models.Place) (models.Place, error)
	GetPlace(ctx context.Context, id string) (models.Place, error)
	ListPlaces(ctx context.Context, filter db.PlaceFilter, page db.Page) ([]models.Place, int, error)
	SearchPlaces(ctx context.Context, search string, page db.Page) ([]models.Place, error)
	PlacesInBox(ctx context.Context, b models.Bounds) ([]models.Place, error)
	UpdatePlace(ctx context.Context, id string, patch db.PlacePatch) (models.Place, error)
	DeletePlace(ctx context.Context, id string) (models.Place, error)
	PlaceCapacity(ctx context.Context, placeID string) (int, error)
	SectionsForPlace(ctx context.Context, placeID string) ([]models.Section, error)
}

// PlacePage is one page of decorated places plus the live count of all
// matches.
type PlacePage struct {
	Data  []models.Place `json:"data"`
	Count int            `json:"count"`
}

type PlaceService struct {
	Store  PlaceStore
	Rand   *rand.Rand
	Logger zerolog.Logger
}

// NewPlaceService seeds the sampling source; tests pass their own.
func NewPlaceService(store PlaceStore, rng *rand.Rand, logger zerolog.Logger) *PlaceService {
	return &PlaceService{Store: store, Rand: rng, Logger: logger}
}

// PlaceInput keeps the coordinates behind pointers: zero is a valid
// longitude and latitude, so presence has to be checked, not the value.
type PlaceInput struct {
	Name      string   `json:"name" binding:"required,min=4,max=16"`
	Category  string   `json:"category" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Safe      bool     `json:"safe"`
}

func (s *PlaceService) GetPlaces(ctx context.Context, filter db.PlaceFilter, page db.Page) (PlacePage, error) {
	data, count, err := s.Store.ListPlaces(ctx, filter, page)
	if err != nil {
		return PlacePage{}, err
	}
	if err := s.decorateAll(ctx, data); err != nil {
		return PlacePage{}, err
	}
	return PlacePage{Data: data, Count: count}, nil
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (models.Place, error) {
	place, err := s.Store.GetPlace(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Place{}, NotFound("Place not found")
		}
		return models.Place{}, err
	}
	if err := s.decorate(ctx, &place); err != nil {
		return models.Place{}, err
	}
	return place, nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, input PlaceInput) (models.Place, error) {
	if input.Name == "" || input.Longitude == nil || input.Latitude == nil {
		return models.Place{}, BadInput("Place not provided")
	}
	place := models.Place{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Category:  input.Category,
		Longitude: *input.Longitude,
		Latitude:  *input.Latitude,
		Safe:      input.Safe,
	}
	created, err := s.Store.InsertPlace(ctx, place)
	if err != nil {
		return models.Place{}, err
	}
	if err := s.decorate(ctx, &created); err != nil {
		return models.Place{}, err
	}
	return created, nil
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id string, patch db.PlacePatch) (models.Place, error) {
	if patch.Empty() {
		return models.Place{}, BadInput("Place not provided")
	}
	updated, err := s.Store.UpdatePlace(ctx, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Place{}, NotFound("Place not found")
		}
		return models.Place{}, err
	}
	if err := s.decorate(ctx, &updated); err != nil {
		return models.Place{}, err
	}
	return updated, nil
}

func (s *PlaceService) DeletePlace(ctx context.Context, id string) (models.Place, error) {
	deleted, err := s.Store.DeletePlace(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Place{}, NotFound("Place not found")
		}
		return models.Place{}, err
	}
	if err := s.decorate(ctx, &deleted); err != nil {
		return models.Place{}, err
	}
	return deleted, nil
}

// SearchPlaces matches query against name, category, and address, capped
// at SampleCap results.
func (s *PlaceService) SearchPlaces(ctx context.Context, query string, skip, limit int) ([]models.Place, error) {
	page := db.Page{Skip: skip, Limit: limit, MaxLimit: SampleCap}
	data, err := s.Store.SearchPlaces(ctx, query, page)
	if err != nil {
		return nil, err
	}
	if err := s.decorateAll(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// LocatePlaces returns up to SampleCap places inside the bounding box,
// sampled uniformly without replacement. Boxes wider than
// LocateMaxDistanceM corner to corner are silently rejected with an
// empty result.
func (s *PlaceService) LocatePlaces(ctx context.Context, bounds models.Bounds) ([]models.Place, error) {
	distance, err := utils.HaversineM(
		bounds.Northeast.Latitude, bounds.Northeast.Longitude,
		bounds.Southwest.Latitude, bounds.Southwest.Longitude)
	if err != nil {
		return nil, err
	}
	if distance > LocateMaxDistanceM {
		return []models.Place{}, nil
	}

	places, err := s.Store.PlacesInBox(ctx, bounds)
	if err != nil {
		return nil, err
	}
	sampled := utils.SampleSize(s.Rand, places, SampleCap)
	if err := s.decorateAll(ctx, sampled); err != nil {
		return nil, err
	}
	return sampled, nil
}

// Capacity aggregates section capacities for the place. db.ErrNoSections
// passes through so callers can tell an empty set from a zero sum.
func (s *PlaceService) Capacity(ctx context.Context, placeID string) (int, error) {
	return s.Store.PlaceCapacity(ctx, placeID)
}

// Occupation sums the derived occupation of each of the place's sections.
func (s *PlaceService) Occupation(ctx context.Context, placeID string) (int, error) {
	sections, err := s.Store.SectionsForPlace(ctx, placeID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, sec := range sections {
		total += sec.Occupation
	}
	return total, nil
}

// decorate recomputes capacity and occupation before a place crosses the
// service boundary. The two aggregations are independent and joined here.
func (s *PlaceService) decorate(ctx context.Context, place *models.Place) error {
	var capacity, occupation int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.Capacity(gctx, place.ID)
		if errors.Is(err, db.ErrNoSections) {
			c, err = 0, nil
		}
		capacity = c
		return err
	})
	g.Go(func() error {
		o, err := s.Occupation(gctx, place.ID)
		occupation = o
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	place.Capacity = capacity
	place.Occupation = occupation
	return nil
}

func (s *PlaceService) decorateAll(ctx context.Context, places []models.Place) error {
	for i := range places {
		if err := s.decorate(ctx, &places[i]); err != nil {
			return err
		}
	}
	return nil
}
