package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/models"
)

type fakeStore struct {
	places   []models.Place
	sections map[string][]models.Section
}

func (f *fakeStore) InsertPlace(_ context.Context, p models.Place) (models.Place, error) {
	f.places = append(f.places, p)
	return p, nil
}

func (f *fakeStore) GetPlace(_ context.Context, id string) (models.Place, error) {
	for _, p := range f.places {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Place{}, pgx.ErrNoRows
}

func (f *fakeStore) ListPlaces(_ context.Context, filter db.PlaceFilter, page db.Page) ([]models.Place, int, error) {
	var matched []models.Place
	for _, p := range f.places {
		if filter.MissingAddress && p.Address != nil && *p.Address != "" {
			continue
		}
		matched = append(matched, p)
	}
	limit, offset := page.Effective()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end], len(matched), nil
}

func (f *fakeStore) SearchPlaces(_ context.Context, _ string, page db.Page) ([]models.Place, error) {
	out, _, err := f.ListPlaces(context.Background(), db.PlaceFilter{}, page)
	return out, err
}

func (f *fakeStore) PlacesInBox(_ context.Context, b models.Bounds) ([]models.Place, error) {
	var out []models.Place
	for _, p := range f.places {
		if p.Longitude >= b.Southwest.Longitude && p.Longitude <= b.Northeast.Longitude &&
			p.Latitude >= b.Southwest.Latitude && p.Latitude <= b.Northeast.Latitude {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdatePlace(_ context.Context, id string, patch db.PlacePatch) (models.Place, error) {
	for i := range f.places {
		if f.places[i].ID == id {
			if patch.Address != nil {
				f.places[i].Address = patch.Address
			}
			if patch.Name != nil {
				f.places[i].Name = *patch.Name
			}
			return f.places[i], nil
		}
	}
	return models.Place{}, pgx.ErrNoRows
}

func (f *fakeStore) DeletePlace(_ context.Context, id string) (models.Place, error) {
	for i, p := range f.places {
		if p.ID == id {
			f.places = append(f.places[:i], f.places[i+1:]...)
			return p, nil
		}
	}
	return models.Place{}, pgx.ErrNoRows
}

func (f *fakeStore) PlaceCapacity(_ context.Context, placeID string) (int, error) {
	sections, ok := f.sections[placeID]
	if !ok || len(sections) == 0 {
		return 0, db.ErrNoSections
	}
	total := 0
	for _, s := range sections {
		total += s.Capacity
	}
	return total, nil
}

func (f *fakeStore) SectionsForPlace(_ context.Context, placeID string) ([]models.Section, error) {
	return f.sections[placeID], nil
}

func newTestService(store *fakeStore) *PlaceService {
	return NewPlaceService(store, rand.New(rand.NewSource(1)), zerolog.Nop())
}

func TestCapacityAggregatesSections(t *testing.T) {
	store := &fakeStore{
		sections: map[string][]models.Section{
			"p1": {{Capacity: 3}, {Capacity: 5}, {Capacity: 2}},
		},
	}
	svc := newTestService(store)

	capacity, err := svc.Capacity(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capacity != 10 {
		t.Fatalf("expected capacity 10, got %d", capacity)
	}
}

func TestCapacitySignalsEmptySectionSet(t *testing.T) {
	store := &fakeStore{sections: map[string][]models.Section{}}
	svc := newTestService(store)

	_, err := svc.Capacity(context.Background(), "p1")
	if !errors.Is(err, db.ErrNoSections) {
		t.Fatalf("expected ErrNoSections, got %v", err)
	}
}

func TestOccupationSumsSectionOccupations(t *testing.T) {
	store := &fakeStore{
		sections: map[string][]models.Section{
			"p1": {{Occupation: 2}, {Occupation: 3}},
		},
	}
	svc := newTestService(store)

	occupation, err := svc.Occupation(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if occupation != 5 {
		t.Fatalf("expected occupation 5, got %d", occupation)
	}
}

func TestGetPlaceByIDDecorates(t *testing.T) {
	store := &fakeStore{
		places: []models.Place{{ID: "p1", Name: "El Ateneo"}},
		sections: map[string][]models.Section{
			"p1": {{Capacity: 4, Occupation: 1}, {Capacity: 6, Occupation: 2}},
		},
	}
	svc := newTestService(store)

	place, err := svc.GetPlaceByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Capacity != 10 || place.Occupation != 3 {
		t.Fatalf("expected capacity 10 occupation 3, got %d %d", place.Capacity, place.Occupation)
	}
}

func TestGetPlaceByIDNotFound(t *testing.T) {
	svc := newTestService(&fakeStore{sections: map[string][]models.Section{}})

	_, err := svc.GetPlaceByID(context.Background(), "missing")
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLocatePlacesRejectsWideBox(t *testing.T) {
	store := &fakeStore{
		places:   []models.Place{{ID: "p1", Longitude: 0.01, Latitude: 0.01}},
		sections: map[string][]models.Section{},
	}
	svc := newTestService(store)

	// Corner to corner well beyond 3000m.
	out, err := svc.LocatePlaces(context.Background(), models.Bounds{
		Southwest: models.LatLng{Latitude: 0, Longitude: 0},
		Northeast: models.LatLng{Latitude: 0.05, Longitude: 0.05},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected silent empty result, got %d places", len(out))
	}
}

func TestLocatePlacesSamplesAndDecorates(t *testing.T) {
	store := &fakeStore{sections: map[string][]models.Section{}}
	for i := 0; i < 80; i++ {
		id := fmt.Sprintf("p%d", i)
		store.places = append(store.places, models.Place{
			ID:        id,
			Longitude: 0.001,
			Latitude:  0.001,
		})
		store.sections[id] = []models.Section{{Capacity: 2, Occupation: 1}}
	}
	svc := newTestService(store)

	out, err := svc.LocatePlaces(context.Background(), models.Bounds{
		Southwest: models.LatLng{Latitude: 0, Longitude: 0},
		Northeast: models.LatLng{Latitude: 0.01, Longitude: 0.01},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != SampleCap {
		t.Fatalf("expected %d sampled places, got %d", SampleCap, len(out))
	}
	seen := map[string]bool{}
	for _, p := range out {
		if seen[p.ID] {
			t.Fatalf("place %s sampled twice", p.ID)
		}
		seen[p.ID] = true
		if p.Capacity != 2 || p.Occupation != 1 {
			t.Fatalf("place %s not decorated: capacity %d occupation %d", p.ID, p.Capacity, p.Occupation)
		}
	}
}

func TestLocatePlacesReturnsAllWhenFew(t *testing.T) {
	store := &fakeStore{
		places: []models.Place{
			{ID: "in", Longitude: 0.001, Latitude: 0.001},
			{ID: "out", Longitude: 5, Latitude: 5},
		},
		sections: map[string][]models.Section{},
	}
	svc := newTestService(store)

	out, err := svc.LocatePlaces(context.Background(), models.Bounds{
		Southwest: models.LatLng{Latitude: 0, Longitude: 0},
		Northeast: models.LatLng{Latitude: 0.01, Longitude: 0.01},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "in" {
		t.Fatalf("expected only the in-box place, got %+v", out)
	}
}

func TestUpdatePlaceRejectsEmptyPatch(t *testing.T) {
	svc := newTestService(&fakeStore{sections: map[string][]models.Section{}})

	_, err := svc.UpdatePlace(context.Background(), "p1", db.PlacePatch{})
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %v", err)
	}
}
