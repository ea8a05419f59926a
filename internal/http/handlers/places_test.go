package handlers

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/placedir/backend/internal/db"
	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/service"
)

type stubPlaceStore struct {
	places []models.Place
}

func (s *stubPlaceStore) InsertPlace(_ context.Context, p models.Place) (models.Place, error) {
	return p, nil
}

func (s *stubPlaceStore) GetPlace(_ context.Context, id string) (models.Place, error) {
	for _, p := range s.places {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Place{}, pgx.ErrNoRows
}

func (s *stubPlaceStore) ListPlaces(_ context.Context, _ db.PlaceFilter, _ db.Page) ([]models.Place, int, error) {
	return s.places, len(s.places), nil
}

func (s *stubPlaceStore) SearchPlaces(_ context.Context, _ string, _ db.Page) ([]models.Place, error) {
	return s.places, nil
}

func (s *stubPlaceStore) PlacesInBox(_ context.Context, b models.Bounds) ([]models.Place, error) {
	var out []models.Place
	for _, p := range s.places {
		if p.Longitude >= b.Southwest.Longitude && p.Longitude <= b.Northeast.Longitude &&
			p.Latitude >= b.Southwest.Latitude && p.Latitude <= b.Northeast.Latitude {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPlaceStore) UpdatePlace(_ context.Context, _ string, _ db.PlacePatch) (models.Place, error) {
	return models.Place{}, pgx.ErrNoRows
}

func (s *stubPlaceStore) DeletePlace(_ context.Context, _ string) (models.Place, error) {
	return models.Place{}, pgx.ErrNoRows
}

func (s *stubPlaceStore) PlaceCapacity(_ context.Context, _ string) (int, error) {
	return 0, db.ErrNoSections
}

func (s *stubPlaceStore) SectionsForPlace(_ context.Context, _ string) ([]models.Section, error) {
	return nil, nil
}

func placesRouter(store *stubPlaceStore) *gin.Engine {
	places := service.NewPlaceService(store, rand.New(rand.NewSource(1)), zerolog.Nop())
	h := &Handler{Places: places, Validator: validator.New(), Logger: zerolog.Nop()}

	r := gin.New()
	r.GET("/api/places", h.PlacesList)
	r.POST("/api/places", h.PlaceCreate)
	r.POST("/api/places/locate", h.PlacesLocate)
	return r
}

func TestPlacesLocateWideBoxReturnsEmptyList(t *testing.T) {
	store := &stubPlaceStore{places: []models.Place{{ID: "p1", Longitude: 0.01, Latitude: 0.01}}}
	r := placesRouter(store)

	body := `{"bounds":{"northeast":{"latitude":0.05,"longitude":0.05},"southwest":{"latitude":0,"longitude":0}}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/places/locate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %s", got)
	}
}

func TestPlacesLocateSmallBoxReturnsMatches(t *testing.T) {
	store := &stubPlaceStore{places: []models.Place{
		{ID: "p1", Longitude: 0.001, Latitude: 0.001},
		{ID: "far", Longitude: 3, Latitude: 3},
	}}
	r := placesRouter(store)

	body := `{"bounds":{"northeast":{"latitude":0.01,"longitude":0.01},"southwest":{"latitude":0,"longitude":0}}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/places/locate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"p1"`) {
		t.Fatalf("expected p1 in response, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), `"far"`) {
		t.Fatalf("out-of-box place leaked into response: %s", w.Body.String())
	}
}

func TestPlaceCreateAcceptsZeroCoordinates(t *testing.T) {
	r := placesRouter(&stubPlaceStore{})

	// A place on the prime meridian has longitude 0; presence, not the
	// value, decides validity.
	body := `{"name":"Meridian","category":"landmark","longitude":0,"latitude":51.4779}`
	req, _ := http.NewRequest(http.MethodPost, "/api/places", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"longitude":0`) {
		t.Fatalf("expected zero longitude in response, got %s", w.Body.String())
	}
}

func TestPlaceCreateMissingCoordinates(t *testing.T) {
	r := placesRouter(&stubPlaceStore{})

	body := `{"name":"Meridian","category":"landmark","latitude":51.4779}`
	req, _ := http.NewRequest(http.MethodPost, "/api/places", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlacesListRejectsUnparsablePaging(t *testing.T) {
	r := placesRouter(&stubPlaceStore{places: []models.Place{{ID: "p1"}}})

	req, _ := http.NewRequest(http.MethodGet, "/api/places?limit=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "INVALID_REQUEST") {
		t.Fatalf("expected invalid request code, got %s", w.Body.String())
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/places?skip=1.5", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPlacesLocateRejectsOutOfRangeCoordinates(t *testing.T) {
	r := placesRouter(&stubPlaceStore{})

	body := `{"bounds":{"northeast":{"latitude":91,"longitude":0.05},"southwest":{"latitude":0.01,"longitude":0}}}`
	req, _ := http.NewRequest(http.MethodPost, "/api/places/locate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
		t.Fatalf("expected validation error code, got %s", w.Body.String())
	}
}

func TestPlacesLocateMissingBounds(t *testing.T) {
	r := placesRouter(&stubPlaceStore{})

	req, _ := http.NewRequest(http.MethodPost, "/api/places/locate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
