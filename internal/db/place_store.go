package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/placedir/backend/internal/models"
)

// ErrNoSections distinguishes "the place has no sections" from a
// legitimate zero-capacity aggregate.
var ErrNoSections = fmt.Errorf("place has no sections")

const placeColumns = `id, name, category, longitude, latitude, safe, address, created_at`

// PlaceFilter narrows place listings.
type PlaceFilter struct {
	MissingAddress bool
}

// PlacePatch carries the fields of a partial place update. Nil fields
// are left untouched.
type PlacePatch struct {
	Name     *string
	Category *string
	Location *models.LatLng
	Safe     *bool
	Address  *string
}

// Empty reports whether the patch would change nothing.
func (p PlacePatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Location == nil && p.Safe == nil && p.Address == nil
}

func (f PlaceFilter) where() string {
	if f.MissingAddress {
		return ` WHERE (address IS NULL OR address = '')`
	}
	return ""
}

func scanPlace(row interface{ Scan(...any) error }) (models.Place, error) {
	var p models.Place
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Longitude, &p.Latitude, &p.Safe, &p.Address, &p.CreatedAt)
	return p, err
}

func (s *Store) InsertPlace(ctx context.Context, p models.Place) (models.Place, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO places (id, name, category, longitude, latitude, safe, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+placeColumns, p.ID, p.Name, p.Category, p.Longitude, p.Latitude, p.Safe, p.Address)
	return scanPlace(row)
}

func (s *Store) GetPlace(ctx context.Context, id string) (models.Place, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	return scanPlace(row)
}

// ListPlaces returns one page of places plus the live count of all rows
// matching the filter.
func (s *Store) ListPlaces(ctx context.Context, filter PlaceFilter, page Page) ([]models.Place, int, error) {
	var count int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM places`+filter.where()).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + placeColumns + ` FROM places` + filter.where() + ` ORDER BY created_at ASC, id ASC` + page.sql()
	rows, err := s.Pool.Query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, count, rows.Err()
}

// SearchPlaces matches the query case-insensitively against name,
// category, and address.
func (s *Store) SearchPlaces(ctx context.Context, search string, page Page) ([]models.Place, error) {
	pattern := "%" + search + "%"
	query := `SELECT ` + placeColumns + ` FROM places
		WHERE name ILIKE $1 OR category ILIKE $1 OR address ILIKE $1
		ORDER BY created_at ASC, id ASC` + page.sql()
	rows, err := s.Pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PlacesInBox fetches every place inside the axis-aligned box described
// by the two corners. Callers bound the box size before asking.
func (s *Store) PlacesInBox(ctx context.Context, b models.Bounds) ([]models.Place, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+placeColumns+` FROM places
		WHERE longitude BETWEEN LEAST($1::float8, $3::float8) AND GREATEST($1::float8, $3::float8)
		  AND latitude BETWEEN LEAST($2::float8, $4::float8) AND GREATEST($2::float8, $4::float8)`,
		b.Southwest.Longitude, b.Southwest.Latitude, b.Northeast.Longitude, b.Northeast.Latitude)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpdatePlace(ctx context.Context, id string, patch PlacePatch) (models.Place, error) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Location != nil {
		add("longitude", patch.Location.Longitude)
		add("latitude", patch.Location.Latitude)
	}
	if patch.Safe != nil {
		add("safe", *patch.Safe)
	}
	if patch.Address != nil {
		add("address", *patch.Address)
	}
	args = append(args, id)

	row := s.Pool.QueryRow(ctx, fmt.Sprintf(`UPDATE places SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), placeColumns), args...)
	return scanPlace(row)
}

func (s *Store) DeletePlace(ctx context.Context, id string) (models.Place, error) {
	row := s.Pool.QueryRow(ctx, `DELETE FROM places WHERE id = $1 RETURNING `+placeColumns, id)
	return scanPlace(row)
}

// PlaceCapacity sums section capacities for a place. An empty section
// set yields ErrNoSections, never a silent zero.
func (s *Store) PlaceCapacity(ctx context.Context, placeID string) (int, error) {
	var total *int
	if err := s.Pool.QueryRow(ctx, `SELECT SUM(capacity) FROM sections WHERE place_id = $1`, placeID).Scan(&total); err != nil {
		return 0, err
	}
	if total == nil {
		return 0, ErrNoSections
	}
	return *total, nil
}
