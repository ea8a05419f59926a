package db

import (
	"context"

	"github.com/placedir/backend/internal/models"
)

func (s *Store) InsertSection(ctx context.Context, sec models.Section) (models.Section, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO sections (id, place_id, name, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, place_id, name, capacity`,
		sec.ID, sec.PlaceID, sec.Name, sec.Capacity).
		Scan(&sec.ID, &sec.PlaceID, &sec.Name, &sec.Capacity)
	return sec, err
}

// SectionsForPlace lists a place's sections, each carrying its derived
// occupation (count of reservations referencing it).
func (s *Store) SectionsForPlace(ctx context.Context, placeID string) ([]models.Section, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT s.id, s.place_id, s.name, s.capacity, COUNT(r.id)
		FROM sections s
		LEFT JOIN reservations r ON r.section_id = s.id
		WHERE s.place_id = $1
		GROUP BY s.id, s.place_id, s.name, s.capacity
		ORDER BY s.id ASC`, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.PlaceID, &sec.Name, &sec.Capacity, &sec.Occupation); err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *Store) InsertReservation(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO reservations (id, date, user_id, section_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, date, user_id, section_id`,
		r.ID, r.Date, r.UserID, r.SectionID).
		Scan(&r.ID, &r.Date, &r.UserID, &r.SectionID)
	return r, err
}
