package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placedir/backend/internal/models"
)

// SectionStore is the slice of the store the section service needs.
type SectionStore interface {
	InsertSection(ctx context.Context, sec models.Section) (models.Section, error)
	SectionsForPlace(ctx context.Context, placeID string) ([]models.Section, error)
	InsertReservation(ctx context.Context, r models.Reservation) (models.Reservation, error)
	GetPlace(ctx context.Context, id string) (models.Place, error)
}

type SectionService struct {
	Store SectionStore
}

type SectionInput struct {
	PlaceID  string `json:"place" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"min=0"`
}

type ReservationInput struct {
	Date      time.Time `json:"date" binding:"required"`
	UserID    string    `json:"user" binding:"required"`
	SectionID string    `json:"section" binding:"required"`
}

func (s *SectionService) GetSectionsForPlace(ctx context.Context, placeID string) ([]models.Section, error) {
	if _, err := s.Store.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NotFound("Place not found")
		}
		return nil, err
	}
	return s.Store.SectionsForPlace(ctx, placeID)
}

func (s *SectionService) CreateSection(ctx context.Context, input SectionInput) (models.Section, error) {
	if input == (SectionInput{}) {
		return models.Section{}, BadInput("Section not provided")
	}
	if _, err := s.Store.GetPlace(ctx, input.PlaceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Section{}, NotFound("Place not found")
		}
		return models.Section{}, err
	}
	return s.Store.InsertSection(ctx, models.Section{
		ID:       uuid.New().String(),
		PlaceID:  input.PlaceID,
		Name:     input.Name,
		Capacity: input.Capacity,
	})
}

func (s *SectionService) CreateReservation(ctx context.Context, input ReservationInput) (models.Reservation, error) {
	if input == (ReservationInput{}) {
		return models.Reservation{}, BadInput("Reservation not provided")
	}
	return s.Store.InsertReservation(ctx, models.Reservation{
		ID:        uuid.New().String(),
		Date:      input.Date,
		UserID:    input.UserID,
		SectionID: input.SectionID,
	})
}
