package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/utils"
)

// UserStore is the slice of the store the user and auth services need.
type UserStore interface {
	InsertUser(ctx context.Context, u models.User) (models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByName(ctx context.Context, name string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, name, password *string) (models.User, error)
	DeleteUser(ctx context.Context, id string) (models.User, error)
}

type UserService struct {
	Store      UserStore
	BcryptCost int
}

type UserInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserPatch struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.Store.ListUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.Store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, NotFound("User not found")
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, input UserInput) (models.User, error) {
	if input.Name == "" {
		return models.User{}, BadInput("User not provided")
	}
	if _, err := s.Store.GetUserByName(ctx, input.Name); err == nil {
		return models.User{}, Conflict(fmt.Sprintf("User %s already exists", input.Name))
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, err
	}

	hashed, err := utils.HashPassword(input.Password, s.BcryptCost)
	if err != nil {
		return models.User{}, err
	}
	return s.Store.InsertUser(ctx, models.User{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Password: hashed,
	})
}

func (s *UserService) UpdateUser(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	if patch.Name == nil && patch.Password == nil {
		return models.User{}, BadInput("User not provided")
	}

	user, err := s.Store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, NotFound("User not found")
		}
		return models.User{}, err
	}

	if patch.Password != nil {
		hashed, err := utils.HashPassword(*patch.Password, s.BcryptCost)
		if err != nil {
			return models.User{}, err
		}
		patch.Password = &hashed
	}

	if patch.Name != nil && *patch.Name != user.Name {
		if _, err := s.Store.GetUserByName(ctx, *patch.Name); err == nil {
			return models.User{}, Conflict(fmt.Sprintf("User %s already exists", *patch.Name))
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, err
		}
	}

	updated, err := s.Store.UpdateUser(ctx, id, patch.Name, patch.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, NotFound("User not found")
		}
		return models.User{}, err
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (models.User, error) {
	deleted, err := s.Store.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, NotFound("User not found")
		}
		return models.User{}, err
	}
	return deleted, nil
}
