package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/placedir/backend/internal/models"
	"github.com/placedir/backend/internal/utils"
)

type AuthService struct {
	Store      UserStore
	JWTSecret  string
	BcryptCost int
}

// Session is what sign-up and log-in hand back: the user plus a signed
// token carrying its id.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) session(user models.User) (Session, error) {
	token, err := utils.SignToken(s.JWTSecret, user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}

func (s *AuthService) SignUp(ctx context.Context, input UserInput) (Session, error) {
	if _, err := s.Store.GetUserByName(ctx, input.Name); err == nil {
		return Session{}, Conflict("Please pick another user name")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return Session{}, err
	}

	hashed, err := utils.HashPassword(input.Password, s.BcryptCost)
	if err != nil {
		return Session{}, err
	}
	user, err := s.Store.InsertUser(ctx, models.User{
		ID:       uuid.New().String(),
		Name:     input.Name,
		Password: hashed,
	})
	if err != nil {
		return Session{}, err
	}
	return s.session(user)
}

func (s *AuthService) LogIn(ctx context.Context, input UserInput) (Session, error) {
	user, err := s.Store.GetUserByName(ctx, input.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, Conflict("Unknown user")
		}
		return Session{}, err
	}
	if !utils.VerifyPassword(user.Password, input.Password) {
		return Session{}, Conflict("Wrong password")
	}
	return s.session(user)
}
