package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	"github.com/orryin/orryin-backend/pkg/helpers"
)

const userListCap = 50

// UserService covers the dev-only registration surface of the MVP.
type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// CreateDevUser registers a user with a bcrypt-hashed password.
// Duplicate emails fail with ErrEmailTaken; a second row is never created.
func (s *UserService) CreateDevUser(ctx context.Context, email, password string) (*entity.User, error) {
	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// List returns up to 50 users.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Users.List(ctx, userListCap)
}

// Search finds users whose email contains q (case-insensitive), capped.
func (s *UserService) Search(ctx context.Context, q string) ([]entity.User, error) {
	return s.Users.SearchByEmail(ctx, q, userListCap)
}
