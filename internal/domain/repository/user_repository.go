package repository

import (
	"context"

	"github.com/orryin/orryin-backend/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, limit int) ([]entity.User, error)
	SearchByEmail(ctx context.Context, q string, limit int) ([]entity.User, error)
}
