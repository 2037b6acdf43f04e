package repository

import (
	"context"

	"github.com/orryin/orryin-backend/internal/domain/entity"
)

// AccountRepository defines the interface for account rows.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	// GetForUser returns the account only when it belongs to the given user.
	GetForUser(ctx context.Context, accountID, userID int64) (*entity.Account, error)
}
