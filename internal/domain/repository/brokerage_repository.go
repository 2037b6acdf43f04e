package repository

import (
	"context"

	"github.com/orryin/orryin-backend/internal/domain/entity"
)

// BrokerageRepository manages broker-side account links.
type BrokerageRepository interface {
	Create(ctx context.Context, b *entity.BrokerageAccount) error
	// Latest returns the most recent row (highest id) for the pair, or
	// ErrNotFound.
	Latest(ctx context.Context, userID int64, broker string) (*entity.BrokerageAccount, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.BrokerageAccount, error)
}
