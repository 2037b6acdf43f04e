package repository

import (
	"context"

	"github.com/orryin/orryin-backend/internal/domain/entity"
)

// TransactionRepository appends transaction rows; transactions are never
// updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
}
