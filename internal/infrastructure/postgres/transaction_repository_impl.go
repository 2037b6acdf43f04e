package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, account_id, type, amount, currency)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, t.UserID, t.AccountID, t.Type, t.Amount, t.Currency)

	return row.Scan(&t.ID, &t.CreatedAt)
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
