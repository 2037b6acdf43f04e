package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (user_id, currency, balance)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, a.UserID, a.Currency, a.Balance)

	return row.Scan(&a.ID, &a.CreatedAt)
}

func (r *AccountRepository) GetForUser(ctx context.Context, accountID, userID int64) (*entity.Account, error) {
	a := &entity.Account{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, currency, balance, created_at
		FROM accounts
		WHERE id = $1 AND user_id = $2
	`, accountID, userID)

	if err := row.Scan(&a.ID, &a.UserID, &a.Currency, &a.Balance, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
