package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
)

type BrokerageRepository struct {
	pool *pgxpool.Pool
}

func NewBrokerageRepository(pool *pgxpool.Pool) *BrokerageRepository {
	return &BrokerageRepository{pool: pool}
}

const brokerageColumns = `id, user_id, broker, external_customer_id, external_account_id, status, created_at, updated_at`

func scanBrokerage(row pgx.Row) (*entity.BrokerageAccount, error) {
	b := &entity.BrokerageAccount{}
	err := row.Scan(&b.ID, &b.UserID, &b.Broker, &b.ExternalCustomerID,
		&b.ExternalAccountID, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BrokerageRepository) Create(ctx context.Context, b *entity.BrokerageAccount) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO brokerage_accounts (user_id, broker, external_customer_id, external_account_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.Broker, b.ExternalCustomerID, b.ExternalAccountID, b.Status)

	return row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *BrokerageRepository) Latest(ctx context.Context, userID int64, broker string) (*entity.BrokerageAccount, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+brokerageColumns+`
		FROM brokerage_accounts
		WHERE user_id = $1 AND broker = $2
		ORDER BY id DESC
		LIMIT 1
	`, userID, broker)
	return scanBrokerage(row)
}

func (r *BrokerageRepository) ListByUser(ctx context.Context, userID int64) ([]entity.BrokerageAccount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+brokerageColumns+`
		FROM brokerage_accounts
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.BrokerageAccount
	for rows.Next() {
		var b entity.BrokerageAccount
		if err := rows.Scan(&b.ID, &b.UserID, &b.Broker, &b.ExternalCustomerID,
			&b.ExternalAccountID, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ repository.BrokerageRepository = (*BrokerageRepository)(nil)
