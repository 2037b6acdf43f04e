package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
)

type KycRepository struct {
	pool *pgxpool.Pool
}

func NewKycRepository(pool *pgxpool.Pool) *KycRepository {
	return &KycRepository{pool: pool}
}

const kycColumns = `id, user_id, external_user_id, sumsub_applicant_id, status, review_result, created_at, updated_at`

func scanKyc(row pgx.Row) (*entity.KycStatus, error) {
	k := &entity.KycStatus{}
	err := row.Scan(&k.ID, &k.UserID, &k.ExternalUserID, &k.SumsubApplicantID,
		&k.Status, &k.ReviewResult, &k.CreatedAt, &k.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return k, nil
}

func (r *KycRepository) GetByUserID(ctx context.Context, userID int64) (*entity.KycStatus, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+kycColumns+`
		FROM kyc_status
		WHERE user_id = $1
	`, userID)
	return scanKyc(row)
}

func (r *KycRepository) GetByApplicantID(ctx context.Context, applicantID string) (*entity.KycStatus, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+kycColumns+`
		FROM kyc_status
		WHERE sumsub_applicant_id = $1
	`, applicantID)
	return scanKyc(row)
}

func (r *KycRepository) Upsert(ctx context.Context, k *entity.KycStatus) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO kyc_status (user_id, external_user_id, sumsub_applicant_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			external_user_id = EXCLUDED.external_user_id,
			sumsub_applicant_id = EXCLUDED.sumsub_applicant_id,
			status = EXCLUDED.status,
			updated_at = now()
		RETURNING `+kycColumns+`
	`, k.UserID, k.ExternalUserID, k.SumsubApplicantID, k.Status)

	saved, err := scanKyc(row)
	if err != nil {
		return err
	}
	*k = *saved
	return nil
}

func (r *KycRepository) UpdateReview(ctx context.Context, applicantID, status string, reviewResult *string) (*entity.KycStatus, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE kyc_status
		SET status = $2,
			review_result = COALESCE($3, review_result),
			updated_at = now()
		WHERE sumsub_applicant_id = $1
		RETURNING `+kycColumns+`
	`, applicantID, status, reviewResult)
	return scanKyc(row)
}

var _ repository.KycRepository = (*KycRepository)(nil)
