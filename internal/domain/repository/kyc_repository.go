package repository

import (
	"context"

	"github.com/orryin/orryin-backend/internal/domain/entity"
)

// KycRepository manages the one-row-per-user KYC mirror.
type KycRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*entity.KycStatus, error)
	GetByApplicantID(ctx context.Context, applicantID string) (*entity.KycStatus, error)
	// Upsert creates the row for k.UserID or updates external_user_id,
	// sumsub_applicant_id and status in place. k is refreshed from the
	// database on return.
	Upsert(ctx context.Context, k *entity.KycStatus) error
	// UpdateReview sets status and review_result on the row owning the
	// applicant id. Returns ErrNotFound when no such row exists.
	UpdateReview(ctx context.Context, applicantID, status string, reviewResult *string) (*entity.KycStatus, error)
}
