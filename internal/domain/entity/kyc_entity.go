package entity

import (
	"fmt"
	"time"
)

// KYC statuses. Transitions:
// not_started -> created | already_exists (applicant creation),
// then pending -> approved | rejected via provider webhooks.
const (
	KycStatusNotStarted    = "not_started"
	KycStatusCreated       = "created"
	KycStatusAlreadyExists = "already_exists"
	KycStatusPending       = "pending"
	KycStatusApproved      = "approved"
	KycStatusRejected      = "rejected"
)

// KycStatus mirrors provider-reported verification state for one user.
// One row per user; the applicant id is set once known and is unique.
type KycStatus struct {
	ID                int64
	UserID            int64
	ExternalUserID    string
	SumsubApplicantID *string
	Status            string
	ReviewResult      *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// KycExternalUserID is the id this service registers the user under at the
// identity-verification provider.
func KycExternalUserID(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}
