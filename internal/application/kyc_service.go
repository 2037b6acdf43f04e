package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	"github.com/orryin/orryin-backend/internal/integration/sumsub"
	"github.com/orryin/orryin-backend/pkg/mailer"
)

// SumsubClient is the slice of the Sumsub client the KYC service needs.
type SumsubClient interface {
	CreateApplicant(ctx context.Context, externalUserID string, payload sumsub.ApplicantRequest) (*sumsub.Applicant, error)
}

// ReviewNotifier publishes review-verdict jobs for the notify worker.
type ReviewNotifier interface {
	PublishReview(ctx context.Context, job mailer.ReviewJob) error
}

// KycService mirrors provider-reported verification state into kyc_status
// rows. It makes no verification decisions of its own.
type KycService struct {
	Users         repository.UserRepository
	Kyc           repository.KycRepository
	Sumsub        SumsubClient // nil when credentials are missing
	WebhookSecret []byte
	Notifier      ReviewNotifier // optional
	Logger        *logrus.Logger
}

func NewKycService(users repository.UserRepository, kyc repository.KycRepository, client SumsubClient, webhookSecret []byte, notifier ReviewNotifier, logger *logrus.Logger) *KycService {
	return &KycService{
		Users:         users,
		Kyc:           kyc,
		Sumsub:        client,
		WebhookSecret: webhookSecret,
		Notifier:      notifier,
		Logger:        logger,
	}
}

// StatusView is the KYC state reported to clients.
type StatusView struct {
	UserID       int64   `json:"user_id"`
	ApplicantID  *string `json:"applicant_id"`
	Status       string  `json:"status"`
	ReviewResult *string `json:"review_result"`
}

// ApplicantInput is the payload for applicant creation.
type ApplicantInput struct {
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	Country   string
}

// Status returns the user's KYC state; a user with no row is not_started.
func (s *KycService) Status(ctx context.Context, userID int64) (*StatusView, error) {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	k, err := s.Kyc.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &StatusView{UserID: userID, Status: entity.KycStatusNotStarted}, nil
	}
	if err != nil {
		return nil, err
	}
	return viewOf(k), nil
}

// CreateApplicant registers the user at the verification provider.
// Idempotent: a row that already carries an applicant id short-circuits and
// no outbound call is made. A provider 409 is treated as success after
// recovering the existing applicant id from the error text.
func (s *KycService) CreateApplicant(ctx context.Context, in ApplicantInput) (*StatusView, error) {
	if _, err := s.Users.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	existing, err := s.Kyc.GetByUserID(ctx, in.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.SumsubApplicantID != nil {
		return viewOf(existing), nil
	}

	if s.Sumsub == nil {
		return nil, &ConfigError{Msg: "sumsub credentials are not configured"}
	}

	externalUserID := entity.KycExternalUserID(in.UserID)
	payload := sumsub.ApplicantRequest{
		Email: in.Email,
		Info: sumsub.ApplicantInfo{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Country:   in.Country,
		},
	}

	var applicantID, outStatus string

	applicant, err := s.Sumsub.CreateApplicant(ctx, externalUserID, payload)
	switch {
	case err == nil:
		if applicant.ID == "" {
			return nil, errors.New("sumsub did not return applicant id")
		}
		applicantID = applicant.ID
		outStatus = entity.KycStatusCreated
	case sumsub.IsConflict(err):
		var apiErr *sumsub.APIError
		errors.As(err, &apiErr)
		parsed := sumsub.ExtractApplicantID(apiErr.Description())
		if parsed == "" {
			return nil, fmt.Errorf("sumsub 409 but could not parse applicant id, raw: %s", apiErr.Body)
		}
		applicantID = parsed
		outStatus = entity.KycStatusAlreadyExists
	default:
		return nil, err
	}

	k := &entity.KycStatus{
		UserID:            in.UserID,
		ExternalUserID:    externalUserID,
		SumsubApplicantID: &applicantID,
		Status:            outStatus,
	}
	if err := s.Kyc.Upsert(ctx, k); err != nil {
		return nil, err
	}
	return viewOf(k), nil
}

// webhookEvent is the slice of the Sumsub webhook payload this service reads.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ApplicantID  string `json:"applicantId"`
		ReviewResult struct {
			ReviewStatus string `json:"reviewStatus"`
			ReviewAnswer string `json:"reviewAnswer"`
		} `json:"reviewResult"`
	} `json:"data"`
}

// WebhookResult tells the provider what happened; webhook processing never
// fails hard because the caller cannot usefully retry.
type WebhookResult struct {
	Status string `json:"status"` // ok / ignored
	Reason string `json:"reason,omitempty"`
}

// HandleWebhook applies an asynchronous status callback to the matching KYC
// row. Signature failures are logged and processing continues so sandbox
// callbacks with mismatched secrets still land.
func (s *KycService) HandleWebhook(ctx context.Context, rawBody []byte, headerSignature string) (*WebhookResult, error) {
	if !sumsub.VerifyWebhookSignature(s.WebhookSecret, rawBody, headerSignature) {
		s.Logger.WithField("has_header", headerSignature != "").
			Warn("sumsub webhook signature verification failed, continuing")
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return &WebhookResult{Status: "ignored", Reason: "malformed payload"}, nil
	}
	if event.Data.ApplicantID == "" {
		return &WebhookResult{Status: "ignored", Reason: "no applicantId"}, nil
	}

	newStatus := entity.KycStatusPending
	var reviewResult *string
	if event.Type == "applicantReviewed" {
		rr := fmt.Sprintf("%s:%s", event.Data.ReviewResult.ReviewStatus, event.Data.ReviewResult.ReviewAnswer)
		reviewResult = &rr
		switch event.Data.ReviewResult.ReviewAnswer {
		case "GREEN":
			newStatus = entity.KycStatusApproved
		case "RED":
			newStatus = entity.KycStatusRejected
		}
	}

	k, err := s.Kyc.UpdateReview(ctx, event.Data.ApplicantID, newStatus, reviewResult)
	if errors.Is(err, repository.ErrNotFound) {
		return &WebhookResult{Status: "ignored", Reason: "KYC record not found"}, nil
	}
	if err != nil {
		return nil, err
	}

	if newStatus == entity.KycStatusApproved || newStatus == entity.KycStatusRejected {
		s.notifyReview(ctx, k)
	}

	return &WebhookResult{Status: "ok"}, nil
}

// notifyReview publishes a review job, best-effort. A publish failure only
// logs: notification is a side channel, never part of the webhook contract.
func (s *KycService) notifyReview(ctx context.Context, k *entity.KycStatus) {
	if s.Notifier == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, k.UserID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", k.UserID).Warn("review notify: user lookup failed")
		return
	}
	job := mailer.ReviewJob{UserEmail: u.Email, Status: k.Status}
	if k.ReviewResult != nil {
		job.ReviewResult = *k.ReviewResult
	}
	if err := s.Notifier.PublishReview(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", k.UserID).Warn("review notify: publish failed")
	}
}

func viewOf(k *entity.KycStatus) *StatusView {
	return &StatusView{
		UserID:       k.UserID,
		ApplicantID:  k.SumsubApplicantID,
		Status:       k.Status,
		ReviewResult: k.ReviewResult,
	}
}
