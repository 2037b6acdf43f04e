package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/integration/sumsub"
)

func newKycFixture(t *testing.T, client application.SumsubClient, notifier application.ReviewNotifier) (*application.KycService, *memUserRepo, *memKycRepo, *entity.User) {
	t.Helper()
	users := newMemUserRepo()
	kycRepo := newMemKycRepo()
	svc := application.NewKycService(users, kycRepo, client, []byte("webhook-secret"), notifier, discardLogger())

	u := &entity.User{Email: "leon@example.com", HashedPassword: "x", IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))
	return svc, users, kycRepo, u
}

func TestStatusNotStarted(t *testing.T) {
	svc, _, _, u := newKycFixture(t, &fakeSumsub{}, nil)

	view, err := svc.Status(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "not_started", view.Status)
	require.Nil(t, view.ApplicantID)
}

func TestStatusUnknownUser(t *testing.T) {
	svc, _, _, _ := newKycFixture(t, &fakeSumsub{}, nil)

	_, err := svc.Status(context.Background(), 999)
	require.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestCreateApplicantIdempotent(t *testing.T) {
	client := &fakeSumsub{applicantID: "695b2a5fd78655e152921a6c"}
	svc, _, _, u := newKycFixture(t, client, nil)
	in := application.ApplicantInput{UserID: u.ID, Email: u.Email, FirstName: "Leon", LastName: "Test", Country: "BRA"}

	first, err := svc.CreateApplicant(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "created", first.Status)
	require.Equal(t, "695b2a5fd78655e152921a6c", *first.ApplicantID)
	require.Equal(t, 1, client.calls)

	// Second call short-circuits on the stored applicant id.
	second, err := svc.CreateApplicant(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, *first.ApplicantID, *second.ApplicantID)
	require.Equal(t, 1, client.calls)
}

func TestCreateApplicantConflictRecoversID(t *testing.T) {
	client := &fakeSumsub{err: &sumsub.APIError{
		StatusCode: 409,
		Body:       `{"description":"Applicant with external user id 'user-1' already exists: 695b2a5fd78655e152921a6c"}`,
	}}
	svc, _, kycRepo, u := newKycFixture(t, client, nil)

	view, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
	require.NoError(t, err)
	require.Equal(t, "already_exists", view.Status)
	require.Equal(t, "695b2a5fd78655e152921a6c", *view.ApplicantID)

	stored, err := kycRepo.GetByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "already_exists", stored.Status)
	require.Equal(t, entity.KycExternalUserID(u.ID), stored.ExternalUserID)
}

func TestCreateApplicantConflictUnparseable(t *testing.T) {
	client := &fakeSumsub{err: &sumsub.APIError{StatusCode: 409, Body: `{"description":"!!!"}`}}
	svc, _, _, u := newKycFixture(t, client, nil)

	_, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
	require.Error(t, err)
	require.Contains(t, err.Error(), "could not parse applicant id")
}

func TestCreateApplicantWithoutClient(t *testing.T) {
	svc, _, _, u := newKycFixture(t, nil, nil)

	_, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
	require.True(t, application.IsConfigError(err))
}

func TestHandleWebhookReviewTransitions(t *testing.T) {
	cases := []struct {
		name       string
		answer     string
		wantStatus string
	}{
		{"green approves", "GREEN", "approved"},
		{"red rejects", "RED", "rejected"},
		{"other answers stay pending", "YELLOW", "pending"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeSumsub{applicantID: "app-1"}
			svc, _, kycRepo, u := newKycFixture(t, client, nil)
			_, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
			require.NoError(t, err)

			body := []byte(`{"type":"applicantReviewed","data":{"applicantId":"app-1","reviewResult":{"reviewStatus":"completed","reviewAnswer":"` + tc.answer + `"}}}`)
			res, err := svc.HandleWebhook(context.Background(), body, "")
			require.NoError(t, err)
			require.Equal(t, "ok", res.Status)

			stored, err := kycRepo.GetByUserID(context.Background(), u.ID)
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, stored.Status)
			require.Equal(t, "completed:"+tc.answer, *stored.ReviewResult)
		})
	}
}

func TestHandleWebhookNonReviewEventPending(t *testing.T) {
	client := &fakeSumsub{applicantID: "app-1"}
	svc, _, kycRepo, u := newKycFixture(t, client, nil)
	_, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
	require.NoError(t, err)

	body := []byte(`{"type":"applicantPending","data":{"applicantId":"app-1"}}`)
	res, err := svc.HandleWebhook(context.Background(), body, "")
	require.NoError(t, err)
	require.Equal(t, "ok", res.Status)

	stored, err := kycRepo.GetByUserID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "pending", stored.Status)
	require.Nil(t, stored.ReviewResult)
}

func TestHandleWebhookUnknownApplicantIgnored(t *testing.T) {
	svc, _, _, _ := newKycFixture(t, &fakeSumsub{}, nil)

	body := []byte(`{"type":"applicantReviewed","data":{"applicantId":"nope","reviewResult":{"reviewAnswer":"GREEN"}}}`)
	res, err := svc.HandleWebhook(context.Background(), body, "")
	require.NoError(t, err)
	require.Equal(t, "ignored", res.Status)
	require.Equal(t, "KYC record not found", res.Reason)
}

func TestHandleWebhookMalformedPayloadIgnored(t *testing.T) {
	svc, _, _, _ := newKycFixture(t, &fakeSumsub{}, nil)

	res, err := svc.HandleWebhook(context.Background(), []byte("not json"), "")
	require.NoError(t, err)
	require.Equal(t, "ignored", res.Status)
}

func TestHandleWebhookPublishesReviewNotification(t *testing.T) {
	notifier := &capturedReviews{}
	client := &fakeSumsub{applicantID: "app-1"}
	svc, _, _, u := newKycFixture(t, client, notifier)
	_, err := svc.CreateApplicant(context.Background(), application.ApplicantInput{UserID: u.ID, Email: u.Email})
	require.NoError(t, err)

	body := []byte(`{"type":"applicantReviewed","data":{"applicantId":"app-1","reviewResult":{"reviewStatus":"completed","reviewAnswer":"GREEN"}}}`)
	_, err = svc.HandleWebhook(context.Background(), body, "")
	require.NoError(t, err)

	require.Len(t, notifier.jobs, 1)
	require.Equal(t, u.Email, notifier.jobs[0].UserEmail)
	require.Equal(t, "approved", notifier.jobs[0].Status)

	// Pending updates do not notify.
	body = []byte(`{"type":"applicantPending","data":{"applicantId":"app-1"}}`)
	_, err = svc.HandleWebhook(context.Background(), body, "")
	require.NoError(t, err)
	require.Len(t, notifier.jobs, 1)
}
