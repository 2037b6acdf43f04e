package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
)

type stubKycRepo struct {
	row *entity.KycStatus
}

func (s *stubKycRepo) GetByUserID(ctx context.Context, userID int64) (*entity.KycStatus, error) {
	if s.row != nil && s.row.UserID == userID {
		return s.row, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubKycRepo) GetByApplicantID(ctx context.Context, applicantID string) (*entity.KycStatus, error) {
	if s.row != nil && s.row.SumsubApplicantID != nil && *s.row.SumsubApplicantID == applicantID {
		return s.row, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubKycRepo) Upsert(ctx context.Context, k *entity.KycStatus) error {
	cp := *k
	s.row = &cp
	return nil
}

func (s *stubKycRepo) UpdateReview(ctx context.Context, applicantID, status string, reviewResult *string) (*entity.KycStatus, error) {
	if s.row == nil || s.row.SumsubApplicantID == nil || *s.row.SumsubApplicantID != applicantID {
		return nil, repository.ErrNotFound
	}
	s.row.Status = status
	if reviewResult != nil {
		s.row.ReviewResult = reviewResult
	}
	return s.row, nil
}

func newKycRouter(t *testing.T, kycRepo *stubKycRepo) (*gin.Engine, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newStubUserRepo()
	logger := discardTestLogger()
	svc := application.NewKycService(users, kycRepo, nil, []byte("secret"), nil, logger)
	h := handlers.NewKycHandler(svc, logger)

	r := gin.New()
	r.GET("/kyc/status", h.Status)
	r.POST("/kyc/applicant", h.CreateApplicant)
	r.POST("/kyc/webhook/sumsub", h.Webhook)
	return r, users
}

func TestKycStatusNotStarted(t *testing.T) {
	r, users := newKycRouter(t, &stubKycRepo{})
	u := &entity.User{Email: "leon@example.com"}
	require.NoError(t, users.Create(context.Background(), u))

	w, env := doJSON(t, r, http.MethodGet, "/kyc/status?user_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "not_started", data.Status)
}

func TestKycStatusBadUserID(t *testing.T) {
	r, _ := newKycRouter(t, &stubKycRepo{})

	w, _ := doJSON(t, r, http.MethodGet, "/kyc/status?user_id=abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/kyc/status?user_id=999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestKycApplicantWithoutCredentials(t *testing.T) {
	r, users := newKycRouter(t, &stubKycRepo{})
	u := &entity.User{Email: "leon@example.com"}
	require.NoError(t, users.Create(context.Background(), u))

	w, env := doJSON(t, r, http.MethodPost, "/kyc/applicant",
		`{"user_id":1,"email":"leon@example.com","first_name":"Leon","last_name":"Test","country":"BRA"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, env.Message, "config error")
}

func TestKycWebhookAlwaysAnswers200(t *testing.T) {
	applicantID := "app-1"
	kycRepo := &stubKycRepo{row: &entity.KycStatus{UserID: 1, SumsubApplicantID: &applicantID, Status: "created"}}
	r, users := newKycRouter(t, kycRepo)
	u := &entity.User{Email: "leon@example.com"}
	require.NoError(t, users.Create(context.Background(), u))

	// Known applicant, no signature header: processed anyway.
	body := `{"type":"applicantReviewed","data":{"applicantId":"app-1","reviewResult":{"reviewStatus":"completed","reviewAnswer":"GREEN"}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/kyc/webhook/sumsub", strings.NewReader(body))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "approved", kycRepo.row.Status)

	// Unknown applicant and garbage payloads also answer 200.
	w, env := doJSON(t, r, http.MethodPost, "/kyc/webhook/sumsub", `{"type":"applicantReviewed","data":{"applicantId":"nope"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Equal(t, "ignored", res.Status)

	w, _ = doJSON(t, r, http.MethodPost, "/kyc/webhook/sumsub", "not json")
	require.Equal(t, http.StatusOK, w.Code)
}
