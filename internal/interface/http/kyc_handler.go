package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/pkg/response"
	"github.com/orryin/orryin-backend/pkg/validation"
)

type KycHandler struct {
	Svc    *application.KycService
	Logger *logrus.Logger
}

func NewKycHandler(svc *application.KycService, logger *logrus.Logger) *KycHandler {
	return &KycHandler{Svc: svc, Logger: logger}
}

type createApplicantRequest struct {
	UserID    int64  `json:"user_id" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type applicantOut struct {
	ApplicantID  *string `json:"applicant_id"`
	Status       string  `json:"status"`
	ReviewResult *string `json:"review_result"`
}

// Status returns the mirrored verification state for a user.
func (h *KycHandler) Status(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"user_id": "must be a valid integer"})
		return
	}

	view, err := h.Svc.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).Error("kyc status lookup failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load kyc status", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "kyc status", nil)
}

// CreateApplicant registers the user at the verification provider
// (idempotent per user).
func (h *KycHandler) CreateApplicant(c *gin.Context) {
	var req createApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	view, err := h.Svc.CreateApplicant(c.Request.Context(), application.ApplicantInput{
		UserID:    req.UserID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case application.IsConfigError(err):
			response.Error[any](c, http.StatusInternalServerError, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("sumsub applicant creation failed")
			response.Error[any](c, http.StatusBadGateway, "sumsub error: "+err.Error(), nil)
		}
		return
	}
	response.Success(c, http.StatusOK, applicantOut{
		ApplicantID:  view.ApplicantID,
		Status:       view.Status,
		ReviewResult: view.ReviewResult,
	}, "applicant", nil)
}

// Webhook ingests asynchronous review callbacks from Sumsub. It always
// answers 200: the provider cannot usefully retry, so unknown applicants
// and signature failures are swallowed.
func (h *KycHandler) Webhook(c *gin.Context) {
	rawBody, err := c.GetRawData()
	if err != nil {
		response.Success(c, http.StatusOK, application.WebhookResult{Status: "ignored", Reason: "unreadable body"}, "webhook", nil)
		return
	}

	result, err := h.Svc.HandleWebhook(c.Request.Context(), rawBody, c.GetHeader("X-Signature"))
	if err != nil {
		h.Logger.WithError(err).Error("sumsub webhook processing failed")
		response.Error[any](c, http.StatusInternalServerError, "webhook processing failed", nil)
		return
	}
	response.Success(c, http.StatusOK, result, "webhook", nil)
}
