package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/integration/drivewealth"
	"github.com/orryin/orryin-backend/pkg/response"
	"github.com/orryin/orryin-backend/pkg/validation"
)

type BrokerageHandler struct {
	Svc    *application.BrokerageService
	Logger *logrus.Logger
}

func NewBrokerageHandler(svc *application.BrokerageService, logger *logrus.Logger) *BrokerageHandler {
	return &BrokerageHandler{Svc: svc, Logger: logger}
}

type onboardRequest struct {
	UserID       int64  `json:"user_id" binding:"required"`
	BaseCurrency string `json:"base_currency"`
}

type brokerageAccountOut struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"user_id"`
	Broker             string `json:"broker"`
	ExternalCustomerID string `json:"external_customer_id"`
	ExternalAccountID  string `json:"external_account_id"`
	Status             string `json:"status"`
}

func toBrokerageOut(b *entity.BrokerageAccount) brokerageAccountOut {
	return brokerageAccountOut{
		ID:                 b.ID,
		UserID:             b.UserID,
		Broker:             b.Broker,
		ExternalCustomerID: b.ExternalCustomerID,
		ExternalAccountID:  b.ExternalAccountID,
		Status:             b.Status,
	}
}

// Onboard provisions (or returns) the brokerage account for a user.
// 201 on fresh provisioning, 200 with the existing record otherwise.
func (h *BrokerageHandler) Onboard(c *gin.Context) {
	var req onboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.BaseCurrency == "" {
		req.BaseCurrency = "USD"
	}

	account, created, err := h.Svc.Onboard(c.Request.Context(), req.UserID, req.BaseCurrency)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, drivewealth.ErrNotImplemented):
			response.Error[any](c, http.StatusNotImplemented, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("brokerage onboarding failed")
			response.Error[any](c, http.StatusBadGateway, "drivewealth error: "+err.Error(), nil)
		}
		return
	}

	status := http.StatusOK
	msg := "already onboarded"
	if created {
		status = http.StatusCreated
		msg = "brokerage account created"
	}
	response.Success(c, status, toBrokerageOut(account), msg, nil)
}

// ListAccounts returns all brokerage accounts for a user.
func (h *BrokerageHandler) ListAccounts(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"user_id": "must be a valid integer"})
		return
	}

	accounts, err := h.Svc.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		h.Logger.WithError(err).Error("list brokerage accounts failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list brokerage accounts", nil)
		return
	}
	out := make([]brokerageAccountOut, 0, len(accounts))
	for i := range accounts {
		out = append(out, toBrokerageOut(&accounts[i]))
	}
	response.Success(c, http.StatusOK, out, "brokerage accounts", nil)
}
