package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/pkg/response"
	"github.com/orryin/orryin-backend/pkg/validation"
)

type PaymentsHandler struct {
	Svc    *application.PaymentsService
	Logger *logrus.Logger
}

func NewPaymentsHandler(svc *application.PaymentsService, logger *logrus.Logger) *PaymentsHandler {
	return &PaymentsHandler{Svc: svc, Logger: logger}
}

type sandboxTransferRequest struct {
	UserID         int64           `json:"user_id" binding:"required"`
	AccountID      int64           `json:"account_id" binding:"required"`
	SourceCurrency string          `json:"source_currency" binding:"required,currency"`
	TargetCurrency string          `json:"target_currency" binding:"required,currency"`
	SourceAmount   decimal.Decimal `json:"source_amount"`
}

// FxRate handles GET /payments/fx-rate?source=BRL&target=USD&amount=100.
func (h *PaymentsHandler) FxRate(c *gin.Context) {
	source := c.Query("source")
	target := c.Query("target")
	if source == "" || target == "" {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"source": "is required", "target": "is required"})
		return
	}

	var amount *decimal.Decimal
	if raw := c.Query("amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"amount": "must be a valid number"})
			return
		}
		amount = &d
	}

	quote, err := h.Svc.FxRate(c.Request.Context(), source, target, amount)
	if err != nil {
		if application.IsConfigError(err) {
			response.Error[any](c, http.StatusInternalServerError, err.Error(), nil)
			return
		}
		h.Logger.WithError(err).Error("fx rate lookup failed")
		response.Error[any](c, http.StatusBadGateway, "wise rate error: "+err.Error(), nil)
		return
	}
	response.Success(c, http.StatusOK, quote, "fx rate", nil)
}

// SandboxTransfer simulates an FX transfer and records it.
func (h *PaymentsHandler) SandboxTransfer(c *gin.Context) {
	var req sandboxTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	if !req.SourceAmount.IsPositive() {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"source_amount": "must be greater than 0"})
		return
	}

	res, err := h.Svc.SandboxTransfer(c.Request.Context(), application.TransferInput{
		UserID:         req.UserID,
		AccountID:      req.AccountID,
		SourceCurrency: req.SourceCurrency,
		TargetCurrency: req.TargetCurrency,
		SourceAmount:   req.SourceAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "account not found for user", nil)
		case application.IsConfigError(err):
			response.Error[any](c, http.StatusInternalServerError, err.Error(), nil)
		default:
			h.Logger.WithError(err).Error("sandbox transfer failed")
			response.Error[any](c, http.StatusBadGateway, "wise rate error: "+err.Error(), nil)
		}
		return
	}
	response.Success(c, http.StatusOK, res, "sandbox transfer", nil)
}
