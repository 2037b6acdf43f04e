package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/pkg/response"
)

type FlowHandler struct {
	Svc    *application.FlowService
	Logger *logrus.Logger
}

func NewFlowHandler(svc *application.FlowService, logger *logrus.Logger) *FlowHandler {
	return &FlowHandler{Svc: svc, Logger: logger}
}

// TestFlow runs the full diagnostic onboarding flow. Step failures land in
// the report, never in the HTTP status.
func (h *FlowHandler) TestFlow(c *gin.Context) {
	report, err := h.Svc.Run(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("mvp test flow fixtures failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create flow fixtures", nil)
		return
	}
	response.Success(c, http.StatusOK, report, "mvp test flow", nil)
}
