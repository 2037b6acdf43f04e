package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orryin/orryin-backend/internal/container"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/interface/middleware"
)

// PaymentsModule wires FX and sandbox transfer routes.
// GET /payments/fx-rate, POST /payments/transfer/sandbox

type PaymentsModule struct {
	Handler *handlers.PaymentsHandler
}

func NewPaymentsModule(h *handlers.PaymentsHandler) *PaymentsModule {
	return &PaymentsModule{Handler: h}
}

func (m *PaymentsModule) Register(rg *gin.RouterGroup) {
	rateLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	transferLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	payments := rg.Group("/payments")
	{
		payments.GET("/fx-rate", rateLimiter, m.Handler.FxRate)
		payments.POST("/transfer/sandbox", transferLimiter, m.Handler.SandboxTransfer)
	}
}
