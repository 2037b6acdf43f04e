package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orryin/orryin-backend/internal/container"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/interface/middleware"
)

// KycModule wires identity verification routes.
// GET /kyc/status, POST /kyc/applicant, POST /kyc/webhook/sumsub
// The webhook route is not rate-limited: provider callbacks must land.

type KycModule struct {
	Handler *handlers.KycHandler
}

func NewKycModule(h *handlers.KycHandler) *KycModule {
	return &KycModule{Handler: h}
}

func (m *KycModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	kyc := rg.Group("/kyc")
	{
		kyc.GET("/status", limiter, m.Handler.Status)
		kyc.POST("/applicant", limiter, m.Handler.CreateApplicant)
		kyc.POST("/webhook/sumsub", m.Handler.Webhook)
	}
}
