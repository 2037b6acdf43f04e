package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orryin/orryin-backend/internal/container"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/interface/middleware"
)

// BrokerageModule wires brokerage onboarding routes.
// POST /brokerage/onboard, GET /brokerage/accounts/:user_id

type BrokerageModule struct {
	Handler *handlers.BrokerageHandler
}

func NewBrokerageModule(h *handlers.BrokerageHandler) *BrokerageModule {
	return &BrokerageModule{Handler: h}
}

func (m *BrokerageModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	brokerage := rg.Group("/brokerage")
	{
		brokerage.POST("/onboard", limiter, m.Handler.Onboard)
		brokerage.GET("/accounts/:user_id", limiter, m.Handler.ListAccounts)
	}
}
