package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orryin/orryin-backend/internal/container"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/interface/middleware"
)

// FlowModule wires the end-to-end smoke flow.
// POST /mvp/test-flow

type FlowModule struct {
	Handler *handlers.FlowHandler
}

func NewFlowModule(h *handlers.FlowHandler) *FlowModule {
	return &FlowModule{Handler: h}
}

func (m *FlowModule) Register(rg *gin.RouterGroup) {
	// Tight limit: every call creates a fixture user and hits three providers.
	limiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/mvp/test-flow", limiter, m.Handler.TestFlow)
}
