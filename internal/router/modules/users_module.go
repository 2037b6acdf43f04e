package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orryin/orryin-backend/internal/container"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/internal/interface/middleware"
)

// UserModule wires user routes.
// POST /users/dev-create, GET /users/, GET /users/search

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIP(), nil) // 30 req/min per IP
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)

	users := rg.Group("/users")
	{
		users.POST("/dev-create", createLimiter, m.Handler.DevCreate)
		users.GET("/", readLimiter, m.Handler.List)
		users.GET("/search", readLimiter, m.Handler.Search)
	}
}
