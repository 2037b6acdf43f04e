package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/pkg/response"
	"github.com/orryin/orryin-backend/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type userOut struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func toUserOut(u *entity.User) userOut {
	return userOut{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}

// DevCreate registers a user. Dev-only: no email verification, no auth.
func (h *UserHandler) DevCreate(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CreateDevUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		h.Logger.WithError(err).Error("create dev user failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create user", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserOut(u), "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	out := make([]userOut, 0, len(users))
	for i := range users {
		out = append(out, toUserOut(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	users, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		h.Logger.WithError(err).Error("search users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to search users", nil)
		return
	}
	out := make([]userOut, 0, len(users))
	for i := range users {
		out = append(out, toUserOut(&users[i]))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}
