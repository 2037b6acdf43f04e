package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/orryin/orryin-backend/internal/application"
	"github.com/orryin/orryin-backend/internal/domain/entity"
	"github.com/orryin/orryin-backend/internal/domain/repository"
	handlers "github.com/orryin/orryin-backend/internal/interface/http"
	"github.com/orryin/orryin-backend/pkg/validation"
)

func discardTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubUserRepo struct {
	nextID int64
	users  map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*entity.User{}}
}

func (s *stubUserRepo) Create(ctx context.Context, u *entity.User) error {
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.Email] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := s.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) List(ctx context.Context, limit int) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) SearchByEmail(ctx context.Context, q string, limit int) ([]entity.User, error) {
	out := []entity.User{}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Email), strings.ToLower(q)) {
			out = append(out, *u)
		}
	}
	return out, nil
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newUserRouter(t *testing.T) (*gin.Engine, *stubUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	repo := newStubUserRepo()
	logger := discardTestLogger()
	h := handlers.NewUserHandler(application.NewUserService(repo, logger), logger)

	r := gin.New()
	r.POST("/users/dev-create", h.DevCreate)
	r.GET("/users/", h.List)
	r.GET("/users/search", h.Search)
	return r, repo
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestDevCreateUser(t *testing.T) {
	r, _ := newUserRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/users/dev-create", `{"email":"leon@example.com","password":"dev-mvp-flow"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var data struct {
		ID       int64  `json:"id"`
		Email    string `json:"email"`
		IsActive bool   `json:"is_active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "leon@example.com", data.Email)
	require.True(t, data.IsActive)
	require.NotZero(t, data.ID)
}

func TestDevCreateUserValidation(t *testing.T) {
	r, _ := newUserRouter(t)

	// Short password fails the pwd alias; bad email fails email.
	w, env := doJSON(t, r, http.MethodPost, "/users/dev-create", `{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.False(t, env.Success)

	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &details))
	require.Contains(t, details, "email")
	require.Contains(t, details, "password")
}

func TestDevCreateUserDuplicate(t *testing.T) {
	r, _ := newUserRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/users/dev-create", `{"email":"leon@example.com","password":"dev-mvp-flow"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/users/dev-create", `{"email":"leon@example.com","password":"dev-mvp-flow"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "email already registered", env.Message)
}

func TestSearchRequiresQuery(t *testing.T) {
	r, _ := newUserRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/users/search", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.False(t, env.Success)

	_, env = doJSON(t, r, http.MethodGet, "/users/search?q=leon", "")
	require.True(t, env.Success)
}
