package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	authenticateFn func(ctx context.Context, email, password string) (*models.User, error)
}

func (m *mockUserService) CreateUser(context.Context, string, string, models.UserRole) (*models.User, error) {
	panic("not used by handlers")
}
func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return m.authenticateFn(ctx, email, password)
}
func (m *mockUserService) GetUserByID(context.Context, uint) (*models.User, error) {
	panic("not used by handlers")
}

func newAuthRouter(users services.UserService) (*gin.Engine, *auth.Manager) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewManager([]byte("test-secret"), time.Hour)
	h := NewAuthHandler(users, tokens, false)
	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)
	return router, tokens
}

func TestLoginSetsVerifiableCookie(t *testing.T) {
	users := &mockUserService{
		authenticateFn: func(_ context.Context, email, password string) (*models.User, error) {
			assert.Equal(t, "admin@example.com", email)
			assert.Equal(t, "s3cret", password)
			return &models.User{ID: 1, Email: email, Role: models.RoleAdmin}, nil
		},
	}
	router, tokens := newAuthRouter(users)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var authCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			authCookie = c
		}
	}
	require.NotNil(t, authCookie, "login must set the auth cookie")
	assert.True(t, authCookie.HttpOnly)

	principal, err := tokens.Verify(authCookie.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(1), principal.UserID)
	assert.True(t, principal.IsAdmin())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := &mockUserService{
		authenticateFn: func(context.Context, string, string) (*models.User, error) {
			return nil, services.ErrInvalidCredentials
		},
	}
	router, _ := newAuthRouter(users)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}
