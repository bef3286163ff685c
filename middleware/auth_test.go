package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hotel-reservation-backend/services"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, p services.Principal) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *mockSessionStore) Get(ctx context.Context, token string) (services.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(services.Principal), args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func setupRouter(sessions services.SessionStore, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireSession(sessions)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireSessionMissingCookie(t *testing.T) {
	sessions := new(mockSessionStore)
	r := setupRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRequireSessionUnknownToken(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("Get", mock.Anything, "stale").
		Return(services.Principal{}, services.ErrSessionNotFound)
	r := setupRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or expired session")
}

func TestRequireSessionResolvesPrincipal(t *testing.T) {
	sessions := new(mockSessionStore)
	sessions.On("Get", mock.Anything, "good-token").
		Return(services.Principal{UserID: 7, Role: "GUEST"}, nil)
	r := setupRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":7`)
	sessions.AssertExpectations(t)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{"admin passes", "ADMIN", http.StatusOK},
		{"guest is forbidden", "GUEST", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(mockSessionStore)
			sessions.On("Get", mock.Anything, "tok").
				Return(services.Principal{UserID: 1, Role: tt.role}, nil)
			r := setupRouter(sessions, RequireAdmin())

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok"})
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
