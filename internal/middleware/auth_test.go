package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"job-board/internal/domain"
	"job-board/internal/service"
)

type fakeAuthenticator map[string]*domain.Principal

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*domain.Principal, error) {
	if p, ok := f[token]; ok {
		return p, nil
	}
	if token == "store-down" {
		return nil, service.ErrInternalServer
	}
	return nil, service.ErrInvalidSession
}

func newTestRouter(policy service.Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := fakeAuthenticator{
		"admin-token":  {UserID: 1, Role: domain.RoleAdmin, SessionID: "s1"},
		"seeker-token": {UserID: 3, Role: domain.RoleJobSeeker, SessionID: "s3"},
	}
	r.Use(Authenticate(auth))
	r.GET("/probe", Require(policy), func(c *gin.Context) {
		p := Principal(c)
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"user_id": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	return r
}

func TestRequire(t *testing.T) {
	tests := []struct {
		name     string
		policy   service.Policy
		setup    func(*http.Request)
		wantCode int
		wantBody string
	}{
		{"public anonymous", service.PublicAccess, func(*http.Request) {}, http.StatusOK, `"user_id":0`},
		{"anonymous on admin route", service.AdminOnly, func(*http.Request) {}, http.StatusUnauthorized, "authentication required"},
		{"invalid token is anonymous", service.AdminOnly, func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized, "authentication required"},
		{"seeker on admin route", service.AdminOnly, func(r *http.Request) { r.Header.Set("Authorization", "Bearer seeker-token") }, http.StatusForbidden, "admin privileges required"},
		{"admin bearer", service.AdminOnly, func(r *http.Request) { r.Header.Set("Authorization", "Bearer admin-token") }, http.StatusOK, `"user_id":1`},
		{"cookie token", service.Authenticated, func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "seeker-token"})
		}, http.StatusOK, `"user_id":3`},
		{"session store failure is not anonymous", service.Authenticated, func(r *http.Request) { r.Header.Set("Authorization", "Bearer store-down") }, http.StatusInternalServerError, "An unexpected error occurred"},
		{"session store failure on public route", service.PublicAccess, func(r *http.Request) { r.Header.Set("Authorization", "Bearer store-down") }, http.StatusInternalServerError, "An unexpected error occurred"},
		{"malformed header", service.Authenticated, func(r *http.Request) { r.Header.Set("Authorization", "Token admin-token") }, http.StatusUnauthorized, "authentication required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.policy)
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			tt.setup(req)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
