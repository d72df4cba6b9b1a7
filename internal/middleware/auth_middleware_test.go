package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appauth "github.com/eakgun/sims-backend/internal/app/auth"
	"github.com/eakgun/sims-backend/internal/app/models"
	pkgauth "github.com/eakgun/sims-backend/internal/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *pkgauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:     "middleware-test-secret",
		TokenExpiry:   time.Hour,
		TokenIssuer:   "sims.test",
		TokenAudience: "sims.test",
	})
	authMw := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("", authMw.JWTAuth())
	protected.GET("/admin-only", authMw.RequireOperation(appauth.OpStudentList), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, jwtService
}

func tokenFor(t *testing.T, jwtService *pkgauth.JWTService, role models.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateToken(&models.User{ID: 7, Username: "caller", Role: role})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func TestJWTAuthAndPolicy(t *testing.T) {
	router, jwtService := newTestRouter(t)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"admin allowed", "Bearer " + tokenFor(t, jwtService, models.RoleAdmin), http.StatusOK},
		{"student forbidden", "Bearer " + tokenFor(t, jwtService, models.RoleStudent), http.StatusForbidden},
		{"teacher forbidden", "Bearer " + tokenFor(t, jwtService, models.RoleTeacher), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	expiredService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:     "middleware-test-secret",
		TokenExpiry:   -time.Minute,
		TokenIssuer:   "sims.test",
		TokenAudience: "sims.test",
	})
	token := tokenFor(t, expiredService, models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
