package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"persona-quiz/internal/service"
)

func protectedRouter(jwtSvc *service.JWTService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(jwtSvc), RequireRole(service.RoleAdmin), func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok || claims.Subject != "ops" {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtSvc := service.NewJWTService("secret", 15*time.Minute)
	adminToken, err := jwtSvc.IssueToken("ops", service.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	viewerToken, err := jwtSvc.IssueToken("ops", "viewer")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name   string
		svc    *service.JWTService
		header string
		want   int
	}{
		{"valid admin token", jwtSvc, "Bearer " + adminToken, http.StatusOK},
		{"missing token", jwtSvc, "", http.StatusUnauthorized},
		{"wrong scheme", jwtSvc, "Basic abc", http.StatusUnauthorized},
		{"garbage token", jwtSvc, "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong role", jwtSvc, "Bearer " + viewerToken, http.StatusForbidden},
		{"jwt not configured", nil, "Bearer " + adminToken, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protectedRouter(tc.svc).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
