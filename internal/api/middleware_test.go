package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"t3chadvance/coaching-app/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, userID string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func newProtectedRouter(roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("", AuthMiddleware(testSecret))
	if len(roles) > 0 {
		group.Use(RoleMiddleware(roles...))
	}
	group.GET("/secret", func(c *gin.Context) {
		userID, _ := getUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"expired token", "Bearer " + "", http.StatusUnauthorized}, // filled below
		{"valid token", "Bearer " + "", http.StatusOK},             // filled below
	}

	for i := range tests {
		switch tests[i].name {
		case "expired token":
			tests[i].header = "Bearer " + signTestToken(t, "u1", domain.RoleUser, -time.Minute)
		case "valid token":
			tests[i].header = "Bearer " + signTestToken(t, "u1", domain.RoleUser, time.Hour)
		}
	}

	router := newProtectedRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	claims := &jwtClaims{
		UserID: "u1",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	router := newProtectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		allowed  []domain.Role
		wantCode int
	}{
		{"super admin passes super admin gate", domain.RoleSuperAdmin, []domain.Role{domain.RoleSuperAdmin}, http.StatusOK},
		{"admin blocked by super admin gate", domain.RoleAdmin, []domain.Role{domain.RoleSuperAdmin}, http.StatusForbidden},
		{"user blocked by admin gate", domain.RoleUser, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}, http.StatusForbidden},
		{"admin passes admin gate", domain.RoleAdmin, []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(tt.allowed...)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secret", nil)
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u1", tt.role, time.Hour))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
