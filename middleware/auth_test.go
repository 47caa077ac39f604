package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func authedRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newAuthRouter(secret string, adminOnly, adminAnyUser bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(secret)}
	if adminOnly {
		handlers = append(handlers, AdminOnly(adminAnyUser))
	}
	grp := r.Group("", handlers...)
	grp.GET("/whoami", func(c *gin.Context) {
		id, err := GetUserID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": id.String()})
	})
	return r
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, false, false)
	w := authedRequest(r, token)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newAuthRouter(testSecret, false, false)
	w := authedRequest(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, false, false)
	w := authedRequest(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, false, false)
	w := authedRequest(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestAuthMiddlewareNonUUIDSubject(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, false, false)
	w := authedRequest(r, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-UUID subject, got %d", w.Code)
	}
}

func TestAdminOnlyRequiresRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, true, false)
	w := authedRequest(r, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", w.Code)
	}
}

func TestAdminOnlyAcceptsAdminRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, true, false)
	w := authedRequest(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin role, got %d", w.Code)
	}
}

func TestAdminOnlyLegacyToggle(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	r := newAuthRouter(testSecret, true, true)
	w := authedRequest(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected legacy toggle to bypass the role check, got %d", w.Code)
	}
}
