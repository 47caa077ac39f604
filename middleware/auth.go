package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "canteen-backend/common/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	UserContextKey = "userID"
	RoleContextKey = "role"
)

// AuthMiddleware verifies the Bearer token issued by the auth provider and
// injects the verified user ID and role into the request context. The core
// trusts this identity completely; no ambient session state is read anywhere
// else.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := parseToken(tokenStr, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}

		sub, _ := claims["sub"].(string)
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.ErrUnauthorized)
			return
		}

		role, _ := claims["role"].(string)

		c.Set(UserContextKey, userID)
		c.Set(RoleContextKey, role)
		c.Next()
	}
}

// AdminOnly requires the elevated capability. When adminAnyUser is set the
// legacy behavior is restored and every authenticated user passes.
func AdminOnly(adminAnyUser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAnyUser {
			c.Next()
			return
		}

		role, exists := c.Get(RoleContextKey)
		roleStr, ok := role.(string)
		if !exists || !ok || roleStr != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, apperrors.ErrForbidden.WithMessage("Admin access required"))
			return
		}
		c.Next()
	}
}

// GetUserID returns the verified user ID injected by AuthMiddleware.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(uuid.UUID); ok && id != uuid.Nil {
			return id, nil
		}
	}
	return uuid.Nil, errors.New("user ID not found in context")
}

func parseToken(tokenStr string, key []byte) (jwt.MapClaims, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
