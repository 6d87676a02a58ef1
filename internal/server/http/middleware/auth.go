package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edumart/edumart/internal/domain/model"
	pkgAuth "github.com/edumart/edumart/internal/pkg/auth"
)

const (
	// ClaimsContextKey is a gin context key for verified token claims.
	ClaimsContextKey = "authClaims"
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "edumart_token"
)

// AuthRequired verifies the bearer token before accessing handler.
func AuthRequired(strategy pkgAuth.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := strategy.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Set(UserIDContextKey, claims.UserID)
		c.Next()
	}
}

// EducatorRequired rejects requests whose token does not carry the
// educator role. Must run after AuthRequired.
func EducatorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ClaimsContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, ok := val.(*pkgAuth.Claims)
		if !ok || claims.Role != string(model.RoleEducator) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}
