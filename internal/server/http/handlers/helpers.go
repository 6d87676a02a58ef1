package handlers

import (
	"github.com/gin-gonic/gin"

	pkgAuth "github.com/edumart/edumart/internal/pkg/auth"
	"github.com/edumart/edumart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

// CurrentClaims extracts verified token claims from context.
func CurrentClaims(c *gin.Context) *pkgAuth.Claims {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, _ := val.(*pkgAuth.Claims)
	return claims
}
