package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/identity"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/response"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyClaims is the Gin context key for student JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyAdmin is the Gin context key for the authenticated admin.
	ContextKeyAdmin = "admin"
)

// RequireStudentJWT validates a student JWT from the Authorization header.
func RequireStudentJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if claims.TokenType != service.TokenTypeStudent {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireAdmin validates an identity-provider token from the Authorization
// header and requires the admin flag on the parsed account.
func RequireAdmin(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		admin, err := authService.ValidateAdminToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if !admin.IsAdmin {
			response.AbortFail(c, http.StatusForbidden, response.ErrAdminAccessOnly)
			return
		}

		c.Set(ContextKeyAdmin, admin)
		c.Next()
	}
}

// GetClaims retrieves student JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetAdmin retrieves the authenticated admin from the Gin context.
func GetAdmin(c *gin.Context) *identity.Admin {
	val, exists := c.Get(ContextKeyAdmin)
	if !exists {
		return nil
	}
	admin, ok := val.(*identity.Admin)
	if !ok {
		return nil
	}
	return admin
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1], nil
		}
	}

	// Fallback for WebSocket upgrades which cannot send headers.
	if token := c.Query("token"); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("authorization header or token query required")
}
