package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-manager/constants"
	"hotel-manager/response"
	"hotel-manager/services"
)

// TokenParser resolves a bearer token to its user
type TokenParser interface {
	ParseToken(token string) (*services.UserInfo, error)
}

// AuthMiddleware requires a valid bearer token and, when roles are given, one of those roles
func AuthMiddleware(tokens TokenParser, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		info, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set(constants.ContextUserID, info.UserId)
		c.Set(constants.ContextUserRole, info.Role)
		c.Next()
	}
}

// RoleMiddleware checks the role stored by AuthMiddleware
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextUserRole)
		if role == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !hasRole(role, roles) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
