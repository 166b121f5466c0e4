package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cinecache/cinecache/database/model"
	"github.com/cinecache/cinecache/logger"
	"github.com/cinecache/cinecache/web/service"
)

// ContextUser is the gin context key holding the authenticated user.
const ContextUser = "login_user"

// AuthRequired verifies the bearer token and resolves its subject to an
// existing user, which is stored in the request context. Every failure mode
// (missing header, malformed token, bad signature, expiry, deleted subject)
// answers 401; logs carry the distinction.
func AuthRequired(authService *service.AuthService) gin.HandlerFunc {
	userService := service.UserService{}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		username, err := authService.VerifyToken(parts[1])
		if err != nil {
			logger.Debug("token rejected:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := userService.GetUserByUsername(username)
		if err != nil {
			logger.Debugf("token subject %q no longer exists", username)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireRole rejects authenticated users lacking all of the listed roles.
// Must run after AuthRequired.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetLoginUser(c)
		if user == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, role := range roles {
			if user.HasRole(role) {
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// GetLoginUser returns the user resolved by AuthRequired, or nil.
func GetLoginUser(c *gin.Context) *model.User {
	if obj, exists := c.Get(ContextUser); exists {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}
