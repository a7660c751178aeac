package middleware

import (
	"net/http"
	"strings"

	"ecommerce-backend/internal/config"
	"ecommerce-backend/internal/user/model"
	"ecommerce-backend/internal/user/repository"
	"ecommerce-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const CurrentUserKey = "currentUser"

// AuthMiddleware authenticates a request from its session token. The token
// only proves identity for a time window; the user record is always loaded
// fresh so role changes and deletions take effect immediately.
func AuthMiddleware(cfg *config.Config, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cfg.Cookie.Name)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Please log in to access this resource")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// extractToken reads the session token from the cookie carrier, falling back
// to an Authorization bearer header for non-browser clients.
func extractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*model.User)
	return user, ok
}
