package middleware

import (
	"errors"
	"net/http"
	"strings"

	"orphanage-service/internal/model"
	"orphanage-service/internal/repository"
	"orphanage-service/pkg/jwtutil"
	"orphanage-service/pkg/logger"
	"orphanage-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const currentUserKey = "current_user"

// Auth returns a middleware that validates the bearer token and loads the
// caller's account into the request context.
func Auth(jwt *jwtutil.JWTUtil, users *repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			// Get the Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			// Check if it's a Bearer token
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			// Validate the token
			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				if errors.Is(err, jwtutil.ErrTokenExpired) {
					log.Warn("Expired JWT token")
					prometheus.RecordAuthError("token_expired")
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				log.Error("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Load the caller; a token for a deleted account is useless
			user, err := users.FindByID(claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					log.Warn("Token for unknown user", zap.String("user_id", claims.UserID))
					prometheus.RecordAuthError("user_not_found")
					return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
				}
				log.Error("Failed to load user", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication failed"})
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser retrieves the authenticated caller from the context.
// It is only meaningful behind the Auth middleware.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}

// SetCurrentUser injects the caller into the context; used by tests that
// exercise handlers without the full middleware chain.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}
