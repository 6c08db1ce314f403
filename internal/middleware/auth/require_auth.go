package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
	"shopbackend/pkg/logging"
	"shopbackend/pkg/tokens"
)

const (
	// TokenHeader carries the session token on protected routes.
	TokenHeader = "Auth"
	userKey     = "user"
)

// Middleware gates protected routes: it verifies the session token, resolves
// it to a user and stashes the user on the request context. Every failure is
// reported as a typed 401 response, never propagated.
type Middleware struct {
	Repo   *repo.GormRepo
	Secret []byte
}

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("mw", "require_auth")

		token := c.Request().Header.Get(TokenHeader)
		if token == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"message": "Login first", "success": false,
			})
		}

		userID, err := tokens.UserIDFromToken(token, m.Secret)
		if err != nil {
			l.Warn("auth_failed", "status", 401, "reason", "bad token")
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"message": "Invalid or expired token", "success": false,
			})
		}

		user, err := m.Repo.FindUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				l.Warn("auth_failed", "status", 401, "reason", "unknown user")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "User not found", "success": false,
				})
			}
			l.Error("auth_failed", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Internal server error", "success": false,
			})
		}

		c.Set(userKey, user)
		return next(c)
	}
}

// UserFromContext returns the user resolved by RequireAuth.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userKey).(*models.User)
	return user, ok
}
