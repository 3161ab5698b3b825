package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/internal/jwtmiddleware"
	"github.com/Skotchmaster/shop_demo/internal/logging"
)

// Authenticator is satisfied by *service.AuthService.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (uint, error)
}

var errSubjectMismatch = errors.New("token subject does not own the session")

// RequireSession must run after jwtmiddleware.JWTMiddleware. It checks the
// server-side session behind the token and stores the user on the context.
func RequireSession(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("middleware", "require_session")

			claims, ok := jwtmiddleware.Claims(c)
			if !ok {
				l.Warn("auth_error", "status", 401, "reason", "no token claims")
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			tokenUser, err := claims.UserID()
			if err != nil {
				l.Warn("auth_error", "status", 401, "reason", "bad subject", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			userID, err := auth.Authenticate(ctx, claims.ID)
			if err != nil {
				l.Warn("auth_error", "status", 401, "reason", "session rejected", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if userID != tokenUser {
				l.Warn("auth_error", "status", 401, "reason", "subject mismatch", "error", errSubjectMismatch)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			setUserContext(c, userID, claims.ID)
			return next(c)
		}
	}
}
