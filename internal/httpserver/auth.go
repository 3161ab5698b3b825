package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/internal/logging"
	authmw "github.com/Skotchmaster/shop_demo/internal/middleware/auth"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/internal/transport"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieSecure bool
}

// Login has a single failure answer: 401 "Invalid credentials", whether the
// body is malformed, a field is missing or the credentials do not match.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 401, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("login_error", "status", 401, "reason", "missing fields", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			l.Warn("login_error", "status", 401, "reason", "bad credentials", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		}
		l.Error("login_error", "status", 500, "reason", "cannot open session", "error", err)
		return internalError()
	}

	c.SetCookie(CreateCookie(res.Token, res.ExpiresAt, h.CookieSecure))
	l.Info("login_success", "user_id", res.UserID)
	return message(c, "Logged in successfully")
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if err := h.Svc.Logout(ctx, authmw.SessionID(c)); err != nil {
		l.Error("logout_error", "status", 500, "reason", "cannot revoke session", "error", err)
		return internalError()
	}

	c.SetCookie(DeleteCookie(h.CookieSecure))
	l.Info("logout_success")
	return message(c, "Logout successfully")
}
