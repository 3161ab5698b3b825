package auth

import (
	"errors"

	"github.com/labstack/echo/v4"
)

const (
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

var ErrNoUser = errors.New("no authenticated user")

func setUserContext(c echo.Context, userID uint, sessionID string) {
	c.Set(userIDKey, userID)
	c.Set(sessionIDKey, sessionID)
}

// UserID returns the id stored by RequireSession.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get(userIDKey).(uint)
	if !ok || id == 0 {
		return 0, ErrNoUser
	}
	return id, nil
}

func SessionID(c echo.Context) string {
	s, _ := c.Get(sessionIDKey).(string)
	return s
}
