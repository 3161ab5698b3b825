package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/internal/jwtmiddleware"
	"github.com/Skotchmaster/shop_demo/internal/transport"
)

var errBadID = errors.New("id is not a positive integer")

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errBadID
	}
	return uint(v), nil
}

func message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: msg})
}

func internalError() error {
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func CreateCookie(value string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     jwtmiddleware.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func DeleteCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     jwtmiddleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
