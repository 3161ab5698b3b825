package jwtmiddleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/pkg/tokens"
)

const (
	// ContextKey holds the verified *tokens.SessionClaims.
	ContextKey = "session_claims"
	// CookieName is the cookie set on login.
	CookieName = "session"
)

// JWTMiddleware verifies the HS256 session token from the session cookie or
// an Authorization: Bearer header. Any failure is a 401.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "cookie:" + CookieName + ",header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return tokens.SessionClaimsFromToken(auth, secret)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized").SetInternal(err)
		},
	})
}

// Claims returns the session claims stored by JWTMiddleware.
func Claims(c echo.Context) (*tokens.SessionClaims, bool) {
	claims, ok := c.Get(ContextKey).(*tokens.SessionClaims)
	return claims, ok && claims != nil
}
