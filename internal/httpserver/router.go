package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_demo/internal/jwtmiddleware"
	authmw "github.com/Skotchmaster/shop_demo/internal/middleware/auth"
	"github.com/Skotchmaster/shop_demo/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/shop_demo/pkg/middleware/logging"
)

type Deps struct {
	ProductHandler *ProductHTTP
	AuthHandler    *AuthHTTP
	CartHandler    *CartHTTP
	HealthHandler  *HealthHTTP
	SessionSecret  []byte
	CookieSecure   bool

	// CSRFProtect enables the double submit check for cookie sessions.
	CSRFProtect bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "Hello World") })
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)

	requireSession := []echo.MiddlewareFunc{
		jwtmiddleware.JWTMiddleware(d.SessionSecret),
		authmw.RequireSession(d.AuthHandler.Svc),
	}

	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout, requireSession...)

	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("/add", d.ProductHandler.AddProduct, requireSession...)
	products.PUT("/update/:id", d.ProductHandler.UpdateProduct, requireSession...)
	products.DELETE("/delete/:id", d.ProductHandler.DeleteProduct, requireSession...)

	cart := api.Group("/cart", requireSession...)
	cart.GET("", d.CartHandler.ViewCart)
	cart.POST("/add/:productId", d.CartHandler.AddToCart)
	cart.DELETE("/remove/:productId", d.CartHandler.RemoveFromCart)
	cart.POST("/checkout", d.CartHandler.Checkout)
}

// NewEcho builds the echo instance with the common middleware chain and all routes.
func NewEcho(d *Deps, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	if d.CSRFProtect {
		e.Use(csrf.Middleware(csrf.Config{
			SessionCookie: jwtmiddleware.CookieName,
			Secure:        d.CookieSecure,
		}))
	}

	Register(e, d)
	return e
}
