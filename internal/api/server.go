package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"ricemap/internal/config"
)

// NewEcho builds the echo instance with the middleware stack for cfg.
func NewEcho(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Debug
	e.JSONSerializer = JSONSerializer{}
	e.Renderer = NewTemplate()

	if cfg.CORS {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}
	return e
}
