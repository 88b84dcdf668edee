package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"authbase/internal/apperror"
)

// mutatingMethods are the HTTP methods subject to the origin check.
var mutatingMethods = map[string]bool{
	echo.POST:   true,
	echo.PUT:    true,
	echo.PATCH:  true,
	echo.DELETE: true,
}

// OriginGuard rejects state-mutating cross-origin requests whose Origin (or,
// failing that, Referer) does not match the allow-listed frontend origin.
// Active only when enabled, i.e. in production; read-only methods always pass.
func OriginGuard(allowedOrigin string, enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled || !mutatingMethods[c.Request().Method] {
				return next(c)
			}

			if origin := c.Request().Header.Get("Origin"); origin != "" {
				if origin == allowedOrigin {
					return next(c)
				}
				return apperror.NewForbidden("origin validation failed", nil)
			}

			// Referer carries a path, so a prefix match is the best we can do.
			if referer := c.Request().Header.Get("Referer"); referer != "" {
				if strings.HasPrefix(referer, allowedOrigin+"/") || referer == allowedOrigin {
					return next(c)
				}
			}
			return apperror.NewForbidden("origin validation failed", nil)
		}
	}
}
