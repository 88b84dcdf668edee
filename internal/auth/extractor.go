package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenExtractor pulls a candidate token from a request. It reports false
// when its source carries no credential at all.
type TokenExtractor func(c echo.Context) (string, bool)

// CookieExtractor reads the token from the named cookie.
func CookieExtractor(name string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		cookie, err := c.Cookie(name)
		if err != nil || cookie.Value == "" {
			return "", false
		}
		return cookie.Value, true
	}
}

// BearerExtractor reads the token from an "Authorization: Bearer <token>" header.
func BearerExtractor() TokenExtractor {
	return func(c echo.Context) (string, bool) {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return "", false
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
}

// DefaultExtractors is the standard extraction order: cookie first, then the
// Authorization header. First match wins.
func DefaultExtractors() []TokenExtractor {
	return []TokenExtractor{
		CookieExtractor(CookieName),
		BearerExtractor(),
	}
}
