package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"authbase/internal/config"
)

const (
	// CookieName is the cookie carrying the bearer token.
	CookieName = "jwt"
	// logoutSentinel replaces the token on logout.
	logoutSentinel = "loggedout"
	// logoutGrace keeps the sentinel cookie alive just long enough for the
	// browser to overwrite the old one.
	logoutGrace = 10 * time.Second
)

// CookieWriter applies the credential cookie policy. The cookie is always
// httpOnly; in production it is also Secure with SameSite=None so a
// cross-origin frontend can send it, otherwise SameSite=Strict.
type CookieWriter struct {
	secure bool
	maxAge time.Duration
}

// NewCookieWriter derives the cookie policy from configuration. The cookie
// lifetime tracks COOKIE_EXPIRES_DAYS, which the defaults keep equal to the
// token TTL so the cookie never outlives the token.
func NewCookieWriter(cfg *config.Config) *CookieWriter {
	return &CookieWriter{
		secure: cfg.IsProduction(),
		maxAge: time.Duration(cfg.CookieExpiresDays) * 24 * time.Hour,
	}
}

// Set writes the token cookie on the response.
func (w *CookieWriter) Set(c echo.Context, token string) {
	c.SetCookie(w.build(token, w.maxAge))
}

// Clear overwrites the token cookie with a sentinel that expires shortly,
// so the browser discards it. The previously issued token itself stays
// cryptographically valid until its natural expiry.
func (w *CookieWriter) Clear(c echo.Context) {
	c.SetCookie(w.build(logoutSentinel, logoutGrace))
}

func (w *CookieWriter) build(value string, maxAge time.Duration) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if w.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(maxAge),
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   w.secure,
		SameSite: sameSite,
	}
}
