package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext(setup func(*http.Request)) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestCookieExtractor(t *testing.T) {
	extract := CookieExtractor(CookieName)

	c := newTestContext(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "tok-123"})
	})
	token, ok := extract(c)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", token)

	_, ok = extract(newTestContext(nil))
	assert.False(t, ok)

	c = newTestContext(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "other", Value: "tok-123"})
	})
	_, ok = extract(c)
	assert.False(t, ok)
}

func TestBearerExtractor(t *testing.T) {
	extract := BearerExtractor()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"bearer token", "Bearer tok-123", "tok-123", true},
		{"case insensitive scheme", "bearer tok-123", "tok-123", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic dXNlcg==", "", false},
		{"scheme without token", "Bearer ", "", false},
		{"bare token", "tok-123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(func(r *http.Request) {
				if tt.header != "" {
					r.Header.Set(echo.HeaderAuthorization, tt.header)
				}
			})
			token, ok := extract(c)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestDefaultExtractors_CookieWins(t *testing.T) {
	guard := &SessionGuard{extractors: DefaultExtractors()}

	c := newTestContext(func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
		r.Header.Set(echo.HeaderAuthorization, "Bearer from-header")
	})
	token, ok := guard.extract(c)
	assert.True(t, ok)
	assert.Equal(t, "from-cookie", token)

	// Header is the fallback when the cookie is absent.
	c = newTestContext(func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer from-header")
	})
	token, ok = guard.extract(c)
	assert.True(t, ok)
	assert.Equal(t, "from-header", token)
}
