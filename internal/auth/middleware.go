package auth

import (
	"github.com/labstack/echo/v4"

	"authbase/internal/apperror"
	"authbase/internal/model"
	"authbase/internal/repository"
)

// userContextKey is where the guard stashes the resolved user on the echo context.
const userContextKey = "authbase/current-user"

// SessionGuard decides whether a request carries a valid, currently
// authorized identity. The pipeline is strictly linear and short-circuits
// on the first failing step:
//
//	extract -> verify -> resolve identity -> require active -> attach to context
type SessionGuard struct {
	extractors []TokenExtractor
	tokens     *JWTService
	users      repository.UserRepository
}

// NewSessionGuard builds a guard over the given extraction order.
func NewSessionGuard(extractors []TokenExtractor, tokens *JWTService, users repository.UserRepository) *SessionGuard {
	return &SessionGuard{
		extractors: extractors,
		tokens:     tokens,
		users:      users,
	}
}

// Middleware returns the echo middleware enforcing the guard.
func (g *SessionGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := g.extract(c)
			if !ok {
				return apperror.NewUnauthenticated("no credential provided", nil)
			}

			claims, err := g.tokens.Verify(token)
			if err != nil {
				return err
			}

			user, err := g.users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if apperror.IsKind(err, apperror.NotFound) {
					return apperror.NewUnauthenticated("identity no longer exists", err)
				}
				return err
			}

			if !user.Active {
				return apperror.NewForbidden("account deactivated", nil)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func (g *SessionGuard) extract(c echo.Context) (string, bool) {
	for _, extract := range g.extractors {
		if token, ok := extract(c); ok {
			return token, true
		}
	}
	return "", false
}

// CurrentUser returns the user resolved by the session guard for this request.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
