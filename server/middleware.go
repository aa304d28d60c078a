package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironstore/internal/model"
	"github.com/existflow/ironstore/internal/store"
)

const contextUserKey = "auth_user"

// authMiddleware resolves the bearer token to a user record.
// The checks run in order: token presence, signature/expiry, user lookup.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return fail(c, http.StatusUnauthorized, codeTokenMissing, "authorization required")
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		if raw == auth || raw == "" {
			return fail(c, http.StatusUnauthorized, codeTokenMissing, "invalid authorization format")
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			return fail(c, http.StatusForbidden, codeTokenInvalid, "invalid or expired token")
		}

		user, err := s.store.GetUserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fail(c, http.StatusUnauthorized, codeAuthUserNotFound, "user no longer exists")
			}
			return internalError(c)
		}

		c.Set(contextUserKey, user)
		return next(c)
	}
}

// requireRole gates a route on the authenticated user's role.
// Must run after authMiddleware.
func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil || user.Role != role {
				return fail(c, http.StatusForbidden, codeForbidden, "insufficient privileges")
			}
			return next(c)
		}
	}
}

// currentUser returns the user attached by authMiddleware, or nil
func currentUser(c echo.Context) *model.User {
	user, _ := c.Get(contextUserKey).(*model.User)
	return user
}
