package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/internal/store"
)

// handleListUsers returns all users
func (s *Server) handleListUsers(c echo.Context) error {
	users, err := s.store.ListUsers(c.Request().Context())
	if err != nil {
		logger.Error("list users failed", logger.F("error", err))
		return internalError(c)
	}

	return respond(c, http.StatusOK, "users retrieved", map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}

// handleGetUser returns a single user by id
func (s *Server) handleGetUser(c echo.Context) error {
	user, err := s.store.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusNotFound, codeUserNotFound, "user not found")
		}
		logger.Error("get user failed", logger.F("error", err))
		return internalError(c)
	}

	return respond(c, http.StatusOK, "user retrieved", map[string]interface{}{
		"user": user,
	})
}

// handleAdminStats reports row counts; admin role required
func (s *Server) handleAdminStats(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := s.store.CountUsers(ctx)
	if err != nil {
		logger.Error("stats: count users failed", logger.F("error", err))
		return internalError(c)
	}

	products, err := s.store.CountProducts(ctx)
	if err != nil {
		logger.Error("stats: count products failed", logger.F("error", err))
		return internalError(c)
	}

	return respond(c, http.StatusOK, "stats retrieved", map[string]interface{}{
		"users":    users,
		"products": products,
	})
}
