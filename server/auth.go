package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/existflow/ironstore/internal/id"
	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/internal/model"
	"github.com/existflow/ironstore/internal/store"
	"github.com/existflow/ironstore/internal/validate"
)

type authData struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// handleRegister creates a new account and issues a session token
func (s *Server) handleRegister(c echo.Context) error {
	payload, ok := bindValidated(c, registerSchema)
	if !ok {
		return nil
	}

	ctx := c.Request().Context()
	email := validate.Str(payload, "email")

	// Friendly pre-check; the unique index on LOWER(email) is what
	// actually guarantees uniqueness under concurrent registration.
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return fail(c, http.StatusBadRequest, codeDuplicateEmail, "email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		logger.Error("register: email lookup failed", logger.F("error", err))
		return internalError(c)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(validate.Str(payload, "password")), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("register: bcrypt failed", logger.F("error", err))
		return internalError(c)
	}

	// The first account gets the admin role
	role := model.RoleUser
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		logger.Error("register: count failed", logger.F("error", err))
		return internalError(c)
	}
	if count == 0 {
		role = model.RoleAdmin
	}

	user := &model.User{
		ID:           id.New(id.PrefixUser),
		Name:         validate.Str(payload, "name"),
		Email:        email,
		Age:          int(validate.Num(payload, "age")),
		Bio:          validate.Str(payload, "bio"),
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fail(c, http.StatusBadRequest, codeDuplicateEmail, "email already registered")
		}
		logger.Error("register: insert failed", logger.F("error", err))
		return internalError(c)
	}

	tok, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		logger.Error("register: token issue failed", logger.F("error", err))
		return internalError(c)
	}

	logger.Info("user registered", logger.F("user_id", user.ID))
	return respond(c, http.StatusCreated, "user registered", authData{User: user, Token: tok})
}

// handleLogin verifies credentials and issues a session token
func (s *Server) handleLogin(c echo.Context) error {
	payload, ok := bindValidated(c, loginSchema)
	if !ok {
		return nil
	}

	ctx := c.Request().Context()

	user, err := s.store.GetUserByEmail(ctx, validate.Str(payload, "email"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fail(c, http.StatusBadRequest, codeInvalidCredentials, "invalid email or password")
		}
		logger.Error("login: lookup failed", logger.F("error", err))
		return internalError(c)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(validate.Str(payload, "password"))); err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidCredentials, "invalid email or password")
	}

	tok, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		logger.Error("login: token issue failed", logger.F("error", err))
		return internalError(c)
	}

	logger.Info("user logged in", logger.F("user_id", user.ID))
	return respond(c, http.StatusOK, "login successful", authData{User: user, Token: tok})
}

// handleVerify returns the user resolved by the auth middleware
func (s *Server) handleVerify(c echo.Context) error {
	return respond(c, http.StatusOK, "token valid", map[string]interface{}{
		"user": currentUser(c),
	})
}
