package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/ironstore/internal/config"
	"github.com/existflow/ironstore/internal/logger"
	"github.com/existflow/ironstore/internal/model"
	"github.com/existflow/ironstore/internal/store"
	"github.com/existflow/ironstore/internal/token"
)

// Server is the storefront API server
type Server struct {
	cfg    *config.Config
	store  *store.Store
	tokens *token.Service
	echo   *echo.Echo
}

// New creates a server backed by the database in cfg.DatabaseURL
func New(cfg *config.Config) (*Server, error) {
	st, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		tokens: token.New([]byte(cfg.TokenSecret), cfg.TokenLifetime()),
	}

	s.setupEcho()
	return s, nil
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	// Errors that escape the handlers (panics via Recover, unmatched
	// routes) still get the envelope shape.
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		code := codeInternal

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
			switch {
			case status == http.StatusNotFound:
				code = "NOT_FOUND"
			case status < http.StatusInternalServerError:
				code = ""
			}
		}

		if err := fail(c, status, code, message); err != nil {
			logger.Error("error handler failed", logger.F("error", err))
		}
	}

	// Request/response logging
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)

			res := c.Response()
			logger.Info("http request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("duration", time.Since(start).String()),
				logger.F("remote", req.RemoteAddr))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	api := e.Group("/api")

	api.GET("/health", s.handleHealth)

	// Auth endpoints (public)
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.GET("/auth/verify", s.handleVerify, s.authMiddleware)

	// Users (protected)
	api.GET("/users", s.handleListUsers, s.authMiddleware)
	api.GET("/users/:id", s.handleGetUser, s.authMiddleware)

	// Products: reads are public, writes require a valid token
	api.GET("/products", s.handleListProducts)
	api.GET("/products/:id", s.handleGetProduct)
	api.POST("/products", s.handleCreateProduct, s.authMiddleware)
	api.PUT("/products/:id", s.handleUpdateProduct, s.authMiddleware)
	api.DELETE("/products/:id", s.handleDeleteProduct, s.authMiddleware)

	// Admin surface
	api.GET("/admin/stats", s.handleAdminStats, s.authMiddleware, requireRole(model.RoleAdmin))

	// SPA fallback for non-API routes
	if s.cfg.StaticDir != "" {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  s.cfg.StaticDir,
			HTML5: true,
		}))
	}

	s.echo = e
}

func (s *Server) handleHealth(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		logger.Error("health check failed", logger.F("error", err))
		return failWith(c, http.StatusInternalServerError, codeInternal, "database unreachable",
			map[string]string{"database": "down"})
	}

	return respond(c, http.StatusOK, "healthy", map[string]string{"database": "up"})
}

// Close closes the database connection
func (s *Server) Close() error {
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}
