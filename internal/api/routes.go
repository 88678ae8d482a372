package api

import (
	"net/http"

	"rallyround/internal/api/middleware"
	"rallyround/internal/api/registry"
	"rallyround/internal/routes"

	_ "rallyround/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "RallyRound API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Visitor-facing endpoints, no token required
	registry.RegisterPublicRoutes(s.echo.Group("/api/v1/public"), s.db)

	// API v1 group
	api := s.echo.Group("/api/v1")
	auth := middleware.NewAuthMiddleware(s.config.JWT.Secret)
	api.Use(auth.Middleware())

	// CRUD surface for the community models, each route gated by the
	// matching resource and action.
	registry.RegisterCRUDRoutes(api, s.db, s.authz)

	routes.SetupUploadRoutes(api)
}
