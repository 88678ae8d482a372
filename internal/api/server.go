package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	apimiddleware "rallyround/internal/api/middleware"
	"rallyround/internal/api/validator"
	"rallyround/internal/config"
	"rallyround/internal/models"
	"rallyround/internal/rbac"
	"rallyround/internal/routes"
	"rallyround/internal/session"

	console "rallyround/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	echo   *echo.Echo
	config *config.Config
	db     *gorm.DB
	authz  *rbac.Authorizer
}

var log = console.New("API-Server")

// NewServer @title RallyRound API
// @version 1.0
// @description This is the API documentation for the RallyRound project.
// @host localhost:8080
// @BasePath /api/v1
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	e := echo.New()

	// Create custom validator
	e.Validator = validator.NewValidator()

	// Configure middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentLength},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(20))))

	// Custom error handler
	e.HTTPErrorHandler = customHTTPErrorHandler

	// Access rules and role lookup shared by the page guard and the API
	// permission middleware.
	authz := rbac.NewAuthorizer(
		rbac.NewEngine(nil),
		rbac.NewResolver(rbac.NewGormRoleStore(db)),
	)

	s := &Server{
		echo:   e,
		config: cfg,
		db:     db,
		authz:  authz,
	}

	if err := models.CreateSuperAdminFromEnv(db); err != nil {
		log.Warn("Warning: Failed to create super admin: %v", err)
	} else {
		log.Success("Successfully created super admin")
	}

	// Page-level guard: bypass rules, login redirects and the guarded
	// route table for the configured app surface.
	sessions := session.NewGormStore(db, cfg.JWT.Secret)
	guardCfg := apimiddleware.GuardConfigFor(cfg.Guard.App, cfg.Guard.SessionCookie)
	e.Use(apimiddleware.NewRouteGuard(guardCfg, sessions, authz, apimiddleware.NewGormMembershipSource(db)).Middleware())

	routes.SetupAuthRoutes(s.echo, s.db, s.config, s.authz)

	// Register routes
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Health check endpoint
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Custom HTTP error handler
func customHTTPErrorHandler(err error, c echo.Context) {
	var (
		code    = http.StatusInternalServerError
		message interface{}
	)

	switch e := err.(type) {
	case *echo.HTTPError:
		code = e.Code
		message = e.Message
	case validator.ValidationErrors:
		code = http.StatusBadRequest
		message = formatValidationErrors(e)
	default:
		message = http.StatusText(code)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				"error": message,
				"code":  code,
				"time":  time.Now().Format(time.RFC3339),
			})
		}
		if err != nil {
			c.Echo().Logger.Error(err)
		}
	}
}

// formatValidationErrors formats validation errors into a map
func formatValidationErrors(errors validator.ValidationErrors) map[string]string {
	errMap := make(map[string]string)
	for _, err := range errors {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "url":
			errMap[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "gt":
			errMap[field] = fmt.Sprintf("%s must be greater than %s", field, param)
		case "required_if":
			errMap[field] = fmt.Sprintf("%s is required when %s", field, param)
		case "json":
			errMap[field] = fmt.Sprintf("%s must be valid JSON", field)
		case "user_role":
			errMap[field] = fmt.Sprintf("%s must be one of: admin, org_admin, team_manager, member", field)
		case "invite_status":
			errMap[field] = fmt.Sprintf("%s must be one of: PENDING, ACCEPTED, REJECTED", field)
		case "event_status":
			errMap[field] = fmt.Sprintf("%s must be one of: DRAFT, SCHEDULED, CANCELLED, COMPLETED", field)
		case "fundraiser_status":
			errMap[field] = fmt.Sprintf("%s must be one of: DRAFT, ACTIVE, COMPLETED, CANCELLED", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
