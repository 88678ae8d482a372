package middleware

import (
	"net/http"
	"strings"
	"time"

	"rallyround/internal/db"
	"rallyround/internal/models"
	"rallyround/internal/utils"
	"rallyround/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

var log = logger.New("auth_middleware")

// AuthMiddleware authenticates API requests with a Bearer token. Page
// routes go through the RouteGuard instead; this middleware is for the
// JSON API, where failures are HTTP errors rather than redirects.
type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			return m.validateJWT(c, tokenParts[1], next)
		}
	}
}

func (m *AuthMiddleware) validateJWT(c echo.Context, tokenString string, next echo.HandlerFunc) error {
	claims, err := utils.ParseJWTWithSecret(tokenString, m.jwtSecret)
	if err != nil {
		log.Error("Error parsing JWT token", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token has expired")
	}

	// Verify the login is still active
	var sess models.AuthSession
	if err := db.DB.Where("user_id = ? AND token = ? AND is_deleted = false",
		claims.UserID, tokenString).First(&sess).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session not found")
	}

	// Verify user exists
	var user models.User
	if err := db.DB.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	}

	// Set context values
	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
	c.Set("roles", claims.Roles)

	return next(c)
}

// GetUserID Helper functions to get values from context
func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

func GetEmail(c echo.Context) string {
	if email, ok := c.Get("email").(string); ok {
		return email
	}
	return ""
}

func GetRoles(c echo.Context) []string {
	if roles, ok := c.Get("roles").([]string); ok {
		return roles
	}
	return nil
}
