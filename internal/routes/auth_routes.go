package routes

import (
	"rallyround/internal/api/middleware"
	"rallyround/internal/config"
	"rallyround/internal/handlers"
	"rallyround/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func SetupAuthRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, authz *rbac.Authorizer) {
	authHandler := handlers.NewAuthHandler(db, cfg.Guard.SessionCookie)

	base := e.Group("/api/v1")

	// Public auth routes group
	auth := base.Group("/auth")
	users := base.Group("/users")

	// Public routes (no auth required)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	auth.POST("/accept/:code", authHandler.AcceptInvite)
	auth.POST("/password-reset", authHandler.RequestPasswordReset)
	auth.POST("/password-reset/verify", authHandler.VerifyResetCode)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected user routes (require authentication)
	protected := users.Group("")
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	protected.Use(authMiddleware.Middleware())

	protected.POST("/invite", authHandler.InviteUser,
		middleware.RequirePermission(db, authz, rbac.ResourceMembers, rbac.ActionManage))
	protected.DELETE("/invite/:id", authHandler.DeleteInvite)

	// User management requires the members manage permission
	manage := protected.Group("")
	manage.Use(middleware.RequirePermission(db, authz, rbac.ResourceMembers, rbac.ActionManage))
	manage.GET("", authHandler.ListUsers)
	manage.GET("/:id", authHandler.GetUser)
	manage.PUT("/:id", authHandler.UpdateUser)
	manage.DELETE("/:id", authHandler.DeleteUser)

	protected.GET("/me", authHandler.GetMe) // accessible to any authenticated user
}
