package registry

import (
	"github.com/labstack/echo/v4"

	"rallyround/internal/api/controllers"
	"rallyround/internal/api/middleware"
	"rallyround/internal/models"
	"rallyround/internal/rbac"
	"rallyround/internal/services"

	"gorm.io/gorm"
)

// registerCRUD wires the generic controller for one model under path, with
// every route gated on the matching rbac action for the resource.
func registerCRUD[T any](g *echo.Group, db *gorm.DB, authz *rbac.Authorizer, path string, resource rbac.Resource, model T) {
	service := services.NewBaseService(db, model)
	controller := controllers.NewBaseController(service)
	group := g.Group(path)

	read := middleware.RequirePermission(db, authz, resource, rbac.ActionRead)
	group.GET("", controller.List, read)
	group.GET("/:id", controller.Get, read)

	group.POST("", controller.Create, middleware.RequirePermission(db, authz, resource, rbac.ActionCreate))
	group.PUT("/:id", controller.Update, middleware.RequirePermission(db, authz, resource, rbac.ActionUpdate))
	group.DELETE("/:id", controller.Delete, middleware.RequirePermission(db, authz, resource, rbac.ActionDelete))
}

// RegisterPublicRoutes wires the endpoints visitors reach without a token.
// The donate flow is the only write the API accepts anonymously.
func RegisterPublicRoutes(g *echo.Group, db *gorm.DB) {
	donationService := services.NewBaseService(db, models.Donation{})
	donationController := controllers.NewBaseController(donationService)
	g.POST("/donations", donationController.Create)
}

// RegisterCRUDRoutes registers CRUD routes for all models
func RegisterCRUDRoutes(g *echo.Group, db *gorm.DB, authz *rbac.Authorizer) {
	registerCRUD(g, db, authz, "/organizations", rbac.ResourceOrganizations, models.Organization{})
	registerCRUD(g, db, authz, "/teams", rbac.ResourceTeams, models.Team{})
	registerCRUD(g, db, authz, "/events", rbac.ResourceEvents, models.Event{})
	registerCRUD(g, db, authz, "/competitions", rbac.ResourceCompetitions, models.Competition{})
	registerCRUD(g, db, authz, "/fundraisers", rbac.ResourceFundraisers, models.Fundraiser{})
	registerCRUD(g, db, authz, "/members", rbac.ResourceMembers, models.OrgMembership{})

	// Team invitations ride the teams permission.
	inviteService := services.NewBaseService(db, models.TeamInvite{})
	inviteController := controllers.NewBaseController(inviteService)
	inviteGroup := g.Group("/team-invitations")
	inviteGroup.GET("", inviteController.List, middleware.RequirePermission(db, authz, rbac.ResourceTeams, rbac.ActionRead))
	inviteGroup.POST("", inviteController.Create, middleware.RequirePermission(db, authz, rbac.ResourceTeams, rbac.ActionManage))
	inviteGroup.DELETE("/:id", inviteController.Delete, middleware.RequirePermission(db, authz, rbac.ResourceTeams, rbac.ActionManage))

	// Donation writes come in through the public donate flow; listing them
	// needs the fundraisers permission.
	donationService := services.NewBaseService(db, models.Donation{})
	donationController := controllers.NewBaseController(donationService)
	g.GET("/donations", donationController.List, middleware.RequirePermission(db, authz, rbac.ResourceFundraisers, rbac.ActionRead))

	// Media is readable by anyone who can read fundraisers.
	mediaService := services.NewBaseService(db, models.Media{})
	mediaController := controllers.NewBaseController(mediaService)
	mediaGroup := g.Group("/media")
	mediaGroup.GET("", mediaController.List, middleware.RequirePermission(db, authz, rbac.ResourceFundraisers, rbac.ActionRead))
	mediaGroup.GET("/:id", mediaController.Get, middleware.RequirePermission(db, authz, rbac.ResourceFundraisers, rbac.ActionRead))
}
