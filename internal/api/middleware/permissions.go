package middleware

import (
	"net/http"

	"rallyround/internal/models"
	"rallyround/internal/rbac"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// accessContext assembles the request-scoped facts a rule condition can
// inspect: the caller, the org/team named in the route, and the caller's
// own memberships.
func accessContext(c echo.Context, gdb *gorm.DB) rbac.AccessContext {
	actx := rbac.AccessContext{
		UserID: GetUserID(c),
		OrgID:  c.Param("orgId"),
		TeamID: c.Param("teamId"),
	}
	if actx.OrgID == "" {
		actx.OrgID = c.QueryParam("orgId")
	}
	if actx.TeamID == "" {
		actx.TeamID = c.QueryParam("teamId")
	}

	if actx.UserID != "" && gdb != nil {
		if orgs, err := models.UserOrgIDs(gdb, actx.UserID); err == nil {
			actx.UserOrgs = orgs
		}
		if teams, err := models.UserTeamIDs(gdb, actx.UserID); err == nil {
			actx.UserTeams = teams
		}
	}

	return actx
}

// RequirePermission gates an API route group on one rbac permission. The
// API answers permission failures with a 403 body; only page routes get
// the guard's redirect treatment.
func RequirePermission(gdb *gorm.DB, authz *rbac.Authorizer, resource rbac.Resource, action rbac.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := GetUserID(c)
			actx := accessContext(c, gdb)

			if !authz.HasAccess(c.Request().Context(), userID, resource, action, actx) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}

			return next(c)
		}
	}
}
