package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"rallyround/internal/rbac"
	"rallyround/internal/session"
	"rallyround/internal/utils/logger"

	"github.com/labstack/echo/v4"
)

// GuardedRoute maps a path prefix to the permission it requires.
type GuardedRoute struct {
	Prefix   string
	Resource rbac.Resource
	Action   rbac.Action
}

// GuardConfig is the static route table one app variant mounts. The public
// and admin apps share the guard logic but carry different tables.
type GuardConfig struct {
	SessionCookie     string
	LoginPath         string
	DashboardPath     string
	UnauthorizedPath  string
	ErrorPath         string
	BypassPrefixes    []string
	ProtectedPrefixes []string
	GuardedRoutes     []GuardedRoute
}

var defaultBypassPrefixes = []string{"/_next/", "/api/", "/auth/callback", "/static/"}

// PublicGuardConfig is the route table for the member-facing app.
func PublicGuardConfig(sessionCookie string) GuardConfig {
	return GuardConfig{
		SessionCookie:     sessionCookie,
		LoginPath:         "/login",
		DashboardPath:     "/dashboard",
		UnauthorizedPath:  "/unauthorized",
		ErrorPath:         "/error",
		BypassPrefixes:    defaultBypassPrefixes,
		ProtectedPrefixes: []string{"/dashboard", "/fundraisers", "/teams", "/settings"},
		GuardedRoutes: []GuardedRoute{
			{Prefix: "/fundraisers/create", Resource: rbac.ResourceFundraisers, Action: rbac.ActionCreate},
			{Prefix: "/teams/manage", Resource: rbac.ResourceTeams, Action: rbac.ActionManage},
			{Prefix: "/competitions/create", Resource: rbac.ResourceCompetitions, Action: rbac.ActionCreate},
		},
	}
}

// AdminGuardConfig is the route table for the admin app.
func AdminGuardConfig(sessionCookie string) GuardConfig {
	return GuardConfig{
		SessionCookie:     sessionCookie,
		LoginPath:         "/login",
		DashboardPath:     "/dashboard",
		UnauthorizedPath:  "/admin/unauthorized",
		ErrorPath:         "/error",
		BypassPrefixes:    defaultBypassPrefixes,
		ProtectedPrefixes: []string{"/dashboard", "/admin", "/settings"},
		GuardedRoutes: []GuardedRoute{
			{Prefix: "/admin/users", Resource: rbac.ResourceMembers, Action: rbac.ActionManage},
			{Prefix: "/admin/organizations", Resource: rbac.ResourceOrganizations, Action: rbac.ActionManage},
			{Prefix: "/admin/fundraisers", Resource: rbac.ResourceFundraisers, Action: rbac.ActionManage},
			{Prefix: "/admin/competitions", Resource: rbac.ResourceCompetitions, Action: rbac.ActionManage},
		},
	}
}

// GuardConfigFor selects a preset by app name.
func GuardConfigFor(app, sessionCookie string) GuardConfig {
	if app == "admin" {
		return AdminGuardConfig(sessionCookie)
	}
	return PublicGuardConfig(sessionCookie)
}

// RouteGuard gates every page request: static assets pass untouched,
// protected pages need a session, guarded pages additionally need a
// permission. Every failure ends in a redirect, never a raw error.
type RouteGuard struct {
	cfg      GuardConfig
	sessions session.Store
	authz    *rbac.Authorizer
	members  MembershipSource
	log      *logger.Logger
}

func NewRouteGuard(cfg GuardConfig, sessions session.Store, authz *rbac.Authorizer, members MembershipSource) *RouteGuard {
	return &RouteGuard{
		cfg:      cfg,
		sessions: sessions,
		authz:    authz,
		members:  members,
		log:      logger.New("route_guard"),
	}
}

// isBypassed reports whether the path skips all checks: asset-like paths
// (anything with a file extension) and the bypass prefixes.
func (g *RouteGuard) isBypassed(reqPath string) bool {
	if path.Ext(reqPath) != "" {
		return true
	}
	for _, prefix := range g.cfg.BypassPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}
	return false
}

func (g *RouteGuard) isProtected(reqPath string) bool {
	for _, prefix := range g.cfg.ProtectedPrefixes {
		if strings.HasPrefix(reqPath, prefix) {
			return true
		}
	}
	return false
}

// guardedRoute returns the first table entry whose prefix matches.
func (g *RouteGuard) guardedRoute(reqPath string) (GuardedRoute, bool) {
	for _, route := range g.cfg.GuardedRoutes {
		if strings.HasPrefix(reqPath, route.Prefix) {
			return route, true
		}
	}
	return GuardedRoute{}, false
}

// resolveSession reads the session cookie and resolves it. A lookup error
// is logged and treated as "no session" so a flaky session store degrades
// every protected page to the login redirect instead of surfacing a 500.
func (g *RouteGuard) resolveSession(c echo.Context) *session.Session {
	cookie, err := c.Cookie(g.cfg.SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := g.sessions.GetSession(c.Request().Context(), cookie.Value)
	if err != nil {
		g.log.Warn("Session lookup failed for %s: %v", c.Request().URL.Path, err)
		return nil
	}
	return sess
}

func (g *RouteGuard) redirect(c echo.Context, target string) error {
	return c.Redirect(http.StatusTemporaryRedirect, target)
}

// accessContext collects the facts a rule condition can inspect for a
// guarded page: the caller, the org/team named in the query string, and
// the caller's memberships. A membership lookup failure is logged and
// leaves the lists empty, so conditioned rules simply do not match.
func (g *RouteGuard) accessContext(c echo.Context, sess *session.Session) rbac.AccessContext {
	actx := rbac.AccessContext{
		OrgID:  c.QueryParam("orgId"),
		TeamID: c.QueryParam("teamId"),
	}
	if sess != nil {
		actx.UserID = sess.User.ID
	}
	if actx.UserID == "" || g.members == nil {
		return actx
	}

	ctx := c.Request().Context()
	if orgs, err := g.members.UserOrgIDs(ctx, actx.UserID); err == nil {
		actx.UserOrgs = orgs
	} else {
		g.log.Warn("Org membership lookup failed for %s: %v", actx.UserID, err)
	}
	if teams, err := g.members.UserTeamIDs(ctx, actx.UserID); err == nil {
		actx.UserTeams = teams
	} else {
		g.log.Warn("Team membership lookup failed for %s: %v", actx.UserID, err)
	}
	return actx
}

// Middleware evaluates the per-request decision chain in fixed priority:
// bypass, session resolution, protected-route check, login-with-session
// redirect, permission table, forward.
func (g *RouteGuard) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path

			if g.isBypassed(reqPath) {
				return next(c)
			}

			// A guard without its collaborators cannot decide anything;
			// send the caller to the error page rather than failing open.
			if g.sessions == nil || g.authz == nil {
				return g.redirect(c, g.cfg.ErrorPath)
			}

			sess := g.resolveSession(c)

			if sess == nil && g.isProtected(reqPath) {
				target := g.cfg.LoginPath + "?redirect=" + url.QueryEscape(reqPath)
				return g.redirect(c, target)
			}

			if sess != nil && reqPath == g.cfg.LoginPath {
				target := c.QueryParam("redirect")
				if target == "" {
					target = g.cfg.DashboardPath
				}
				return g.redirect(c, target)
			}

			if route, ok := g.guardedRoute(reqPath); ok {
				actx := g.accessContext(c, sess)
				if !g.authz.HasAccess(c.Request().Context(), actx.UserID, route.Resource, route.Action, actx) {
					g.log.Info("Permission denied: %s needs %s:%s", reqPath, route.Resource, route.Action)
					return g.redirect(c, g.cfg.UnauthorizedPath)
				}
			}

			return next(c)
		}
	}
}
