package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"rallyround/internal/rbac"
	"rallyround/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[string]*session.Session
	err      error
	calls    int
}

func (f *fakeSessionStore) GetSession(ctx context.Context, token string) (*session.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

type stubRoleSource struct {
	roles map[string][]rbac.Role
}

func (s *stubRoleSource) GetUserRoles(ctx context.Context, userID string) ([]rbac.Role, error) {
	return s.roles[userID], nil
}

type fakeMembershipSource struct {
	orgs  map[string][]string
	teams map[string][]string
	err   error
}

func (f *fakeMembershipSource) UserOrgIDs(ctx context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.orgs[userID], nil
}

func (f *fakeMembershipSource) UserTeamIDs(ctx context.Context, userID string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teams[userID], nil
}

func newGuardApp(cfg GuardConfig, store session.Store, roles map[string][]rbac.Role, members MembershipSource) *echo.Echo {
	e := echo.New()
	authz := rbac.NewAuthorizer(rbac.NewEngine(nil), rbac.NewResolver(&stubRoleSource{roles: roles}))
	guard := NewRouteGuard(cfg, store, authz, members)
	e.Use(guard.Middleware())
	e.Any("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func loggedInStore(token, userID string) *fakeSessionStore {
	return &fakeSessionStore{
		sessions: map[string]*session.Session{
			token: {User: session.User{ID: userID, Email: userID + "@example.com"}},
		},
	}
}

func doRequest(e *echo.Echo, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "rr_session", Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestProtectedPathWithoutSessionRedirectsToLogin(t *testing.T) {
	e := newGuardApp(PublicGuardConfig("rr_session"), &fakeSessionStore{}, nil, nil)

	rec := doRequest(e, "/dashboard", "")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fdashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestProtectedPathWithSessionForwards(t *testing.T) {
	store := loggedInStore("tok-1", "user-1")
	e := newGuardApp(PublicGuardConfig("rr_session"), store, map[string][]rbac.Role{
		"user-1": {rbac.RoleMember},
	}, nil)

	rec := doRequest(e, "/dashboard", "tok-1")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWithSessionRedirects(t *testing.T) {
	store := loggedInStore("tok-1", "user-1")
	cfg := PublicGuardConfig("rr_session")

	t.Run("defaults to dashboard", func(t *testing.T) {
		e := newGuardApp(cfg, store, nil, nil)
		rec := doRequest(e, "/login", "tok-1")
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("honors redirect query param", func(t *testing.T) {
		e := newGuardApp(cfg, store, nil, nil)
		rec := doRequest(e, "/login?redirect=/teams", "tok-1")
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/teams", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("login without session forwards", func(t *testing.T) {
		e := newGuardApp(cfg, store, nil, nil)
		rec := doRequest(e, "/login", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBypassedPathsSkipSessionLookup(t *testing.T) {
	store := &fakeSessionStore{}
	e := newGuardApp(PublicGuardConfig("rr_session"), store, nil, nil)

	for _, path := range []string{"/_next/static/chunk.js", "/api/v1/teams", "/auth/callback", "/logo.png"} {
		rec := doRequest(e, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}

	assert.Zero(t, store.calls, "session store must not be consulted for bypassed paths")
}

func TestGuardedPathDeniedRedirectsToUnauthorized(t *testing.T) {
	store := loggedInStore("tok-1", "user-1")
	e := newGuardApp(PublicGuardConfig("rr_session"), store, map[string][]rbac.Role{
		"user-1": {rbac.RoleMember},
	}, nil)

	// Members cannot manage teams.
	rec := doRequest(e, "/teams/manage", "tok-1")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/unauthorized", rec.Header().Get(echo.HeaderLocation))
}

func TestGuardedPathAllowedForwards(t *testing.T) {
	store := loggedInStore("tok-1", "user-1")

	t.Run("member may create fundraisers", func(t *testing.T) {
		e := newGuardApp(PublicGuardConfig("rr_session"), store, map[string][]rbac.Role{
			"user-1": {rbac.RoleMember},
		}, nil)
		rec := doRequest(e, "/fundraisers/create", "tok-1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin passes the admin table", func(t *testing.T) {
		e := newGuardApp(AdminGuardConfig("rr_session"), store, map[string][]rbac.Role{
			"user-1": {rbac.RoleAdmin},
		}, nil)
		rec := doRequest(e, "/admin/users", "tok-1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member fails the admin table", func(t *testing.T) {
		e := newGuardApp(AdminGuardConfig("rr_session"), store, map[string][]rbac.Role{
			"user-1": {rbac.RoleMember},
		}, nil)
		rec := doRequest(e, "/admin/organizations", "tok-1")
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/admin/unauthorized", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestGuardSuppliesMembershipFacts(t *testing.T) {
	store := loggedInStore("tok-1", "user-1")
	roles := map[string][]rbac.Role{"user-1": {rbac.RoleTeamManager}}
	members := &fakeMembershipSource{teams: map[string][]string{"user-1": {"team-1"}}}

	t.Run("team manager reaches their own team page", func(t *testing.T) {
		e := newGuardApp(PublicGuardConfig("rr_session"), store, roles, members)
		rec := doRequest(e, "/teams/manage?teamId=team-1", "tok-1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("another team stays off limits", func(t *testing.T) {
		e := newGuardApp(PublicGuardConfig("rr_session"), store, roles, members)
		rec := doRequest(e, "/teams/manage?teamId=team-2", "tok-1")
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/unauthorized", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("org admin passes the admin table for their org", func(t *testing.T) {
		orgMembers := &fakeMembershipSource{orgs: map[string][]string{"user-1": {"org-1"}}}
		e := newGuardApp(AdminGuardConfig("rr_session"), store, map[string][]rbac.Role{
			"user-1": {rbac.RoleOrgAdmin},
		}, orgMembers)
		rec := doRequest(e, "/admin/users?orgId=org-1", "tok-1")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("membership lookup failure denies conditioned rules", func(t *testing.T) {
		broken := &fakeMembershipSource{err: errors.New("memberships unavailable")}
		e := newGuardApp(PublicGuardConfig("rr_session"), store, roles, broken)
		rec := doRequest(e, "/teams/manage?teamId=team-1", "tok-1")
		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/unauthorized", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestSessionLookupErrorFailsClosed(t *testing.T) {
	store := &fakeSessionStore{err: errors.New("auth provider down")}
	e := newGuardApp(PublicGuardConfig("rr_session"), store, nil, nil)

	rec := doRequest(e, "/dashboard", "tok-1")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login?redirect=%2Fdashboard", rec.Header().Get(echo.HeaderLocation))
}

func TestMissingCollaboratorsRedirectToErrorPage(t *testing.T) {
	e := echo.New()
	guard := NewRouteGuard(PublicGuardConfig("rr_session"), nil, nil, nil)
	e.Use(guard.Middleware())
	e.Any("/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := doRequest(e, "/dashboard", "")

	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/error", rec.Header().Get(echo.HeaderLocation))
}
