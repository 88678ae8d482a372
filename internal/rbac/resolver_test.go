package rbac

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleSource struct {
	roles []Role
	err   error
	calls int
}

func (f *fakeRoleSource) GetUserRoles(ctx context.Context, userID string) ([]Role, error) {
	f.calls++
	return f.roles, f.err
}

func TestResolveEmptyUserIDSkipsLookup(t *testing.T) {
	source := &fakeRoleSource{roles: []Role{RoleAdmin}}
	resolver := NewResolver(source)

	res := resolver.Resolve(context.Background(), "")

	assert.Equal(t, []Role{RoleAnonymous}, res.Roles)
	assert.Equal(t, DegradedToAnonymous, res.Outcome)
	assert.Zero(t, source.calls, "store must not be consulted for an empty user id")
}

func TestResolveStoreErrorDegradesToAnonymous(t *testing.T) {
	source := &fakeRoleSource{err: errors.New("connection refused")}
	resolver := NewResolver(source)

	res := resolver.Resolve(context.Background(), "user-1")

	assert.Equal(t, []Role{RoleAnonymous}, res.Roles)
	assert.Equal(t, DegradedToAnonymous, res.Outcome)
	assert.Equal(t, 1, source.calls)
}

func TestResolveEmptyAnswerDefaultsToMember(t *testing.T) {
	source := &fakeRoleSource{}
	resolver := NewResolver(source)

	res := resolver.Resolve(context.Background(), "user-1")

	assert.Equal(t, []Role{RoleMember}, res.Roles)
	assert.Equal(t, DefaultedToMember, res.Outcome)
}

func TestResolveReturnsStoredRoles(t *testing.T) {
	source := &fakeRoleSource{roles: []Role{RoleOrgAdmin, RoleMember}}
	resolver := NewResolver(source)

	res := resolver.Resolve(context.Background(), "user-1")

	assert.Equal(t, []Role{RoleOrgAdmin, RoleMember}, res.Roles)
	assert.Equal(t, Resolved, res.Outcome)
}

func TestGetUserRolesConvenience(t *testing.T) {
	resolver := NewResolver(&fakeRoleSource{roles: []Role{RoleTeamManager}})
	assert.Equal(t, []Role{RoleTeamManager}, resolver.GetUserRoles(context.Background(), "user-1"))
	assert.Equal(t, []Role{RoleAnonymous}, resolver.GetUserRoles(context.Background(), ""))
}

func TestAuthorizerComposesResolutionAndCheck(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("resolved roles are checked", func(t *testing.T) {
		authz := NewAuthorizer(engine, NewResolver(&fakeRoleSource{roles: []Role{RoleAdmin}}))
		assert.True(t, authz.HasAccess(context.Background(), "user-1", ResourceMembers, ActionManage, AccessContext{}))
	})

	t.Run("lookup failure degrades to least privilege", func(t *testing.T) {
		authz := NewAuthorizer(engine, NewResolver(&fakeRoleSource{err: errors.New("boom")}))
		require.False(t, authz.HasAccess(context.Background(), "user-1", ResourceMembers, ActionManage, AccessContext{}))
		// A degraded caller still reads public listings.
		assert.True(t, authz.HasAccess(context.Background(), "user-1", ResourceEvents, ActionRead, AccessContext{IsPublic: true}))
	})
}
