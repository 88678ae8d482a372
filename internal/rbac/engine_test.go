package rbac

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContexts() map[string]AccessContext {
	return map[string]AccessContext{
		"empty":  {},
		"public": {IsPublic: true},
		"owner": {
			UserID:          "user-1",
			ResourceOwnerID: "user-1",
		},
		"other-owner": {
			UserID:          "user-1",
			ResourceOwnerID: "user-2",
		},
		"own-org": {
			UserID:   "user-1",
			OrgID:    "org-1",
			UserOrgs: []string{"org-1", "org-2"},
		},
		"foreign-org": {
			UserID:   "user-1",
			OrgID:    "org-9",
			UserOrgs: []string{"org-1"},
		},
		"own-team": {
			UserID:    "user-1",
			TeamID:    "team-1",
			UserTeams: []string{"team-1"},
		},
	}
}

func TestAdminHasFullAccess(t *testing.T) {
	engine := NewEngine(nil)

	resources := []Resource{ResourceFundraisers, ResourceCompetitions, ResourceTeams, ResourceMembers, ResourceEvents}
	actions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage}

	for name, ctx := range testContexts() {
		for _, resource := range resources {
			for _, action := range actions {
				ok := engine.CheckAccess([]Role{RoleAdmin, RoleMember}, resource, action, ctx)
				assert.True(t, ok, "admin denied %s:%s with ctx %q", resource, action, name)
			}
		}
	}
}

func TestAnonymousOnlyReadsPublicListings(t *testing.T) {
	engine := NewEngine(nil)
	roles := []Role{RoleAnonymous}

	publicReadable := map[Resource]bool{
		ResourceFundraisers:  true,
		ResourceCompetitions: true,
		ResourceEvents:       true,
	}

	for _, resource := range allResources {
		for _, action := range allActions {
			allowed := engine.CheckAccess(roles, resource, action, AccessContext{IsPublic: true})
			want := action == ActionRead && publicReadable[resource]
			assert.Equal(t, want, allowed, "anonymous %s:%s public", resource, action)

			// Without the public flag, nothing is readable.
			assert.False(t, engine.CheckAccess(roles, resource, action, AccessContext{}),
				"anonymous %s:%s private", resource, action)
		}
	}
}

func TestMemberOwnershipCondition(t *testing.T) {
	engine := NewEngine(nil)
	roles := []Role{RoleMember}

	tests := []struct {
		name   string
		action Action
		ctx    AccessContext
		want   bool
	}{
		{"delete without ownership facts", ActionDelete, AccessContext{}, false},
		{"delete own fundraiser", ActionDelete, AccessContext{UserID: "u1", ResourceOwnerID: "u1"}, true},
		{"delete someone else's fundraiser", ActionDelete, AccessContext{UserID: "u1", ResourceOwnerID: "u2"}, false},
		{"update own fundraiser", ActionUpdate, AccessContext{UserID: "u1", ResourceOwnerID: "u1"}, true},
		{"read needs no ownership", ActionRead, AccessContext{}, true},
		{"create needs no ownership", ActionCreate, AccessContext{}, true},
		{"manage is never granted", ActionManage, AccessContext{UserID: "u1", ResourceOwnerID: "u1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CheckAccess(roles, ResourceFundraisers, tt.action, tt.ctx)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrgAdminScopedToOwnOrg(t *testing.T) {
	engine := NewEngine(nil)
	roles := []Role{RoleOrgAdmin}
	ctxs := testContexts()

	assert.True(t, engine.CheckAccess(roles, ResourceOrganizations, ActionManage, ctxs["own-org"]))
	assert.True(t, engine.CheckAccess(roles, ResourceMembers, ActionDelete, ctxs["own-org"]))
	assert.False(t, engine.CheckAccess(roles, ResourceOrganizations, ActionManage, ctxs["foreign-org"]))
	assert.False(t, engine.CheckAccess(roles, ResourceOrganizations, ActionManage, AccessContext{}))
}

func TestTeamManagerScopedToOwnTeam(t *testing.T) {
	engine := NewEngine(nil)
	roles := []Role{RoleTeamManager}
	ctxs := testContexts()

	assert.True(t, engine.CheckAccess(roles, ResourceTeams, ActionManage, ctxs["own-team"]))
	assert.True(t, engine.CheckAccess(roles, ResourceEvents, ActionUpdate, ctxs["own-team"]))
	assert.False(t, engine.CheckAccess(roles, ResourceTeams, ActionManage, AccessContext{TeamID: "team-9", UserTeams: []string{"team-1"}}))
	assert.False(t, engine.CheckAccess(roles, ResourceFundraisers, ActionManage, ctxs["own-team"]))
	assert.False(t, engine.CheckAccess(roles, ResourceTeams, ActionDelete, ctxs["own-team"]))
}

func TestUnknownValuesFailClosed(t *testing.T) {
	engine := NewEngine(nil)

	assert.False(t, engine.CheckAccess([]Role{"superuser"}, ResourceTeams, ActionRead, AccessContext{}))
	assert.False(t, engine.CheckAccess([]Role{RoleAdmin}, "gadgets", ActionRead, AccessContext{}))
	assert.False(t, engine.CheckAccess([]Role{RoleAdmin}, ResourceTeams, "audit", AccessContext{}))
	assert.False(t, engine.CheckAccess(nil, ResourceTeams, ActionRead, AccessContext{}))
}

func TestFailedConditionDoesNotDisqualifyLaterRules(t *testing.T) {
	rules := []AccessRule{
		{
			Roles:     []Role{RoleMember},
			Resources: []Resource{ResourceEvents},
			Actions:   []Action{ActionRead},
			Condition: func(AccessContext) bool { return false },
		},
		{
			Roles:     []Role{RoleMember},
			Resources: []Resource{ResourceEvents},
			Actions:   []Action{ActionRead},
		},
	}
	engine := NewEngine(rules)

	ok := engine.CheckAccess([]Role{RoleMember}, ResourceEvents, ActionRead, AccessContext{})
	require.True(t, ok, "scan must continue past a rule whose condition fails")
}

// The default rule set must be unambiguous: with allow-only rules, the
// decision for any fixed input cannot depend on rule order. A failure here
// means a rule was added that shadows another.
func TestDefaultRuleOrderDoesNotChangeDecisions(t *testing.T) {
	base := DefaultRules()

	permutations := [][]AccessRule{
		reversed(base),
		rotated(base, 1),
		rotated(base, 3),
	}

	roleSets := [][]Role{
		{RoleAdmin},
		{RoleOrgAdmin},
		{RoleTeamManager},
		{RoleMember},
		{RoleAnonymous},
		{RoleMember, RoleTeamManager},
		{RoleOrgAdmin, RoleMember},
	}

	reference := NewEngine(base)
	for i, perm := range permutations {
		engine := NewEngine(perm)
		for _, roles := range roleSets {
			for ctxName, ctx := range testContexts() {
				for _, resource := range allResources {
					for _, action := range allActions {
						want := reference.CheckAccess(roles, resource, action, ctx)
						got := engine.CheckAccess(roles, resource, action, ctx)
						require.Equal(t, want, got,
							"permutation %d: roles %v, %s:%s, ctx %q", i, roles, resource, action, ctxName)
					}
				}
			}
		}
	}
}

func reversed(rules []AccessRule) []AccessRule {
	out := make([]AccessRule, len(rules))
	for i, r := range rules {
		out[len(rules)-1-i] = r
	}
	return out
}

func rotated(rules []AccessRule, n int) []AccessRule {
	out := make([]AccessRule, 0, len(rules))
	out = append(out, rules[n%len(rules):]...)
	out = append(out, rules[:n%len(rules)]...)
	return out
}

func BenchmarkCheckAccess(b *testing.B) {
	engine := NewEngine(nil)
	ctx := AccessContext{UserID: "u1", ResourceOwnerID: "u1"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine.CheckAccess([]Role{RoleMember}, ResourceFundraisers, ActionDelete, ctx)
	}
}

func ExampleEngine_CheckAccess() {
	engine := NewEngine(nil)
	ok := engine.CheckAccess([]Role{RoleAnonymous}, ResourceEvents, ActionRead, AccessContext{IsPublic: true})
	fmt.Println(ok)
	// Output: true
}
