package rbac

var allResources = []Resource{
	ResourceFundraisers,
	ResourceCompetitions,
	ResourceTeams,
	ResourceMembers,
	ResourceEvents,
	ResourceOrganizations,
}

var allActions = []Action{
	ActionCreate,
	ActionRead,
	ActionUpdate,
	ActionDelete,
	ActionManage,
}

// DefaultRules returns the static policy. The engine scans in declaration
// order and grants on the first satisfied rule, so broad rules sit first.
// The set is unambiguous: for any fixed input, reordering the rules does
// not change the decision (asserted by tests).
func DefaultRules() []AccessRule {
	return []AccessRule{
		// Global administrators can do everything.
		{
			Roles:     []Role{RoleAdmin},
			Resources: allResources,
			Actions:   allActions,
		},
		// Org admins run everything inside their own organization.
		{
			Roles:     []Role{RoleOrgAdmin},
			Resources: allResources,
			Actions:   allActions,
			Condition: func(ctx AccessContext) bool {
				return ctx.OrgID != "" && containsString(ctx.UserOrgs, ctx.OrgID)
			},
		},
		// Team managers run their own teams.
		{
			Roles:     []Role{RoleTeamManager},
			Resources: []Resource{ResourceTeams, ResourceMembers, ResourceEvents},
			Actions:   []Action{ActionRead, ActionUpdate, ActionManage},
			Condition: func(ctx AccessContext) bool {
				return ctx.TeamID != "" && containsString(ctx.UserTeams, ctx.TeamID)
			},
		},
		// Members can read everything.
		{
			Roles:     []Role{RoleMember},
			Resources: allResources,
			Actions:   []Action{ActionRead},
		},
		// and start their own fundraisers and events.
		{
			Roles:     []Role{RoleMember},
			Resources: []Resource{ResourceFundraisers, ResourceEvents},
			Actions:   []Action{ActionCreate},
		},
		// Members can change or remove what they own.
		{
			Roles:     []Role{RoleMember},
			Resources: []Resource{ResourceFundraisers, ResourceEvents, ResourceCompetitions},
			Actions:   []Action{ActionUpdate, ActionDelete},
			Condition: func(ctx AccessContext) bool {
				return ctx.ResourceOwnerID != "" && ctx.ResourceOwnerID == ctx.UserID
			},
		},
		// Anonymous visitors can read public listings.
		{
			Roles:     []Role{RoleAnonymous},
			Resources: []Resource{ResourceFundraisers, ResourceCompetitions, ResourceEvents},
			Actions:   []Action{ActionRead},
			Condition: func(ctx AccessContext) bool {
				return ctx.IsPublic
			},
		},
	}
}
