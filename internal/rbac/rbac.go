package rbac

// Role is a named grant attached to a user. Roles are flat: no role implies
// another, each rule lists exactly the roles it accepts.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleOrgAdmin    Role = "org_admin"
	RoleTeamManager Role = "team_manager"
	RoleMember      Role = "member"
	RoleAnonymous   Role = "anonymous"
)

// Resource is a coarse-grained category of protected object.
type Resource string

const (
	ResourceFundraisers   Resource = "fundraisers"
	ResourceCompetitions  Resource = "competitions"
	ResourceTeams         Resource = "teams"
	ResourceMembers       Resource = "members"
	ResourceEvents        Resource = "events"
	ResourceOrganizations Resource = "organizations"
)

// Action is an operation on a resource. "manage" is not a superset of the
// others; a rule must list every action it grants.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// AccessContext carries the request-scoped facts a rule condition can look
// at. It is built fresh for every check and discarded afterwards.
type AccessContext struct {
	UserID          string
	OrgID           string
	TeamID          string
	ResourceOwnerID string
	UserOrgs        []string
	UserTeams       []string
	IsPublic        bool
}

// Condition guards a rule with a predicate over the request context.
type Condition func(AccessContext) bool

// AccessRule grants (role, resource, action) triples, optionally guarded by
// a Condition. There are no deny rules: a rule can only allow.
type AccessRule struct {
	Roles     []Role
	Resources []Resource
	Actions   []Action
	Condition Condition
}

func rolesIntersect(ruleRoles, userRoles []Role) bool {
	for _, r := range ruleRoles {
		for _, u := range userRoles {
			if r == u {
				return true
			}
		}
	}
	return false
}

func containsResource(resources []Resource, resource Resource) bool {
	for _, r := range resources {
		if r == resource {
			return true
		}
	}
	return false
}

func containsAction(actions []Action, action Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
