package rbac

import (
	"context"

	"rallyround/internal/utils/logger"
)

// RoleSource looks up persisted role grants for a user.
type RoleSource interface {
	GetUserRoles(ctx context.Context, userID string) ([]Role, error)
}

// ResolutionOutcome records how a role set was obtained, so callers and
// tests can tell a real answer from a degraded one.
type ResolutionOutcome int

const (
	// Resolved means the store answered with at least one grant.
	Resolved ResolutionOutcome = iota
	// DegradedToAnonymous means the caller had no identity or the store
	// lookup failed; the request proceeds with least privilege.
	DegradedToAnonymous
	// DefaultedToMember means the store answered but held no grants.
	DefaultedToMember
)

// RoleResolution is the tagged result of a role lookup.
type RoleResolution struct {
	Roles   []Role
	Outcome ResolutionOutcome
}

// Resolver turns a user ID into a role set, failing closed on every error
// path: no ID or a store error degrades to anonymous, an empty answer
// defaults to member.
type Resolver struct {
	source RoleSource
	log    *logger.Logger
}

func NewResolver(source RoleSource) *Resolver {
	return &Resolver{
		source: source,
		log:    logger.New("rbac_resolver"),
	}
}

// Resolve fetches the user's roles. The store is never consulted for an
// empty userID.
func (r *Resolver) Resolve(ctx context.Context, userID string) RoleResolution {
	if userID == "" {
		return RoleResolution{Roles: []Role{RoleAnonymous}, Outcome: DegradedToAnonymous}
	}

	roles, err := r.source.GetUserRoles(ctx, userID)
	if err != nil {
		r.log.Warn("Role lookup failed for user %s, degrading to anonymous: %v", userID, err)
		return RoleResolution{Roles: []Role{RoleAnonymous}, Outcome: DegradedToAnonymous}
	}

	if len(roles) == 0 {
		return RoleResolution{Roles: []Role{RoleMember}, Outcome: DefaultedToMember}
	}

	return RoleResolution{Roles: roles, Outcome: Resolved}
}

// GetUserRoles is the plain-slice convenience over Resolve.
func (r *Resolver) GetUserRoles(ctx context.Context, userID string) []Role {
	return r.Resolve(ctx, userID).Roles
}

// Authorizer composes role resolution with rule evaluation.
type Authorizer struct {
	engine   *Engine
	resolver *Resolver
}

func NewAuthorizer(engine *Engine, resolver *Resolver) *Authorizer {
	return &Authorizer{
		engine:   engine,
		resolver: resolver,
	}
}

// HasAccess resolves the user's roles and checks them against the rule
// list. Lookup failures degrade the role set rather than surfacing an
// error, so the answer is always a plain allow/deny.
func (a *Authorizer) HasAccess(ctx context.Context, userID string, resource Resource, action Action, actx AccessContext) bool {
	roles := a.resolver.GetUserRoles(ctx, userID)
	return a.engine.CheckAccess(roles, resource, action, actx)
}

// Engine exposes the underlying rule engine.
func (a *Authorizer) Engine() *Engine {
	return a.engine
}

// Resolver exposes the underlying role resolver.
func (a *Authorizer) Resolver() *Resolver {
	return a.resolver
}
