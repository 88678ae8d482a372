package rbac

// Engine evaluates a fixed rule list. It holds no other state and performs
// no I/O; checks are pure and safe for concurrent use.
type Engine struct {
	rules []AccessRule
}

// NewEngine builds an engine over the given rules. Passing nil uses
// DefaultRules. The engine keeps its own copy; the rule list is never
// mutated after construction.
func NewEngine(rules []AccessRule) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	copied := make([]AccessRule, len(rules))
	copy(copied, rules)
	return &Engine{rules: copied}
}

// CheckAccess reports whether any of the caller's roles may perform action
// on resource. Rules are scanned in declaration order and the first rule
// whose roles, resource and action all match AND whose condition (if any)
// holds grants access immediately. A rule whose condition fails does not
// disqualify later rules. Unknown roles, resources or actions simply match
// nothing, so the check fails closed.
func (e *Engine) CheckAccess(roles []Role, resource Resource, action Action, ctx AccessContext) bool {
	for _, rule := range e.rules {
		if !rolesIntersect(rule.Roles, roles) {
			continue
		}
		if !containsResource(rule.Resources, resource) {
			continue
		}
		if !containsAction(rule.Actions, action) {
			continue
		}
		if rule.Condition == nil || rule.Condition(ctx) {
			return true
		}
	}
	return false
}
