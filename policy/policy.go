// Package policy decides whether a caller's role set satisfies a named,
// statically registered access policy.
package policy

import (
	"sync"

	"github.com/upb/auth-gateway/models"
)

// Well-known policy names registered by default
const (
	AdminOnly   = "AdminOnly"
	UserOnly    = "UserOnly"
	AdminOrUser = "AdminOrUser"
)

// Predicate is a boolean test over a caller's role set
type Predicate func(roles models.RoleSet) bool

// Decision is the outcome of a policy evaluation
type Decision struct {
	Allowed bool
	Reason  string
}

// RequireAnyRole builds a predicate that passes when the caller holds at
// least one of the given roles
func RequireAnyRole(roles ...models.Role) Predicate {
	return func(callerRoles models.RoleSet) bool {
		return callerRoles.ContainsAny(roles...)
	}
}

// Registry maps policy names to predicates. Policies are registered at
// startup; evaluation never mutates the registry.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Predicate
}

// NewRegistry creates a registry with the default policies registered
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]Predicate)}
	r.Register(AdminOnly, RequireAnyRole(models.RoleAdmin))
	r.Register(UserOnly, RequireAnyRole(models.RoleUser))
	r.Register(AdminOrUser, RequireAnyRole(models.RoleAdmin, models.RoleUser))
	return r
}

// Register adds a named policy. Registering an existing name replaces it.
func (r *Registry) Register(name string, predicate Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[name] = predicate
}

// Evaluate decides allow or deny for the named policy against the caller's
// roles. Unknown policy names and empty role sets always deny.
func (r *Registry) Evaluate(policyName string, callerRoles models.RoleSet) Decision {
	r.mu.RLock()
	predicate, ok := r.policies[policyName]
	r.mu.RUnlock()

	if !ok {
		return Decision{Allowed: false, Reason: "unknown policy"}
	}
	if len(callerRoles) == 0 {
		return Decision{Allowed: false, Reason: "no roles"}
	}
	if !predicate(callerRoles) {
		return Decision{Allowed: false, Reason: "roles do not satisfy policy"}
	}
	return Decision{Allowed: true}
}
