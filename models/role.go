package models

import (
	"sort"
	"sync"
)

// Role is a named capability grouping assigned to a user and embedded into
// tokens at issuance time.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// RoleSet is an unordered set of role names
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from role name strings
func NewRoleSet(names ...string) RoleSet {
	set := make(RoleSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[Role(n)] = struct{}{}
	}
	return set
}

// Contains reports whether the set holds the given role
func (s RoleSet) Contains(role Role) bool {
	_, ok := s[role]
	return ok
}

// ContainsAny reports whether the set intersects the given roles
func (s RoleSet) ContainsAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

// Names returns the role names in sorted order
func (s RoleSet) Names() []string {
	names := make([]string, 0, len(s))
	for r := range s {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return names
}

// RoleRegistry is the validated set of role names the system accepts.
// Role names are not free-form: assignments referencing an unregistered
// name are rejected rather than trusted structurally.
type RoleRegistry struct {
	mu    sync.RWMutex
	roles map[Role]struct{}
}

// DefaultRoles are seeded into every new registry
var DefaultRoles = []Role{RoleAdmin, RoleUser}

// NewRoleRegistry creates a registry seeded with the default roles
func NewRoleRegistry() *RoleRegistry {
	r := &RoleRegistry{roles: make(map[Role]struct{})}
	for _, role := range DefaultRoles {
		r.roles[role] = struct{}{}
	}
	return r
}

// Register adds a role name to the registry. Registering an existing name
// is a no-op.
func (r *RoleRegistry) Register(role Role) {
	if role == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roles[role] = struct{}{}
}

// IsRegistered reports whether the role name is known
func (r *RoleRegistry) IsRegistered(role Role) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.roles[role]
	return ok
}

// Roles returns all registered role names in sorted order
func (r *RoleRegistry) Roles() []Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	roles := make([]Role, 0, len(r.roles))
	for role := range r.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}
