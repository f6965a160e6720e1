package authz

import (
	"strings"

	"github.com/mesa-pos/terminal/internal/enum"
)

// Role is the closed set of back-office roles. Keeping it a named type (not a
// bare string) forces every consumer through ParseRole, so a typo'd role from
// the backend degrades to least privilege instead of silently denying access.
type Role string

const (
	RoleAdmin            Role = enum.RoleAdmin
	RoleChef             Role = enum.RoleChef
	RoleInventoryManager Role = enum.RoleInventoryManager
	RoleWaiter           Role = enum.RoleWaiter
)

// ParseRole normalizes a backend role string. A "ROLE_" prefix is stripped
// (some backends ship Spring-style authority names); anything outside the
// closed set maps to RoleWaiter, the least-privileged role.
func ParseRole(s string) Role {
	s = strings.TrimPrefix(strings.TrimSpace(s), "ROLE_")
	switch Role(s) {
	case RoleAdmin, RoleChef, RoleInventoryManager, RoleWaiter:
		return Role(s)
	}
	return RoleWaiter
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleChef, RoleInventoryManager, RoleWaiter:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
