package rbac

import (
	"sort"
)

// Role represents a high-level permission grouping.
type Role struct {
	ID          int64
	Name        string
	Description string
}

// Permission represents an atomic capability.
type Permission struct {
	ID          int64
	Name        string
	Description string
}

// PermissionDefinition describes a catalog entry to ensure at bootstrap.
type PermissionDefinition struct {
	Name        string
	Description string
}

// Principal describes the authenticated actor for one session. The
// permission set is resolved from durable state when the principal is
// built and is never cached beyond it.
type Principal struct {
	UserID      int64
	Username    string
	SessionID   string
	Permissions PermissionSet
}

// PermissionSet is a deduplicated set of permission names.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from permission names.
func NewPermissionSet(names ...string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether the named permission is granted.
func (s PermissionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// HasAny reports whether at least one of the named permissions is granted.
func (s PermissionSet) HasAny(names ...string) bool {
	for _, n := range names {
		if s.Has(n) {
			return true
		}
	}
	return false
}

// Names returns the granted permission names in sorted order.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
