package rbac

import (
	"fmt"
	"strings"

	"github.com/jurisgestao/jurisgestao/internal/shared"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a refusing decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err converts a denying decision into ErrPermissionDenied, nil otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return shared.PermissionDenied(d.Reason)
}

// ActionSpec describes the permission requirement of one operation.
type ActionSpec interface {
	evaluate(effective PermissionSet) Decision
}

// Unqualified requires a single permission to be present.
type Unqualified string

func (u Unqualified) evaluate(effective PermissionSet) Decision {
	if effective.Has(string(u)) {
		return Allow()
	}
	return Deny(fmt.Sprintf("missing permission %q", string(u)))
}

// OwnershipQualified requires either the All permission, or the Own
// permission while the actor owns the resource. IsOwner must be computed by
// the caller against the specific resource instance; a resource without a
// responsible user is owned by nobody.
type OwnershipQualified struct {
	All     string
	Own     string
	IsOwner bool
}

func (o OwnershipQualified) evaluate(effective PermissionSet) Decision {
	if effective.Has(o.All) {
		return Allow()
	}
	if effective.Has(o.Own) {
		if o.IsOwner {
			return Allow()
		}
		return Deny(fmt.Sprintf("permission %q only covers the actor's own records", o.Own))
	}
	return Deny(fmt.Sprintf("missing permission %q or %q", o.All, o.Own))
}

// AnyOf requires at least one of the listed permissions.
type AnyOf []string

func (a AnyOf) evaluate(effective PermissionSet) Decision {
	if effective.HasAny(a...) {
		return Allow()
	}
	return Deny(fmt.Sprintf("missing all of %s", strings.Join(a, ", ")))
}

// Authorize decides whether the effective permission set satisfies the
// action spec. It is pure and stateless: callers must invoke it fresh for
// every protected operation with a currently-resolved set.
func Authorize(effective PermissionSet, spec ActionSpec) Decision {
	if spec == nil {
		return Deny("no action spec")
	}
	return spec.evaluate(effective)
}

// AssignmentPolicy governs who may point a resource at a responsible user
// other than themselves. Elevated lists the permissions that grant it.
type AssignmentPolicy struct {
	Elevated []string
}

// CanAssign reports whether the actor may choose an arbitrary responsible user.
func (p AssignmentPolicy) CanAssign(effective PermissionSet) bool {
	return effective.HasAny(p.Elevated...)
}

// Resolve returns the responsible user id for a new resource. Without an
// elevated permission any requested value is overridden to the actor.
func (p AssignmentPolicy) Resolve(effective PermissionSet, actorID int64, requested *int64) int64 {
	if requested != nil && *requested != 0 && p.CanAssign(effective) {
		return *requested
	}
	return actorID
}
