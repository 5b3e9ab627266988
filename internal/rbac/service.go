package rbac

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Wildcard in a default grant resolves to every permission currently in the
// catalog at bind time.
const Wildcard = "*"

var (
	// ErrUnknownRole indicates a default grant names a role that does not exist.
	ErrUnknownRole = errors.New("rbac: unknown role")
	// ErrUnknownPermission indicates a default grant names a permission
	// that is not in the catalog.
	ErrUnknownPermission = errors.New("rbac: unknown permission")
)

// Service orchestrates catalog synchronization, default role binding and
// effective-permission resolution.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// EnsureCatalog creates every missing catalog entry in a single transaction
// and returns the full catalog. Existing entries are never modified, so
// admin-edited descriptions survive re-runs. A complete catalog is a no-op.
func (s *Service) EnsureCatalog(ctx context.Context, defs []PermissionDefinition) ([]Permission, error) {
	existing, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Name] = struct{}{}
	}

	var missing []PermissionDefinition
	for _, def := range defs {
		if _, ok := known[def.Name]; !ok {
			missing = append(missing, def)
		}
	}
	if len(missing) == 0 {
		return existing, nil
	}

	if err := s.repo.InsertPermissions(ctx, missing); err != nil {
		return nil, err
	}
	s.logger.Info("permission catalog synchronized", slog.Int("created", len(missing)))
	return s.repo.ListPermissions(ctx)
}

// BindDefaults attaches the configured default permissions to each role.
// Binding is additive only: permissions already attached, including ones
// granted manually, are never revoked. The wildcard resolves against the
// catalog at call time, so re-running after the catalog grows extends
// wildcard roles automatically. Unknown role or permission names in the
// mapping are configuration errors.
func (s *Service) BindDefaults(ctx context.Context, grants map[string][]string) error {
	catalog, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return err
	}
	permsByName := make(map[string]Permission, len(catalog))
	for _, p := range catalog {
		permsByName[p.Name] = p
	}

	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return err
	}
	rolesByName := make(map[string]Role, len(roles))
	for _, r := range roles {
		rolesByName[r.Name] = r
	}

	if err := validateGrants(grants, rolesByName, permsByName); err != nil {
		return err
	}

	roleNames := make([]string, 0, len(grants))
	for name := range grants {
		roleNames = append(roleNames, name)
	}
	sort.Strings(roleNames)

	for _, roleName := range roleNames {
		role := rolesByName[roleName]

		var target []Permission
		if containsWildcard(grants[roleName]) {
			target = catalog
		} else {
			for _, permName := range grants[roleName] {
				target = append(target, permsByName[permName])
			}
		}

		current, err := s.repo.RolePermissionNames(ctx, role.ID)
		if err != nil {
			return err
		}
		attached := make(map[string]struct{}, len(current))
		for _, name := range current {
			attached[name] = struct{}{}
		}

		var missingIDs []int64
		for _, p := range target {
			if _, ok := attached[p.Name]; !ok {
				missingIDs = append(missingIDs, p.ID)
			}
		}
		if len(missingIDs) == 0 {
			continue
		}
		if err := s.repo.AttachPermissions(ctx, role.ID, missingIDs); err != nil {
			return err
		}
		s.logger.Info("default permissions bound",
			slog.String("role", roleName),
			slog.Int("added", len(missingIDs)))
	}
	return nil
}

// EffectivePermissions computes the deduplicated union of permission names
// granted to a user through all assigned roles. The result is read from
// durable state at call time and must not be cached across calls.
func (s *Service) EffectivePermissions(ctx context.Context, userID int64) (PermissionSet, error) {
	names, err := s.repo.UserPermissionNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewPermissionSet(names...), nil
}

func validateGrants(grants map[string][]string, roles map[string]Role, perms map[string]Permission) error {
	var unknownRoles, unknownPerms []string
	for roleName, permNames := range grants {
		if _, ok := roles[roleName]; !ok {
			unknownRoles = append(unknownRoles, roleName)
		}
		for _, name := range permNames {
			if name == Wildcard {
				continue
			}
			if _, ok := perms[name]; !ok {
				unknownPerms = append(unknownPerms, name)
			}
		}
	}
	if len(unknownRoles) > 0 {
		sort.Strings(unknownRoles)
		return fmt.Errorf("%w: %s", ErrUnknownRole, strings.Join(unknownRoles, ", "))
	}
	if len(unknownPerms) > 0 {
		sort.Strings(unknownPerms)
		return fmt.Errorf("%w: %s", ErrUnknownPermission, strings.Join(unknownPerms, ", "))
	}
	return nil
}

func containsWildcard(names []string) bool {
	for _, n := range names {
		if n == Wildcard {
			return true
		}
	}
	return false
}
