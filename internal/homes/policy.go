package homes

import (
	"fmt"

	"github.com/google/uuid"
)

// Permission names recognised by the engine.
const (
	PermUse       = "homes.use"
	PermAdmin     = "homes.admin"
	PermUnlimited = "homes.limit.unlimited"
)

// Permissions answers permission queries for a subject. Subject satisfies
// it; a nil value stands for an offline subject whose permissions cannot be
// checked.
type Permissions interface {
	HasPermission(permission string) bool
}

// Authorize checks that perms holds permission. A nil perms stands for the
// console, which is always authorised, and an empty permission guards
// nothing.
func Authorize(perms Permissions, permission string) error {
	if perms == nil || permission == "" || perms.HasPermission(permission) {
		return nil
	}
	return fmt.Errorf("%s: %w", permission, ErrPermissionDenied)
}

// limitTiers maps tier permissions to their home limits, ordered highest
// first. Adding a tier is a data change.
var limitTiers = []struct {
	Limit      int
	Permission string
}{
	{50, "homes.limit.50"},
	{25, "homes.limit.25"},
	{10, "homes.limit.10"},
	{5, "homes.limit.5"},
	{3, "homes.limit.3"},
	{1, "homes.limit.1"},
}

// Resolver computes effective home limits from the layered policy: config
// default, tier permissions, the unlimited override, additive grants, and
// the hard cap. It is pure given its inputs.
type Resolver struct {
	cfg    *Config
	grants *GrantStore
}

// NewResolver builds a resolver over the given config and grant store.
func NewResolver(cfg *Config, grants *GrantStore) *Resolver {
	return &Resolver{cfg: cfg, grants: grants}
}

// baseLimit resolves the limit before grants and before the cap: the
// config default, raised to the highest granted tier when overrides are on.
func (r *Resolver) baseLimit(perms Permissions) int {
	base := r.cfg.DefaultHomeLimit()
	if perms != nil && r.cfg.PermissionOverridesEnabled() {
		for _, tier := range limitTiers {
			if perms.HasPermission(tier.Permission) {
				base = tier.Limit
				break
			}
		}
	}
	return base
}

// EffectiveLimit resolves the slot limit for a subject. perms may be nil
// when the subject is offline; id may be uuid.Nil when only a display-side
// subject is known, in which case grants are not consulted.
func (r *Resolver) EffectiveLimit(perms Permissions, id uuid.UUID) int {
	maxLimit := r.cfg.MaxHomeLimit()
	if perms != nil && perms.HasPermission(PermUnlimited) {
		return maxLimit
	}
	bonus := 0
	if id != uuid.Nil {
		bonus = r.grants.BonusHomes(id)
	}
	return min(r.baseLimit(perms)+bonus, maxLimit)
}

// OfflineLimit resolves the slot limit for a player known only by id:
// config default plus grants, clamped to the cap.
func (r *Resolver) OfflineLimit(id uuid.UUID) int {
	return r.EffectiveLimit(nil, id)
}

// BaseLimit resolves the limit before grants are applied, for status
// displays.
func (r *Resolver) BaseLimit(perms Permissions) int {
	maxLimit := r.cfg.MaxHomeLimit()
	if perms != nil && perms.HasPermission(PermUnlimited) {
		return maxLimit
	}
	return min(r.baseLimit(perms), maxLimit)
}
