package homes

import (
	"math"

	"github.com/google/uuid"
)

// Vec3 is a position in world space.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the straight-line distance between two positions.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// World is a handle to one of the host's worlds. Execute enqueues a task on
// the world's serial executor; tasks run in submission order, and entity
// state may only be read or mutated from that executor.
type World interface {
	Name() string
	Execute(task func())
}

// Subject is an online player as exposed by the host.
//
// Position and ApplyTeleport touch the player's entity transform and must
// only be called from the world executor. Position reports false when the
// transform component is missing.
type Subject interface {
	ID() uuid.UUID
	Username() string
	HasPermission(permission string) bool
	SendMessage(text string)
	World() World
	Position() (Vec3, bool)
	Rotation() (yaw, pitch float32)
	ApplyTeleport(world World, pos Vec3, yaw, pitch float32) error
}

// Universe exposes host-wide lookups that are not tied to a single world.
type Universe interface {
	// PlayerByUsername resolves an online player by exact-ignore-case
	// username.
	PlayerByUsername(name string) (Subject, bool)
	// PlayersPath is the host's player-data directory, used to seed the
	// username index. May be empty when the host does not expose one.
	PlayersPath() string
}
