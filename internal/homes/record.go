package homes

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// foldName normalises a home or player name for case-insensitive lookup.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// HomeRecord is a named teleport bookmark owned by one player. Name casing
// is preserved for display; lookups fold case.
type HomeRecord struct {
	Name  string
	World string
	X     float64
	Y     float64
	Z     float64
	Yaw   float32
	Pitch float32
}

// Position returns the bookmark's location as a vector.
func (h HomeRecord) Position() Vec3 {
	return Vec3{X: h.X, Y: h.Y, Z: h.Z}
}

// FormattedLocation renders the location for listings.
func (h HomeRecord) FormattedLocation() string {
	return fmt.Sprintf("%s (%.1f, %.1f, %.1f)", h.World, h.X, h.Y, h.Z)
}

// PlayerHomes is one player's set of homes, keyed by folded name.
//
// The container itself is not safe for concurrent use and does not enforce
// slot limits; the HomeStore serialises access and callers check limits
// before inserting.
type PlayerHomes struct {
	homes map[string]HomeRecord
}

// NewPlayerHomes returns an empty home set.
func NewPlayerHomes() *PlayerHomes {
	return &PlayerHomes{homes: make(map[string]HomeRecord)}
}

// Set upserts a home by folded name and reports whether a prior entry was
// replaced.
func (p *PlayerHomes) Set(home HomeRecord) bool {
	key := foldName(home.Name)
	_, replaced := p.homes[key]
	p.homes[key] = home
	return replaced
}

// Get looks up a home case-insensitively.
func (p *PlayerHomes) Get(name string) (HomeRecord, bool) {
	home, ok := p.homes[foldName(name)]
	return home, ok
}

// Remove deletes a home case-insensitively and reports whether it existed.
func (p *PlayerHomes) Remove(name string) bool {
	key := foldName(name)
	if _, ok := p.homes[key]; !ok {
		return false
	}
	delete(p.homes, key)
	return true
}

// All returns the current homes sorted by folded name.
func (p *PlayerHomes) All() []HomeRecord {
	out := make([]HomeRecord, 0, len(p.homes))
	for _, home := range p.homes {
		out = append(out, home)
	}
	sort.Slice(out, func(i, j int) bool {
		return foldName(out[i].Name) < foldName(out[j].Name)
	})
	return out
}

// Count returns the number of homes in the set.
func (p *PlayerHomes) Count() int {
	return len(p.homes)
}
