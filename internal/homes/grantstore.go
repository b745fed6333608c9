package homes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GrantStore persists each player's grants as grants/<uuid>.json inside the
// data directory. Every mutation writes through to disk immediately and
// appends a history entry.
type GrantStore struct {
	dir string
	log *zap.Logger

	mu    sync.RWMutex
	cache map[uuid.UUID]*PlayerGrants
}

// NewGrantStore creates the grants directory and an empty cache.
func NewGrantStore(dataDir string, log *zap.Logger) (*GrantStore, error) {
	dir := filepath.Join(dataDir, "grants")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create grants directory: %w", err)
	}
	return &GrantStore{
		dir:   dir,
		log:   log,
		cache: make(map[uuid.UUID]*PlayerGrants),
	}, nil
}

func (s *GrantStore) filePath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// grantsLocked returns the cached record for id, loading it from disk on
// first access. Read errors yield an empty record.
func (s *GrantStore) grantsLocked(id uuid.UUID) *PlayerGrants {
	if grants, ok := s.cache[id]; ok {
		return grants
	}
	grants := NewPlayerGrants()
	if data, err := os.ReadFile(s.filePath(id)); err == nil {
		if err := json.Unmarshal(data, grants); err != nil {
			s.log.Warn("unreadable grants file", zap.String("player", id.String()), zap.Error(err))
			grants = NewPlayerGrants()
		}
		if grants.History == nil {
			grants.History = []HistoryEntry{}
		}
	}
	s.cache[id] = grants
	return grants
}

func (s *GrantStore) saveLocked(id uuid.UUID) error {
	grants, ok := s.cache[id]
	if !ok {
		return nil
	}
	data, err := marshalIndent(grants)
	if err != nil {
		return fmt.Errorf("encode grants for %s: %w", id, err)
	}
	if err := writeFileAtomic(s.filePath(id), data); err != nil {
		return fmt.Errorf("save grants for %s: %w", id, err)
	}
	return nil
}

// mutate applies fn to the player's record and writes through. Write
// failures are logged, never surfaced to the player, and do not poison the
// cache.
func (s *GrantStore) mutate(id uuid.UUID, fn func(*PlayerGrants)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grantsLocked(id))
	if err := s.saveLocked(id); err != nil {
		s.log.Error("save grants failed", zap.String("player", id.String()), zap.Error(err))
	}
}

// GrantHomes adds bonus home slots and returns the new bonus total.
func (s *GrantStore) GrantHomes(id uuid.UUID, amount int) int {
	s.mutate(id, func(g *PlayerGrants) { g.AddBonusHomes(amount) })
	return s.BonusHomes(id)
}

// RevokeHomes removes bonus home slots, saturating at zero, and returns the
// new bonus total.
func (s *GrantStore) RevokeHomes(id uuid.UUID, amount int) int {
	s.mutate(id, func(g *PlayerGrants) { g.RemoveBonusHomes(amount) })
	return s.BonusHomes(id)
}

// SetInstantTeleport toggles the warmup-bypass perk.
func (s *GrantStore) SetInstantTeleport(id uuid.UUID, instant bool) {
	s.mutate(id, func(g *PlayerGrants) { g.SetInstantTeleport(instant) })
}

// HasInstantTeleport reports whether the player holds the warmup-bypass
// perk.
func (s *GrantStore) HasInstantTeleport(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grantsLocked(id).InstantTeleport
}

// BonusHomes returns the player's bonus slot count.
func (s *GrantStore) BonusHomes(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grantsLocked(id).BonusHomes
}

// History returns a copy of the player's grant history.
func (s *GrantStore) History(id uuid.UUID) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.grantsLocked(id).History
	out := make([]HistoryEntry, len(history))
	copy(out, history)
	return out
}

// Save writes the player's record. Saving an id that was never loaded is a
// no-op.
func (s *GrantStore) Save(id uuid.UUID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(id)
}

// SaveAll persists every cached record, best effort.
func (s *GrantStore) SaveAll() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.cache {
		if err := s.saveLocked(id); err != nil {
			s.log.Error("save grants failed", zap.String("player", id.String()), zap.Error(err))
		}
	}
}
