package homes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeFileAtomic writes data through a temp file and renames it into
// place, so readers never observe a partially-written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

type homeEntry struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float32 `json:"yaw"`
	Pitch float32 `json:"pitch"`
}

type homeFile struct {
	Username string               `json:"username,omitempty"`
	Homes    map[string]homeEntry `json:"homes"`
}

// HomeStore persists each player's home set as homes/<uuid>.json inside the
// data directory. Loaded records are cached; all mutation goes through the
// store so the cache and disk stay coherent.
type HomeStore struct {
	dir string
	log *zap.Logger

	mu        sync.RWMutex
	cache     map[uuid.UUID]*PlayerHomes
	usernames map[uuid.UUID]string
}

// NewHomeStore creates the homes directory and an empty cache.
func NewHomeStore(dataDir string, log *zap.Logger) (*HomeStore, error) {
	dir := filepath.Join(dataDir, "homes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create homes directory: %w", err)
	}
	return &HomeStore{
		dir:       dir,
		log:       log,
		cache:     make(map[uuid.UUID]*PlayerHomes),
		usernames: make(map[uuid.UUID]string),
	}, nil
}

func (s *HomeStore) filePath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// homesLocked returns the cached record for id, loading it from disk on
// first access. Read errors yield an empty record.
func (s *HomeStore) homesLocked(id uuid.UUID) *PlayerHomes {
	if homes, ok := s.cache[id]; ok {
		return homes
	}
	homes := NewPlayerHomes()
	if data, err := os.ReadFile(s.filePath(id)); err == nil {
		var file homeFile
		if err := json.Unmarshal(data, &file); err != nil {
			s.log.Warn("unreadable homes file", zap.String("player", id.String()), zap.Error(err))
		} else {
			if file.Username != "" {
				s.usernames[id] = file.Username
			}
			for name, entry := range file.Homes {
				homes.Set(HomeRecord{
					Name:  name,
					World: entry.World,
					X:     entry.X,
					Y:     entry.Y,
					Z:     entry.Z,
					Yaw:   entry.Yaw,
					Pitch: entry.Pitch,
				})
			}
		}
	}
	s.cache[id] = homes
	return homes
}

// Home looks up one of the player's homes case-insensitively.
func (s *HomeStore) Home(id uuid.UUID, name string) (HomeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homesLocked(id).Get(name)
}

// AllHomes returns the player's homes sorted by name.
func (s *HomeStore) AllHomes(id uuid.UUID) []HomeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homesLocked(id).All()
}

// CountHomes returns the player's current home count.
func (s *HomeStore) CountHomes(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homesLocked(id).Count()
}

// SetHome upserts a home in the cached record and reports whether a prior
// entry was replaced. The caller is responsible for limit checks and for
// calling Save.
func (s *HomeStore) SetHome(id uuid.UUID, home HomeRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homesLocked(id).Set(home)
}

// RemoveHome deletes a home from the cached record.
func (s *HomeStore) RemoveHome(id uuid.UUID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.homesLocked(id).Remove(name)
}

// UpdateUsername records the player's current username; it is written out
// on the next Save for the id.
func (s *HomeStore) UpdateUsername(id uuid.UUID, username string) {
	if username == "" {
		return
	}
	s.mu.Lock()
	s.usernames[id] = username
	s.mu.Unlock()
}

// Save writes the player's entire record, last writer wins. Saving an id
// that was never loaded is a no-op.
func (s *HomeStore) Save(id uuid.UUID) error {
	s.mu.RLock()
	homes, ok := s.cache[id]
	if !ok {
		s.mu.RUnlock()
		return nil
	}
	file := homeFile{
		Username: s.usernames[id],
		Homes:    make(map[string]homeEntry, homes.Count()),
	}
	for _, home := range homes.All() {
		file.Homes[home.Name] = homeEntry{
			World: home.World,
			X:     home.X,
			Y:     home.Y,
			Z:     home.Z,
			Yaw:   home.Yaw,
			Pitch: home.Pitch,
		}
	}
	s.mu.RUnlock()

	data, err := marshalIndent(file)
	if err != nil {
		return fmt.Errorf("encode homes for %s: %w", id, err)
	}
	if err := writeFileAtomic(s.filePath(id), data); err != nil {
		return fmt.Errorf("save homes for %s: %w", id, err)
	}
	return nil
}

// SaveAll persists every cached record, best effort: a failed file is
// logged and the rest still save.
func (s *HomeStore) SaveAll() {
	s.mu.RLock()
	ids := make([]uuid.UUID, 0, len(s.cache))
	for id := range s.cache {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		if err := s.Save(id); err != nil {
			s.log.Error("save homes failed", zap.String("player", id.String()), zap.Error(err))
		}
	}
}

// ScanUsernames reads every homes file in the directory and returns the
// (id, username) pairs whose username field is present. Unparseable files
// are skipped.
func (s *HomeStore) ScanUsernames() map[uuid.UUID]string {
	out := make(map[uuid.UUID]string)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Warn("scan homes directory failed", zap.Error(err))
		return out
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var file homeFile
		if err := json.Unmarshal(data, &file); err != nil {
			continue
		}
		if file.Username != "" {
			out[id] = file.Username
		}
	}
	return out
}
