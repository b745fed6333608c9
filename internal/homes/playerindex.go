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

// playerCacheFile is the username index file inside the data directory.
const playerCacheFile = "player_cache.json"

// PlayerIndex is a bidirectional username/id cache used for offline player
// lookups. Username lookup folds case; display casing is preserved. The
// in-memory state is authoritative: syncs only fill gaps and never
// overwrite an entry already present.
type PlayerIndex struct {
	path string
	log  *zap.Logger

	mu     sync.RWMutex
	byName map[string]uuid.UUID
	byID   map[uuid.UUID]string
}

// NewPlayerIndex loads player_cache.json from the data directory; a missing
// or unreadable file starts an empty index.
func NewPlayerIndex(dataDir string, log *zap.Logger) *PlayerIndex {
	idx := &PlayerIndex{
		path:   filepath.Join(dataDir, playerCacheFile),
		log:    log,
		byName: make(map[string]uuid.UUID),
		byID:   make(map[uuid.UUID]string),
	}
	data, err := os.ReadFile(idx.path)
	if err != nil {
		return idx
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn("unreadable player cache", zap.Error(err))
		return idx
	}
	for username, idStr := range entries {
		id, err := uuid.Parse(idStr)
		if err != nil {
			continue
		}
		idx.byName[foldName(username)] = id
		idx.byID[id] = username
	}
	return idx
}

func (idx *PlayerIndex) saveLocked() error {
	entries := make(map[string]string, len(idx.byID))
	for id, username := range idx.byID {
		entries[username] = id.String()
	}
	data, err := marshalIndent(entries)
	if err != nil {
		return fmt.Errorf("encode player cache: %w", err)
	}
	if err := writeFileAtomic(idx.path, data); err != nil {
		return fmt.Errorf("save player cache: %w", err)
	}
	return nil
}

// Put records the player's current username, unmapping a prior username for
// the same id, and persists immediately.
func (idx *PlayerIndex) Put(id uuid.UUID, username string) {
	if id == uuid.Nil || username == "" {
		return
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if prior, ok := idx.byID[id]; ok && foldName(prior) != foldName(username) {
		delete(idx.byName, foldName(prior))
	}
	idx.byName[foldName(username)] = id
	idx.byID[id] = username
	if err := idx.saveLocked(); err != nil {
		idx.log.Error("save player cache failed", zap.Error(err))
	}
}

// ByUsername resolves a username case-insensitively.
func (idx *PlayerIndex) ByUsername(username string) (uuid.UUID, bool) {
	if username == "" {
		return uuid.Nil, false
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	id, ok := idx.byName[foldName(username)]
	return id, ok
}

// ByID returns the last-known display username for an id.
func (idx *PlayerIndex) ByID(id uuid.UUID) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	username, ok := idx.byID[id]
	return username, ok
}

// SyncFromHomeStore pulls (id, username) pairs recorded in homes files into
// the index, skipping ids that are already present.
func (idx *PlayerIndex) SyncFromHomeStore(store *HomeStore) {
	scanned := store.ScanUsernames()
	idx.mu.Lock()
	defer idx.mu.Unlock()
	synced := 0
	for id, username := range scanned {
		if _, ok := idx.byID[id]; ok {
			continue
		}
		idx.byName[foldName(username)] = id
		idx.byID[id] = username
		synced++
	}
	if synced == 0 {
		return
	}
	if err := idx.saveLocked(); err != nil {
		idx.log.Error("save player cache failed", zap.Error(err))
	}
}

// playerDataFile mirrors the fragments of the host's player files this
// system reads. The format is not ours; every probe is fallible.
type playerDataFile struct {
	Components struct {
		Nameplate struct {
			Text string `json:"Text"`
		} `json:"Nameplate"`
	} `json:"Components"`
}

// SyncFromPlayerDirectory scans a host players directory of <uuid>.json
// files and pulls nameplate usernames for ids absent from the index.
// Malformed files are skipped.
func (idx *PlayerIndex) SyncFromPlayerDirectory(dir string) {
	if dir == "" {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	synced := 0
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		if _, ok := idx.byID[id]; ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		var file playerDataFile
		if err := json.Unmarshal(data, &file); err != nil {
			continue
		}
		username := file.Components.Nameplate.Text
		if username == "" {
			continue
		}
		idx.byName[foldName(username)] = id
		idx.byID[id] = username
		synced++
	}
	if synced == 0 {
		return
	}
	if err := idx.saveLocked(); err != nil {
		idx.log.Error("save player cache failed", zap.Error(err))
	}
}
