package homes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestGrantStore(t *testing.T) (*GrantStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewGrantStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewGrantStore: %v", err)
	}
	return store, dir
}

func TestGrantStoreWritesThrough(t *testing.T) {
	store, dir := newTestGrantStore(t)
	id := uuid.New()

	if got := store.GrantHomes(id, 3); got != 3 {
		t.Fatalf("GrantHomes = %d, want 3", got)
	}
	store.SetInstantTeleport(id, true)

	// Mutations persist without an explicit Save call.
	fresh, err := NewGrantStore(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewGrantStore: %v", err)
	}
	if got := fresh.BonusHomes(id); got != 3 {
		t.Fatalf("reloaded bonus = %d, want 3", got)
	}
	if !fresh.HasInstantTeleport(id) {
		t.Fatalf("instant teleport perk lost on reload")
	}
	if got := len(fresh.History(id)); got != 2 {
		t.Fatalf("reloaded history length = %d, want 2", got)
	}
}

func TestGrantStoreRevokeSaturates(t *testing.T) {
	store, _ := newTestGrantStore(t)
	id := uuid.New()
	store.GrantHomes(id, 2)
	if got := store.RevokeHomes(id, 10); got != 0 {
		t.Fatalf("RevokeHomes = %d, want 0", got)
	}
}

func TestGrantStoreUnreadableFileYieldsDefaults(t *testing.T) {
	store, dir := newTestGrantStore(t)
	id := uuid.New()
	path := filepath.Join(dir, "grants", id.String()+".json")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if store.BonusHomes(id) != 0 || store.HasInstantTeleport(id) {
		t.Fatalf("corrupt file did not yield zero grants")
	}
}

func TestGrantStoreHistoryReturnsCopy(t *testing.T) {
	store, _ := newTestGrantStore(t)
	id := uuid.New()
	store.GrantHomes(id, 1)
	got := store.History(id)
	got[0].Amount = 99
	if store.History(id)[0].Amount != 1 {
		t.Fatalf("caller mutation leaked into stored history")
	}
}
