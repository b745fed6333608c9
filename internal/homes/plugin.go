package homes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Plugin wires the home engine together: config, the three stores, the
// policy resolver and the warmup engine. It is the single object a host
// embeds.
type Plugin struct {
	Log     *zap.Logger
	Config  *Config
	Homes   *HomeStore
	Grants  *GrantStore
	Players *PlayerIndex
	Policy  *Resolver
	Warmup  *WarmupEngine

	universe Universe
}

// NewPlugin loads all persistent state from dataDir and seeds the username
// index from the homes files and, when the host exposes one, its player
// directory. universe may be nil in tests.
func NewPlugin(dataDir string, universe Universe, log *zap.Logger) (*Plugin, error) {
	cfg, err := LoadConfig(dataDir, log)
	if err != nil {
		return nil, err
	}
	homeStore, err := NewHomeStore(dataDir, log)
	if err != nil {
		return nil, err
	}
	grantStore, err := NewGrantStore(dataDir, log)
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		Log:      log,
		Config:   cfg,
		Homes:    homeStore,
		Grants:   grantStore,
		Players:  NewPlayerIndex(dataDir, log),
		Warmup:   NewWarmupEngine(cfg, log),
		universe: universe,
	}
	p.Policy = NewResolver(cfg, grantStore)

	p.Players.SyncFromHomeStore(homeStore)
	if universe != nil {
		p.Players.SyncFromPlayerDirectory(universe.PlayersPath())
	}
	return p, nil
}

// Universe returns the host-wide lookup capability; nil when the plugin
// runs without a host.
func (p *Plugin) Universe() Universe {
	return p.universe
}

// TouchPlayer records the caller's current username in the homes file and
// the player index. Called from every player-initiated command so offline
// lookups stay fresh across renames.
func (p *Plugin) TouchPlayer(subject Subject) {
	p.Homes.UpdateUsername(subject.ID(), subject.Username())
	p.Players.Put(subject.ID(), subject.Username())
}

// EffectiveLimit resolves the caller's current home-slot limit.
func (p *Plugin) EffectiveLimit(subject Subject) int {
	return p.Policy.EffectiveLimit(subject, subject.ID())
}

// CanSetHome checks whether the subject may record a home under name.
// Overwriting an existing name never counts against the limit; otherwise a
// full set yields a LimitError.
func (p *Plugin) CanSetHome(subject Subject, name string) error {
	if _, exists := p.Homes.Home(subject.ID(), name); exists {
		return nil
	}
	count := p.Homes.CountHomes(subject.ID())
	limit := p.EffectiveLimit(subject)
	if count >= limit {
		return &LimitError{Count: count, Limit: limit}
	}
	return nil
}

// LookupHome fetches one of the player's homes, case-insensitively.
func (p *Plugin) LookupHome(id uuid.UUID, name string) (HomeRecord, error) {
	home, ok := p.Homes.Home(id, name)
	if !ok {
		return HomeRecord{}, fmt.Errorf("home %q: %w", name, ErrNotFound)
	}
	return home, nil
}

// DeleteHome removes one of the player's homes and persists the change.
func (p *Plugin) DeleteHome(id uuid.UUID, name string) error {
	if !p.Homes.RemoveHome(id, name) {
		return fmt.Errorf("home %q: %w", name, ErrNotFound)
	}
	if err := p.Homes.Save(id); err != nil {
		p.Log.Error("save homes failed", zap.String("player", id.String()), zap.Error(err))
	}
	return nil
}

// ResolvePlayer resolves a target identifier: UUID syntax first, then an
// online-username lookup. The returned display name favours the username
// index for UUID targets.
func (p *Plugin) ResolvePlayer(identifier string) (uuid.UUID, string, error) {
	if strings.Contains(identifier, "-") {
		id, err := uuid.Parse(identifier)
		if err != nil {
			return uuid.Nil, "", fmt.Errorf("parse uuid %q: %w", identifier, ErrBadArgument)
		}
		display := identifier
		if username, ok := p.Players.ByID(id); ok {
			display = username
		}
		return id, display, nil
	}
	if p.universe != nil {
		if subject, ok := p.universe.PlayerByUsername(identifier); ok {
			return subject.ID(), subject.Username(), nil
		}
	}
	return uuid.Nil, "", fmt.Errorf("player %q: %w", identifier, ErrUnknownPlayer)
}

// Shutdown flushes both stores and cancels every pending warmup.
func (p *Plugin) Shutdown() {
	p.Homes.SaveAll()
	p.Grants.SaveAll()
	p.Warmup.Shutdown()
}
