package homes

import "time"

// Grant history kinds.
const (
	GrantKindHomes     = "homes"
	GrantKindInstantTP = "instanttp"
)

// HistoryEntry records a single grant or revoke action. The history is
// purely diagnostic; nothing reads it back for policy decisions.
type HistoryEntry struct {
	Kind      string `json:"type"`
	Amount    int    `json:"amount"`
	Granted   bool   `json:"granted"`
	Timestamp int64  `json:"timestamp"`
}

// PlayerGrants holds the administratively issued bonuses for one player.
// Not safe for concurrent use; the GrantStore serialises access.
type PlayerGrants struct {
	BonusHomes      int            `json:"bonusHomes"`
	InstantTeleport bool           `json:"instantTeleport"`
	History         []HistoryEntry `json:"grantHistory"`
}

// NewPlayerGrants returns an empty grant record.
func NewPlayerGrants() *PlayerGrants {
	return &PlayerGrants{History: []HistoryEntry{}}
}

// AddBonusHomes raises the bonus slot counter by amount.
func (g *PlayerGrants) AddBonusHomes(amount int) {
	g.BonusHomes = max(0, g.BonusHomes+amount)
	g.appendHistory(GrantKindHomes, amount, true)
}

// RemoveBonusHomes lowers the bonus slot counter by amount, saturating at
// zero.
func (g *PlayerGrants) RemoveBonusHomes(amount int) {
	g.BonusHomes = max(0, g.BonusHomes-amount)
	g.appendHistory(GrantKindHomes, -amount, true)
}

// SetInstantTeleport toggles the warmup-bypass perk.
func (g *PlayerGrants) SetInstantTeleport(instant bool) {
	g.InstantTeleport = instant
	amount := 0
	if instant {
		amount = 1
	}
	g.appendHistory(GrantKindInstantTP, amount, instant)
}

func (g *PlayerGrants) appendHistory(kind string, amount int, granted bool) {
	g.History = append(g.History, HistoryEntry{
		Kind:      kind,
		Amount:    amount,
		Granted:   granted,
		Timestamp: time.Now().UnixMilli(),
	})
}
