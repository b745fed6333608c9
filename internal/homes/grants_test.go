package homes

import "testing"

func TestBonusHomesSaturatesAtZero(t *testing.T) {
	grants := NewPlayerGrants()
	grants.AddBonusHomes(2)
	grants.RemoveBonusHomes(5)
	if grants.BonusHomes != 0 {
		t.Fatalf("bonus homes = %d, want 0", grants.BonusHomes)
	}
}

func TestBonusHomesAccumulate(t *testing.T) {
	grants := NewPlayerGrants()
	grants.AddBonusHomes(3)
	grants.AddBonusHomes(2)
	grants.RemoveBonusHomes(1)
	if grants.BonusHomes != 4 {
		t.Fatalf("bonus homes = %d, want 4", grants.BonusHomes)
	}
}

func TestGrantHistoryRecordsActions(t *testing.T) {
	grants := NewPlayerGrants()
	grants.AddBonusHomes(3)
	grants.SetInstantTeleport(true)
	grants.SetInstantTeleport(false)

	if len(grants.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(grants.History))
	}
	if grants.History[0].Kind != GrantKindHomes || grants.History[0].Amount != 3 {
		t.Fatalf("unexpected first entry: %+v", grants.History[0])
	}
	if grants.History[1].Kind != GrantKindInstantTP || !grants.History[1].Granted {
		t.Fatalf("unexpected second entry: %+v", grants.History[1])
	}
	if grants.History[2].Granted {
		t.Fatalf("revoke entry marked granted: %+v", grants.History[2])
	}
	if grants.History[0].Timestamp == 0 {
		t.Fatalf("timestamp not populated")
	}
}
