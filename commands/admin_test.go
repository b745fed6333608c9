package commands

import (
	"strings"
	"testing"

	"EasyHome/internal/homes"
)

func TestAdminBannerWithoutSubcommand(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	player := newTestPlayer("Anyone", world, homes.PermUse)

	Dispatch(app, player, nil, "easyhome")
	if !strings.Contains(player.output(), "=== EasyHome ===") {
		t.Fatalf("missing banner: %q", player.output())
	}
}

func TestAdminRequiresPermission(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	player := newTestPlayer("Regular", world, homes.PermUse)

	Dispatch(app, player, nil, "easyhome admin config")
	if !strings.Contains(player.output(), "don't have permission") {
		t.Fatalf("missing refusal: %q", player.output())
	}
}

func TestAdminConsoleAlwaysAuthorised(t *testing.T) {
	app := newTestApp(t, nil)
	out, ok := dispatchConsole(app, "easyhome admin config")
	if !ok {
		t.Fatalf("console admin dispatch failed")
	}
	if !strings.Contains(out, "EasyHome Settings") {
		t.Fatalf("missing settings output: %q", out)
	}
	if !strings.Contains(out, "Default homes: 3") {
		t.Fatalf("missing default limit line: %q", out)
	}
}

func TestAdminSetUpdatesConfig(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin set default 5")
	if !strings.Contains(out, "Default home limit set to 5!") {
		t.Fatalf("missing confirmation: %q", out)
	}
	if got := app.Config.DefaultHomeLimit(); got != 5 {
		t.Fatalf("default limit = %d, want 5", got)
	}

	out, _ = dispatchConsole(app, "easyhome admin set warmup 0")
	if !strings.Contains(out, "instant teleport") {
		t.Fatalf("missing zero-warmup confirmation: %q", out)
	}
}

func TestAdminSetReportsClampedValues(t *testing.T) {
	app := newTestApp(t, nil)

	out, _ := dispatchConsole(app, "easyhome admin set warmup -5")
	if strings.Contains(out, "-5") {
		t.Fatalf("reply echoed the unclamped value: %q", out)
	}
	if !strings.Contains(out, "instant teleport") {
		t.Fatalf("missing clamped-to-zero confirmation: %q", out)
	}
	if got := app.Config.WarmupSeconds(); got != 0 {
		t.Fatalf("warmup = %d, want 0", got)
	}

	out, _ = dispatchConsole(app, "easyhome admin set default -3")
	if !strings.Contains(out, "Default home limit set to 0!") {
		t.Fatalf("reply did not report the clamped limit: %q", out)
	}
}

func TestAdminSetRejectsNonNumbers(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin set max lots")
	if !strings.Contains(out, "Please enter a number!") {
		t.Fatalf("missing number error: %q", out)
	}
	if got := app.Config.MaxHomeLimit(); got != 10 {
		t.Fatalf("max limit changed to %d on bad input", got)
	}
}

func TestAdminSetPermissionsToggle(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin set permissions off")
	if !strings.Contains(out, "Permission overrides disabled!") {
		t.Fatalf("missing confirmation: %q", out)
	}
	if app.Config.PermissionOverridesEnabled() {
		t.Fatalf("overrides still enabled")
	}

	out, _ = dispatchConsole(app, "easyhome admin set perms on")
	if !strings.Contains(out, "Permission overrides enabled!") {
		t.Fatalf("missing confirmation: %q", out)
	}
	if !app.Config.PermissionOverridesEnabled() {
		t.Fatalf("overrides still disabled")
	}
}

func TestAdminSetUnknownKey(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin set gravity 2")
	if !strings.Contains(out, "Unknown setting!") {
		t.Fatalf("missing unknown-setting reply: %q", out)
	}
}

func TestAdminGrantHomesByUUID(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Target", world, homes.PermUse)

	out, _ := dispatchConsole(app, "easyhome admin grant homes "+target.ID().String()+" 3")
	if !strings.Contains(out, "Granted +3 home slots") {
		t.Fatalf("missing grant confirmation: %q", out)
	}
	if !strings.Contains(out, "+3 bonus homes") {
		t.Fatalf("missing resulting total: %q", out)
	}
	if got := app.Grants.BonusHomes(target.ID()); got != 3 {
		t.Fatalf("bonus = %d, want 3", got)
	}
}

func TestAdminGrantByOnlineUsername(t *testing.T) {
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Wanderer", world, homes.PermUse)
	universe := &testUniverse{players: []*testPlayer{target}}
	app := newTestApp(t, universe)

	out, _ := dispatchConsole(app, "easyhome admin grant instanttp wanderer")
	if !strings.Contains(out, "Granted instant teleport to Wanderer") {
		t.Fatalf("missing grant confirmation: %q", out)
	}
	if !app.Grants.HasInstantTeleport(target.ID()) {
		t.Fatalf("perk not set")
	}

	out, _ = dispatchConsole(app, "easyhome admin revoke instanttp Wanderer")
	if !strings.Contains(out, "Revoked instant teleport") {
		t.Fatalf("missing revoke confirmation: %q", out)
	}
	if app.Grants.HasInstantTeleport(target.ID()) {
		t.Fatalf("perk not revoked")
	}
}

func TestAdminGrantValidatesAmount(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Target", world)

	out, _ := dispatchConsole(app, "easyhome admin grant homes "+target.ID().String()+" zero")
	if !strings.Contains(out, "Invalid amount") {
		t.Fatalf("missing invalid-amount reply: %q", out)
	}
	out, _ = dispatchConsole(app, "easyhome admin grant homes "+target.ID().String()+" -2")
	if !strings.Contains(out, "Amount must be positive!") {
		t.Fatalf("missing positive-amount reply: %q", out)
	}
	if got := app.Grants.BonusHomes(target.ID()); got != 0 {
		t.Fatalf("bonus = %d after rejected grants, want 0", got)
	}
}

func TestAdminRevokeSaturates(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Target", world)
	app.Grants.GrantHomes(target.ID(), 2)

	out, _ := dispatchConsole(app, "easyhome admin revoke homes "+target.ID().String()+" 9")
	if !strings.Contains(out, "+0 bonus homes") {
		t.Fatalf("missing saturated total: %q", out)
	}
}

func TestAdminTargetOfflineUsernameFails(t *testing.T) {
	universe := &testUniverse{}
	app := newTestApp(t, universe)

	out, _ := dispatchConsole(app, "easyhome admin status Ghost")
	if !strings.Contains(out, "Player not found: Ghost") {
		t.Fatalf("missing not-found reply: %q", out)
	}
	if !strings.Contains(out, "use their UUID") {
		t.Fatalf("missing UUID hint: %q", out)
	}
}

func TestAdminTargetRejectsMalformedUUID(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin status not-a-uuid")
	if !strings.Contains(out, "Invalid UUID") {
		t.Fatalf("missing invalid-uuid reply: %q", out)
	}
}

func TestAdminStatusOfflinePlayer(t *testing.T) {
	app := newTestApp(t, nil)
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Target", world, homes.PermUse)
	Dispatch(app, target, nil, "sethome base")
	app.Grants.GrantHomes(target.ID(), 2)

	out, _ := dispatchConsole(app, "easyhome admin status "+target.ID().String())
	for _, want := range []string{
		"=== Status: Target ===",
		"Base limit: 3",
		"Bonus homes: +2",
		"Total limit: 5",
		"Homes used: 1",
		"Instant teleport: no",
		"Player is offline",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("status missing %q:\n%s", want, out)
		}
	}
}

func TestAdminStatusOnlinePlayerUsesLivePermissions(t *testing.T) {
	world := &testWorld{name: "overworld"}
	target := newTestPlayer("Tiered", world, homes.PermUse, "homes.limit.5")
	universe := &testUniverse{players: []*testPlayer{target}}
	app := newTestApp(t, universe)

	out, _ := dispatchConsole(app, "easyhome admin status Tiered")
	if !strings.Contains(out, "Base limit: 5") {
		t.Fatalf("tier permission not reflected:\n%s", out)
	}
	if strings.Contains(out, "Player is offline") {
		t.Fatalf("online player reported offline:\n%s", out)
	}
}

func TestAdminReload(t *testing.T) {
	app := newTestApp(t, nil)
	// An earlier setter wrote the file; change a value behind the engine's
	// back and reload.
	if err := app.Config.SetDefaultHomeLimit(4); err != nil {
		t.Fatalf("SetDefaultHomeLimit: %v", err)
	}
	out, _ := dispatchConsole(app, "easyhome admin reload")
	if !strings.Contains(out, "Configuration reloaded!") {
		t.Fatalf("missing reload confirmation: %q", out)
	}
	if !strings.Contains(out, "Default homes: 4") {
		t.Fatalf("reload did not show current settings: %q", out)
	}
}

func TestAdminUnknownSubcommand(t *testing.T) {
	app := newTestApp(t, nil)
	out, _ := dispatchConsole(app, "easyhome admin explode")
	if !strings.Contains(out, "Unknown command: explode") {
		t.Fatalf("missing unknown-subcommand reply: %q", out)
	}
	if !strings.Contains(out, "EasyHome Admin") {
		t.Fatalf("help not shown after unknown subcommand: %q", out)
	}
}
