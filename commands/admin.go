package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"EasyHome/internal/homes"
)

var Admin = Define(Definition{
	Name:        "easyhome",
	Usage:       "easyhome admin <subcommand>",
	Description: "administer limits, grants and settings",
}, func(ctx *Context) {
	args := strings.Fields(ctx.Arg)
	if len(args) == 0 || !strings.EqualFold(args[0], "admin") {
		ctx.Reply(homes.Style("=== EasyHome ===", homes.AnsiYellow, homes.AnsiBold))
		ctx.Reply(homes.Style("/easyhome admin - Admin settings", homes.AnsiGray))
		return
	}

	if err := homes.Authorize(ctx.Subject, homes.PermAdmin); errors.Is(err, homes.ErrPermissionDenied) {
		ctx.Reply(homes.Style("You don't have permission for this command.", homes.AnsiRed))
		return
	}

	if len(args) < 2 {
		showAdminHelp(ctx)
		return
	}

	rest := args[2:]
	switch strings.ToLower(args[1]) {
	case "config":
		showAdminConfig(ctx)
	case "set":
		handleAdminSet(ctx, rest)
	case "reload":
		handleAdminReload(ctx)
	case "grant":
		handleAdminGrant(ctx, rest, true)
	case "revoke":
		handleAdminGrant(ctx, rest, false)
	case "status":
		handleAdminStatus(ctx, rest)
	default:
		ctx.Reply(homes.Style("Unknown command: "+args[1], homes.AnsiRed))
		showAdminHelp(ctx)
	}
})

func showAdminHelp(ctx *Context) {
	ctx.Reply(homes.Style("=== EasyHome Admin ===", homes.AnsiYellow, homes.AnsiBold))
	ctx.Reply(homes.Style("Configuration:", homes.AnsiYellow))
	ctx.Reply(homes.Style("  easyhome admin config - Show current settings", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin set <key> <value> - Change a setting", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin reload - Reload settings", homes.AnsiGray))
	ctx.Reply(homes.Style("Player grants:", homes.AnsiYellow))
	ctx.Reply(homes.Style("  easyhome admin grant homes <player> <amount>", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin revoke homes <player> <amount>", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin grant instanttp <player>", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin revoke instanttp <player>", homes.AnsiGray))
	ctx.Reply(homes.Style("  easyhome admin status <player>", homes.AnsiGray))
}

func showAdminConfig(ctx *Context) {
	cfg := ctx.App.Config
	ctx.Reply(homes.Style("=== EasyHome Settings ===", homes.AnsiYellow, homes.AnsiBold))
	ctx.Reply(homes.Style(fmt.Sprintf("Default homes: %d", cfg.DefaultHomeLimit()), homes.AnsiCyan))
	ctx.Reply(homes.Style(fmt.Sprintf("Max homes: %d", cfg.MaxHomeLimit()), homes.AnsiCyan))
	ctx.Reply(homes.Style(fmt.Sprintf("Teleport delay: %d seconds", cfg.WarmupSeconds()), homes.AnsiCyan))
	mode := "off"
	if cfg.PermissionOverridesEnabled() {
		mode = "on"
	}
	ctx.Reply(homes.Style("Permission mode: "+mode, homes.AnsiCyan))
	ctx.Reply(homes.Style("Change settings with 'easyhome admin set <key> <value>'.", homes.AnsiGray))
}

func handleAdminSet(ctx *Context, args []string) {
	if len(args) < 2 {
		ctx.Reply(homes.Style("How to change settings:", homes.AnsiYellow))
		ctx.Reply(homes.Style("  easyhome admin set default 3   - homes everyone gets", homes.AnsiGray))
		ctx.Reply(homes.Style("  easyhome admin set max 25      - cap on any player", homes.AnsiGray))
		ctx.Reply(homes.Style("  easyhome admin set warmup 0    - teleport delay (0 = instant)", homes.AnsiGray))
		ctx.Reply(homes.Style("  easyhome admin set permissions on - tier permissions override default", homes.AnsiGray))
		return
	}

	cfg := ctx.App.Config
	key, value := strings.ToLower(args[0]), args[1]
	switch key {
	case "default", "defaultlimit":
		n, err := strconv.Atoi(value)
		if err != nil {
			ctx.Reply(homes.Style("Please enter a number!", homes.AnsiRed))
			return
		}
		if err := cfg.SetDefaultHomeLimit(n); err != nil {
			ctx.App.Log.Error("save config failed", zap.Error(err))
		}
		ctx.Reply(homes.Style(fmt.Sprintf("Default home limit set to %d!", cfg.DefaultHomeLimit()), homes.AnsiGreen))
	case "max", "maxlimit":
		n, err := strconv.Atoi(value)
		if err != nil {
			ctx.Reply(homes.Style("Please enter a number!", homes.AnsiRed))
			return
		}
		if err := cfg.SetMaxHomeLimit(n); err != nil {
			ctx.App.Log.Error("save config failed", zap.Error(err))
		}
		ctx.Reply(homes.Style(fmt.Sprintf("Maximum home limit set to %d!", cfg.MaxHomeLimit()), homes.AnsiGreen))
	case "warmup":
		n, err := strconv.Atoi(value)
		if err != nil {
			ctx.Reply(homes.Style("Please enter a number!", homes.AnsiRed))
			return
		}
		if err := cfg.SetWarmupSeconds(n); err != nil {
			ctx.App.Log.Error("save config failed", zap.Error(err))
		}
		// Report the stored value; negative input clamps to zero.
		if stored := cfg.WarmupSeconds(); stored == 0 {
			ctx.Reply(homes.Style("Teleport warmup disabled (instant teleport)!", homes.AnsiGreen))
		} else {
			ctx.Reply(homes.Style(fmt.Sprintf("Teleport warmup set to %d seconds!", stored), homes.AnsiGreen))
		}
	case "permissions", "perms":
		enabled := parseBool(value)
		if err := cfg.SetPermissionOverrides(enabled); err != nil {
			ctx.App.Log.Error("save config failed", zap.Error(err))
		}
		if enabled {
			ctx.Reply(homes.Style("Permission overrides enabled!", homes.AnsiGreen))
			ctx.Reply(homes.Style("Players with homes.limit.X permissions can exceed the default.", homes.AnsiGray))
		} else {
			ctx.Reply(homes.Style("Permission overrides disabled!", homes.AnsiGreen))
			ctx.Reply(homes.Style(fmt.Sprintf("All players now get %d homes.", cfg.DefaultHomeLimit()), homes.AnsiGray))
		}
	default:
		ctx.Reply(homes.Style("Unknown setting! Try: default, max, warmup, permissions", homes.AnsiRed))
	}
}

func handleAdminReload(ctx *Context) {
	if err := ctx.App.Config.Reload(); err != nil {
		ctx.Reply(homes.Style("Reload failed: "+err.Error(), homes.AnsiRed))
		return
	}
	ctx.Reply(homes.Style("Configuration reloaded!", homes.AnsiGreen))
	showAdminConfig(ctx)
}

func handleAdminGrant(ctx *Context, args []string, grant bool) {
	verb := "grant"
	if !grant {
		verb = "revoke"
	}
	if len(args) == 0 {
		ctx.Reply(homes.Style("Usage:", homes.AnsiYellow))
		ctx.Reply(homes.Style(fmt.Sprintf("  easyhome admin %s homes <player> <amount>", verb), homes.AnsiGray))
		ctx.Reply(homes.Style(fmt.Sprintf("  easyhome admin %s instanttp <player>", verb), homes.AnsiGray))
		return
	}

	switch strings.ToLower(args[0]) {
	case "homes":
		if len(args) < 3 {
			ctx.Reply(homes.Style(fmt.Sprintf("Usage: easyhome admin %s homes <player|uuid> <amount>", verb), homes.AnsiYellow))
			return
		}
		target, display, ok := resolveTarget(ctx, args[1])
		if !ok {
			return
		}
		amount, err := strconv.Atoi(args[2])
		if err != nil {
			ctx.Reply(homes.Style("Invalid amount: "+args[2], homes.AnsiRed))
			return
		}
		if amount <= 0 {
			ctx.Reply(homes.Style("Amount must be positive!", homes.AnsiRed))
			return
		}
		var total int
		if grant {
			total = ctx.App.Grants.GrantHomes(target, amount)
			ctx.Reply(homes.Style(fmt.Sprintf("Granted +%d home slots to %s", amount, display), homes.AnsiGreen))
		} else {
			total = ctx.App.Grants.RevokeHomes(target, amount)
			ctx.Reply(homes.Style(fmt.Sprintf("Revoked %d home slots from %s", amount, display), homes.AnsiGreen))
		}
		ctx.Reply(homes.Style(fmt.Sprintf("They now have +%d bonus homes.", total), homes.AnsiGray))
	case "instanttp":
		if len(args) < 2 {
			ctx.Reply(homes.Style(fmt.Sprintf("Usage: easyhome admin %s instanttp <player|uuid>", verb), homes.AnsiYellow))
			return
		}
		target, display, ok := resolveTarget(ctx, args[1])
		if !ok {
			return
		}
		ctx.App.Grants.SetInstantTeleport(target, grant)
		if grant {
			ctx.Reply(homes.Style("Granted instant teleport to "+display, homes.AnsiGreen))
		} else {
			ctx.Reply(homes.Style("Revoked instant teleport from "+display, homes.AnsiGreen))
		}
	default:
		ctx.Reply(homes.Style(fmt.Sprintf("Unknown %s type: %s", verb, args[0]), homes.AnsiRed))
		ctx.Reply(homes.Style("Valid types: homes, instanttp", homes.AnsiGray))
	}
}

func handleAdminStatus(ctx *Context, args []string) {
	if len(args) == 0 {
		ctx.Reply(homes.Style("Usage: easyhome admin status <player|uuid>", homes.AnsiYellow))
		return
	}
	target, display, ok := resolveTarget(ctx, args[0])
	if !ok {
		return
	}

	app := ctx.App
	var perms homes.Permissions
	var online homes.Subject
	if uni := app.Universe(); uni != nil {
		if subject, found := uni.PlayerByUsername(display); found && subject.ID() == target {
			online = subject
		}
	}
	if online != nil {
		perms = online
	}

	base := app.Policy.BaseLimit(perms)
	bonus := app.Grants.BonusHomes(target)
	total := app.Policy.EffectiveLimit(perms, target)
	count := app.Homes.CountHomes(target)
	instant := app.Grants.HasInstantTeleport(target)

	ctx.Reply(homes.Style(fmt.Sprintf("=== Status: %s ===", display), homes.AnsiYellow, homes.AnsiBold))
	ctx.Reply(homes.Style(fmt.Sprintf("Base limit: %d", base), homes.AnsiCyan))
	ctx.Reply(homes.Style(fmt.Sprintf("Bonus homes: +%d", bonus), homes.AnsiCyan))
	ctx.Reply(homes.Style(fmt.Sprintf("Total limit: %d", total), homes.AnsiCyan))
	ctx.Reply(homes.Style(fmt.Sprintf("Homes used: %d", count), homes.AnsiCyan))
	state := "no"
	if instant {
		state = "yes"
	}
	ctx.Reply(homes.Style("Instant teleport: "+state, homes.AnsiCyan))
	if online == nil {
		ctx.Reply(homes.Style("Player is offline; tier permissions not included.", homes.AnsiGray))
	}
}

// resolveTarget resolves a player identifier and translates the failure
// kinds into replies. Offline usernames fail with a hint to supply a UUID.
func resolveTarget(ctx *Context, identifier string) (uuid.UUID, string, bool) {
	id, display, err := ctx.App.ResolvePlayer(identifier)
	switch {
	case errors.Is(err, homes.ErrBadArgument):
		ctx.Reply(homes.Style("Invalid UUID: "+identifier, homes.AnsiRed))
		return uuid.Nil, "", false
	case errors.Is(err, homes.ErrUnknownPlayer):
		ctx.Reply(homes.Style("Player not found: "+identifier, homes.AnsiRed))
		ctx.Reply(homes.Style("Note: for offline players, use their UUID.", homes.AnsiGray))
		return uuid.Nil, "", false
	}
	return id, display, true
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "enabled":
		return true
	}
	return false
}
