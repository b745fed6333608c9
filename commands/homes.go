package commands

import (
	"fmt"

	"EasyHome/internal/homes"
)

var Homes = Define(Definition{
	Name:        "homes",
	Usage:       "homes",
	Description: "list your saved homes",
	PlayerOnly:  true,
	Permission:  homes.PermUse,
}, func(ctx *Context) {
	subject := ctx.Subject
	all := ctx.App.Homes.AllHomes(subject.ID())
	if len(all) == 0 {
		ctx.Reply(homes.Style("You have no homes set. Use 'sethome <name>' to create one.", homes.AnsiYellow))
		return
	}

	limit := ctx.App.EffectiveLimit(subject)
	ctx.Reply(homes.Style(fmt.Sprintf("Your homes (%d/%d):", len(all), limit), homes.AnsiCyan, homes.AnsiBold))
	for _, home := range all {
		ctx.Reply(fmt.Sprintf("  %s %s", homes.HighlightHome(home.Name), homes.Style(home.FormattedLocation(), homes.AnsiGray)))
	}
})
