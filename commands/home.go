package commands

import (
	"errors"
	"fmt"

	"EasyHome/internal/homes"
)

const defaultHomeName = "home"

var Home = Define(Definition{
	Name:        "home",
	Usage:       "home [name]",
	Description: "teleport to one of your saved homes",
	PlayerOnly:  true,
	Permission:  homes.PermUse,
}, func(ctx *Context) {
	name := ctx.Arg
	if name == "" {
		name = defaultHomeName
	}

	subject := ctx.Subject
	id := subject.ID()
	home, err := ctx.App.LookupHome(id, name)
	if errors.Is(err, homes.ErrNotFound) {
		ctx.Reply(homes.Style(fmt.Sprintf("Home '%s' not found.", name), homes.AnsiRed))
		if ctx.App.Homes.CountHomes(id) > 0 {
			ctx.Reply(homes.Style("Use 'homes' to list your homes.", homes.AnsiGray))
		}
		return
	}

	bypass := ctx.App.Grants.HasInstantTeleport(id)
	ctx.App.Warmup.RequestTeleport(subject, home, bypass)
})
