package commands

import (
	"errors"
	"fmt"

	"EasyHome/internal/homes"
)

var DelHome = Define(Definition{
	Name:        "delhome",
	Usage:       "delhome <name>",
	Description: "delete one of your saved homes",
	PlayerOnly:  true,
	Permission:  homes.PermUse,
}, func(ctx *Context) {
	name := ctx.Arg
	if name == "" {
		ctx.Reply(homes.Style("Usage: delhome <name>", homes.AnsiYellow))
		return
	}

	id := ctx.Subject.ID()
	if err := ctx.App.DeleteHome(id, name); errors.Is(err, homes.ErrNotFound) {
		ctx.Reply(homes.Style(fmt.Sprintf("Home '%s' not found.", name), homes.AnsiRed))
		return
	}
	ctx.Reply(fmt.Sprintf("Home %s deleted.", homes.Style(name, homes.AnsiYellow, homes.AnsiBold)))
})
