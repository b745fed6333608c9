package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"EasyHome/internal/homes"
)

var SetHome = Define(Definition{
	Name:        "sethome",
	Usage:       "sethome <name>",
	Description: "save your current position as a home",
	PlayerOnly:  true,
	Permission:  homes.PermUse,
}, func(ctx *Context) {
	name := ctx.Arg
	if name == "" {
		ctx.Reply(homes.Style("Usage: sethome <name>", homes.AnsiYellow))
		return
	}

	subject := ctx.Subject
	if err := ctx.App.CanSetHome(subject, name); err != nil {
		var limitErr *homes.LimitError
		if errors.As(err, &limitErr) {
			ctx.Reply(homes.Style(fmt.Sprintf("You have reached your home limit (%d/%d).", limitErr.Count, limitErr.Limit), homes.AnsiRed))
			ctx.Reply(homes.Style("Delete a home with 'delhome <name>' to free a slot.", homes.AnsiGray))
		} else {
			ctx.Reply(homes.Style(err.Error(), homes.AnsiRed))
		}
		return
	}

	pos, ok := subject.Position()
	if !ok {
		ctx.Reply(homes.Style("Your position could not be determined.", homes.AnsiRed))
		return
	}
	yaw, pitch := subject.Rotation()
	id := subject.ID()
	replaced := ctx.App.Homes.SetHome(id, homes.HomeRecord{
		Name:  name,
		World: subject.World().Name(),
		X:     pos.X,
		Y:     pos.Y,
		Z:     pos.Z,
		Yaw:   yaw,
		Pitch: pitch,
	})
	if err := ctx.App.Homes.Save(id); err != nil {
		ctx.App.Log.Error("save homes failed", zap.Error(err))
	}

	if replaced {
		ctx.Reply(fmt.Sprintf("Home %s updated!", homes.Style(name, homes.AnsiGreen, homes.AnsiBold)))
		return
	}
	ctx.Reply(fmt.Sprintf("Home %s set!", homes.Style(name, homes.AnsiGreen, homes.AnsiBold)))
})
