package commands

import (
	"fmt"

	"EasyHome/internal/homes"
)

var HomeHelp = Define(Definition{
	Name:        "homehelp",
	Usage:       "homehelp",
	Description: "show the home commands",
}, func(ctx *Context) {
	ctx.Reply(homes.Style("=== Home Commands ===", homes.AnsiYellow, homes.AnsiBold))
	for _, cmd := range All() {
		if cmd.Name == "easyhome" {
			continue
		}
		ctx.Reply(fmt.Sprintf("  %s %s", homes.Style(fmt.Sprintf("%-16s", cmd.Usage), homes.AnsiCyan), cmd.Description))
	}
	ctx.Reply(homes.Style("Admins: see 'easyhome admin'.", homes.AnsiGray))
})
