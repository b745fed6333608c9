package homes

import (
	"fmt"
	"strings"
)

// ANSI attributes for user-visible messages.
const (
	AnsiReset  = "\x1b[0m"
	AnsiBold   = "\x1b[1m"
	AnsiRed    = "\x1b[31m"
	AnsiGreen  = "\x1b[32m"
	AnsiYellow = "\x1b[33m"
	AnsiCyan   = "\x1b[36m"
	AnsiGray   = "\x1b[90m"
)

// Style wraps text with the provided ANSI attributes.
func Style(text string, attrs ...string) string {
	if len(attrs) == 0 {
		return text
	}
	return strings.Join(attrs, "") + text + AnsiReset
}

// HighlightHome formats home names consistently.
func HighlightHome(name string) string {
	return Style(name, AnsiBold, AnsiCyan)
}

// MsgWarmupStarted announces the start of a teleport warmup.
func MsgWarmupStarted(home string, seconds int) string {
	return Style(fmt.Sprintf("Teleporting to %s in %d seconds. Don't move!", home, seconds), AnsiYellow)
}

// MsgTeleported confirms an applied teleport.
func MsgTeleported(home string) string {
	return Style(fmt.Sprintf("Teleported to %s!", home), AnsiGreen)
}

// MsgTeleportCancelled reports a warmup aborted by movement.
func MsgTeleportCancelled() string {
	return Style("Teleport cancelled because you moved!", AnsiRed)
}

// MsgWorldNotFound reports a teleport refused because the target world is
// not the subject's current world.
func MsgWorldNotFound(world string) string {
	return Style(fmt.Sprintf("World '%s' not found.", world), AnsiRed)
}
