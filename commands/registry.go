package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"EasyHome/internal/homes"
)

// Definition describes a single command's metadata.
type Definition struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	// PlayerOnly commands are refused from the console.
	PlayerOnly bool
	// Permission, when set, must be held by a player caller. Console
	// callers are always authorised.
	Permission string
}

// Handler executes a command.
type Handler func(*Context)

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
// Subject is nil when the command was issued from the console.
type Context struct {
	App     *homes.Plugin
	Subject homes.Subject
	Raw     string
	Arg     string
	Input   string
	Command *Command

	sink func(string)
}

// Reply sends a message back to whoever issued the command.
func (ctx *Context) Reply(text string) {
	if ctx.Subject != nil {
		ctx.Subject.SendMessage(text)
		return
	}
	if ctx.sink != nil {
		ctx.sink(text)
	}
}

// Console reports whether the command was issued from the console.
func (ctx *Context) Console() bool {
	return ctx.Subject == nil
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find looks up a command by name or alias.
func Find(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(name)]
	return cmd, ok
}

// Dispatch parses the input line, looks up the command, and executes it.
// A nil subject marks console invocation; replies then go to sink.
func Dispatch(app *homes.Plugin, subject homes.Subject, sink func(string), line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])

	registryMu.RLock()
	cmd, ok := registry[name]
	registryMu.RUnlock()

	ctx := &Context{
		App:     app,
		Subject: subject,
		Raw:     line,
		Arg:     strings.TrimSpace(strings.TrimPrefix(line, parts[0])),
		Input:   parts[0],
		sink:    sink,
	}
	if !ok {
		ctx.Reply(homes.Style("Unknown command. Type 'homehelp'.", homes.AnsiYellow))
		return false
	}
	ctx.Command = cmd

	if cmd.PlayerOnly && subject == nil {
		ctx.Reply(homes.Style("That command can only be used by a player.", homes.AnsiRed))
		return false
	}
	if err := homes.Authorize(subject, cmd.Permission); errors.Is(err, homes.ErrPermissionDenied) {
		ctx.Reply(homes.Style("You don't have permission for this command.", homes.AnsiRed))
		return false
	}
	if subject != nil {
		app.TouchPlayer(subject)
	}
	cmd.Handler(ctx)
	return true
}
