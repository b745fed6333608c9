package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"EasyHome/commands"
	"EasyHome/internal/homes"
)

func main() {
	dataDir := flag.String("data", "data", "Directory holding homes, grants and config")
	worldName := flag.String("world", "world", "Name of the sandbox world")
	playerName := flag.String("name", "Player", "Username of the sandbox player")
	perms := flag.String("perms", "homes.use,homes.admin", "Comma-separated permissions held by the sandbox player")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logCfg := zap.NewDevelopmentConfig()
	if !*debug {
		logCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	world := newSandboxWorld(*worldName)
	defer world.stop()
	player := newSandboxPlayer(*playerName, world, strings.Split(*perms, ","), os.Stdout)
	universe := &sandboxUniverse{
		player:      player,
		playersPath: filepath.Join(*dataDir, "universe", "players"),
	}

	app, err := homes.NewPlugin(*dataDir, universe, logger)
	if err != nil {
		logger.Fatal("plugin startup failed", zap.Error(err))
	}
	defer app.Shutdown()

	fmt.Printf("EasyHome sandbox; you are %s in world %q.\n", player.Username(), world.Name())
	fmt.Println("Player commands run as you; prefix a line with ':' for the console.")
	fmt.Println("'walk <dx> <dy> <dz>' moves you, 'quit' exits.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "quit" || line == "exit":
			return
		case strings.HasPrefix(line, ":"):
			commands.Dispatch(app, nil, func(text string) { fmt.Println(text) },
				strings.TrimSpace(strings.TrimPrefix(line, ":")))
		case strings.HasPrefix(line, "walk "):
			walk(world, player, strings.Fields(line)[1:])
		default:
			world.call(func() { commands.Dispatch(app, player, nil, line) })
		}
	}
}

// walk displaces the sandbox player on the world executor, which is how a
// real host applies movement.
func walk(world *sandboxWorld, player *sandboxPlayer, args []string) {
	if len(args) != 3 {
		fmt.Println("Usage: walk <dx> <dy> <dz>")
		return
	}
	deltas := make([]float64, 3)
	for i, arg := range args {
		value, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Println("Usage: walk <dx> <dy> <dz>")
			return
		}
		deltas[i] = value
	}
	world.call(func() {
		pos := player.moveBy(deltas[0], deltas[1], deltas[2])
		fmt.Printf("You are now at (%.1f, %.1f, %.1f).\n", pos.X, pos.Y, pos.Z)
	})
}
