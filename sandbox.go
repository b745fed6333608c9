package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"EasyHome/internal/homes"
)

// sandboxWorld is a single in-process world whose executor is a task
// channel drained by one goroutine, mirroring a host's serial world thread.
type sandboxWorld struct {
	name  string
	tasks chan func()
	done  chan struct{}
}

func newSandboxWorld(name string) *sandboxWorld {
	w := &sandboxWorld{
		name:  name,
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *sandboxWorld) Name() string { return w.name }

func (w *sandboxWorld) Execute(task func()) {
	select {
	case w.tasks <- task:
	case <-w.done:
	}
}

func (w *sandboxWorld) run() {
	for {
		select {
		case task := <-w.tasks:
			task()
		case <-w.done:
			return
		}
	}
}

func (w *sandboxWorld) stop() { close(w.done) }

// call runs task on the world executor and waits for it, so the prompt
// only returns once the command finished.
func (w *sandboxWorld) call(task func()) {
	finished := make(chan struct{})
	w.Execute(func() {
		task()
		close(finished)
	})
	select {
	case <-finished:
	case <-w.done:
	}
}

// sandboxPlayer is the local subject the sandbox drives from stdin.
type sandboxPlayer struct {
	id    uuid.UUID
	name  string
	world *sandboxWorld
	perms map[string]bool
	out   io.Writer

	mu         sync.Mutex
	pos        homes.Vec3
	yaw, pitch float32
}

func newSandboxPlayer(name string, world *sandboxWorld, perms []string, out io.Writer) *sandboxPlayer {
	p := &sandboxPlayer{
		id:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		name:  name,
		world: world,
		perms: make(map[string]bool),
		out:   out,
		pos:   homes.Vec3{X: 0, Y: 64, Z: 0},
	}
	for _, perm := range perms {
		if trimmed := strings.TrimSpace(perm); trimmed != "" {
			p.perms[trimmed] = true
		}
	}
	return p
}

func (p *sandboxPlayer) ID() uuid.UUID    { return p.id }
func (p *sandboxPlayer) Username() string { return p.name }

func (p *sandboxPlayer) HasPermission(permission string) bool {
	return p.perms[permission]
}

func (p *sandboxPlayer) SendMessage(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *sandboxPlayer) World() homes.World { return p.world }

func (p *sandboxPlayer) Position() (homes.Vec3, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, true
}

func (p *sandboxPlayer) Rotation() (yaw, pitch float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.yaw, p.pitch
}

func (p *sandboxPlayer) ApplyTeleport(world homes.World, pos homes.Vec3, yaw, pitch float32) error {
	if world.Name() != p.world.Name() {
		return fmt.Errorf("world %q: %w", world.Name(), homes.ErrWorldMismatch)
	}
	p.mu.Lock()
	p.pos = pos
	p.yaw = yaw
	p.pitch = pitch
	p.mu.Unlock()
	return nil
}

// moveBy displaces the player, as host movement would.
func (p *sandboxPlayer) moveBy(dx, dy, dz float64) homes.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.X += dx
	p.pos.Y += dy
	p.pos.Z += dz
	return p.pos
}

// sandboxUniverse exposes the single sandbox player to host-wide lookups.
type sandboxUniverse struct {
	player      *sandboxPlayer
	playersPath string
}

func (u *sandboxUniverse) PlayerByUsername(name string) (homes.Subject, bool) {
	fold := cases.Fold()
	if fold.String(name) == fold.String(u.player.name) {
		return u.player, true
	}
	return nil, false
}

func (u *sandboxUniverse) PlayersPath() string { return u.playersPath }
