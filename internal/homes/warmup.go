package homes

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// movementThreshold is the radius the subject must stay within during
	// a warmup, in world length units.
	movementThreshold = 0.5
	// defaultProbeInterval is how often the subject's position is checked
	// against the warmup origin.
	defaultProbeInterval = 500 * time.Millisecond
)

// warmupSession is one pending teleport. At most one exists per player id.
type warmupSession struct {
	subject Subject
	world   World
	home    HomeRecord
	origin  Vec3

	stop     chan struct{}
	stopOnce sync.Once
}

func (s *warmupSession) cancelTimers() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// WarmupEngine gates teleports behind a movement-cancelled countdown.
//
// Each session runs its timers on a background goroutine; position reads
// and the teleport application are posted to the world executor, so they
// observe a consistent entity transform. Timer callbacks that find their
// session gone exit without side effects.
type WarmupEngine struct {
	cfg *Config
	log *zap.Logger

	// probeInterval is lowered by tests.
	probeInterval time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]*warmupSession
	closed   bool
}

// NewWarmupEngine builds an engine over the given config.
func NewWarmupEngine(cfg *Config, log *zap.Logger) *WarmupEngine {
	return &WarmupEngine{
		cfg:           cfg,
		log:           log,
		probeInterval: defaultProbeInterval,
		sessions:      make(map[uuid.UUID]*warmupSession),
	}
}

// RequestTeleport starts a warmup for the subject's teleport to home. Any
// prior warmup for the same player is cancelled first. When bypass is true
// or the configured warmup is zero, the teleport fires immediately and no
// session is created. Must be called from the subject's world executor so
// the origin read observes a consistent transform.
func (e *WarmupEngine) RequestTeleport(subject Subject, home HomeRecord, bypass bool) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}

	id := subject.ID()
	e.Cancel(id)

	world := subject.World()
	seconds := e.cfg.WarmupSeconds()
	if bypass || seconds == 0 {
		e.fireTeleport(subject, world, home)
		return
	}

	origin, _ := subject.Position()
	sess := &warmupSession{
		subject: subject,
		world:   world,
		home:    home,
		origin:  origin,
		stop:    make(chan struct{}),
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.sessions[id] = sess
	e.mu.Unlock()

	subject.SendMessage(MsgWarmupStarted(home.Name, seconds))
	e.log.Debug("warmup started",
		zap.String("player", id.String()),
		zap.String("home", home.Name),
		zap.Int("seconds", seconds))
	go e.run(id, sess, time.Duration(seconds)*time.Second)
}

// run owns the session's timers: a periodic movement probe and the one-shot
// fire. It exits when the session fires or is cancelled.
func (e *WarmupEngine) run(id uuid.UUID, sess *warmupSession, wait time.Duration) {
	probe := time.NewTicker(e.probeInterval)
	defer probe.Stop()
	fire := time.NewTimer(wait)
	defer fire.Stop()

	for {
		select {
		case <-probe.C:
			e.probeMovement(id, sess)
		case <-fire.C:
			e.fire(id, sess)
			return
		case <-sess.stop:
			return
		}
	}
}

// active reports whether sess is still the registered session for id.
func (e *WarmupEngine) active(id uuid.UUID, sess *warmupSession) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions[id] == sess
}

// probeMovement posts a position check to the world executor. A session
// that disappeared in the meantime is left alone; a subject that moved past
// the threshold has its warmup cancelled.
func (e *WarmupEngine) probeMovement(id uuid.UUID, sess *warmupSession) {
	if !e.active(id, sess) {
		return
	}
	sess.world.Execute(func() {
		if !e.active(id, sess) {
			return
		}
		pos, ok := sess.subject.Position()
		if !ok {
			// Missing transform: treat as no movement.
			return
		}
		if pos.DistanceTo(sess.origin) > movementThreshold {
			sess.subject.SendMessage(MsgTeleportCancelled())
			e.Cancel(id)
			e.log.Debug("warmup cancelled by movement", zap.String("player", id.String()))
		}
	})
}

// fire removes the session and applies the teleport, unless the session
// was cancelled or replaced since the timer was armed.
func (e *WarmupEngine) fire(id uuid.UUID, sess *warmupSession) {
	e.mu.Lock()
	if e.sessions[id] != sess {
		e.mu.Unlock()
		return
	}
	delete(e.sessions, id)
	e.mu.Unlock()
	e.fireTeleport(sess.subject, sess.world, sess.home)
}

// validateTarget checks that the home lies in the subject's current world.
func validateTarget(world World, home HomeRecord) error {
	if world.Name() != home.World {
		return fmt.Errorf("world %q: %w", home.World, ErrWorldMismatch)
	}
	return nil
}

// fireTeleport validates the target world and applies the teleport on the
// world executor. Errors never escape into the timer loop.
func (e *WarmupEngine) fireTeleport(subject Subject, world World, home HomeRecord) {
	if err := validateTarget(world, home); err != nil {
		subject.SendMessage(MsgWorldNotFound(home.World))
		e.log.Debug("teleport refused",
			zap.String("player", subject.ID().String()),
			zap.Error(err))
		return
	}
	world.Execute(func() {
		if err := subject.ApplyTeleport(world, home.Position(), home.Yaw, home.Pitch); err != nil {
			e.log.Warn("teleport failed",
				zap.String("player", subject.ID().String()),
				zap.String("home", home.Name),
				zap.Error(err))
			subject.SendMessage(MsgWorldNotFound(home.World))
			return
		}
		subject.SendMessage(MsgTeleported(home.Name))
	})
}

// Cancel aborts the player's pending warmup, if any. It is idempotent, and
// once it returns no future probe or fire will observe the session.
func (e *WarmupEngine) Cancel(id uuid.UUID) {
	e.mu.Lock()
	sess := e.sessions[id]
	delete(e.sessions, id)
	e.mu.Unlock()
	if sess != nil {
		sess.cancelTimers()
	}
}

// HasActiveWarmup reports whether the player has a pending warmup.
func (e *WarmupEngine) HasActiveWarmup(id uuid.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.sessions[id]
	return ok
}

// Shutdown cancels every active session and refuses new ones. It does not
// wait for tasks already handed to a world executor; those exit on their
// own when they find their session gone.
func (e *WarmupEngine) Shutdown() {
	e.mu.Lock()
	e.closed = true
	sessions := e.sessions
	e.sessions = make(map[uuid.UUID]*warmupSession)
	e.mu.Unlock()
	for _, sess := range sessions {
		sess.cancelTimers()
	}
}
