// Package game is the CyberGrid session: the state machine that owns the
// level, the entity registry and every timer of a running level.
package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cybergrid/internal/combat"
	"github.com/vovakirdan/cybergrid/internal/config"
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/drone"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/grid"
	"github.com/vovakirdan/cybergrid/internal/level"
	"github.com/vovakirdan/cybergrid/internal/scheduler"
	"github.com/vovakirdan/cybergrid/internal/sound"
)

// Timer names.
const (
	TimerRunnerMove = "runner-move"
	TimerFire       = "fire"
	TimerDrone      = "drone"
	TimerProjectile = "projectile"
	TimerNotice     = "notice"
)

// NoticeAllEliminated is shown when the last drone is destroyed.
const NoticeAllEliminated = "ALL DRONES ELIMINATED"

// Result summarizes a finished level.
type Result struct {
	Level           int
	Outcome         core.GameState // StateVictory or StateGameOver
	Collected       int
	Total           int
	DronesDestroyed int
	Duration        time.Duration // simulated time spent playing
}

// StepResult is returned by every Step.
type StepResult struct {
	State    core.GameState
	Events   []sound.Event
	Finished *Result // set on the step a level ends
}

// Option configures a Session.
type Option func(*Session)

// WithSink sets the sound sink. The default is sound.Silent.
func WithSink(s sound.Sink) Option {
	return func(sess *Session) {
		if s != nil {
			sess.sink = s
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(sess *Session) {
		if l != nil {
			sess.log = l
		}
	}
}

// WithRand replaces the seeded generator. Reset keeps it.
func WithRand(r entity.Rand) Option {
	return func(sess *Session) {
		sess.fixedRng = r
	}
}

// Session is one player's game. It is not safe for concurrent use; the
// front end drives it from a single loop.
type Session struct {
	timing   config.TimingConfig
	sink     sound.Sink
	log      *log.Logger
	fixedRng entity.Rand

	rng    entity.Rand
	engine *drone.Engine
	sched  *scheduler.Scheduler
	reg    *entity.Registry
	frame  time.Duration

	state core.GameState
	level int
	tally combat.Tally
	tick  uint64

	notice   string
	heldDir  grid.Dir
	fireHeld bool
	fireWas  bool // fire state on the previous frame, for edge detection

	runStart time.Duration
	events   []sound.Event
	finished *Result
}

// New creates a session in the menu with level 1 selected.
func New(timing config.TimingConfig, opts ...Option) *Session {
	s := &Session{
		timing: timing,
		sink:   sound.Silent{},
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(core.DefaultConfig())
	return s
}

// Reset returns to the menu with a fresh registry, clock and generator.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if s.fixedRng != nil {
		s.rng = s.fixedRng
	} else {
		s.rng = rand.New(rand.NewSource(seed))
	}
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	s.frame = time.Second / time.Duration(tickRate)
	s.engine = drone.NewEngine(s.rng)
	s.sched = scheduler.New()
	s.reg = entity.New()
	s.state = core.StateMenu
	s.level = 1
	s.tally = combat.Tally{}
	s.tick = 0
	s.notice = ""
	s.heldDir = grid.DirNone
	s.fireHeld = false
	s.fireWas = false
	s.finished = nil
}

// State returns the current state.
func (s *Session) State() core.GameState {
	return s.state
}

// Level returns the selected or running level number.
func (s *Session) Level() int {
	return s.level
}

// Frame returns the simulated time covered by one Step.
func (s *Session) Frame() time.Duration {
	return s.frame
}

// Step advances the session by one frame.
func (s *Session) Step(in core.InputFrame) (StepResult, error) {
	s.tick++
	s.events = nil
	s.finished = nil

	firePressed := in.FireHeld() && !s.fireWas
	s.fireWas = in.FireHeld()

	err := s.handleStateInput(in, firePressed)

	if s.state == core.StatePlaying {
		s.applyHeld(in)
		s.resolve()
	}
	if s.state == core.StatePlaying {
		s.sched.Advance(s.frame)
	}

	return StepResult{State: s.state, Events: s.events, Finished: s.finished}, err
}

func (s *Session) handleStateInput(in core.InputFrame, firePressed bool) error {
	switch s.state {
	case core.StateMenu:
		switch {
		case in.Has(core.ActionUp):
			s.SelectLevel(s.level - 1)
		case in.Has(core.ActionDown):
			s.SelectLevel(s.level + 1)
		}
		if n := in.SelectedLevel(); n > 0 {
			s.SelectLevel(n)
		}
		if in.Has(core.ActionConfirm) {
			return s.Start()
		}
	case core.StatePlaying:
		if in.PauseToggled() {
			s.TogglePause()
		}
	case core.StatePaused:
		switch {
		case in.PauseToggled():
			s.TogglePause()
		case in.Has(core.ActionBack), in.Has(core.ActionRestart):
			s.Restart()
		}
	case core.StateVictory:
		switch {
		case in.Has(core.ActionRestart):
			s.Restart()
		case in.Has(core.ActionConfirm), firePressed:
			if level.HasNext(s.level) {
				return s.NextLevel()
			}
			s.Restart()
		}
	case core.StateGameOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) || firePressed {
			s.Restart()
		}
	}
	return nil
}

// SelectLevel moves the menu cursor. It only has an effect in the menu.
func (s *Session) SelectLevel(n int) {
	if s.state != core.StateMenu {
		return
	}
	s.level = level.Clamp(n)
}

// Start begins the selected level from the menu.
func (s *Session) Start() error {
	if s.state != core.StateMenu {
		return nil
	}
	return s.startLevel(s.level)
}

// NextLevel advances from victory to the following level.
func (s *Session) NextLevel() error {
	if s.state != core.StateVictory || !level.HasNext(s.level) {
		return nil
	}
	return s.startLevel(s.level + 1)
}

// Restart tears the level down and returns to the menu.
func (s *Session) Restart() {
	if s.state == core.StateMenu {
		return
	}
	s.teardown()
	s.transition(core.StateMenu)
}

// TogglePause switches between playing and paused. Pausing stops every
// gameplay timer without touching entities.
func (s *Session) TogglePause() {
	switch s.state {
	case core.StatePlaying:
		s.sched.Cancel(TimerRunnerMove)
		s.sched.Cancel(TimerFire)
		s.sched.Cancel(TimerDrone)
		s.sched.Cancel(TimerProjectile)
		s.heldDir = grid.DirNone
		s.fireHeld = false
		s.transition(core.StatePaused)
	case core.StatePaused:
		s.armLevelTimers()
		s.transition(core.StatePlaying)
	}
}

func (s *Session) teardown() {
	s.sched.CancelAll()
	s.reg.Clear()
	s.tally = combat.Tally{}
	s.notice = ""
	s.heldDir = grid.DirNone
	s.fireHeld = false
}

func (s *Session) startLevel(n int) error {
	n = level.Clamp(n)
	cfg := level.Get(n)

	s.teardown()
	s.level = n
	s.tally = combat.Tally{Total: cfg.Items}

	if err := s.reg.SpawnItems(s.rng, cfg.Items); err != nil {
		return s.spawnFailed(n, err)
	}
	if err := s.reg.SpawnDrones(s.rng, cfg.Drones); err != nil {
		return s.spawnFailed(n, err)
	}

	s.runStart = s.sched.Now()
	s.armLevelTimers()
	s.transition(core.StatePlaying)
	return nil
}

func (s *Session) spawnFailed(n int, err error) error {
	s.log.Error("level spawn failed", "level", n, "err", err)
	s.teardown()
	s.transition(core.StateMenu)
	return fmt.Errorf("game: start level %d: %w", n, err)
}

func (s *Session) armLevelTimers() {
	s.sched.Every(TimerDrone, level.Get(s.level).DroneMoveDelay, s.droneTick)
	s.sched.Every(TimerProjectile, s.timing.ProjectileStep(), s.projectileStep)
}

func (s *Session) transition(to core.GameState) {
	from := s.state
	s.state = to
	s.log.Debug("state", "from", from, "to", to, "level", s.level, "collected", s.tally.Collected)
}

// applyHeld starts or stops the runner and fire repeat timers. A newly held
// control acts on the same frame, then repeats on its timer.
func (s *Session) applyHeld(in core.InputFrame) {
	dir := toDir(in.HeldDirection())
	if dir != s.heldDir {
		s.sched.Cancel(TimerRunnerMove)
		s.heldDir = dir
		if dir != grid.DirNone {
			s.moveRunner()
			s.sched.Every(TimerRunnerMove, s.timing.RunnerRepeat(), s.repeatMove)
		}
	}

	fire := in.FireHeld()
	switch {
	case fire && !s.fireHeld:
		s.fireHeld = true
		s.fire()
		s.sched.Every(TimerFire, s.timing.FireRepeat(), s.repeatFire)
	case !fire && s.fireHeld:
		s.fireHeld = false
		s.sched.Cancel(TimerFire)
	}
}

func toDir(a core.Action) grid.Dir {
	switch a {
	case core.ActionUp:
		return grid.DirUp
	case core.ActionDown:
		return grid.DirDown
	case core.ActionLeft:
		return grid.DirLeft
	case core.ActionRight:
		return grid.DirRight
	default:
		return grid.DirNone
	}
}

func (s *Session) moveRunner() {
	if s.reg.MoveRunner(s.heldDir) {
		s.emit(sound.EventMoved)
	}
}

func (s *Session) fire() {
	s.reg.FireProjectile(s.sched.Now())
	s.emit(sound.EventFired)
}

func (s *Session) repeatMove() {
	if s.state != core.StatePlaying {
		return
	}
	s.moveRunner()
	s.resolve()
}

func (s *Session) repeatFire() {
	if s.state != core.StatePlaying {
		return
	}
	s.fire()
	s.resolve()
}

func (s *Session) droneTick() {
	if s.state != core.StatePlaying {
		return
	}
	s.engine.Tick(s.reg)
	s.resolve()
}

func (s *Session) projectileStep() {
	if s.state != core.StatePlaying {
		return
	}
	s.reg.StepProjectiles()
	s.resolve()
}

// resolve applies the combat report: sounds, the notice and end of level.
func (s *Session) resolve() {
	rep := combat.Resolve(s.state, s.reg, &s.tally)
	for range rep.Collected {
		s.emit(sound.EventItemCollected)
	}
	for _, h := range rep.Hits {
		if h.Destroyed {
			s.emit(sound.EventDroneDestroyed)
		} else {
			s.emit(sound.EventDroneHit)
		}
	}
	if rep.AllEliminated {
		s.showNotice(NoticeAllEliminated)
	}
	switch rep.Outcome {
	case combat.OutcomeVictory:
		s.finish(core.StateVictory, sound.EventVictory)
	case combat.OutcomeGameOver:
		s.finish(core.StateGameOver, sound.EventGameOver)
	}
}

func (s *Session) showNotice(text string) {
	s.notice = text
	s.sched.After(TimerNotice, s.timing.Notice(), func() {
		s.notice = ""
	})
}

func (s *Session) finish(to core.GameState, ev sound.Event) {
	s.sched.CancelAll()
	s.notice = ""
	s.heldDir = grid.DirNone
	s.fireHeld = false
	s.finished = &Result{
		Level:           s.level,
		Outcome:         to,
		Collected:       s.tally.Collected,
		Total:           s.tally.Total,
		DronesDestroyed: s.reg.DronesDestroyed(),
		Duration:        s.sched.Now() - s.runStart,
	}
	s.emit(ev)
	s.transition(to)
}

func (s *Session) emit(ev sound.Event) {
	s.events = append(s.events, ev)
	s.sink.Notify(ev)
}
