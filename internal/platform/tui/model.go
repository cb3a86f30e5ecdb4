package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/storage"
)

// Muter is implemented by sound sinks that can be silenced at runtime.
type Muter interface {
	SetMuted(muted bool)
	Muted() bool
}

// Options configures a Model. Every field is optional.
type Options struct {
	Ledger     *storage.Ledger // finished levels are recorded here
	Logger     *log.Logger
	Hold       time.Duration // how long a key press counts as held
	Muter      Muter
	StartLevel int // level preselected on the menu
}

// Model is the Bubble Tea model driving one game session.
type Model struct {
	session  *game.Session
	opts     Options
	log      *log.Logger
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	input    *HoldInput
	ledger   LedgerTable
	state    core.GameState
	err      error
	quitting bool
	now      func() time.Time
}

// NewModel resets the session with cfg and wraps it in a model.
func NewModel(sess *game.Session, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	sess.Reset(cfg)
	if opts.StartLevel > 0 {
		sess.SelectLevel(opts.StartLevel)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		session: sess,
		opts:    opts,
		log:     logger,
		screen:  core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		input:   NewHoldInput(opts.Hold),
		ledger:  NewLedgerTable(cfg.ScreenH),
		state:   sess.State(),
		now:     time.Now,
	}
	m.refreshLedger()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Mute) {
		if m.opts.Muter != nil {
			m.opts.Muter.SetMuted(!m.opts.Muter.Muted())
		}
		return m, nil
	}

	a := m.keys.MapKey(msg)
	if a == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Directions and fire are level signals only while playing; in the
	// menu and on overlays every key is a single press.
	m.input.Press(a, m.now(), m.state == core.StatePlaying && holdable(a))
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	m.ledger = NewLedgerTable(msg.Height)
	m.refreshLedger()
	return m, nil
}

// handleTick steps the session once.
func (m Model) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	prev := m.state
	res, err := m.session.Step(m.input.Frame(at))
	if err != nil {
		m.log.Error("session step failed", "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.state = res.State

	if prev == core.StateMenu && m.state == core.StatePlaying && m.opts.Ledger != nil {
		m.opts.Ledger.NewRun()
	}
	if res.Finished != nil {
		m.record(*res.Finished)
	}
	if m.state != prev && m.state != core.StatePlaying {
		m.input.Release()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) record(res game.Result) {
	if m.opts.Ledger == nil {
		return
	}
	if err := m.opts.Ledger.Record(res); err != nil {
		m.log.Warn("could not record level", "level", res.Level, "error", err)
		return
	}
	m.refreshLedger()
}

func (m *Model) refreshLedger() {
	if err := m.ledger.Refresh(m.opts.Ledger); err != nil {
		m.log.Warn("could not load ledger", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.state == core.StateMenu {
		return menuView(m.session.Level(), m.config.ScreenW) + "\n" +
			m.ledger.View() + "\n\n" + footer
	}

	DrawSnapshot(m.screen, m.session.Snapshot())
	return RenderScreen(m.screen) + "\n" + footer
}

// State returns the session state seen on the last tick.
func (m Model) State() core.GameState {
	return m.state
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(sess *game.Session, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(sess, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
