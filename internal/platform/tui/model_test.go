package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cybergrid/internal/config"
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/game"
	"github.com/vovakirdan/cybergrid/internal/grid"
	"github.com/vovakirdan/cybergrid/internal/storage"
)

// harness drives a Model with a fake clock.
type harness struct {
	t     *testing.T
	m     Model
	sess  *game.Session
	clock time.Time
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{t: t, sess: game.New(config.Default().Timing), clock: time.Unix(1000, 0)}
	h.m = NewModel(h.sess, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}, opts)
	h.m.now = func() time.Time { return h.clock }
	return h
}

func (h *harness) key(msg tea.KeyMsg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) tick(d time.Duration) {
	h.clock = h.clock.Add(d)
	next, _ := h.m.Update(TickMsg(h.clock))
	h.m = next.(Model)
}

func (h *harness) start() {
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(16 * time.Millisecond)
	require.Equal(h.t, core.StatePlaying, h.m.State())
}

func TestModelStartsSelectedLevel(t *testing.T) {
	h := newHarness(t, Options{})
	h.key(runes("3"))
	h.start()

	assert.Equal(t, 3, h.sess.Level())
}

func TestModelStartLevelOption(t *testing.T) {
	h := newHarness(t, Options{StartLevel: 4})
	assert.Equal(t, 4, h.sess.Level())
	assert.Contains(t, h.m.View(), "> 4")
}

func TestModelMenuKeysAreSinglePresses(t *testing.T) {
	h := newHarness(t, Options{})
	h.key(tea.KeyMsg{Type: tea.KeyDown})
	h.tick(16 * time.Millisecond)
	h.tick(16 * time.Millisecond)
	h.tick(16 * time.Millisecond)

	assert.Equal(t, 2, h.sess.Level())
}

func TestModelHeldDirectionMovesOnceThenReleases(t *testing.T) {
	h := newHarness(t, Options{})
	h.start()

	h.key(tea.KeyMsg{Type: tea.KeyLeft})
	h.tick(16 * time.Millisecond)
	assert.Equal(t, grid.Spawn.Add(-1, 0), h.sess.Snapshot().Runner.Pos)

	// No repeat arrives within the hold window: the key counts as released.
	h.tick(500 * time.Millisecond)
	h.tick(500 * time.Millisecond)
	assert.Equal(t, grid.Spawn.Add(-1, 0), h.sess.Snapshot().Runner.Pos)
}

func TestModelPauseAndBackToMenu(t *testing.T) {
	h := newHarness(t, Options{})
	h.start()

	h.key(runes("p"))
	h.tick(16 * time.Millisecond)
	require.Equal(t, core.StatePaused, h.m.State())
	assert.Contains(t, h.m.View(), "PAUSED")

	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	h.tick(16 * time.Millisecond)
	require.Equal(t, core.StateMenu, h.m.State())
	assert.Contains(t, h.m.View(), "Boot Sector")
}

func TestModelQuit(t *testing.T) {
	h := newHarness(t, Options{})
	cmd := h.key(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.m.View())
	assert.NoError(t, h.m.Err())
}

type fakeMuter struct{ muted bool }

func (f *fakeMuter) SetMuted(m bool) { f.muted = m }
func (f *fakeMuter) Muted() bool     { return f.muted }

func TestModelMuteToggle(t *testing.T) {
	mu := &fakeMuter{}
	h := newHarness(t, Options{Muter: mu})

	h.key(runes("m"))
	assert.True(t, mu.muted)
	h.key(runes("m"))
	assert.False(t, mu.muted)
}

func TestModelLedger(t *testing.T) {
	store, err := storage.Open()
	require.NoError(t, err)
	defer store.Close()

	ledger := storage.NewLedger(store, "test-session")
	h := newHarness(t, Options{Ledger: ledger})
	assert.Contains(t, h.m.View(), "no levels played")

	first := ledger.RunID()
	h.start()
	assert.NotEqual(t, first, ledger.RunID(), "starting from the menu opens a new run")

	h.m.record(game.Result{
		Level:     1,
		Outcome:   core.StateVictory,
		Collected: 8,
		Total:     8,
		Duration:  12 * time.Second,
	})
	assert.Equal(t, 1, h.m.ledger.Len())

	runs, err := ledger.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, storage.OutcomeVictory, runs[0].Outcome)

	h.key(runes("p"))
	h.tick(16 * time.Millisecond)
	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	h.tick(16 * time.Millisecond)
	require.Equal(t, core.StateMenu, h.m.State())
	assert.Contains(t, h.m.View(), "victory")
}

func TestModelResize(t *testing.T) {
	h := newHarness(t, Options{})
	next, _ := h.m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	h.m = next.(Model)

	assert.Equal(t, 100, h.m.screen.Width())
	assert.Equal(t, 39, h.m.screen.Height())
}
