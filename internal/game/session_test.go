package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/cybergrid/internal/combat"
	"github.com/vovakirdan/cybergrid/internal/config"
	"github.com/vovakirdan/cybergrid/internal/core"
	"github.com/vovakirdan/cybergrid/internal/entity"
	"github.com/vovakirdan/cybergrid/internal/grid"
	"github.com/vovakirdan/cybergrid/internal/sound"
)

type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

func newTestSession(t *testing.T, seed int64, opts ...Option) (*Session, *sound.Recorder) {
	t.Helper()
	rec := &sound.Recorder{}
	s := New(config.Default().Timing, append([]Option{WithSink(rec)}, opts...)...)
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return s, rec
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func step(t *testing.T, s *Session, actions ...core.Action) StepResult {
	t.Helper()
	res, err := s.Step(input(actions...))
	require.NoError(t, err)
	return res
}

// startEmpty starts a level and replaces its layout with an empty board
// that needs total items to win.
func startEmpty(t *testing.T, s *Session, total int) {
	t.Helper()
	step(t, s, core.ActionConfirm)
	require.Equal(t, core.StatePlaying, s.State())
	s.reg.Clear()
	s.tally = combat.Tally{Total: total}
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s, _ := newTestSession(t, 1)
	assert.Equal(t, core.StateMenu, s.State())
	assert.Equal(t, 1, s.Level())
	assert.Empty(t, s.sched.Pending())
}

func TestMenuSelection(t *testing.T) {
	s, _ := newTestSession(t, 1)

	step(t, s, core.ActionUp)
	assert.Equal(t, 1, s.Level(), "cursor clamps at 1")
	step(t, s, core.ActionDown)
	step(t, s, core.ActionDown)
	assert.Equal(t, 3, s.Level())
	step(t, s, core.ActionLevel5)
	assert.Equal(t, 5, s.Level())
	step(t, s, core.ActionDown)
	assert.Equal(t, 5, s.Level(), "cursor clamps at 5")
	assert.Equal(t, core.StateMenu, s.State())
}

func TestStartLevelOne(t *testing.T) {
	s, _ := newTestSession(t, 7)
	res := step(t, s, core.ActionConfirm)
	assert.Equal(t, core.StatePlaying, res.State)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 8)
	require.Len(t, snap.Drones, 6)
	assert.Equal(t, 8, snap.Total)
	assert.Equal(t, 0, snap.Collected)
	assert.Equal(t, grid.Spawn, snap.Runner.Pos)
	assert.Equal(t, grid.DirUp, snap.Runner.Facing)

	cells := map[grid.Coord]bool{grid.Spawn: true}
	for _, it := range snap.Items {
		assert.False(t, cells[it.Pos])
		cells[it.Pos] = true
	}
	for _, d := range snap.Drones {
		assert.False(t, cells[d.Pos])
		cells[d.Pos] = true
		assert.Greater(t, d.Pos.Chebyshev(grid.Spawn), entity.DroneSpawnClearance)
		assert.Equal(t, 1.0, d.Health)
		assert.Equal(t, BandHigh, d.Band)
	}
	assert.True(t, s.sched.Active(TimerDrone))
	assert.True(t, s.sched.Active(TimerProjectile))
}

func TestRunnerMovesLeftAndClamps(t *testing.T) {
	s, rec := newTestSession(t, 1)
	startEmpty(t, s, 1)
	s.reg.AddItem(grid.C(49, 0))

	step(t, s, core.ActionLeft)
	assert.Equal(t, grid.C(24, 25), s.Snapshot().Runner.Pos, "first frame moves immediately")

	for i := 0; i < 600; i++ {
		step(t, s, core.ActionLeft)
		assert.GreaterOrEqual(t, s.Snapshot().Runner.Pos.X, 0)
	}
	snap := s.Snapshot()
	assert.Equal(t, grid.C(0, 25), snap.Runner.Pos)
	assert.Equal(t, grid.DirLeft, snap.Runner.Facing)
	assert.Equal(t, 25, rec.Count(sound.EventMoved), "blocked moves are silent")
}

func TestRunnerRepeatRate(t *testing.T) {
	s, _ := newTestSession(t, 1)
	startEmpty(t, s, 1)
	s.reg.AddItem(grid.C(0, 0))

	// 61 frames cover just over one second: the immediate move plus five repeats.
	for i := 0; i < 61; i++ {
		step(t, s, core.ActionRight)
	}
	assert.Equal(t, grid.C(31, 25), s.Snapshot().Runner.Pos)

	step(t, s)
	assert.False(t, s.sched.Active(TimerRunnerMove), "release cancels the repeat")
}

func TestCollectAllIsVictory(t *testing.T) {
	s, rec := newTestSession(t, 1)
	startEmpty(t, s, 3)
	for x := 24; x >= 22; x-- {
		s.reg.AddItem(grid.C(x, 25))
	}

	var finished *Result
	for i := 0; i < 200 && s.State() == core.StatePlaying; i++ {
		res := step(t, s, core.ActionLeft)
		if res.State == core.StatePlaying {
			assert.Less(t, s.Snapshot().Collected, 3, "victory must come exactly at the total")
		}
		if res.Finished != nil {
			finished = res.Finished
		}
	}

	assert.Equal(t, core.StateVictory, s.State())
	require.NotNil(t, finished)
	assert.Equal(t, core.StateVictory, finished.Outcome)
	assert.Equal(t, 3, finished.Collected)
	assert.Equal(t, 3, finished.Total)
	assert.Equal(t, 3, rec.Count(sound.EventItemCollected))
	assert.Equal(t, 1, rec.Count(sound.EventVictory))
	assert.Empty(t, s.sched.Pending(), "no timer survives the end of a level")
}

func TestDroneContactIsGameOver(t *testing.T) {
	s, _ := newTestSession(t, 1)
	startEmpty(t, s, 1)
	s.reg.AddItem(grid.C(0, 0))
	s.reg.AddDrone(grid.C(24, 25))

	res := step(t, s, core.ActionLeft)
	assert.Equal(t, core.StateGameOver, res.State)
	assert.Contains(t, res.Events, sound.EventGameOver)
	require.NotNil(t, res.Finished)
	assert.Equal(t, core.StateGameOver, res.Finished.Outcome)
	assert.Empty(t, s.sched.Pending())

	step(t, s, core.ActionConfirm)
	assert.Equal(t, core.StateMenu, s.State())
	snap := s.Snapshot()
	assert.Empty(t, snap.Items, "restart tears the level down")
	assert.Empty(t, snap.Drones)
	assert.Zero(t, snap.Collected)
}

func TestProjectilesDestroyDroneAndRaiseNotice(t *testing.T) {
	s, rec := newTestSession(t, 1)
	startEmpty(t, s, 1)
	s.reg.AddItem(grid.C(0, 0))
	s.reg.AddDrone(grid.C(25, 20))
	s.sched.Cancel(TimerDrone) // keep the target in the firing line

	for i := 0; i < 240 && s.Snapshot().DronesRemaining > 0; i++ {
		step(t, s, core.ActionFire)
	}
	snap := s.Snapshot()
	assert.Zero(t, snap.DronesRemaining)
	assert.Equal(t, 1, snap.DronesDestroyed)
	assert.Equal(t, NoticeAllEliminated, snap.Notice)
	assert.Equal(t, core.StatePlaying, snap.State, "clearing drones does not end the level")
	assert.Equal(t, 2, rec.Count(sound.EventDroneHit))
	assert.Equal(t, 1, rec.Count(sound.EventDroneDestroyed))
	assert.GreaterOrEqual(t, rec.Count(sound.EventFired), 3)

	frames := int(config.Default().Timing.Notice()/s.Frame()) + 2
	for i := 0; i < frames; i++ {
		step(t, s)
	}
	assert.Empty(t, s.Snapshot().Notice, "notice expires on its own")
}

func TestHealthBands(t *testing.T) {
	tests := []struct {
		hits int
		band HealthBand
	}{
		{0, BandHigh},
		{1, BandHigh},
		{2, BandMid},
		{3, BandLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, BandFor(entity.HealthAfter(tt.hits)), "hits %d", tt.hits)
	}
	assert.Equal(t, BandLow, BandFor(0.25))
	assert.Equal(t, BandMid, BandFor(0.5))
}

func TestPauseFreezesSimulation(t *testing.T) {
	s, _ := newTestSession(t, 3)
	step(t, s, core.ActionConfirm)
	for i := 0; i < 10; i++ {
		step(t, s, core.ActionFire)
	}

	step(t, s, core.ActionPause)
	require.Equal(t, core.StatePaused, s.State())
	for _, name := range []string{TimerRunnerMove, TimerFire, TimerDrone, TimerProjectile} {
		assert.False(t, s.sched.Active(name), "%s must be cancelled on pause", name)
	}

	before := s.Snapshot()
	for i := 0; i < 300; i++ {
		step(t, s, core.ActionLeft, core.ActionFire)
	}
	after := s.Snapshot()
	assert.Equal(t, before.Runner, after.Runner)
	assert.Equal(t, before.Drones, after.Drones)
	assert.Equal(t, before.Projectiles, after.Projectiles)
	assert.Equal(t, before.Clock, after.Clock)

	step(t, s, core.ActionPause)
	assert.Equal(t, core.StatePlaying, s.State())
	assert.True(t, s.sched.Active(TimerDrone))
	assert.True(t, s.sched.Active(TimerProjectile))
}

func TestPausedBackReturnsToMenu(t *testing.T) {
	s, _ := newTestSession(t, 3)
	step(t, s, core.ActionConfirm)
	step(t, s, core.ActionPause)
	step(t, s, core.ActionBack)
	assert.Equal(t, core.StateMenu, s.State())
	assert.Empty(t, s.sched.Pending())
	assert.Zero(t, s.Snapshot().DronesRemaining)
}

// win finishes the running level by collecting a single planted item.
func win(t *testing.T, s *Session, extra ...core.Action) StepResult {
	t.Helper()
	s.reg.Clear()
	s.tally = combat.Tally{Total: 1}
	s.reg.AddItem(grid.C(24, 25))
	res := step(t, s, append([]core.Action{core.ActionLeft}, extra...)...)
	require.Equal(t, core.StateVictory, res.State)
	return res
}

func TestVictoryAdvancesToNextLevel(t *testing.T) {
	s, _ := newTestSession(t, 5)
	step(t, s, core.ActionConfirm)
	win(t, s)
	assert.True(t, s.Snapshot().HasNextLevel)

	step(t, s, core.ActionConfirm)
	assert.Equal(t, core.StatePlaying, s.State())
	assert.Equal(t, 2, s.Level())
	snap := s.Snapshot()
	assert.Len(t, snap.Items, 10)
	assert.Len(t, snap.Drones, 8)
	assert.Zero(t, snap.Collected)
	assert.Equal(t, grid.Spawn, snap.Runner.Pos)
}

func TestVictoryOnLastLevelReturnsToMenu(t *testing.T) {
	s, _ := newTestSession(t, 5)
	step(t, s, core.ActionLevel5)
	step(t, s, core.ActionConfirm)
	win(t, s)
	assert.False(t, s.Snapshot().HasNextLevel)

	step(t, s, core.ActionConfirm)
	assert.Equal(t, core.StateMenu, s.State())
}

func TestHeldFireDoesNotSkipEndScreen(t *testing.T) {
	s, _ := newTestSession(t, 5)
	step(t, s, core.ActionConfirm)
	win(t, s, core.ActionFire)

	step(t, s, core.ActionFire)
	assert.Equal(t, core.StateVictory, s.State(), "fire held through the win is not a press")

	step(t, s)
	step(t, s, core.ActionFire)
	assert.Equal(t, core.StatePlaying, s.State())
	assert.Equal(t, 2, s.Level())
}

func TestRestartFromVictory(t *testing.T) {
	s, _ := newTestSession(t, 5)
	step(t, s, core.ActionConfirm)
	win(t, s)
	step(t, s, core.ActionRestart)
	assert.Equal(t, core.StateMenu, s.State())
}

func TestSpawnFailureIsReported(t *testing.T) {
	s, _ := newTestSession(t, 1, WithRand(fixedRand(25)))
	_, err := s.Step(input(core.ActionConfirm))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrSpawnFailure))
	assert.Equal(t, core.StateMenu, s.State())
	assert.Empty(t, s.sched.Pending())
}

func TestDirectCallsAreGuarded(t *testing.T) {
	s, _ := newTestSession(t, 1)
	require.NoError(t, s.NextLevel())
	s.TogglePause()
	s.Restart()
	assert.Equal(t, core.StateMenu, s.State())

	require.NoError(t, s.Start())
	s.SelectLevel(4)
	assert.Equal(t, 1, s.Level(), "level is fixed while playing")
	require.NoError(t, s.Start())
	assert.Equal(t, core.StatePlaying, s.State())
}

func TestEventsMatchSink(t *testing.T) {
	s, rec := newTestSession(t, 9)
	step(t, s, core.ActionConfirm)
	var all []sound.Event
	for i := 0; i < 120; i++ {
		res := step(t, s, core.ActionFire, core.ActionDown)
		all = append(all, res.Events...)
	}
	assert.Equal(t, rec.Events(), all)
}

func script(i int) []core.Action {
	dirs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
	actions := []core.Action{dirs[(i/40)%len(dirs)]}
	if i%90 < 45 {
		actions = append(actions, core.ActionFire)
	}
	if i == 0 {
		actions = append(actions, core.ActionConfirm)
	}
	return actions
}

func TestDeterministicDigest(t *testing.T) {
	a, _ := newTestSession(t, 42)
	b, _ := newTestSession(t, 42)
	c, _ := newTestSession(t, 43)

	for i := 0; i < 900; i++ {
		step(t, a, script(i)...)
		step(t, b, script(i)...)
		step(t, c, script(i)...)
		require.Equal(t, a.Snapshot().Digest(), b.Snapshot().Digest(), "frame %d", i)
		if i == 0 {
			assert.NotEqual(t, a.Snapshot().Digest(), c.Snapshot().Digest(), "different seeds lay out different levels")
		}
	}
}
