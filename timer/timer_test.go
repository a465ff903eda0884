package timer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alokX01/focusflow/internal/attention"
	"github.com/alokX01/focusflow/internal/clock"
	"github.com/alokX01/focusflow/internal/config"
	"github.com/alokX01/focusflow/internal/session"
	"github.com/alokX01/focusflow/store"
)

type fakeGateway struct {
	created         []*session.Session
	updates         map[string]session.Summary
	createErr       error
	failFirstCreate bool
	updateErr       error
}

var _ store.Gateway = (*fakeGateway)(nil)

func newFakeGateway() *fakeGateway {
	return &fakeGateway{updates: make(map[string]session.Summary)}
}

func (g *fakeGateway) CreateSession(sess *session.Session) (string, error) {
	if g.failFirstCreate {
		g.failFirstCreate = false
		return "", fmt.Errorf("database is locked")
	}

	if g.createErr != nil {
		return "", g.createErr
	}

	copied := *sess
	g.created = append(g.created, &copied)

	return fmt.Sprintf("sess-%d", len(g.created)), nil
}

func (g *fakeGateway) UpdateSession(id string, sum session.Summary) error {
	if g.updateErr != nil {
		return g.updateErr
	}

	g.updates[id] = sum

	return nil
}

func (g *fakeGateway) GetSessions(_, _ time.Time) ([]session.Session, error) {
	return nil, nil
}

func (g *fakeGateway) Close() error { return nil }

type fakeSource struct {
	activateErr error
	active      bool
	deactivated int
	nextSub     int
	subs        map[int]func(attention.Snapshot)
}

var _ attention.Source = (*fakeSource)(nil)

func newFakeSource() *fakeSource {
	return &fakeSource{subs: make(map[int]func(attention.Snapshot))}
}

func (s *fakeSource) Activate(attention.ActivateOptions) error {
	if s.activateErr != nil {
		return s.activateErr
	}

	s.active = true

	return nil
}

func (s *fakeSource) Subscribe(fn func(attention.Snapshot)) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() { delete(s.subs, id) }
}

func (s *fakeSource) Deactivate() {
	s.active = false
	s.deactivated++
}

func (s *fakeSource) emit(snap attention.Snapshot) {
	for _, fn := range s.subs {
		fn(snap)
	}
}

func testConfig(workSecs int) *config.Config {
	return &config.Config{
		Work: config.SessionConfig{
			Message:  "Focus on your task",
			Duration: time.Duration(workSecs) * time.Second,
		},
		ShortBreak: config.SessionConfig{
			Message:  "Take a breather",
			Duration: 5 * time.Second,
		},
		LongBreak: config.SessionConfig{
			Message:  "Take a long break",
			Duration: 10 * time.Second,
		},
		Settings: config.SettingsConfig{
			LongBreakInterval: 4,
		},
		Attention: config.AttentionConfig{
			CameraEnabled:        true,
			MinConfidence:        0.6,
			GainPerSec:           1.5,
			DefocusLossPerSec:    3.0,
			NoFaceLossPerSec:     5.0,
			DistractionThreshold: 8 * time.Second,
			DistractionCooldown:  4 * time.Second,
		},
	}
}

func sensorSnap(at time.Time, focused bool) attention.Snapshot {
	return attention.Snapshot{
		FaceDetected:    focused,
		LookingAtScreen: focused,
		Confidence:      0.9,
		Time:            at,
	}
}

func TestStartRejectsActiveSession(t *testing.T) {
	clk := clock.NewFake(time.Now())
	tm := New(testConfig(60), newFakeGateway(), newFakeSource(), clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))
	assert.ErrorIs(t, tm.Start(session.Work), errSessionActive)

	require.NoError(t, tm.Pause())
	assert.ErrorIs(t, tm.Start(session.ShortBreak), errSessionActive)
}

func TestInvalidTransitions(t *testing.T) {
	clk := clock.NewFake(time.Now())
	tm := New(testConfig(60), newFakeGateway(), newFakeSource(), clk, Handlers{})

	assert.ErrorIs(t, tm.Pause(), errNotRunning)
	assert.ErrorIs(t, tm.Resume(), errNotPaused)
	assert.ErrorIs(t, tm.Stop(false), errNoActiveSession)

	require.NoError(t, tm.Start(session.Work))
	assert.ErrorIs(t, tm.Resume(), errNotPaused)

	require.NoError(t, tm.Pause())
	assert.ErrorIs(t, tm.Pause(), errNotRunning)
}

func TestNaturalCompletion(t *testing.T) {
	clk := clock.NewFake(time.Now())
	db := newFakeGateway()
	src := newFakeSource()

	var completed []session.Summary

	tm := New(testConfig(3), db, src, clk, Handlers{
		SessionCompleted: func(sum session.Summary) {
			completed = append(completed, sum)
		},
	})

	require.NoError(t, tm.Start(session.Work))
	assert.True(t, src.active)

	for i := 0; i < 3; i++ {
		src.emit(sensorSnap(clk.Now(), true))
		clk.Advance(time.Second)
		tm.Tick()
	}

	require.Len(t, completed, 1)
	assert.True(t, completed[0].Completed)
	assert.Equal(t, 3*time.Second, completed[0].Duration)
	assert.True(t, completed[0].TrackedFocus)
	assert.Equal(t, StateCompleted, tm.Status().State)

	// The sensor is released and the final summary lands in storage.
	assert.Equal(t, 1, src.deactivated)
	require.Contains(t, db.updates, "sess-1")
	assert.True(t, db.updates["sess-1"].Completed)
}

func TestFocusedSecondsNeverExceedTarget(t *testing.T) {
	clk := clock.NewFake(time.Now())
	src := newFakeSource()
	tm := New(testConfig(3), newFakeGateway(), src, clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))

	for i := 0; i < 3; i++ {
		// Two snapshots per tick must not double-credit the second.
		src.emit(sensorSnap(clk.Now(), true))
		src.emit(sensorSnap(clk.Now().Add(500*time.Millisecond), true))
		clk.Advance(time.Second)
		tm.Tick()
	}

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.LessOrEqual(t, sum.FocusedSeconds, 3)
}

func TestBreaksRunUntracked(t *testing.T) {
	clk := clock.NewFake(time.Now())
	src := newFakeSource()
	tm := New(testConfig(60), newFakeGateway(), src, clk, Handlers{})

	require.NoError(t, tm.Start(session.ShortBreak))
	assert.False(t, src.active)
	assert.False(t, tm.Status().Tracked)

	for i := 0; i < 5; i++ {
		tm.Tick()
	}

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.True(t, sum.Completed)
	assert.False(t, sum.TrackedFocus)
	assert.Equal(t, float64(100), sum.FocusPercent)
	assert.Zero(t, sum.DistractionCount)
	assert.Zero(t, sum.FocusedSeconds)
}

func TestSensorFailureDegradesToUntracked(t *testing.T) {
	clk := clock.NewFake(time.Now())
	src := newFakeSource()
	src.activateErr = fmt.Errorf("camera permission denied")

	tm := New(testConfig(2), newFakeGateway(), src, clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))
	assert.False(t, tm.Status().Tracked)

	tm.Tick()
	tm.Tick()

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.True(t, sum.Completed)
	assert.False(t, sum.TrackedFocus)
	assert.Equal(t, float64(100), sum.FocusPercent)
	assert.Zero(t, sum.DistractionCount)
}

func TestManualPauseIgnoresSensorResume(t *testing.T) {
	cfg := testConfig(60)
	cfg.Attention.PauseOnDistraction = true

	clk := clock.NewFake(time.Now())
	src := newFakeSource()
	tm := New(cfg, newFakeGateway(), src, clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))
	require.NoError(t, tm.Pause())

	st := tm.Status()
	assert.Equal(t, StatePaused, st.State)
	assert.Equal(t, PauseManual, st.PauseReason)

	// A focused reading must not lift a manual pause.
	src.emit(sensorSnap(clk.Now(), true))
	assert.Equal(t, StatePaused, tm.Status().State)

	require.NoError(t, tm.Resume())
	assert.Equal(t, StateRunning, tm.Status().State)
	assert.Equal(t, PauseNone, tm.Status().PauseReason)
}

func TestAutoPauseAndAutoResume(t *testing.T) {
	cfg := testConfig(60)
	cfg.Attention.PauseOnDistraction = true

	clk := clock.NewFake(time.Now())
	src := newFakeSource()

	var pausedWith []PauseReason

	tm := New(cfg, newFakeGateway(), src, clk, Handlers{
		SessionPaused: func(reason PauseReason) {
			pausedWith = append(pausedWith, reason)
		},
	})

	require.NoError(t, tm.Start(session.Work))

	// Sustained absence arms and then fires the auto-pause trigger.
	src.emit(sensorSnap(clk.Now(), false))
	clk.Advance(7 * time.Second)
	assert.Equal(t, StateRunning, tm.Status().State)

	clk.Advance(time.Second)

	st := tm.Status()
	assert.Equal(t, StatePaused, st.State)
	assert.Equal(t, PauseAuto, st.PauseReason)
	require.Equal(t, []PauseReason{PauseAuto}, pausedWith)

	// The countdown holds while paused.
	before := tm.Status().Remaining
	tm.Tick()
	assert.Equal(t, before, tm.Status().Remaining)

	// A focused reading lifts an auto-pause without user input.
	src.emit(sensorSnap(clk.Now(), true))
	assert.Equal(t, StateRunning, tm.Status().State)
	assert.Equal(t, PauseNone, tm.Status().PauseReason)
}

func TestBriefInattentionDoesNotPause(t *testing.T) {
	cfg := testConfig(60)
	cfg.Attention.PauseOnDistraction = true

	clk := clock.NewFake(time.Now())
	src := newFakeSource()
	tm := New(cfg, newFakeGateway(), src, clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))

	src.emit(sensorSnap(clk.Now(), false))
	clk.Advance(3 * time.Second)
	src.emit(sensorSnap(clk.Now(), true))
	clk.Advance(time.Minute)

	assert.Equal(t, StateRunning, tm.Status().State)
}

func TestEarlyStop(t *testing.T) {
	clk := clock.NewFake(time.Now())
	db := newFakeGateway()
	tm := New(testConfig(60), db, newFakeSource(), clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))

	for i := 0; i < 10; i++ {
		clk.Advance(time.Second)
		tm.Tick()
	}

	require.NoError(t, tm.Stop(false))

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.False(t, sum.Completed)
	assert.Equal(t, 10*time.Second, sum.Duration)

	// Early stops never chain into the next session.
	_, ok = tm.PendingDirective()
	assert.False(t, ok)
}

func TestStopForceCompleted(t *testing.T) {
	clk := clock.NewFake(time.Now())
	tm := New(testConfig(60), newFakeGateway(), newFakeSource(), clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))
	require.NoError(t, tm.Stop(true))

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.True(t, sum.Completed)

	d, ok := tm.PendingDirective()
	require.True(t, ok)
	assert.Equal(t, session.ShortBreak, d.Name)
}

func TestPersistFailureDoesNotBlockStop(t *testing.T) {
	clk := clock.NewFake(time.Now())
	db := newFakeGateway()
	db.updateErr = fmt.Errorf("disk full")

	tm := New(testConfig(60), db, newFakeSource(), clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))

	err := tm.Stop(false)
	assert.Error(t, err)

	// The transition completed and the summary survives for a retry.
	assert.Equal(t, StateCompleted, tm.Status().State)

	_, ok := tm.LastSummary()
	assert.True(t, ok)
}

func TestCreateFailureFallsBackToFinalCreate(t *testing.T) {
	clk := clock.NewFake(time.Now())
	db := newFakeGateway()
	db.failFirstCreate = true

	tm := New(testConfig(2), db, newFakeSource(), clk, Handlers{})

	// Start proceeds despite the storage error.
	require.NoError(t, tm.Start(session.Work))

	tm.Tick()
	tm.Tick()

	// The finalized record is stored in one shot instead of an update.
	require.Len(t, db.created, 1)
	assert.True(t, db.created[0].Completed)
	assert.Empty(t, db.updates)
}

func TestPendingDirectiveAutoStart(t *testing.T) {
	cfg := testConfig(2)
	cfg.Settings.AutoStartBreak = true

	clk := clock.NewFake(time.Now())
	tm := New(cfg, newFakeGateway(), newFakeSource(), clk, Handlers{})

	require.NoError(t, tm.Start(session.Work))
	tm.Tick()
	tm.Tick()

	d, ok := tm.PendingDirective()
	require.True(t, ok)
	assert.Equal(t, session.ShortBreak, d.Name)
	assert.Equal(t, cfg.ShortBreak.Duration, d.Duration)
	assert.True(t, d.AutoStart)

	// The directive is consumed on read.
	_, ok = tm.PendingDirective()
	assert.False(t, ok)
}

func TestWorkSessionScenario(t *testing.T) {
	const target = 1500

	clk := clock.NewFake(time.Now())
	db := newFakeGateway()
	src := newFakeSource()

	var events []attention.Event

	tm := New(testConfig(target), db, src, clk, Handlers{
		DistractionDetected: func(ev attention.Event) {
			events = append(events, ev)
		},
	})

	require.NoError(t, tm.Start(session.Work))

	// 25 minutes at 1 Hz with a 50 second walk-away in the middle.
	for i := 0; i < target; i++ {
		focused := i < 700 || i >= 750
		src.emit(sensorSnap(clk.Now(), focused))
		clk.Advance(time.Second)
		tm.Tick()
	}

	sum, ok := tm.LastSummary()
	require.True(t, ok)
	assert.True(t, sum.Completed)
	assert.True(t, sum.TrackedFocus)
	assert.Equal(t, target-50, sum.FocusedSeconds)
	assert.Equal(t, time.Duration(target)*time.Second, sum.Duration)

	// The walk-away produces a handful of throttled events, not one per
	// frame and not zero.
	assert.NotEmpty(t, events)
	assert.Less(t, len(events), 50)
	assert.Equal(t, len(events), sum.DistractionCount)

	assert.GreaterOrEqual(t, sum.FocusPercent, float64(0))
	assert.LessOrEqual(t, sum.FocusPercent, float64(100))
}
