// Package timer operates the FocusFlow countdown and owns the session
// lifecycle: it fuses attention snapshots into the running session,
// auto-pauses on sustained inattention, and hands a single summary to
// the persistence gateway when the session ends.
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/alokX01/focusflow/internal/attention"
	"github.com/alokX01/focusflow/internal/clock"
	"github.com/alokX01/focusflow/internal/config"
	"github.com/alokX01/focusflow/internal/session"
	"github.com/alokX01/focusflow/store"
)

// State is the lifecycle state of the timer.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	// StateCompleted means the previous session has finished and its
	// summary has been handed off. A new session may start from here.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// PauseReason records what caused the current pause.
type PauseReason int

const (
	PauseNone PauseReason = iota
	PauseManual
	PauseAuto
)

func (r PauseReason) String() string {
	switch r {
	case PauseManual:
		return "manual"
	case PauseAuto:
		return "auto"
	default:
		return "none"
	}
}

// Handlers receives lifecycle events. All callbacks are optional and
// are invoked with the timer's internal lock held, so they must not
// call back into the timer.
type Handlers struct {
	SessionStarted      func(sess session.Session)
	SessionPaused       func(reason PauseReason)
	SessionResumed      func()
	DistractionDetected func(ev attention.Event)
	SessionCompleted    func(sum session.Summary)
}

// Timer owns the countdown and the session state machine. Snapshot
// callbacks and ticks are serialized through its mutex, so within one
// snapshot the integrator, detector, and auto-pause controller always
// observe a consistent set of derived facts, in that order.
type Timer struct {
	mu sync.Mutex

	opts     *config.Config
	db       store.Gateway
	source   attention.Source
	clk      clock.Clock
	handlers Handlers

	integrator *attention.Integrator
	detector   *attention.Detector
	watch      *attention.AutoPause
	cycle      *Cycle

	state       State
	pauseReason PauseReason
	sess        *session.Session
	remaining   int
	target      int
	focusedSecs int
	tracked     bool
	unsubscribe func()

	pending     *Directive
	lastSummary *session.Summary
}

// New creates a timer. source may be nil when attention tracking is
// unavailable; focus sessions then run as plain countdowns.
func New(
	opts *config.Config,
	db store.Gateway,
	source attention.Source,
	clk clock.Clock,
	handlers Handlers,
) *Timer {
	t := &Timer{
		opts:     opts,
		db:       db,
		source:   source,
		clk:      clk,
		handlers: handlers,
		cycle: NewCycle(
			opts.Settings.LongBreakInterval,
			opts.Settings.AutoStartBreak,
			opts.Settings.AutoStartWork,
		),
	}

	t.integrator = attention.NewIntegrator(attention.Rates{
		GainPerSecond:            opts.Attention.GainPerSec,
		LossPerSecondLookingAway: opts.Attention.DefocusLossPerSec,
		LossPerSecondNoFace:      opts.Attention.NoFaceLossPerSec,
		MinConfidence:            opts.Attention.MinConfidence,
	})

	t.detector = attention.NewDetector(
		opts.Attention.DistractionCooldown,
		opts.Attention.MinConfidence,
	)

	t.watch = attention.NewAutoPause(
		clk,
		opts.Attention.DistractionThreshold,
		t.autoPauseFired,
	)

	return t
}

// Start begins a new session. It is only valid when no session is
// active. For work sessions the attention source is activated; if
// activation fails the session degrades to an untracked plain timer.
func (t *Timer) Start(name session.Name) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateRunning || t.state == StatePaused {
		return errSessionActive
	}

	dur := t.opts.Duration(name)

	sess := &session.Session{
		Name:      name,
		Task:      t.opts.CLI.Task,
		Tags:      t.opts.CLI.Tags,
		StartTime: t.clk.Now(),
		Duration:  dur,
	}

	t.integrator.Reset()
	t.detector.Reset()

	t.sess = sess
	t.target = int(dur / time.Second)
	t.remaining = t.target
	t.focusedSecs = 0
	t.tracked = false
	t.pending = nil

	if name == session.Work && t.opts.Attention.CameraEnabled &&
		t.source != nil {
		t.activateSource()
	}

	id, err := t.db.CreateSession(sess)
	if err != nil {
		// The timer must not depend on storage availability.
		slog.Error("unable to create session record", "error", err)
	} else {
		sess.ID = id
	}

	t.state = StateRunning
	t.pauseReason = PauseNone

	if t.handlers.SessionStarted != nil {
		t.handlers.SessionStarted(*sess)
	}

	return nil
}

func (t *Timer) activateSource() {
	err := t.source.Activate(attention.ActivateOptions{
		Mirrored:         t.opts.Attention.Mirrored,
		IncludeKeypoints: t.opts.Attention.IncludeKeypoints,
	})
	if err != nil {
		slog.Warn(
			"attention sensor unavailable, running untracked",
			"error", err,
		)

		return
	}

	t.tracked = true
	t.unsubscribe = t.source.Subscribe(t.onSnapshot)
}

// onSnapshot is the fusion step for one sensor reading. The integrator
// and detector run before the auto-pause controller inspects their
// output, and only then is timer state mutated.
func (t *Timer) onSnapshot(snap attention.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning && t.state != StatePaused {
		return
	}

	t.integrator.Observe(snap)

	if t.state == StateRunning && t.sess.Name == session.Work {
		if ev, ok := t.detector.Observe(snap); ok {
			if t.handlers.DistractionDetected != nil {
				t.handlers.DistractionDetected(ev)
			}
		}
	}

	if !t.opts.Attention.PauseOnDistraction {
		return
	}

	c := attention.Classify(snap, t.opts.Attention.MinConfidence)

	switch {
	case t.state == StateRunning && t.pauseReason == PauseNone:
		t.watch.Observe(c)
	case t.state == StatePaused && t.pauseReason == PauseAuto &&
		c == attention.Focused:
		t.resumeLocked()
	}
}

// autoPauseFired runs when inattention has persisted for the full
// threshold. The state is re-checked because a manual pause or stop may
// have raced the trigger.
func (t *Timer) autoPauseFired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning || t.pauseReason != PauseNone {
		return
	}

	t.pauseLocked(PauseAuto)

	if t.opts.Notifications.Enabled {
		go notify("Timer paused", "You seem distracted. The timer will resume when you're back.")
	}
}

// Tick advances the countdown by one second. It is a no-op unless the
// timer is running. The caller invokes it once per wall-clock second;
// attention math is independent of tick cadence since it uses snapshot
// timestamps.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return
	}

	t.remaining--

	if t.sess.Name == session.Work && t.tracked &&
		t.focusedSecs < t.target {
		if c, ok := t.integrator.Last(); ok && c == attention.Focused {
			t.focusedSecs++
		}
	}

	if t.remaining <= 0 {
		t.finalizeLocked(true)
	}
}

// Pause suspends the countdown at the user's request. Detection keeps
// running so the auto-pause controller can still see attention, but a
// manual pause is never resumed by the sensor.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning {
		return errNotRunning
	}

	t.pauseLocked(PauseManual)

	return nil
}

func (t *Timer) pauseLocked(reason PauseReason) {
	// A manual pause supersedes any pending auto-pause.
	t.watch.Cancel()

	t.state = StatePaused
	t.pauseReason = reason
	t.integrator.Suspend()
	// Forget the pre-pause classification so the first tick after
	// resuming never credits stale attention.
	t.integrator.ClearLast()

	if t.handlers.SessionPaused != nil {
		t.handlers.SessionPaused(reason)
	}
}

// Resume restarts a paused countdown. A manual resume clears the pause
// reason regardless of the current attention state.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StatePaused {
		return errNotPaused
	}

	t.resumeLocked()

	return nil
}

func (t *Timer) resumeLocked() {
	t.state = StateRunning
	t.pauseReason = PauseNone
	t.integrator.Unsuspend()

	if t.handlers.SessionResumed != nil {
		t.handlers.SessionResumed()
	}
}

// Stop finalizes the active session. Unless forceCompleted is set the
// session is recorded as stopped early. Persistence failures are
// returned but never block the transition; the summary stays available
// through LastSummary for a retry.
func (t *Timer) Stop(forceCompleted bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != StateRunning && t.state != StatePaused {
		return errNoActiveSession
	}

	return t.finalizeLocked(forceCompleted)
}

// finalizeLocked releases the sensor subscription, persists the final
// summary, emits the completion event, and asks the cycle scheduler for
// the next directive.
func (t *Timer) finalizeLocked(completed bool) error {
	t.watch.Cancel()

	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}

	if t.tracked {
		t.source.Deactivate()
	}

	elapsed := t.target - t.remaining
	if elapsed < 0 {
		elapsed = 0
	}

	sum := session.Summary{
		Duration:         time.Duration(elapsed) * time.Second,
		FocusedSeconds:   t.focusedSecs,
		FocusPercent:     100,
		DistractionCount: 0,
		Completed:        completed,
		EndTime:          t.clk.Now(),
		TrackedFocus:     t.tracked,
	}

	if t.tracked {
		sum.FocusPercent = t.integrator.Score()
		sum.DistractionCount = t.detector.Count()
	}

	t.sess.Finalize(sum)
	t.lastSummary = &sum

	persistErr := t.persistLocked(sum)

	t.state = StateCompleted
	t.pauseReason = PauseNone

	if t.handlers.SessionCompleted != nil {
		t.handlers.SessionCompleted(sum)
	}

	if d, ok := t.cycle.Next(t.sess.Name, completed); ok {
		d.Duration = t.opts.Duration(d.Name)
		t.pending = &d
	}

	t.sess = nil

	return persistErr
}

func (t *Timer) persistLocked(sum session.Summary) error {
	var err error

	if t.sess.ID == "" {
		// Creation failed at session start; store the finalized record
		// in one shot instead.
		_, err = t.db.CreateSession(t.sess)
	} else {
		err = t.db.UpdateSession(t.sess.ID, sum)
	}

	if err != nil {
		slog.Error("unable to persist session summary", "error", err)
		return errPersist.Wrap(err)
	}

	return nil
}

// PendingDirective returns and clears the advisory next-session
// directive produced by the last completion, if any.
func (t *Timer) PendingDirective() (Directive, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return Directive{}, false
	}

	d := *t.pending
	t.pending = nil

	return d, true
}

// LastSummary returns the summary of the most recently finalized
// session. It remains available even when persistence failed, for a
// retry or manual export.
func (t *Timer) LastSummary() (session.Summary, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastSummary == nil {
		return session.Summary{}, false
	}

	return *t.lastSummary, true
}

// ResetCycle clears the completed-block streak.
func (t *Timer) ResetCycle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cycle.Reset()
}

// Status returns a snapshot of the timer for rendering and the status
// file.
func (t *Timer) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Status{
		State:             t.state,
		PauseReason:       t.pauseReason,
		WorkCycle:         t.cycle.CurrentBlock(),
		LongBreakInterval: t.opts.Settings.LongBreakInterval,
		Remaining:         t.remaining,
		Tracked:           t.tracked,
	}

	if t.sess != nil {
		s.Name = t.sess.Name
		s.Task = t.sess.Task
		s.Tags = t.sess.Tags
		s.EndTime = t.clk.Now().
			Add(time.Duration(t.remaining) * time.Second)
	}

	if t.tracked {
		s.FocusScore = t.integrator.Score()
		s.DistractionCount = t.detector.Count()
	}

	return s
}
