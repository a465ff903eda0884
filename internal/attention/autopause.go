package attention

import (
	"sync"
	"time"

	"github.com/alokX01/focusflow/internal/clock"
)

// AutoPause arms a single-shot trigger when attention is lost and fires
// it only if inattention persists for the full threshold. A focused
// snapshot before the deadline disarms it, so one noisy frame never
// flaps the timer.
//
// At most one trigger handle is live at a time: arming while armed is a
// no-op, and Cancel stops the pending handle outright.
type AutoPause struct {
	mu        sync.Mutex
	clk       clock.Clock
	threshold time.Duration
	fire      func()
	timer     clock.Timer
	armed     bool
}

// NewAutoPause returns a disarmed controller. The fire callback runs on
// the clock's timer goroutine when inattention persists for threshold.
func NewAutoPause(clk clock.Clock, threshold time.Duration, fire func()) *AutoPause {
	return &AutoPause{
		clk:       clk,
		threshold: threshold,
		fire:      fire,
	}
}

// Observe feeds one classification. Not-focused arms the trigger if it
// is not already armed; focused disarms any pending trigger.
func (a *AutoPause) Observe(c Classification) {
	if c == Focused {
		a.Cancel()
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.armed {
		return
	}

	a.armed = true
	a.timer = a.clk.AfterFunc(a.threshold, a.fired)
}

func (a *AutoPause) fired() {
	a.mu.Lock()
	a.armed = false
	a.mu.Unlock()

	a.fire()
}

// Cancel disarms any pending trigger. Called on focus return, manual
// pause, and session stop; a leaked trigger after stop is a defect.
func (a *AutoPause) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.armed {
		return
	}

	a.armed = false

	if a.timer != nil {
		a.timer.Stop()
	}
}

// Armed reports whether a trigger is pending.
func (a *AutoPause) Armed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.armed
}
