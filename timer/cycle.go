package timer

import (
	"time"

	"github.com/alokX01/focusflow/internal/session"
)

// Directive is an advisory instruction to start the next session. The
// caller decides whether and when to act on it; AutoStart reports
// whether the configuration asks for the next session to begin without
// user confirmation.
type Directive struct {
	Name      session.Name
	Duration  time.Duration
	AutoStart bool
}

// Cycle tracks the repeating count of completed work blocks for the
// current streak and decides what follows a completed session.
type Cycle struct {
	interval        int
	autoStartBreak  bool
	autoStartWork   bool
	completedBlocks int
}

// NewCycle returns a cycle scheduler. interval is the number of work
// blocks before a long break.
func NewCycle(interval int, autoStartBreak, autoStartWork bool) *Cycle {
	return &Cycle{
		interval:       interval,
		autoStartBreak: autoStartBreak,
		autoStartWork:  autoStartWork,
	}
}

// Next records a session outcome and returns the directive for the next
// session. Early-stopped sessions never chain. A natural work
// completion always advances the block count, even when breaks are not
// auto-started.
func (c *Cycle) Next(name session.Name, natural bool) (Directive, bool) {
	if !natural {
		return Directive{}, false
	}

	if name == session.Work {
		c.completedBlocks++

		next := session.ShortBreak
		if c.completedBlocks%c.interval == 0 {
			next = session.LongBreak
		}

		return Directive{Name: next, AutoStart: c.autoStartBreak}, true
	}

	return Directive{Name: session.Work, AutoStart: c.autoStartWork}, true
}

// CompletedBlocks returns the number of naturally completed work blocks
// in the current streak.
func (c *Cycle) CompletedBlocks() int {
	return c.completedBlocks
}

// CurrentBlock returns the 1-based position of the in-progress work
// block within the long-break interval, for display.
func (c *Cycle) CurrentBlock() int {
	return c.completedBlocks%c.interval + 1
}

// Reset clears the streak. Called when the user goes idle between
// sessions.
func (c *Cycle) Reset() {
	c.completedBlocks = 0
}
