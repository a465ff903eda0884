package attention

import "time"

const (
	scoreFloor   = 0.0
	scoreCeiling = 100.0

	// defaultMaxStep bounds the elapsed time credited to a single
	// observation so a stalled sensor (suspended process, camera
	// hiccup) cannot move the score in one large jump.
	defaultMaxStep = time.Second
)

// Rates holds the integrator tuning knobs. Losing focus is meant to be
// felt faster than regaining it, so loss rates are expected to exceed
// the gain rate.
type Rates struct {
	GainPerSecond            float64
	LossPerSecondLookingAway float64
	LossPerSecondNoFace      float64
	MinConfidence            float64
	MaxStep                  time.Duration
}

// Integrator maintains the continuously integrated focus score for one
// session. It is a leaky integrator rather than a statistical filter:
// the sensor's error rates are unknown, so user-tunable rates are the
// maintainable choice.
type Integrator struct {
	rates      Rates
	score      float64
	lastSample time.Time
	last       Classification
	hasLast    bool
	suspended  bool
}

// NewIntegrator returns an integrator with the score at its ceiling.
func NewIntegrator(rates Rates) *Integrator {
	if rates.MaxStep <= 0 {
		rates.MaxStep = defaultMaxStep
	}

	return &Integrator{
		rates: rates,
		score: scoreCeiling,
	}
}

// Reset restores the score to its ceiling and forgets the previous
// sample and classification. Called at session start.
func (g *Integrator) Reset() {
	g.score = scoreCeiling
	g.lastSample = time.Time{}
	g.hasLast = false
	g.suspended = false
}

// Suspend stops score updates while the session is paused. Snapshots
// are still classified so auto-resume can see returning attention.
func (g *Integrator) Suspend() {
	g.suspended = true
}

// Unsuspend re-enables score updates after a pause.
func (g *Integrator) Unsuspend() {
	g.suspended = false
}

// Observe consumes one snapshot and returns the updated score. The
// elapsed time since the previous observation is measured from the
// snapshot timestamps and clamped to MaxStep.
func (g *Integrator) Observe(snap Snapshot) float64 {
	c := Classify(snap, g.rates.MinConfidence)
	g.last = c
	g.hasLast = true

	dt := time.Duration(0)
	if !g.lastSample.IsZero() && snap.Time.After(g.lastSample) {
		dt = snap.Time.Sub(g.lastSample)
	}

	if dt > g.rates.MaxStep {
		dt = g.rates.MaxStep
	}

	g.lastSample = snap.Time

	if g.suspended {
		return g.score
	}

	secs := dt.Seconds()

	switch c {
	case Focused:
		g.score += g.rates.GainPerSecond * secs
	case LookingAway:
		g.score -= g.rates.LossPerSecondLookingAway * secs
	case Absent:
		g.score -= g.rates.LossPerSecondNoFace * secs
	}

	if g.score > scoreCeiling {
		g.score = scoreCeiling
	}

	if g.score < scoreFloor {
		g.score = scoreFloor
	}

	return g.score
}

// Score returns the current focus score in [0,100].
func (g *Integrator) Score() float64 {
	return g.score
}

// Last returns the most recent classification, if any snapshot has been
// observed since the last reset or clear.
func (g *Integrator) Last() (Classification, bool) {
	return g.last, g.hasLast
}

// ClearLast forgets the most recent classification so a stale verdict
// cannot be credited after a pause.
func (g *Integrator) ClearLast() {
	g.hasLast = false
}
