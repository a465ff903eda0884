package attention

import "time"

// Event is a discrete, throttled distraction signal.
type Event struct {
	Time           time.Time
	Classification Classification
	// Count is the running distraction count for the session, including
	// this event.
	Count int
}

// Detector derives distraction events from the snapshot stream.
//
// Throttling policy: events are spaced by the time elapsed since the
// last emitted event, not by focus-state transitions. A continuous
// inattentive stretch therefore re-emits a "still distracted" event
// once per cooldown window, while a burst of noisy frames inside one
// window yields at most a single event.
type Detector struct {
	cooldown      time.Duration
	minConfidence float64
	count         int
	lastEvent     time.Time
}

// NewDetector returns a detector with a zero count.
func NewDetector(cooldown time.Duration, minConfidence float64) *Detector {
	return &Detector{
		cooldown:      cooldown,
		minConfidence: minConfidence,
	}
}

// Reset clears the count and throttle state. Called at session start.
func (d *Detector) Reset() {
	d.count = 0
	d.lastEvent = time.Time{}
}

// Observe classifies one snapshot and emits at most one event. The
// returned bool reports whether an event was emitted.
func (d *Detector) Observe(snap Snapshot) (Event, bool) {
	c := Classify(snap, d.minConfidence)
	if c == Focused {
		return Event{}, false
	}

	if !d.lastEvent.IsZero() && snap.Time.Sub(d.lastEvent) <= d.cooldown {
		return Event{}, false
	}

	d.count++
	d.lastEvent = snap.Time

	return Event{
		Time:           snap.Time,
		Classification: c,
		Count:          d.count,
	}, true
}

// Count returns the number of events emitted since the last reset. The
// count never decreases within a session.
func (d *Detector) Count() int {
	return d.count
}
