// Package session defines focus and break sessions and the summary
// produced when one ends.
package session

import "time"

// Name represents the session name.
type Name string

const (
	Work       Name = "Work session"
	ShortBreak Name = "Short break"
	LongBreak  Name = "Long break"
)

// Session represents a work or break session.
type Session struct {
	ID               string        `json:"id"`
	Name             Name          `json:"name"`
	Task             string        `json:"task,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Duration         time.Duration `json:"duration"`
	FocusedSeconds   int           `json:"focused_seconds"`
	FocusPercent     float64       `json:"focus_percent"`
	DistractionCount int           `json:"distraction_count"`
	Completed        bool          `json:"completed"`
	// TrackedFocus reports whether the attention sensor was active for
	// the session. When false, FocusPercent is fixed at 100 and the
	// distraction count is always zero.
	TrackedFocus bool `json:"tracked_focus"`
}

// Summary is the final verdict for a session, applied to the stored
// record when the session ends.
type Summary struct {
	Duration         time.Duration `json:"duration"`
	FocusedSeconds   int           `json:"focused_seconds"`
	FocusPercent     float64       `json:"focus_percent"`
	DistractionCount int           `json:"distraction_count"`
	Completed        bool          `json:"completed"`
	EndTime          time.Time     `json:"end_time"`
	TrackedFocus     bool          `json:"tracked_focus"`
}

// Finalize applies a summary to the session record.
func (s *Session) Finalize(sum Summary) {
	s.Duration = sum.Duration
	s.FocusedSeconds = sum.FocusedSeconds
	s.FocusPercent = sum.FocusPercent
	s.DistractionCount = sum.DistractionCount
	s.Completed = sum.Completed
	s.EndTime = sum.EndTime
	s.TrackedFocus = sum.TrackedFocus
}
