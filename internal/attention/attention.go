// Package attention fuses raw gaze-sensor snapshots into session-level
// focus facts: a continuously integrated score, throttled distraction
// events, and an auto-pause trigger for sustained inattention.
//
// The package never inspects imagery or model internals. A sensor is
// anything that satisfies Source and delivers Snapshot values.
package attention

import "time"

// Snapshot is one instantaneous attention reading from the sensor.
type Snapshot struct {
	FaceDetected    bool      `json:"face_detected"`
	LookingAtScreen bool      `json:"looking_at_screen"`
	Confidence      float64   `json:"confidence"`
	Time            time.Time `json:"time"`
}

// Valid reports whether the snapshot carries usable readings.
func (s Snapshot) Valid() bool {
	return !s.Time.IsZero() && s.Confidence >= 0 && s.Confidence <= 1
}

// Classification is the per-snapshot attention verdict.
type Classification int

const (
	// Absent means no face was detected, which signals likely absence
	// rather than a brief glance away.
	Absent Classification = iota
	// LookingAway means a face was detected but the user is not looking
	// at the screen, or the reading is below the confidence threshold.
	LookingAway
	Focused
)

func (c Classification) String() string {
	switch c {
	case Focused:
		return "focused"
	case LookingAway:
		return "looking away"
	default:
		return "absent"
	}
}

// Classify maps a snapshot to a classification. Malformed snapshots are
// degraded to Absent, never rejected: attention sensing is best-effort.
func Classify(s Snapshot, minConfidence float64) Classification {
	if !s.Valid() || !s.FaceDetected {
		return Absent
	}

	if !s.LookingAtScreen || s.Confidence < minConfidence {
		return LookingAway
	}

	return Focused
}

// ActivateOptions configures the sensor on activation.
type ActivateOptions struct {
	Mirrored         bool
	IncludeKeypoints bool
}

// Source is the attention sensor boundary. Activate may fail when the
// camera is unavailable or permission is denied; callers are expected
// to degrade to an untracked session rather than abort.
type Source interface {
	Activate(opts ActivateOptions) error
	// Subscribe registers a snapshot callback and returns a function
	// that removes it. Callbacks arrive at a sensor-determined rate.
	Subscribe(fn func(Snapshot)) (cancel func())
	Deactivate()
}
