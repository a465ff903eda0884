package config

import "time"

var (
	// Minimum and maximum duration constraints.
	minSessionDuration = 1 * time.Second
	maxSessionDuration = 720 * time.Minute // 12 hours

	// Valid long break intervals.
	minLongBreakInterval = 2
	maxLongBreakInterval = 10
)

// Validate performs validation checks on the Config struct and its
// fields.
func (c *Config) Validate() error {
	if err := validateSessionDuration(c.Work, "work"); err != nil {
		return err
	}

	if err := validateSessionDuration(c.ShortBreak, "short break"); err != nil {
		return err
	}

	if err := validateSessionDuration(c.LongBreak, "long break"); err != nil {
		return err
	}

	if err := c.validateSessionRelationships(); err != nil {
		return err
	}

	if err := c.validateSettings(); err != nil {
		return err
	}

	return c.validateAttention()
}

func validateSessionDuration(sc SessionConfig, sessionType string) error {
	if sc.Duration < minSessionDuration || sc.Duration > maxSessionDuration {
		return errInvalidDuration.Fmt(
			sessionType,
			minSessionDuration,
			maxSessionDuration,
		)
	}

	return nil
}

// validateSessionRelationships validates logical relationships between
// sessions.
func (c *Config) validateSessionRelationships() error {
	if c.ShortBreak.Duration >= c.Work.Duration {
		return errShortBreakTooLong.Fmt(c.ShortBreak.Duration, c.Work.Duration)
	}

	if c.LongBreak.Duration < c.ShortBreak.Duration {
		return errLongBreakTooShort.Fmt(
			c.LongBreak.Duration,
			c.ShortBreak.Duration,
		)
	}

	return nil
}

func (c *Config) validateSettings() error {
	if c.Settings.LongBreakInterval < minLongBreakInterval ||
		c.Settings.LongBreakInterval > maxLongBreakInterval {
		return errInvalidLongBreakInterval.Fmt(
			minLongBreakInterval,
			maxLongBreakInterval,
		)
	}

	return nil
}

func (c *Config) validateAttention() error {
	a := c.Attention

	if a.MinConfidence < 0 || a.MinConfidence > 1 {
		return errInvalidConfidence.Fmt(a.MinConfidence)
	}

	rates := []struct {
		name string
		v    float64
	}{
		{"focus_gain_per_sec", a.GainPerSec},
		{"defocus_loss_per_sec", a.DefocusLossPerSec},
		{"no_face_loss_per_sec", a.NoFaceLossPerSec},
	}

	for _, r := range rates {
		if r.v <= 0 {
			return errInvalidRate.Fmt(r.name, r.v)
		}
	}

	if a.DistractionThreshold <= 0 {
		return errInvalidWindow.Fmt(
			"distraction_threshold",
			a.DistractionThreshold,
		)
	}

	if a.DistractionCooldown <= 0 {
		return errInvalidWindow.Fmt(
			"distraction_cooldown",
			a.DistractionCooldown,
		)
	}

	return nil
}
