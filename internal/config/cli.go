package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration overrides.
type CLIOptions struct {
	Work                 string
	ShortBreak           string
	LongBreak            string
	Tags                 string
	Task                 string
	SessionCmd           string
	LongBreakInterval    uint
	DistractionThreshold string
	DisableNotify        bool
	DisableCamera        bool
	PauseOnDistraction   bool
	AutoStartWork        bool
	AutoStartBreak       bool
}

// WithCLIConfig returns an Option that overrides config values from CLI
// flags. It must be applied after WithViperConfig so flags win.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Work:                 ctx.String("work"),
			ShortBreak:           ctx.String("short-break"),
			LongBreak:            ctx.String("long-break"),
			LongBreakInterval:    ctx.Uint("long-break-interval"),
			Tags:                 ctx.String("tag"),
			Task:                 ctx.String("task"),
			SessionCmd:           ctx.String("session-cmd"),
			DistractionThreshold: ctx.String("distraction-threshold"),
			DisableNotify:        ctx.Bool("disable-notification"),
			DisableCamera:        ctx.Bool("no-camera"),
			PauseOnDistraction:   ctx.Bool("pause-on-distraction"),
			AutoStartWork:        ctx.Bool("auto-work"),
			AutoStartBreak:       ctx.Bool("auto-break"),
		}

		return applyCLIOptions(c, opts)
	}
}

func applyCLIOptions(c *Config, opts CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	if opts.LongBreakInterval > 0 {
		c.Settings.LongBreakInterval = int(opts.LongBreakInterval)
	}

	if opts.Tags != "" {
		c.CLI.Tags = splitAndTrimTags(opts.Tags)
	}

	if opts.Task != "" {
		c.CLI.Task = opts.Task
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.DisableCamera {
		c.Attention.CameraEnabled = false
	}

	if opts.PauseOnDistraction {
		c.Attention.PauseOnDistraction = true
	}

	if opts.AutoStartWork {
		c.Settings.AutoStartWork = true
	}

	if opts.AutoStartBreak {
		c.Settings.AutoStartBreak = true
	}

	return nil
}

func applyCLIDurations(c *Config, opts CLIOptions) error {
	pairs := []struct {
		val  string
		dest *SessionConfig
	}{
		{opts.Work, &c.Work},
		{opts.ShortBreak, &c.ShortBreak},
		{opts.LongBreak, &c.LongBreak},
	}

	for _, p := range pairs {
		if p.val == "" {
			continue
		}

		d, err := parseDuration(p.val)
		if err != nil {
			return err
		}

		p.dest.Duration = d
	}

	if opts.DistractionThreshold != "" {
		d, err := parseDuration(opts.DistractionThreshold)
		if err != nil {
			return err
		}

		c.Attention.DistractionThreshold = d
	}

	return nil
}

func splitAndTrimTags(tags string) []string {
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
