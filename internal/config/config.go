// Package config loads, validates, and exposes FocusFlow's settings.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"

	"github.com/alokX01/focusflow/internal/session"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Work          SessionConfig
		ShortBreak    SessionConfig
		LongBreak     SessionConfig
		Settings      SettingsConfig
		Attention     AttentionConfig
		Notifications NotificationConfig
		Display       DisplayConfig
		CLI           CLIConfig
	}

	// SessionConfig holds the settings for one session type.
	SessionConfig struct {
		Message  string
		Color    string
		Duration time.Duration
	}

	// SettingsConfig holds general timer behaviour.
	SettingsConfig struct {
		LongBreakInterval int
		AutoStartWork     bool
		AutoStartBreak    bool
		Cmd               string
		TwentyFourHour    bool
	}

	// AttentionConfig holds the tuning knobs for the attention engine.
	AttentionConfig struct {
		CameraEnabled        bool
		StreamPath           string
		Mirrored             bool
		IncludeKeypoints     bool
		MinConfidence        float64
		GainPerSec           float64
		DefocusLossPerSec    float64
		NoFaceLossPerSec     float64
		DistractionThreshold time.Duration
		DistractionCooldown  time.Duration
		PauseOnDistraction   bool
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool
	}

	// CLIConfig holds per-invocation values that never come from the
	// config file.
	CLIConfig struct {
		Tags []string
		Task string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "focusflow"
	configFileName = "config.yml"
	dbFileName     = "focusflow.db"
	statusFileName = "status.json"
	logFileName    = "focusflow.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("FOCUSFLOW_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("focusflow_%s.db", env)
		statusFileName = fmt.Sprintf("status_%s.json", env)
		logFileName = fmt.Sprintf("focusflow_%s.log", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// Duration returns the configured duration for a session type.
func (c *Config) Duration(name session.Name) time.Duration {
	switch name {
	case session.ShortBreak:
		return c.ShortBreak.Duration
	case session.LongBreak:
		return c.LongBreak.Duration
	default:
		return c.Work.Duration
	}
}

// Message returns the configured message for a session type.
func (c *Config) Message(name session.Name) string {
	switch name {
	case session.ShortBreak:
		return c.ShortBreak.Message
	case session.LongBreak:
		return c.LongBreak.Message
	default:
		return c.Work.Message
	}
}

// New creates a new Config with the provided options applied in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}
