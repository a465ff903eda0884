package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyWorkDuration         = "work.duration"
	keyWorkMessage          = "work.message"
	keyWorkColor            = "work.color"
	keyShortBreakDuration   = "short_break.duration"
	keyShortBreakMessage    = "short_break.message"
	keyShortBreakColor      = "short_break.color"
	keyLongBreakDuration    = "long_break.duration"
	keyLongBreakMessage     = "long_break.message"
	keyLongBreakColor       = "long_break.color"
	keyLongBreakInterval    = "settings.long_break_interval"
	keyAutoStartWork        = "settings.auto_start_work"
	keyAutoStartBreak       = "settings.auto_start_break"
	keySessionCmd           = "settings.cmd"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyNotificationsEnabled = "notifications.enabled"
	keyDarkTheme            = "display.dark_theme"

	keyCameraEnabled        = "attention.camera_enabled"
	keyStreamPath           = "attention.stream_path"
	keyMirrored             = "attention.mirror_camera"
	keyIncludeKeypoints     = "attention.include_keypoints"
	keyMinConfidence        = "attention.min_confidence"
	keyGainPerSec           = "attention.focus_gain_per_sec"
	keyDefocusLossPerSec    = "attention.defocus_loss_per_sec"
	keyNoFaceLossPerSec     = "attention.no_face_loss_per_sec"
	keyDistractionThreshold = "attention.distraction_threshold"
	keyDistractionCooldown  = "attention.distraction_cooldown"
	keyPauseOnDistraction   = "attention.pause_on_distraction"
)

// WithViperConfig returns an Option that loads configuration from the
// YAML file at configPath, writing the defaults there first if the file
// does not exist yet.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setViperDefaults(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault(keyWorkDuration, "25m")
	v.SetDefault(keyWorkMessage, "Focus on your task")
	v.SetDefault(keyWorkColor, "#B0DB43")
	v.SetDefault(keyShortBreakDuration, "5m")
	v.SetDefault(keyShortBreakMessage, "Take a breather")
	v.SetDefault(keyShortBreakColor, "#12EAEA")
	v.SetDefault(keyLongBreakDuration, "15m")
	v.SetDefault(keyLongBreakMessage, "Take a long break")
	v.SetDefault(keyLongBreakColor, "#C492B1")
	v.SetDefault(keyLongBreakInterval, 4)
	v.SetDefault(keyAutoStartWork, false)
	v.SetDefault(keyAutoStartBreak, true)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyDarkTheme, true)

	v.SetDefault(keyCameraEnabled, false)
	v.SetDefault(keyStreamPath, "")
	v.SetDefault(keyMirrored, true)
	v.SetDefault(keyIncludeKeypoints, false)
	v.SetDefault(keyMinConfidence, 0.6)
	v.SetDefault(keyGainPerSec, 1.5)
	v.SetDefault(keyDefocusLossPerSec, 3.0)
	v.SetDefault(keyNoFaceLossPerSec, 5.0)
	v.SetDefault(keyDistractionThreshold, "8s")
	v.SetDefault(keyDistractionCooldown, "4s")
	v.SetDefault(keyPauseOnDistraction, false)
}

// loadViperConfig populates the Config from Viper values.
func loadViperConfig(v *viper.Viper, c *Config) error {
	var err error

	c.Work.Duration, err = parseDuration(v.GetString(keyWorkDuration))
	if err != nil {
		return err
	}

	c.ShortBreak.Duration, err = parseDuration(v.GetString(keyShortBreakDuration))
	if err != nil {
		return err
	}

	c.LongBreak.Duration, err = parseDuration(v.GetString(keyLongBreakDuration))
	if err != nil {
		return err
	}

	c.Work.Message = v.GetString(keyWorkMessage)
	c.Work.Color = v.GetString(keyWorkColor)
	c.ShortBreak.Message = v.GetString(keyShortBreakMessage)
	c.ShortBreak.Color = v.GetString(keyShortBreakColor)
	c.LongBreak.Message = v.GetString(keyLongBreakMessage)
	c.LongBreak.Color = v.GetString(keyLongBreakColor)

	c.Settings.LongBreakInterval = v.GetInt(keyLongBreakInterval)
	c.Settings.AutoStartWork = v.GetBool(keyAutoStartWork)
	c.Settings.AutoStartBreak = v.GetBool(keyAutoStartBreak)
	c.Settings.Cmd = v.GetString(keySessionCmd)
	c.Settings.TwentyFourHour = v.GetBool(keyTwentyFourHour)

	c.Notifications.Enabled = v.GetBool(keyNotificationsEnabled)
	c.Display.DarkTheme = v.GetBool(keyDarkTheme)

	c.Attention.CameraEnabled = v.GetBool(keyCameraEnabled)
	c.Attention.StreamPath = v.GetString(keyStreamPath)
	c.Attention.Mirrored = v.GetBool(keyMirrored)
	c.Attention.IncludeKeypoints = v.GetBool(keyIncludeKeypoints)
	c.Attention.MinConfidence = v.GetFloat64(keyMinConfidence)
	c.Attention.GainPerSec = v.GetFloat64(keyGainPerSec)
	c.Attention.DefocusLossPerSec = v.GetFloat64(keyDefocusLossPerSec)
	c.Attention.NoFaceLossPerSec = v.GetFloat64(keyNoFaceLossPerSec)
	c.Attention.PauseOnDistraction = v.GetBool(keyPauseOnDistraction)

	c.Attention.DistractionThreshold, err = parseDuration(
		v.GetString(keyDistractionThreshold),
	)
	if err != nil {
		return err
	}

	c.Attention.DistractionCooldown, err = parseDuration(
		v.GetString(keyDistractionCooldown),
	)

	return err
}

// parseDuration accepts Go duration strings and bare integers, which
// are interpreted as minutes for compatibility with older configs.
func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}

	if mins, serr := strconv.Atoi(s); serr == nil {
		return time.Duration(mins) * time.Minute, nil
	}

	return 0, errInvalidDurationStr.Fmt(s)
}
