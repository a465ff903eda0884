package app

import "github.com/urfave/cli/v2"

var (
	workFlag = &cli.StringFlag{
		Name:    "work",
		Aliases: []string{"w"},
		Usage:   "Work duration (default: 25m)",
	}

	shortBreakFlag = &cli.StringFlag{
		Name:    "short-break",
		Aliases: []string{"s"},
		Usage:   "Short break duration (default: 5m)",
	}

	longBreakFlag = &cli.StringFlag{
		Name:    "long-break",
		Aliases: []string{"l"},
		Usage:   "Long break duration (default: 15m)",
	}

	longBreakIntervalFlag = &cli.UintFlag{
		Name:    "long-break-interval",
		Aliases: []string{"int"},
		Usage:   "The number of work sessions before a long break (default: 4)",
	}

	addTagFlag = &cli.StringFlag{
		Name:    "tag",
		Aliases: []string{"t"},
		Usage:   "Add comma-delimited tags to a session",
	}

	taskFlag = &cli.StringFlag{
		Name:  "task",
		Usage: "Label the session with the task being worked on",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	noCameraFlag = &cli.BoolFlag{
		Name:  "no-camera",
		Usage: "Run without attention tracking even if a camera stream is configured",
	}

	pauseOnDistractionFlag = &cli.BoolFlag{
		Name:  "pause-on-distraction",
		Usage: "Pause the timer automatically after sustained inattention and resume it when attention returns",
	}

	distractionThresholdFlag = &cli.StringFlag{
		Name:  "distraction-threshold",
		Usage: "How long inattention must persist before the timer auto-pauses (default: 8s)",
	}

	autoWorkFlag = &cli.BoolFlag{
		Name:  "auto-work",
		Usage: "Start the next work session without waiting for ENTER",
	}

	autoBreakFlag = &cli.BoolFlag{
		Name:  "auto-break",
		Usage: "Start break sessions without waiting for ENTER",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Dump the resolved configuration to the log file",
	}
)
