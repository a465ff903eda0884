// Package app wires the command-line interface to the timer engine.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/alokX01/focusflow/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the focusflow app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "focusflow",
		Usage: `
		FocusFlow is a productivity timer for the command line that measures
		sustained visual attention during work sessions. With a gaze-sensor
		stream attached, it integrates per-frame attention readings into a
		session focus score, counts distraction events, and can pause the
		timer automatically while you are away.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the timer",
				Action: statusAction,
			},
		},
		Flags: []cli.Flag{
			workFlag,
			shortBreakFlag,
			longBreakFlag,
			longBreakIntervalFlag,
			addTagFlag,
			taskFlag,
			sessionCmdFlag,
			disableNotificationFlag,
			noColorFlag,
			noCameraFlag,
			pauseOnDistractionFlag,
			distractionThresholdFlag,
			autoWorkFlag,
			autoBreakFlag,
			debugFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
