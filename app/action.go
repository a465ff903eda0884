package app

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/alokX01/focusflow/internal/attention"
	"github.com/alokX01/focusflow/internal/clock"
	"github.com/alokX01/focusflow/internal/config"
	"github.com/alokX01/focusflow/internal/logutil"
	"github.com/alokX01/focusflow/internal/session"
	"github.com/alokX01/focusflow/internal/ui"
	"github.com/alokX01/focusflow/store"
	"github.com/alokX01/focusflow/timer"
)

const (
	envNoColor          = "NO_COLOR"
	envFocusFlowNoColor = "FOCUSFLOW_NO_COLOR"
)

var closeLog func() error

func beforeAction(ctx *cli.Context) error {
	config.InitializePaths()

	closeLog = logutil.Init(config.LogFilePath())

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envFocusFlowNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(*cli.Context) error {
	slog.Info("exiting focusflow")

	if closeLog != nil {
		_ = closeLog()
	}

	return nil
}

// statusAction reports the status of a timer running in another
// process.
func statusAction(*cli.Context) error {
	return timer.ReportStatus()
}

// editConfigAction opens the config file in the user's editor.
func editConfigAction(*cli.Context) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, config.ConfigFilePath())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// defaultAction loads configuration and runs the timer until the user
// stops it.
func defaultAction(ctx *cli.Context) error {
	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	ui.SetDarkTheme(cfg.Display.DarkTheme)

	if ctx.Bool("debug") {
		slog.Info(spew.Sdump(cfg))
	}

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	var source attention.Source
	if cfg.Attention.CameraEnabled {
		source = attention.NewStreamSource(cfg.Attention.StreamPath)
	}

	return runTimer(cfg, db, source)
}

// runTimer drives the session loop: start, count down, finalize,
// follow the cycle directive, repeat.
func runTimer(cfg *config.Config, db store.Gateway, source attention.Source) error {
	clk := clock.New()

	eng := timer.New(cfg, db, source, clk, timer.Handlers{
		SessionPaused: func(reason timer.PauseReason) {
			fmt.Fprintf(os.Stdout, "\n%s\n", ui.Red("Paused ("+reason.String()+")"))
		},
		SessionResumed: func() {
			fmt.Fprintln(os.Stdout, ui.Green("Resumed"))
		},
		DistractionDetected: func(ev attention.Event) {
			slog.Info("distraction detected",
				"count", ev.Count,
				"classification", ev.Classification.String(),
			)
		},
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	defer signal.Stop(sigCh)

	cmdCh := readCommands()

	name := session.Work

	for {
		if err := eng.Start(name); err != nil {
			return err
		}

		printSession(cfg, name, eng.Status())

		completed := countdown(eng, clk, sigCh, cmdCh)

		_ = os.Remove(config.StatusFilePath())

		printSummary(eng)

		d, ok := eng.PendingDirective()
		if !ok {
			// Early stop, or nothing to chain.
			return nil
		}

		if cfg.Notifications.Enabled && completed {
			timer.Notify(string(name), cfg.Message(d.Name))
		}

		if err := timer.RunSessionCmd(cfg.Settings.Cmd); err != nil {
			return err
		}

		if !d.AutoStart {
			if ok := waitForNext(cmdCh, sigCh); !ok {
				return nil
			}
		}

		name = d.Name
	}
}

// countdown ticks the engine once per second and renders the remaining
// time. It returns true when the session completed naturally.
func countdown(
	eng *timer.Timer,
	clk clock.Clock,
	sigCh <-chan os.Signal,
	cmdCh <-chan string,
) bool {
	ticker := clk.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Fprint(os.Stdout, "\033[s")

	for {
		select {
		case <-ticker.C():
			eng.Tick()

			st := eng.Status()

			if st.State == timer.StateCompleted {
				fmt.Fprintf(os.Stdout, "\n\nSession completed!\n\n")
				return true
			}

			fmt.Fprint(os.Stdout, "\033[u\033[K")
			printCountdown(st)

			_ = timer.WriteStatusFile(st)

		case cmd := <-cmdCh:
			if done := applyCommand(eng, cmd); done {
				return false
			}

		case <-sigCh:
			if err := eng.Stop(false); err != nil {
				pterm.Error.Printfln("unable to stop session: %v", err)
			}

			fmt.Fprintf(os.Stdout, "\n\nSession stopped early\n\n")

			return false
		}
	}
}

// readCommands forwards single-letter commands typed on stdin:
// p pauses, r resumes, q stops the session.
func readCommands() <-chan string {
	ch := make(chan string)

	go func() {
		scanner := bufio.NewScanner(config.Stdin)
		for scanner.Scan() {
			ch <- strings.TrimSpace(strings.ToLower(scanner.Text()))
		}
	}()

	return ch
}

func applyCommand(eng *timer.Timer, cmd string) (done bool) {
	switch cmd {
	case "p":
		if err := eng.Pause(); err != nil {
			pterm.Error.Println(err)
		}
	case "r":
		if err := eng.Resume(); err != nil {
			pterm.Error.Println(err)
		}
	case "q":
		if err := eng.Stop(false); err != nil {
			pterm.Error.Println(err)
			return false
		}

		fmt.Fprintf(os.Stdout, "\n\nSession stopped early\n\n")

		return true
	}

	return false
}

// printSession writes the details of the current session to stdout.
func printSession(cfg *config.Config, name session.Name, st timer.Status) {
	var text string

	switch name {
	case session.Work:
		text = fmt.Sprintf(
			ui.Green("[Work %d/%d]"),
			st.WorkCycle,
			st.LongBreakInterval,
		) + ": " + cfg.Work.Message
	case session.ShortBreak:
		text = ui.Blue("[Short break]") + ": " + cfg.ShortBreak.Message
	case session.LongBreak:
		text = ui.Magenta("[Long break]") + ": " + cfg.LongBreak.Message
	}

	var timeFormat string
	if cfg.Settings.TwentyFourHour {
		timeFormat = "15:04:05"
	} else {
		timeFormat = "03:04:05 PM"
	}

	var tags string
	if len(st.Tags) > 0 {
		tags = " >>> " + strings.Join(st.Tags, " | ")
	}

	fmt.Fprintf(
		os.Stdout,
		"%s (until %s)%s\n",
		text,
		ui.Highlight(st.EndTime.Format(timeFormat)),
		tags,
	)

	if name == session.Work && st.Tracked {
		fmt.Fprintln(
			os.Stdout,
			"Attention tracking is on. Press p to pause, r to resume, q to stop.",
		)
	}
}

// printCountdown renders the remaining time and, when attention is
// tracked, the live focus score.
func printCountdown(st timer.Status) {
	mins := st.Remaining / 60
	secs := st.Remaining % 60

	out := fmt.Sprintf(
		"\r🕒%s:%s",
		pterm.Yellow(fmt.Sprintf("%02d", mins)),
		pterm.Yellow(fmt.Sprintf("%02d", secs)),
	)

	if st.Tracked {
		out += fmt.Sprintf(
			"  focus %s%%  distractions %s",
			pterm.Yellow(fmt.Sprintf("%.0f", st.FocusScore)),
			pterm.Yellow(fmt.Sprintf("%d", st.DistractionCount)),
		)
	}

	if st.State == timer.StatePaused {
		out += ui.Red("  [paused]")
	}

	fmt.Fprint(os.Stdout, out)
}

// printSummary reports the finalized session.
func printSummary(eng *timer.Timer) {
	sum, ok := eng.LastSummary()
	if !ok || !sum.TrackedFocus {
		return
	}

	fmt.Fprintf(
		os.Stdout,
		"Focus score: %s  Focused time: %s  Distractions: %s\n",
		ui.Green(fmt.Sprintf("%.0f%%", sum.FocusPercent)),
		ui.Green((time.Duration(sum.FocusedSeconds)*time.Second).String()),
		ui.Green(fmt.Sprintf("%d", sum.DistractionCount)),
	)
}

// waitForNext blocks until the user presses ENTER. It reports false
// when the user interrupts instead.
func waitForNext(cmdCh <-chan string, sigCh <-chan os.Signal) bool {
	fmt.Fprint(os.Stdout, "Press ENTER to start the next session")

	select {
	case cmd := <-cmdCh:
		if cmd == "q" {
			return false
		}

		return true
	case <-sigCh:
		return false
	}
}
