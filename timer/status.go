package timer

import (
	"bufio"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/pterm/pterm"
	bolt "go.etcd.io/bbolt"

	"github.com/alokX01/focusflow/internal/config"
	"github.com/alokX01/focusflow/internal/session"
)

// Status represents the observable state of a running timer. It is
// written to the status file so a second invocation can report on the
// active one.
type Status struct {
	Name              session.Name `json:"name"`
	Task              string       `json:"task,omitempty"`
	Tags              []string     `json:"tags,omitempty"`
	State             State        `json:"state"`
	PauseReason       PauseReason  `json:"pause_reason"`
	EndTime           time.Time    `json:"end_time"`
	Remaining         int          `json:"remaining_seconds"`
	WorkCycle         int          `json:"work_cycle"`
	LongBreakInterval int          `json:"long_break_interval"`
	Tracked           bool         `json:"tracked"`
	FocusScore        float64      `json:"focus_score"`
	DistractionCount  int          `json:"distraction_count"`
}

// WriteStatusFile saves the status for the status command.
func WriteStatusFile(s Status) error {
	statusFile, err := os.Create(config.StatusFilePath())
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReportStatus prints the status of the currently running timer, if
// one is active in another process.
func ReportStatus() error {
	dbFilePath := config.DBFilePath()
	statusFilePath := config.StatusFilePath()

	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// An openable database means no timer is running, so there is no
	// status to report.
	if err == nil {
		_ = db.Close()
		return nil
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// A missing status file should not return an error.
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	if s.Remaining <= 0 {
		return nil
	}

	var text string

	switch s.Name {
	case session.Work:
		text = pterm.Sprintf("[Work %d/%d]", s.WorkCycle, s.LongBreakInterval)
	case session.ShortBreak:
		text = "[Short break]"
	case session.LongBreak:
		text = "[Long break]"
	}

	if s.State == StatePaused {
		text += pterm.Sprintf(" (paused: %s)", s.PauseReason)
	}

	mins := s.Remaining / 60
	secs := s.Remaining % 60

	if s.Tracked {
		pterm.Printfln(
			"%s: %02d:%02d | focus %.0f%% | %d distractions",
			text, mins, secs, s.FocusScore, s.DistractionCount,
		)

		return nil
	}

	pterm.Printfln("%s: %02d:%02d", text, mins, secs)

	return nil
}
