package timer

import "github.com/alokX01/focusflow/internal/apperr"

var (
	errSessionActive = &apperr.Error{
		Message: "a session is already in progress",
	}

	errNotRunning = &apperr.Error{
		Message: "no running session to pause",
	}

	errNotPaused = &apperr.Error{
		Message: "no paused session to resume",
	}

	errNoActiveSession = &apperr.Error{
		Message: "no active session to stop",
	}

	errPersist = &apperr.Error{
		Message: "unable to save session",
	}

	errInvalidSessionCmd = &apperr.Error{
		Message: "unable to parse session_cmd option",
	}
)
