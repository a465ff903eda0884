package store

import (
	"time"

	"github.com/alokX01/focusflow/internal/session"
)

// Gateway is the persistence boundary for session records. The timer
// engine calls it at defined lifecycle points and never retries
// internally; retry policy belongs to the implementation.
type Gateway interface {
	// CreateSession stores a new session record and returns its ID.
	CreateSession(sess *session.Session) (string, error)
	// UpdateSession applies a final summary to a previously created
	// session record.
	UpdateSession(id string, sum session.Summary) error
	// GetSessions returns sessions whose start time falls within the
	// given bounds, in chronological order.
	GetSessions(startTime, endTime time.Time) ([]session.Session, error)
	// Close ends the database connection.
	Close() error
}
