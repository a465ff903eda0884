// Package store connects to the data store and manages session records.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/alokX01/focusflow/internal/apperr"
	"github.com/alokX01/focusflow/internal/session"
)

const (
	sessionBucket = "sessions"
	idBucket      = "session_ids"
)

var (
	errAlreadyRunning = &apperr.Error{
		Message: "is FocusFlow already running? Only one instance can be active at a time",
	}

	errSessionNotFound = &apperr.Error{
		Message: "session not found: %s",
	}
)

// Client is a BoltDB-backed Gateway. Sessions are stored as JSON keyed
// by their RFC3339Nano start time; a second bucket maps session IDs to
// those keys so updates can find the record.
type Client struct {
	*bolt.DB
}

// CreateSession stores a new session record, assigning an ID if the
// session does not carry one yet.
func (c *Client) CreateSession(sess *session.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	key := sessionKey(sess.StartTime)

	value, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}

	err = c.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(sessionBucket)).Put(key, value); err != nil {
			return err
		}

		return tx.Bucket([]byte(idBucket)).Put([]byte(sess.ID), key)
	})
	if err != nil {
		return "", err
	}

	return sess.ID, nil
}

// UpdateSession applies a final summary to a stored session.
func (c *Client) UpdateSession(id string, sum session.Summary) error {
	return c.Update(func(tx *bolt.Tx) error {
		key := tx.Bucket([]byte(idBucket)).Get([]byte(id))
		if len(key) == 0 {
			return errSessionNotFound.Fmt(id)
		}

		b := tx.Bucket([]byte(sessionBucket))

		var sess session.Session

		if err := json.Unmarshal(b.Get(key), &sess); err != nil {
			return err
		}

		sess.Finalize(sum)

		value, err := json.Marshal(&sess)
		if err != nil {
			return err
		}

		return b.Put(key, value)
	})
}

// GetSessions returns sessions started within the given bounds.
func (c *Client) GetSessions(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	var sessions []session.Session

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(sessionBucket)).Cursor()
		min := sessionKey(startTime)
		max := sessionKey(endTime)

		for k, v := cur.Seek(min); k != nil && bytes.Compare(k, max) <= 0; k, v = cur.Next() {
			var sess session.Session

			if err := json.Unmarshal(v, &sess); err != nil {
				return err
			}

			sessions = append(sessions, sess)
		}

		return nil
	})

	return sessions, err
}

func sessionKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(sessionBucket)); err != nil {
			return err
		}

		_, err := tx.CreateBucketIfNotExists([]byte(idBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{db}, nil
}
