package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alokX01/focusflow/internal/session"
)

func testClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "focusflow.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestCreateAndUpdateSession(t *testing.T) {
	c := testClient(t)

	start := time.Now()
	sess := &session.Session{
		Name:      session.Work,
		Task:      "write report",
		Tags:      []string{"writing"},
		StartTime: start,
		Duration:  25 * time.Minute,
	}

	id, err := c.CreateSession(sess)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, sess.ID)

	sum := session.Summary{
		Duration:         25 * time.Minute,
		FocusedSeconds:   1450,
		FocusPercent:     87.5,
		DistractionCount: 3,
		Completed:        true,
		EndTime:          start.Add(25 * time.Minute),
		TrackedFocus:     true,
	}

	require.NoError(t, c.UpdateSession(id, sum))

	got, err := c.GetSessions(start.Add(-time.Minute), start.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, session.Work, got[0].Name)
	assert.Equal(t, "write report", got[0].Task)
	assert.Equal(t, 1450, got[0].FocusedSeconds)
	assert.Equal(t, 87.5, got[0].FocusPercent)
	assert.Equal(t, 3, got[0].DistractionCount)
	assert.True(t, got[0].Completed)
	assert.True(t, got[0].TrackedFocus)
}

func TestUpdateUnknownSession(t *testing.T) {
	c := testClient(t)

	err := c.UpdateSession("no-such-id", session.Summary{})
	assert.ErrorContains(t, err, "session not found")
}

func TestGetSessionsRange(t *testing.T) {
	c := testClient(t)

	base := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, err := c.CreateSession(&session.Session{
			Name:      session.Work,
			StartTime: base.Add(time.Duration(i) * time.Hour),
			Duration:  25 * time.Minute,
		})
		require.NoError(t, err)
	}

	got, err := c.GetSessions(base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Chronological order, inclusive bounds.
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].StartTime.Before(got[i].StartTime))
	}

	got, err = c.GetSessions(base.Add(6*time.Hour), base.Add(7*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}
