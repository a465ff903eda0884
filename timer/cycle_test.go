package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alokX01/focusflow/internal/session"
)

func TestCycleAlternatesWorkAndBreaks(t *testing.T) {
	c := NewCycle(4, false, false)

	for i := 1; i <= 3; i++ {
		d, ok := c.Next(session.Work, true)
		require.True(t, ok)
		assert.Equal(t, session.ShortBreak, d.Name)
		assert.Equal(t, i, c.CompletedBlocks())

		d, ok = c.Next(d.Name, true)
		require.True(t, ok)
		assert.Equal(t, session.Work, d.Name)
	}

	// The fourth work block earns the long break.
	d, ok := c.Next(session.Work, true)
	require.True(t, ok)
	assert.Equal(t, session.LongBreak, d.Name)

	d, ok = c.Next(session.LongBreak, true)
	require.True(t, ok)
	assert.Equal(t, session.Work, d.Name)

	// The streak keeps counting into the next interval.
	d, ok = c.Next(session.Work, true)
	require.True(t, ok)
	assert.Equal(t, session.ShortBreak, d.Name)
	assert.Equal(t, 5, c.CompletedBlocks())
}

func TestCycleAutoStartGating(t *testing.T) {
	c := NewCycle(4, true, false)

	d, ok := c.Next(session.Work, true)
	require.True(t, ok)
	assert.True(t, d.AutoStart)

	d, ok = c.Next(session.ShortBreak, true)
	require.True(t, ok)
	assert.False(t, d.AutoStart)
}

func TestCycleEarlyStopNeverChains(t *testing.T) {
	c := NewCycle(4, true, true)

	_, ok := c.Next(session.Work, false)
	assert.False(t, ok)
	assert.Zero(t, c.CompletedBlocks())

	_, ok = c.Next(session.ShortBreak, false)
	assert.False(t, ok)
}

func TestCycleCurrentBlock(t *testing.T) {
	c := NewCycle(4, false, false)

	assert.Equal(t, 1, c.CurrentBlock())

	c.Next(session.Work, true)
	assert.Equal(t, 2, c.CurrentBlock())

	c.Next(session.Work, true)
	c.Next(session.Work, true)
	c.Next(session.Work, true)

	// After the long break the display wraps back to the first block.
	assert.Equal(t, 1, c.CurrentBlock())

	c.Reset()
	assert.Zero(t, c.CompletedBlocks())
	assert.Equal(t, 1, c.CurrentBlock())
}
