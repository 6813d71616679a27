package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pinyinquest/internal/game"
)

type captureNotifier struct {
	calls  int
	due    int
	streak int
	atRisk bool
}

func (c *captureNotifier) SendReminder(dueCount, streakCount int, streakAtRisk bool) error {
	c.calls++
	c.due = dueCount
	c.streak = streakCount
	c.atRisk = streakAtRisk
	return nil
}

func newTestSession(t *testing.T) *game.Session {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	return game.NewSession(game.DefaultState(start), nil,
		game.WithClock(func() time.Time { return start }),
		game.WithRand(rand.New(rand.NewSource(1))),
	)
}

func TestHourFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"unset uses fallback", "", 8},
		{"valid hour", "9", 9},
		{"midnight is valid", "0", 0},
		{"last hour is valid", "23", 23},
		{"past midnight rejected", "24", 8},
		{"negative rejected", "-1", 8},
		{"garbage rejected", "banana", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REMINDER_START_HOUR", tt.value)
			assert.Equal(t, tt.expected, hourFromEnv("REMINDER_START_HOUR", 8))
		})
	}
}

func TestWithinWindow(t *testing.T) {
	assert.True(t, withinWindow(8, 8, 20), "start hour is inside")
	assert.True(t, withinWindow(20, 8, 20), "end hour is inside")
	assert.True(t, withinWindow(12, 8, 20))
	assert.False(t, withinWindow(7, 8, 20))
	assert.False(t, withinWindow(21, 8, 20))
}

func TestRunManualCheckSendsWhenReviewsDue(t *testing.T) {
	session := newTestSession(t)
	session.State.Streak.Count = 3
	notifier := &captureNotifier{}
	s := New(session, notifier)

	require.NoError(t, s.RunManualCheck())
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 5, notifier.due, "all demo words start due")
	assert.Equal(t, 3, notifier.streak)
}

func TestRunManualCheckQuietWhenNothingDue(t *testing.T) {
	session := newTestSession(t)
	for _, v := range session.ActiveWorld().Vocab {
		session.RecordAnswer(v.ID, true)
	}
	notifier := &captureNotifier{}
	s := New(session, notifier)

	require.NoError(t, s.RunManualCheck())
	assert.Zero(t, notifier.calls, "no nudge when nothing is due and no streak is at risk")
}
