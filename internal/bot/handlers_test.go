package bot

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pinyinquest/internal/game"
	"github.com/example/pinyinquest/internal/quiz"
)

func newTestGame(t *testing.T) (*game.Session, *quiz.Generator) {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	sess := game.NewSession(game.DefaultState(start), nil,
		game.WithClock(func() time.Time { return start }),
		game.WithRand(rng),
	)
	return sess, quiz.New(rng)
}

func TestTrialAnswersFeedReviewSchedule(t *testing.T) {
	sess, quizzes := newTestGame(t)
	world := sess.ActiveWorld()

	questions := quizzes.TimeTrial(sess.PickDueVocab(6), 2)
	require.Len(t, questions, 2)
	rs := &roomSession{WorldID: world.ID, RoomNo: game.TimeTrialRoom, trial: questions}

	first := questions[0]
	correctIdx := -1
	for i, item := range first.Pool {
		if item.ID == first.Target.ID {
			correctIdx = i
		}
	}
	require.GreaterOrEqual(t, correctIdx, 0)

	assert.True(t, markTrialAnswer(sess, rs, correctIdx))
	assert.Equal(t, 1, rs.Correct)
	assert.Equal(t, 1, rs.trialIdx)

	entry := sess.State.SRS[first.Target.ID]
	require.NotNil(t, entry, "a trial answer schedules the item")
	assert.Equal(t, 2, entry.Interval)

	// A wrong pick still reaches the schedule.
	second := questions[1]
	wrongIdx := 0
	if second.Pool[0].ID == second.Target.ID {
		wrongIdx = 1
	}
	assert.False(t, markTrialAnswer(sess, rs, wrongIdx))
	assert.Equal(t, 1, rs.Correct)

	entry = sess.State.SRS[second.Target.ID]
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Interval)
}

func TestSecretRoomReviewFeedsSchedule(t *testing.T) {
	sess, quizzes := newTestGame(t)
	world := sess.ActiveWorld()

	q, err := quizzes.Vocab(sess.PickDueVocab(4), false)
	require.NoError(t, err)
	rs := &roomSession{
		WorldID:   world.ID,
		RoomNo:    10,
		RoomType:  game.RoomSecret,
		Remaining: 1,
		vocabQ:    q,
	}

	correctIdx := -1
	for i, item := range q.Choices {
		if item.ID == q.Target.ID {
			correctIdx = i
		}
	}
	require.GreaterOrEqual(t, correctIdx, 0)

	assert.True(t, markVocabAnswer(sess, rs, correctIdx))
	assert.Zero(t, rs.Remaining, "one question, then the chest opens")
	assert.Nil(t, rs.vocabQ)

	entry := sess.State.SRS[q.Target.ID]
	require.NotNil(t, entry, "the ghost's question schedules the item")
	assert.Equal(t, 2, entry.Interval)
}
