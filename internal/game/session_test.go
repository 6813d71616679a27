package game

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pinyinquest/pkg/models"
)

type recordingSaver struct {
	saves int
	fail  bool
}

func (r *recordingSaver) Save(*models.GameState) error {
	r.saves++
	if r.fail {
		return errors.New("disk is haunted")
	}
	return nil
}

func newTestSession(t *testing.T, start string) (*Session, *recordingSaver, *time.Time) {
	t.Helper()
	current := day(start)
	saver := &recordingSaver{}
	state := DefaultState(current)
	sess := NewSession(state, saver,
		WithClock(func() time.Time { return current }),
		WithRand(rand.New(rand.NewSource(42))),
	)
	return sess, saver, &current
}

func TestCompleteRoomBossFirstDay(t *testing.T) {
	sess, saver, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID
	sess.State.Economy.Battery = 50

	result := sess.CompleteRoom(worldID, 5)

	assert.Equal(t, RoomBoss, result.RoomType)
	assert.True(t, result.FirstTime)
	assert.True(t, result.Qualified)
	assert.Equal(t, 14, result.RoomCoins)
	assert.Equal(t, 12, result.Daily.Coins)
	assert.False(t, result.Milestone)
	assert.Equal(t, 1, result.StreakCount)

	// 8 base + 6 boss + 12 daily base with no streak bonus.
	assert.Equal(t, 26, sess.State.Economy.Coins)
	assert.Equal(t, 1, sess.State.Economy.Keys)
	assert.Equal(t, 60, sess.State.Economy.Battery)
	assert.Equal(t, 1, sess.State.Streak.Count)
	assert.Equal(t, 6, sess.Progress(worldID).UnlockedRoom)
	assert.Positive(t, saver.saves)
}

func TestCompleteRoomSecondOfDayNoDailyReward(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	sess.CompleteRoom(worldID, 1)
	coinsAfterFirst := sess.State.Economy.Coins
	keysAfterFirst := sess.State.Economy.Keys

	result := sess.CompleteRoom(worldID, 2)
	assert.False(t, result.Qualified)
	assert.Equal(t, keysAfterFirst, sess.State.Economy.Keys)
	assert.Equal(t, coinsAfterFirst+8, sess.State.Economy.Coins, "only the room reward")
	assert.Zero(t, result.Daily.Coins)
}

func TestCompleteRoomMilestoneExactlyOnce(t *testing.T) {
	sess, _, current := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	r1 := sess.CompleteRoom(worldID, 1)
	assert.False(t, r1.Milestone)

	*current = day("2024-01-02")
	r2 := sess.CompleteRoom(worldID, 2)
	assert.False(t, r2.Milestone)

	*current = day("2024-01-03")
	r3 := sess.CompleteRoom(worldID, 3)
	assert.True(t, r3.Milestone, "streak hits 3")

	// Another completion on milestone day must not re-grant.
	coins := sess.State.Economy.Coins
	r4 := sess.CompleteRoom(worldID, 4)
	assert.False(t, r4.Milestone)
	assert.Equal(t, coins+8, sess.State.Economy.Coins)
}

func TestCompleteRoomTimeTrialSentinelIgnored(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	result := sess.CompleteRoom(worldID, TimeTrialRoom)
	assert.Equal(t, RoomResult{}, result)
	assert.Zero(t, sess.State.Economy.Coins)
	assert.Zero(t, sess.State.Streak.Count)
}

func TestEnterRoomLocked(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	err := sess.EnterRoom(worldID, 2)
	assert.ErrorIs(t, err, ErrRoomLocked)
	assert.NoError(t, sess.EnterRoom(worldID, 1))
}

func TestEnterSecretRoomNeedsKey(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID
	sess.Progress(worldID).UnlockedRoom = 10

	// Entry gating lives here, not in the ledger: zero keys means refusal.
	err := sess.EnterRoom(worldID, 10)
	assert.ErrorIs(t, err, ErrNeedKey)
	assert.Zero(t, sess.State.Economy.Keys)

	sess.State.Economy.Keys = 2
	require.NoError(t, sess.EnterRoom(worldID, 10))
	assert.Equal(t, 1, sess.State.Economy.Keys, "one key spent on entry")

	// A completed secret room costs nothing to revisit.
	sess.Progress(worldID).CompletedRooms[10] = true
	require.NoError(t, sess.EnterRoom(worldID, 10))
	assert.Equal(t, 1, sess.State.Economy.Keys)
}

func TestFinishTimeTrial(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	result := sess.FinishTimeTrial(worldID, 3, 9000)
	assert.True(t, result.Improved)
	assert.Equal(t, 35, result.Coins)

	result = sess.FinishTimeTrial(worldID, 2, 9500)
	assert.False(t, result.Improved)
	assert.Equal(t, 20, result.Coins)
	assert.EqualValues(t, 9000, *sess.Progress(worldID).BestTimeTrialMs)

	// Time trials never advance the door run or the streak.
	assert.Equal(t, 1, sess.Progress(worldID).UnlockedRoom)
	assert.Zero(t, sess.State.Streak.Count)
}

func TestRecordAnswerFlowsIntoSchedule(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	itemID := sess.ActiveWorld().Vocab[0].ID

	entry := sess.RecordAnswer(itemID, true)
	require.NotNil(t, entry)
	assert.InDelta(t, 2.35, entry.Ease, 1e-9)
	assert.Equal(t, 2, entry.Interval)
	assert.Same(t, entry, sess.State.SRS[itemID])
}

func TestPickDueVocab(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")

	picked := sess.PickDueVocab(4)
	assert.Len(t, picked, 4)
	assert.Equal(t, 5, sess.DueCount())
}

func TestUpsertWorldPreservesProgress(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID
	sess.CompleteRoom(worldID, 1)

	replacement := sess.State.Worlds[0]
	replacement.Title = "Re-imported"
	replacement.Vocab = []models.VocabItem{{ID: "new-1", Pinyin: "xīn", Meaning: "new"}}
	sess.UpsertWorld(replacement)

	require.Len(t, sess.State.Worlds, 1)
	assert.Equal(t, "Re-imported", sess.State.Worlds[0].Title)
	assert.True(t, sess.Progress(worldID).CompletedRooms[1], "progress survives re-import")
}

func TestDeleteLastWorldRestoresDemo(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	worldID := sess.ActiveWorld().ID

	sess.DeleteWorld(worldID)
	require.Len(t, sess.State.Worlds, 1)
	assert.NotEqual(t, worldID, sess.State.Worlds[0].ID)
	assert.Equal(t, sess.State.Worlds[0].ID, sess.State.ActiveWorldID)
}

func TestReminderStatusSnapshot(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	sess.State.Streak.Count = 4
	sess.State.Streak.LastComplete = "2023-12-31"

	due, streak, atRisk := sess.ReminderStatus()
	assert.Equal(t, 5, due)
	assert.Equal(t, 4, streak)
	assert.True(t, atRisk)

	sess.CompleteRoom(sess.ActiveWorld().ID, 1)
	_, _, atRisk = sess.ReminderStatus()
	assert.False(t, atRisk, "today's room is cleared")
}

func TestConcurrentReminderPollingAndAnswers(t *testing.T) {
	sess, _, _ := newTestSession(t, "2024-01-01")
	items := sess.ActiveWorld().Vocab

	// The reminder job polls from its own goroutine while answers land on
	// the update loop. Run both hot so the race detector can catch any
	// unguarded state access.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				sess.ReminderStatus()
				sess.DueCount()
				sess.StreakAtRisk()
			}
		}
	}()

	for i := 0; i < 200; i++ {
		item := items[i%len(items)]
		sess.RecordAnswer(item.ID, i%3 != 0)
	}
	close(done)
	wg.Wait()

	assert.NotEmpty(t, sess.State.SRS)
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	sess, saver, _ := newTestSession(t, "2024-01-01")
	saver.fail = true
	worldID := sess.ActiveWorld().ID

	result := sess.CompleteRoom(worldID, 1)
	assert.True(t, result.Qualified)
	assert.Equal(t, 1, sess.State.Streak.Count, "in-memory state still advances")
}
