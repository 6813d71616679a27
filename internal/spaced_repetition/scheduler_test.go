package spaced_repetition

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pinyinquest/pkg/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testWorld(ids ...string) *models.World {
	w := &models.World{ID: "w1", Title: "Test"}
	for _, id := range ids {
		w.Vocab = append(w.Vocab, models.VocabItem{ID: id, Pinyin: id, Meaning: "m-" + id})
	}
	return w
}

func TestRecordAnswerFreshItem(t *testing.T) {
	sched := New()
	srs := make(map[string]*models.SchedEntry)
	today := day("2024-01-01")

	entry := sched.RecordAnswer(srs, "v1", true, today)
	require.NotNil(t, entry)
	assert.InDelta(t, 2.35, entry.Ease, 1e-9)
	assert.Equal(t, 2, entry.Interval)
	assert.Equal(t, "2024-01-03", entry.Due)

	entry = sched.RecordAnswer(srs, "v1", false, today)
	assert.InDelta(t, 2.20, entry.Ease, 1e-9)
	assert.Equal(t, 1, entry.Interval)
	assert.Equal(t, "2024-01-02", entry.Due)
}

func TestRecordAnswerGrowth(t *testing.T) {
	sched := New()
	srs := make(map[string]*models.SchedEntry)
	today := day("2024-01-01")

	// Repeated correct answers grow the interval and saturate the ease.
	var prev float64
	for i := 0; i < 50; i++ {
		entry := sched.RecordAnswer(srs, "v1", true, today)
		assert.GreaterOrEqual(t, entry.Ease, sched.MinEase)
		assert.LessOrEqual(t, entry.Ease, sched.MaxEase)
		assert.GreaterOrEqual(t, entry.Interval, 1)
		assert.LessOrEqual(t, entry.Interval, sched.MaxInterval)
		assert.GreaterOrEqual(t, entry.Ease, prev)
		prev = entry.Ease
	}
	assert.Equal(t, sched.MaxInterval, srs["v1"].Interval)
	assert.InDelta(t, sched.MaxEase, srs["v1"].Ease, 1e-9)
}

func TestRecordAnswerIncorrectResetsInterval(t *testing.T) {
	sched := New()
	srs := map[string]*models.SchedEntry{
		"v1": {Interval: 42, Ease: 2.9, Due: "2024-01-01"},
	}
	today := day("2024-01-05")

	entry := sched.RecordAnswer(srs, "v1", false, today)
	assert.Equal(t, 1, entry.Interval)
	assert.InDelta(t, 2.75, entry.Ease, 1e-9)
	assert.Equal(t, "2024-01-06", entry.Due)
}

func TestRecordAnswerEaseFloor(t *testing.T) {
	sched := New()
	srs := map[string]*models.SchedEntry{
		"v1": {Interval: 1, Ease: 1.3, Due: "2024-01-01"},
	}
	entry := sched.RecordAnswer(srs, "v1", false, day("2024-01-01"))
	assert.InDelta(t, 1.3, entry.Ease, 1e-9)
}

func TestSelectDueDistinct(t *testing.T) {
	sched := New()
	rng := rand.New(rand.NewSource(7))
	world := testWorld("a", "b", "c", "d", "e")
	srs := make(map[string]*models.SchedEntry)

	for i := 0; i < 20; i++ {
		picked := sched.SelectDue(srs, world, day("2024-01-01"), 4, rng)
		require.Len(t, picked, 4)
		seen := make(map[string]bool)
		for _, v := range picked {
			assert.False(t, seen[v.ID], "duplicate item %s", v.ID)
			seen[v.ID] = true
		}
	}
}

func TestSelectDueFallsBackToFullVocab(t *testing.T) {
	sched := New()
	rng := rand.New(rand.NewSource(1))
	world := testWorld("a", "b", "c", "d")
	today := day("2024-01-10")

	// Everything reviewed and far from due.
	srs := make(map[string]*models.SchedEntry)
	for _, v := range world.Vocab {
		srs[v.ID] = &models.SchedEntry{Interval: 30, Ease: 2.3, Due: "2024-02-01"}
	}

	picked := sched.SelectDue(srs, world, today, 4, rng)
	assert.Len(t, picked, 4)
}

func TestSelectDueShortWorld(t *testing.T) {
	sched := New()
	rng := rand.New(rand.NewSource(3))
	world := testWorld("a", "b")

	picked := sched.SelectDue(make(map[string]*models.SchedEntry), world, day("2024-01-01"), 4, rng)
	assert.Len(t, picked, 2)
}

func TestSelectDueEmptyWorld(t *testing.T) {
	sched := New()
	rng := rand.New(rand.NewSource(3))
	picked := sched.SelectDue(make(map[string]*models.SchedEntry), testWorld(), day("2024-01-01"), 4, rng)
	assert.Empty(t, picked)
}

func TestDueCount(t *testing.T) {
	sched := New()
	world := testWorld("a", "b", "c")
	srs := map[string]*models.SchedEntry{
		"a": {Interval: 2, Ease: 2.3, Due: "2024-01-01"}, // due today
		"b": {Interval: 2, Ease: 2.3, Due: "2024-01-05"}, // later
		// c unseen -> due
	}
	assert.Equal(t, 2, sched.DueCount(srs, world, day("2024-01-01")))
}
