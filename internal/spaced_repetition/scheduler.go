package spaced_repetition

import (
	"math"
	"math/rand"
	"time"

	"github.com/example/pinyinquest/pkg/models"
)

// Scheduler implements the linear-ease review scheme: a fixed heuristic where
// each item's ease factor nudges up on correct answers and drops on misses,
// and the interval grows as round(interval*ease).
type Scheduler struct {
	// Bounds for the ease factor
	MinEase float64
	MaxEase float64
	// Ease delta applied on a correct answer
	EaseReward float64
	// Ease delta applied on an incorrect answer
	EasePenalty float64
	// Maximum repetition interval in days
	MaxInterval int
	// Starting ease for a fresh item
	InitialEase float64
}

// New creates a Scheduler with the default tuning.
func New() *Scheduler {
	return &Scheduler{
		MinEase:     1.3,
		MaxEase:     3.0,
		EaseReward:  0.05,
		EasePenalty: 0.15,
		MaxInterval: 60,
		InitialEase: 2.3,
	}
}

// RecordAnswer updates the schedule entry for an item after an answer,
// creating the entry on first contact. Entries are never removed.
func (s *Scheduler) RecordAnswer(srs map[string]*models.SchedEntry, itemID string, correct bool, today time.Time) *models.SchedEntry {
	entry := srs[itemID]
	if entry == nil {
		entry = &models.SchedEntry{
			Interval: 1,
			Ease:     s.InitialEase,
			Due:      today.Format(models.DateLayout),
		}
	}

	if correct {
		entry.Ease = clampFloat(entry.Ease+s.EaseReward, s.MinEase, s.MaxEase)
		entry.Interval = clampInt(int(math.Round(float64(entry.Interval)*entry.Ease)), 1, s.MaxInterval)
	} else {
		entry.Ease = clampFloat(entry.Ease-s.EasePenalty, s.MinEase, s.MaxEase)
		entry.Interval = 1
	}

	entry.Due = today.AddDate(0, 0, entry.Interval).Format(models.DateLayout)
	srs[itemID] = entry
	return entry
}

// SelectDue samples up to n distinct items for review. Items with no entry or
// a due date at or before today are candidates; when there are fewer than n,
// the whole vocabulary pads the sampling pool so a quiz can always be built.
// The result never contains duplicates and is shorter than n only when the
// world itself has fewer than n items.
func (s *Scheduler) SelectDue(srs map[string]*models.SchedEntry, world *models.World, today time.Time, n int, rng *rand.Rand) []models.VocabItem {
	day := today.Format(models.DateLayout)

	var due []models.VocabItem
	for _, v := range world.Vocab {
		entry := srs[v.ID]
		if entry == nil || entry.Due <= day {
			due = append(due, v)
		}
	}

	pool := due
	if len(due) < n {
		pool = make([]models.VocabItem, 0, len(due)+len(world.Vocab))
		pool = append(pool, due...)
		pool = append(pool, world.Vocab...)
	}

	distinct := make(map[string]bool, len(pool))
	for _, v := range pool {
		distinct[v.ID] = true
	}
	want := n
	if len(distinct) < want {
		want = len(distinct)
	}

	out := make([]models.VocabItem, 0, want)
	used := make(map[string]bool, want)
	for len(out) < want {
		v := pool[rng.Intn(len(pool))]
		if used[v.ID] {
			continue
		}
		used[v.ID] = true
		out = append(out, v)
	}
	return out
}

// DueCount reports how many of the world's items are due for review today.
func (s *Scheduler) DueCount(srs map[string]*models.SchedEntry, world *models.World, today time.Time) int {
	day := today.Format(models.DateLayout)
	count := 0
	for _, v := range world.Vocab {
		entry := srs[v.ID]
		if entry == nil || entry.Due <= day {
			count++
		}
	}
	return count
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
