package game

import (
	"time"

	"github.com/example/pinyinquest/pkg/models"
)

const (
	monthlyFreezeTokens = 2
	maxFreezePerMonth   = 2
)

// refillFreezeIfNewMonth refills the freeze tokens when the tracked calendar
// month changes. Refill is independent of the streak value.
func refillFreezeIfNewMonth(st *models.StreakState, today time.Time) {
	month := today.Format(models.MonthLayout)
	if st.Month != month {
		st.Month = month
		st.FreezeTokens = monthlyFreezeTokens
		st.UsedFreezeThisMonth = 0
	}
}

// BumpStreak updates the streak for a room completed today. Only the first
// completion per day counts: qualified reports whether this one did, gating
// the daily reward and milestone check. froze reports that a freeze token was
// spent to carry the streak over missed days, so the caller can announce it.
func BumpStreak(st *models.StreakState, today time.Time) (qualified, froze bool) {
	refillFreezeIfNewMonth(st, today)

	day := formatDate(today)
	if st.LastComplete == day {
		return false, false
	}
	if st.LastComplete == "" {
		st.Count = 1
		st.LastComplete = day
		return true, false
	}

	gap := daysBetween(st.LastComplete, day)
	switch {
	case gap == 1:
		st.Count++
		st.LastComplete = day
		return true, false
	case gap > 1:
		if st.FreezeTokens > 0 && st.UsedFreezeThisMonth < maxFreezePerMonth {
			st.FreezeTokens--
			st.UsedFreezeThisMonth++
			st.LastComplete = day
			return true, true
		}
		st.Count = 1
		st.LastComplete = day
		return true, false
	}

	// gap <= 0: the clock moved backwards, leave the streak alone
	return false, false
}

// StreakAtRisk reports whether the streak would lapse without a completion
// today. Used by the reminder job.
func StreakAtRisk(st *models.StreakState, today time.Time) bool {
	if st.Count == 0 || st.LastComplete == "" {
		return false
	}
	return daysBetween(st.LastComplete, formatDate(today)) >= 1
}
