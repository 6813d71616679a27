package models

// MonthLayout keys the freeze-token accounting period.
const MonthLayout = "2006-01"

// StreakState tracks the daily-completion streak. Freeze tokens refill to two
// at the start of each calendar month and at most two may be spent per month.
type StreakState struct {
	Count               int    `json:"count" db:"streak_count"`
	LastComplete        string `json:"lastComplete" db:"last_complete"` // YYYY-MM-DD, empty when never completed
	FreezeTokens        int    `json:"freezeTokens" db:"freeze_tokens"`
	UsedFreezeThisMonth int    `json:"usedFreezeThisMonth" db:"used_freeze_this_month"`
	Month               string `json:"month" db:"streak_month"` // YYYY-MM being tracked
}
