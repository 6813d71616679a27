package models

// DateLayout is the calendar-date format used for all scheduling dates.
// The engine works in whole days, never timestamps.
const DateLayout = "2006-01-02"

// SchedEntry tracks the review schedule for a single vocab item. Entries are
// created lazily on the first answer and never deleted.
type SchedEntry struct {
	Interval int     `json:"interval" db:"interval"` // days until next review, 1..60
	Ease     float64 `json:"ease" db:"ease"`         // growth multiplier, 1.3..3.0
	Due      string  `json:"due" db:"due"`           // next review date, YYYY-MM-DD
}
