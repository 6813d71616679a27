package game

import (
	"time"

	"github.com/example/pinyinquest/pkg/models"
)

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

// daysBetween returns the whole-day gap between two YYYY-MM-DD dates.
// Unparseable input counts as a zero gap, which downstream treats as a no-op.
func daysBetween(from, to string) int {
	a, err := time.Parse(models.DateLayout, from)
	if err != nil {
		return 0
	}
	b, err := time.Parse(models.DateLayout, to)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

func clampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
