package game

import (
	"github.com/example/pinyinquest/pkg/models"
)

const (
	dailyBaseCoins   = 12
	dailyStreakCap   = 24
	dailyKeys        = 1
	dailyBattery     = 10
	roomBaseCoins    = 8
	bossBonusCoins   = 6
	secretBonusCoins = 10
	soundCoins       = 2
	milestoneCoins   = 50
	milestoneKeys    = 2
)

// streakMilestones are the streak counts that pay a one-shot bonus.
var streakMilestones = map[int]bool{3: true, 7: true, 14: true, 30: true, 60: true}

// DailyReward describes what the first completion of the day granted.
type DailyReward struct {
	Coins   int
	Keys    int
	Battery int
}

// GrantDailyReward pays the once-per-day prize. Coins scale mildly with the
// streak; the battery refill clamps at 100.
func GrantDailyReward(eco *models.EconomyState, streakCount int) DailyReward {
	coins := dailyBaseCoins + clampInt(streakCount/3*3, 0, dailyStreakCap)
	eco.Coins += coins
	eco.Battery = clampInt(eco.Battery+dailyBattery, 0, 100)
	eco.Keys += dailyKeys
	return DailyReward{Coins: coins, Keys: dailyKeys, Battery: dailyBattery}
}

// GrantMilestone pays the streak-milestone bonus when the count is exactly at
// a milestone. Calling it twice for the same count re-grants, so the
// orchestrator invokes it at most once per qualifying completion.
func GrantMilestone(eco *models.EconomyState, streakCount int) bool {
	if !streakMilestones[streakCount] {
		return false
	}
	eco.Coins += milestoneCoins
	eco.Keys += milestoneKeys
	return true
}

// GrantRoomCompletion pays the base room reward plus the boss or secret bonus.
func GrantRoomCompletion(eco *models.EconomyState, roomType RoomType) int {
	coins := roomBaseCoins
	if roomType == RoomBoss {
		coins += bossBonusCoins
	}
	if roomType == RoomSecret {
		coins += secretBonusCoins
	}
	eco.Coins += coins
	return coins
}

// GrantSoundCorrect pays the small encouragement for a correct sound-family
// pick. Independent of room completion.
func GrantSoundCorrect(eco *models.EconomyState) int {
	eco.Coins += soundCoins
	return soundCoins
}

// GrantTimeTrial pays the time-trial reward: flat base, per-answer bonus and
// an extra when the personal best improved.
func GrantTimeTrial(eco *models.EconomyState, correctCount int, improvedBest bool) int {
	coins := 10 + correctCount*5
	if improvedBest {
		coins += 10
	}
	eco.Coins += coins
	return coins
}

// SpendKey consumes one key, flooring at zero. Entry is never blocked here;
// the presentation layer pre-checks and refuses when no key is available.
func SpendKey(eco *models.EconomyState) {
	if eco.Keys > 0 {
		eco.Keys--
	}
}
