package game

import (
	"github.com/example/pinyinquest/pkg/models"
)

// maxUnlockedRoom caps the watermark so a stray room number cannot blow up
// the display. Not a real limit on room count.
const maxUnlockedRoom = 9999

// EnsureProgress lazily creates the progress record for a world. Idempotent.
func EnsureProgress(progression map[string]*models.WorldProgress, worldID string) *models.WorldProgress {
	if p, ok := progression[worldID]; ok {
		return p
	}
	p := models.NewWorldProgress()
	progression[worldID] = p
	return p
}

// MarkRoomComplete marks a room completed and advances the unlocked-room
// watermark past it. Completion is monotonic; repeating a room reports
// firstTime=false but is otherwise a no-op.
func MarkRoomComplete(p *models.WorldProgress, roomNo int) (firstTime bool) {
	firstTime = !p.CompletedRooms[roomNo]
	p.CompletedRooms[roomNo] = true
	if roomNo >= p.UnlockedRoom {
		next := roomNo + 1
		if next > maxUnlockedRoom {
			next = maxUnlockedRoom
		}
		p.UnlockedRoom = next
	}
	return firstTime
}

// RecordTimeTrial stores a new personal best when the run improved on it.
func RecordTimeTrial(p *models.WorldProgress, elapsedMs int64) (improved bool) {
	if p.BestTimeTrialMs == nil || elapsedMs < *p.BestTimeTrialMs {
		p.BestTimeTrialMs = &elapsedMs
		return true
	}
	return false
}
