package models

// WorldProgress tracks the door-run state for one world. A completed room
// stays completed; the unlocked-room watermark only moves forward.
type WorldProgress struct {
	UnlockedRoom    int          `json:"unlockedRoom"`
	CompletedRooms  map[int]bool `json:"completedRooms"`
	BestTimeTrialMs *int64       `json:"bestTimeTrialMs"`
}

// NewWorldProgress returns the starting progress for a fresh world.
func NewWorldProgress() *WorldProgress {
	return &WorldProgress{
		UnlockedRoom:   1,
		CompletedRooms: make(map[int]bool),
	}
}

// CompletedCount returns how many rooms have been completed.
func (p *WorldProgress) CompletedCount() int {
	return len(p.CompletedRooms)
}
