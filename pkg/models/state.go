package models

// GameState is the whole persisted state of the game: one learner, one blob.
// Progression is keyed by world ID, SRS entries by vocab item ID. Schedule
// entries survive world re-imports; entries whose items are gone are simply
// never selected again.
type GameState struct {
	Settings      Settings                  `json:"settings"`
	Economy       EconomyState              `json:"economy"`
	Streak        StreakState               `json:"streak"`
	Worlds        []World                   `json:"worlds"`
	ActiveWorldID string                    `json:"activeWorldId"`
	Progression   map[string]*WorldProgress `json:"progression"`
	SRS           map[string]*SchedEntry    `json:"srs"`
}

// WorldByID returns the world with the given ID, or nil.
func (s *GameState) WorldByID(id string) *World {
	for i := range s.Worlds {
		if s.Worlds[i].ID == id {
			return &s.Worlds[i]
		}
	}
	return nil
}
