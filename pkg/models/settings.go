package models

// Scare levels for the ambience. Cosmetic only.
const (
	ScareLow    = "low"
	ScareMedium = "medium"
)

// Settings holds the learner-facing preferences.
type Settings struct {
	ScareLevel string `json:"scareLevel" db:"scare_level"`
	ShowHanzi  bool   `json:"showHanzi" db:"show_hanzi"`
}

// DefaultSettings returns the pinyin-first defaults.
func DefaultSettings() Settings {
	return Settings{ScareLevel: ScareLow, ShowHanzi: false}
}
