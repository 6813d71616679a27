package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Number of questions asked in a regular quest room
	QuestionsPerRoom int
	// Number of questions asked in a boss room
	BossQuestions int
	// Number of questions in a time-trial run
	TimeTrialQuestions int
	// How many doors the map shows at once
	DoorWindow int
	// Doors per keyboard row
	DoorsPerRow int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		QuestionsPerRoom:   3,
		BossQuestions:      5,
		TimeTrialQuestions: 3,
		DoorWindow:         10,
		DoorsPerRow:        5,
	}
}
