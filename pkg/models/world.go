package models

// VocabItem represents one vocabulary word in a world. Items are immutable
// once imported and belong to exactly one world.
type VocabItem struct {
	ID      string `json:"id,omitempty" db:"id"`
	Hanzi   string `json:"hanzi" db:"hanzi"`
	Pinyin  string `json:"pinyin" db:"pinyin"`
	Meaning string `json:"meaning" db:"meaning"`
}

// CharacterPair is a single character glyph with its reading.
type CharacterPair struct {
	Hanzi  string `json:"hanzi"`
	Pinyin string `json:"pinyin"`
}

// GrammarPoint is a short note about a grammar pattern in the lesson text.
type GrammarPoint struct {
	Type    string `json:"type"`
	Example string `json:"example"`
	Note    string `json:"note"`
}

// TextLine is one line of the lesson's reading text.
type TextLine struct {
	Hanzi  string `json:"hanzi"`
	Pinyin string `json:"pinyin"`
}

// Patterns holds the word-pattern lists for a lesson.
type Patterns struct {
	ABB []string `json:"abb"`
}

// World represents one imported lesson packet with its own vocabulary, text
// and door-run progression. Re-importing a world with the same ID replaces
// its content wholesale.
type World struct {
	ID            string          `json:"id,omitempty"`
	Title         string          `json:"title"`
	WeekLabel     string          `json:"weekLabel"`
	PhonicsFocus  []string        `json:"phonicsFocus"`
	Vocab         []VocabItem     `json:"vocab"`
	Characters    []CharacterPair `json:"characters"`
	Patterns      Patterns        `json:"patterns"`
	GrammarPoints []GrammarPoint  `json:"grammarPoints"`
	TextLines     []TextLine      `json:"textLines"`
}
