package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/pinyinquest/pkg/models"
)

// DemoWorld builds the bundled starter lesson so the game is playable before
// any parent import.
func DemoWorld() models.World {
	return models.World{
		ID:           uuid.NewString(),
		Title:        "World 1 (Demo) - Haunted Corridor",
		WeekLabel:    "Demo Week",
		PhonicsFocus: []string{"zh", "ch", "sh", "r"},
		Vocab: []models.VocabItem{
			{ID: uuid.NewString(), Hanzi: "池塘", Pinyin: "chí táng", Meaning: "pond"},
			{ID: uuid.NewString(), Hanzi: "蜻蜓", Pinyin: "qīng tíng", Meaning: "dragonfly"},
			{ID: uuid.NewString(), Hanzi: "草坪", Pinyin: "cǎo píng", Meaning: "lawn"},
			{ID: uuid.NewString(), Hanzi: "荷叶", Pinyin: "hé yè", Meaning: "lotus leaf"},
			{ID: uuid.NewString(), Hanzi: "笑嘻嘻", Pinyin: "xiào xī xī", Meaning: "grinning"},
		},
		Characters: []models.CharacterPair{
			{Hanzi: "池", Pinyin: "chí"},
			{Hanzi: "塘", Pinyin: "táng"},
			{Hanzi: "蜻", Pinyin: "qīng"},
			{Hanzi: "蜓", Pinyin: "tíng"},
			{Hanzi: "坪", Pinyin: "píng"},
		},
		Patterns: models.Patterns{ABB: []string{"亮晶晶", "笑嘻嘻", "绿油油"}},
		GrammarPoints: []models.GrammarPoint{
			{Type: "simile", Example: "荷叶像我的摇篮。", Note: "像…一样 / 像… is a simile pattern."},
		},
		TextLines: []models.TextLine{
			{Hanzi: "荷叶圆圆的，绿绿的。", Pinyin: "hé yè yuán yuán de, lǜ lǜ de."},
			{Hanzi: "小水珠说：“荷叶是我的摇篮。”", Pinyin: "xiǎo shuǐ zhū shuō: “hé yè shì wǒ de yáo lán.”"},
			{Hanzi: "小蜻蜓说：“荷叶是我的停机坪。”", Pinyin: "xiǎo qīng tíng shuō: “hé yè shì wǒ de tíng jī píng.”"},
		},
	}
}

// DefaultState builds a fresh game state around the demo world. Used on first
// run and whenever the persisted state cannot be read.
func DefaultState(now time.Time) *models.GameState {
	demo := DemoWorld()
	return &models.GameState{
		Settings: models.DefaultSettings(),
		Economy:  models.EconomyState{Coins: 0, Keys: 0, Battery: 100},
		Streak: models.StreakState{
			FreezeTokens: monthlyFreezeTokens,
			Month:        now.Format(models.MonthLayout),
		},
		Worlds:        []models.World{demo},
		ActiveWorldID: demo.ID,
		Progression:   make(map[string]*models.WorldProgress),
		SRS:           make(map[string]*models.SchedEntry),
	}
}
