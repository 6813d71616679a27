package quiz

import (
	"fmt"
	"math/rand"

	"github.com/example/pinyinquest/pkg/models"
)

// PromptMode is the direction a vocab question asks in.
type PromptMode string

const (
	// PinyinToMeaning shows the pinyin and asks for the meaning
	PinyinToMeaning PromptMode = "p2m"
	// MeaningToPinyin shows the meaning (or hanzi) and asks for the pinyin
	MeaningToPinyin PromptMode = "m2p"
)

// Generator builds quiz questions from lesson content. All randomness comes
// from the injected source so tests can pin it.
type Generator struct {
	rng *rand.Rand
}

// New creates a quiz generator.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// VocabQuestion is a multiple-choice question over vocabulary items.
type VocabQuestion struct {
	Target  models.VocabItem
	Choices []models.VocabItem
	Mode    PromptMode
	Prompt  string
}

// Label returns the answer text shown for a choice under the question's mode.
func (q *VocabQuestion) Label(c models.VocabItem) string {
	if q.Mode == PinyinToMeaning {
		return c.Meaning
	}
	return c.Pinyin
}

// Vocab builds a question from the picked items: one is the target, all of
// them become choices. The prompt direction is chosen at random; with hanzi
// enabled the meaning-to-pinyin prompt shows the glyphs instead.
func (g *Generator) Vocab(items []models.VocabItem, showHanzi bool) (*VocabQuestion, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no vocabulary to quiz on")
	}

	target := items[g.rng.Intn(len(items))]
	choices := make([]models.VocabItem, len(items))
	copy(choices, items)
	g.shuffleVocab(choices)

	mode := PinyinToMeaning
	if g.rng.Intn(2) == 1 {
		mode = MeaningToPinyin
	}

	var prompt string
	if mode == PinyinToMeaning {
		prompt = fmt.Sprintf("What does “%s” mean?", target.Pinyin)
	} else {
		shown := target.Meaning
		if showHanzi {
			shown = target.Hanzi
		}
		prompt = fmt.Sprintf("Which pinyin matches “%s”?", shown)
	}

	return &VocabQuestion{Target: target, Choices: choices, Mode: mode, Prompt: prompt}, nil
}

// Syllable is one entry in the fixed sound-quest bank.
type Syllable struct {
	Pinyin string
	Family string
}

// soundBank is the built-in recognition set for the sound quest.
var soundBank = []Syllable{
	{"zhī", "zh"}, {"chī", "ch"}, {"shī", "sh"}, {"rì", "r"},
	{"zhǎo", "zh"}, {"chén", "ch"}, {"shǒu", "sh"}, {"rén", "r"},
}

// SoundQuestion asks which sound family a syllable belongs to.
type SoundQuestion struct {
	Syllable string
	Family   string
	Choices  []string
}

// Sound picks a syllable and builds up to four family choices from the
// world's phonics focus, always including the right one.
func (g *Generator) Sound(focus []string) *SoundQuestion {
	if len(focus) == 0 {
		focus = []string{"zh", "ch", "sh", "r"}
	}
	target := soundBank[g.rng.Intn(len(soundBank))]

	seen := map[string]bool{target.Family: true}
	choices := []string{target.Family}
	for _, f := range focus {
		if !seen[f] {
			seen[f] = true
			choices = append(choices, f)
		}
	}
	g.shuffleStrings(choices)
	if len(choices) > 4 {
		choices = choices[:4]
		// the target may have been cut; put it back somewhere
		if !containsString(choices, target.Family) {
			choices[g.rng.Intn(len(choices))] = target.Family
		}
	}

	return &SoundQuestion{Syllable: target.Pinyin, Family: target.Family, Choices: choices}
}

// PatternQuestion asks for the correct ABB-form word among distractors.
type PatternQuestion struct {
	Answer  string
	Choices []string
}

// Pattern picks an ABB word and surrounds it with reshuffled fakes.
func (g *Generator) Pattern(abb []string) *PatternQuestion {
	if len(abb) == 0 {
		abb = []string{"亮晶晶", "笑嘻嘻", "绿油油"}
	}
	answer := abb[g.rng.Intn(len(abb))]

	choices := append([]string{answer}, PatternDistractors(answer)...)
	if len(choices) > 4 {
		choices = choices[:4]
	}
	g.shuffleStrings(choices)

	return &PatternQuestion{Answer: answer, Choices: choices}
}

// PatternDistractors builds plausible wrong forms of an ABB word by
// rearranging its characters (ABA, AAB, ACC).
func PatternDistractors(word string) []string {
	chars := []rune(word)
	if len(chars) < 3 {
		return nil
	}
	a, b, c := string(chars[0]), string(chars[1]), string(chars[2])
	candidates := []string{a + b + a, a + a + b, a + c + c}

	var out []string
	for _, cand := range candidates {
		if cand != word {
			out = append(out, cand)
		}
	}
	return out
}

// TimeTrialQuestion is one round of the time trial: a target and a pool of
// four choices that always contains it.
type TimeTrialQuestion struct {
	Target models.VocabItem
	Pool   []models.VocabItem
}

// TimeTrial builds count questions from the picked items.
func (g *Generator) TimeTrial(items []models.VocabItem, count int) []TimeTrialQuestion {
	if len(items) == 0 {
		return nil
	}
	questions := make([]TimeTrialQuestion, 0, count)
	for i := 0; i < count; i++ {
		target := items[g.rng.Intn(len(items))]

		pool := make([]models.VocabItem, len(items))
		copy(pool, items)
		g.shuffleVocab(pool)
		if len(pool) > 4 {
			pool = pool[:4]
		}
		if !containsItem(pool, target.ID) {
			pool[0] = target
			g.shuffleVocab(pool)
		}
		questions = append(questions, TimeTrialQuestion{Target: target, Pool: pool})
	}
	return questions
}

func (g *Generator) shuffleVocab(items []models.VocabItem) {
	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func (g *Generator) shuffleStrings(items []string) {
	g.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsItem(list []models.VocabItem, id string) bool {
	for _, v := range list {
		if v.ID == id {
			return true
		}
	}
	return false
}
