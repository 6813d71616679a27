package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/example/pinyinquest/pkg/models"
)

// ErrEmptyImport means the pasted content contained nothing usable.
var ErrEmptyImport = errors.New("nothing to import")

// ParseJSON validates and decodes a pasted lesson packet. A payload that
// fails schema validation is rejected whole, so a bad paste never reaches
// the stored worlds.
func ParseJSON(data []byte) (models.World, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(worldSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return models.World{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return models.World{}, fmt.Errorf("lesson JSON rejected: %s", strings.Join(msgs, "; "))
	}

	var world models.World
	if err := json.Unmarshal(data, &world); err != nil {
		return models.World{}, fmt.Errorf("failed to decode lesson JSON: %w", err)
	}
	return Normalize(world), nil
}

// FromBlocks builds a world from the quick-paste text blocks. Vocab lines are
// "hanzi | pinyin | meaning", text lines are "pinyin | hanzi" with hanzi
// optional. Both blocks empty is an error.
func FromBlocks(title, weekLabel, vocabBlock, textBlock string) (models.World, error) {
	vocab := ParseVocabBlock(vocabBlock)
	lines := ParseTextBlock(textBlock)
	if len(vocab) == 0 && len(lines) == 0 {
		return models.World{}, ErrEmptyImport
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "New World"
	}
	weekLabel = strings.TrimSpace(weekLabel)
	if weekLabel == "" {
		weekLabel = "Week"
	}

	return Normalize(models.World{
		Title:        title,
		WeekLabel:    weekLabel,
		Vocab:        vocab,
		TextLines:    lines,
		PhonicsFocus: []string{"zh", "ch", "sh", "r"},
	}), nil
}

// ParseVocabBlock parses "hanzi | pinyin | meaning" lines. Lines with fewer
// than two fields are dropped.
func ParseVocabBlock(block string) []models.VocabItem {
	var out []models.VocabItem
	for _, line := range splitLines(block) {
		parts := splitFields(line)
		if len(parts) < 2 {
			continue
		}
		item := models.VocabItem{
			ID:     uuid.NewString(),
			Hanzi:  parts[0],
			Pinyin: parts[1],
		}
		if len(parts) > 2 {
			item.Meaning = parts[2]
		}
		out = append(out, item)
	}
	return out
}

// ParseTextBlock parses "pinyin | hanzi" lines; hanzi is optional.
func ParseTextBlock(block string) []models.TextLine {
	var out []models.TextLine
	for _, line := range splitLines(block) {
		parts := splitFields(line)
		tl := models.TextLine{Pinyin: parts[0]}
		if len(parts) > 1 {
			tl.Hanzi = parts[1]
		}
		out = append(out, tl)
	}
	return out
}

// Normalize fills in the pieces an imported world may be missing: every world
// and vocab item gets an id, title and week label get defaults, and grammar
// points get a "note" type. Imported content is otherwise kept as-is.
func Normalize(w models.World) models.World {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Title == "" {
		w.Title = "World"
	}
	if w.WeekLabel == "" {
		w.WeekLabel = "Week"
	}
	for i := range w.Vocab {
		if w.Vocab[i].ID == "" {
			w.Vocab[i].ID = uuid.NewString()
		}
	}
	for i := range w.GrammarPoints {
		if w.GrammarPoints[i].Type == "" {
			w.GrammarPoints[i].Type = "note"
		}
	}
	return w
}

// Template returns a filled-in example of the lesson JSON format, shown on
// the parent-mode import screen.
func Template() string {
	example := models.World{
		Title:        "World 2 - Haunted School",
		WeekLabel:    "Week 2",
		PhonicsFocus: []string{"zh", "ch", "sh", "r"},
		Vocab: []models.VocabItem{
			{Hanzi: "池塘", Pinyin: "chí táng", Meaning: "pond"},
			{Hanzi: "蜻蜓", Pinyin: "qīng tíng", Meaning: "dragonfly"},
		},
		TextLines: []models.TextLine{
			{Pinyin: "hé yè yuán yuán de", Hanzi: "荷叶圆圆的"},
			{Pinyin: "xiǎo shuǐ zhū shuō", Hanzi: "小水珠说"},
		},
		Characters: []models.CharacterPair{
			{Hanzi: "池", Pinyin: "chí"},
			{Hanzi: "塘", Pinyin: "táng"},
		},
		Patterns: models.Patterns{ABB: []string{"亮晶晶", "笑嘻嘻", "绿油油"}},
		GrammarPoints: []models.GrammarPoint{
			{Type: "simile", Example: "荷叶像我的摇篮。", Note: "像… marks a simile."},
		},
	}
	data, _ := json.MarshalIndent(example, "", "  ")
	return string(data)
}

func splitLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitFields(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
