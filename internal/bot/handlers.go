package bot

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/pinyinquest/internal/game"
	"github.com/example/pinyinquest/internal/importer"
	"github.com/example/pinyinquest/pkg/models"
)

// handleStart greets the learner and shows the corridor
func (b *Bot) handleStart(chatID int64) {
	welcomeText := `Welcome to Pinyin Quest! 👻🏮

Clear one haunted room a day to keep your streak alive.

Available commands:
/map - Show the corridor of doors
/trial - Run the time trial
/stats - Show your progress
/worlds - Switch or manage lesson worlds
/import - Import a new lesson (parent mode)
/settings - Configure preferences`

	b.sendWithKeyboard(chatID, welcomeText, [][]MenuButton{
		{{Text: "🚪 Open the map", CallbackData: "map"}},
	})
}

// showMap renders the door grid with lock, boss and secret markers
func (b *Bot) showMap(chatID int64) {
	world := b.session.ActiveWorld()
	if world == nil {
		b.send(chatID, "No world available. Use /import to add a lesson.")
		return
	}
	prog := b.session.Progress(world.ID)
	eco := b.session.State.Economy
	streak := b.session.State.Streak

	var sb strings.Builder
	fmt.Fprintf(&sb, "🏮 %s (%s)\n", world.Title, world.WeekLabel)
	fmt.Fprintf(&sb, "🪙 %d   🗝 %d   🔋 %d%%\n", eco.Coins, eco.Keys, eco.Battery)
	fmt.Fprintf(&sb, "🔥 Streak: %d day(s), ❄️ freezes: %d\n", streak.Count, streak.FreezeTokens)
	if due := b.session.DueCount(); due > 0 {
		fmt.Fprintf(&sb, "📚 %d word(s) due for review\n", due)
	}
	if b.session.StreakAtRisk() {
		sb.WriteString("⚠️ Clear a room today to keep the streak!\n")
	}
	sb.WriteString("\nPick a door:")

	b.sendWithKeyboard(chatID, sb.String(), b.mapButtons(prog))
}

func (b *Bot) mapButtons(prog *models.WorldProgress) [][]MenuButton {
	start := prog.UnlockedRoom - b.config.DoorWindow + b.config.DoorsPerRow
	if start < 1 {
		start = 1
	}
	end := start + b.config.DoorWindow - 1
	if end > game.RoomsPerWorld {
		end = game.RoomsPerWorld
		start = end - b.config.DoorWindow + 1
		if start < 1 {
			start = 1
		}
	}

	var buttons [][]MenuButton
	var row []MenuButton
	for n := start; n <= end; n++ {
		row = append(row, MenuButton{
			Text:         doorLabel(n, prog),
			CallbackData: fmt.Sprintf("door:%d", n),
		})
		if len(row) == b.config.DoorsPerRow {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	buttons = append(buttons, []MenuButton{
		{Text: "⏱ Time Trial", CallbackData: "trial"},
	})
	buttons = append(buttons, []MenuButton{
		{Text: "📊 Stats", CallbackData: "stats"},
		{Text: "🌍 Worlds", CallbackData: "worlds"},
		{Text: "⚙️ Settings", CallbackData: "settings"},
	})
	return buttons
}

// doorLabel picks the marker shown on one door of the grid
func doorLabel(roomNo int, prog *models.WorldProgress) string {
	if prog.CompletedRooms[roomNo] {
		return fmt.Sprintf("✅%d", roomNo)
	}
	if roomNo > prog.UnlockedRoom {
		return fmt.Sprintf("🔒%d", roomNo)
	}
	switch game.Classify(roomNo) {
	case game.RoomSecret:
		return fmt.Sprintf("🗝%d", roomNo)
	case game.RoomBoss:
		return fmt.Sprintf("👹%d", roomNo)
	default:
		return fmt.Sprintf("🚪%d", roomNo)
	}
}

// handleCallback routes inline keyboard presses
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch {
	case data == "map":
		b.answerCallback(callback.ID, "")
		b.showMap(chatID)
	case data == "stats":
		b.answerCallback(callback.ID, "")
		b.showStats(chatID)
	case data == "settings":
		b.answerCallback(callback.ID, "")
		b.showSettings(chatID)
	case data == "worlds":
		b.answerCallback(callback.ID, "")
		b.showWorlds(chatID)
	case data == "import":
		b.answerCallback(callback.ID, "")
		b.showImportMenu(chatID)
	case data == "trial":
		b.answerCallback(callback.ID, "")
		b.startTimeTrial(chatID)
	case strings.HasPrefix(data, "door:"):
		b.handleDoor(callback, strings.TrimPrefix(data, "door:"))
	case strings.HasPrefix(data, "a:"):
		b.handleVocabAnswer(callback, strings.TrimPrefix(data, "a:"))
	case strings.HasPrefix(data, "s:"):
		b.handleSoundAnswer(callback, strings.TrimPrefix(data, "s:"))
	case strings.HasPrefix(data, "p:"):
		b.handlePatternAnswer(callback, strings.TrimPrefix(data, "p:"))
	case data == "read_done":
		b.handleReadDone(callback)
	case data == "collect":
		b.handleCollect(callback)
	case strings.HasPrefix(data, "tt:"):
		b.handleTrialAnswer(callback, strings.TrimPrefix(data, "tt:"))
	case strings.HasPrefix(data, "world:"):
		b.handleWorldSwitch(callback, strings.TrimPrefix(data, "world:"))
	case strings.HasPrefix(data, "world_del:"):
		b.handleWorldDeleteAsk(callback, strings.TrimPrefix(data, "world_del:"))
	case strings.HasPrefix(data, "world_delc:"):
		b.handleWorldDelete(callback, strings.TrimPrefix(data, "world_delc:"))
	case data == "set_hanzi":
		b.handleToggleHanzi(callback)
	case data == "set_scare":
		b.handleToggleScare(callback)
	case data == "imp_json":
		b.answerCallback(callback.ID, "")
		b.userStates[chatID] = UserState{State: "waiting_for_json", Timestamp: time.Now()}
		b.send(chatID, "Paste the lesson JSON. Use the template from the import menu as a starting point. /cancel to abort.")
	case data == "imp_blocks":
		b.answerCallback(callback.ID, "")
		b.userStates[chatID] = UserState{State: "waiting_for_vocab_block", Timestamp: time.Now(), Data: make(map[string]string)}
		b.send(chatID, "Send the vocab block, one word per line:\n\n池塘 | chí táng | pond\n蜻蜓 | qīng tíng | dragonfly\n\n/cancel to abort.")
	case data == "imp_template":
		b.answerCallback(callback.ID, "")
		msg := tgbotapi.NewMessage(chatID, "```json\n"+importer.Template()+"\n```")
		msg.ParseMode = "Markdown"
		if _, err := b.api.Send(msg); err != nil {
			log.Printf("Error sending template: %v", err)
		}
	default:
		b.answerCallback(callback.ID, "")
	}
}

// handleDoor starts a room run behind the pressed door
func (b *Bot) handleDoor(callback *tgbotapi.CallbackQuery, arg string) {
	chatID := callback.Message.Chat.ID
	roomNo, err := strconv.Atoi(arg)
	if err != nil {
		b.answerCallback(callback.ID, "")
		return
	}

	world := b.session.ActiveWorld()
	if world == nil {
		b.answerCallback(callback.ID, "No world loaded")
		return
	}

	if err := b.session.EnterRoom(world.ID, roomNo); err != nil {
		switch {
		case errors.Is(err, game.ErrRoomLocked):
			b.answerCallback(callback.ID, "🔒 That door is still locked. Clear the corridor up to it first!")
		case errors.Is(err, game.ErrNeedKey):
			b.answerCallback(callback.ID, "🗝 The secret room needs a key. Earn one from the daily chest!")
		default:
			b.answerCallback(callback.ID, "The door won't budge.")
		}
		return
	}
	b.answerCallback(callback.ID, "")

	roomType := game.Classify(roomNo)
	rs := &roomSession{
		WorldID:   world.ID,
		RoomNo:    roomNo,
		RoomType:  roomType,
		Remaining: b.config.QuestionsPerRoom,
	}
	if roomType == game.RoomBoss {
		rs.Remaining = b.config.BossQuestions
	}
	if roomType == game.RoomSecret {
		rs.Remaining = 1
	}
	b.roomSessions[chatID] = rs

	b.send(chatID, fmt.Sprintf("Room %d — %s", roomNo, game.Describe(roomNo, world)))
	b.askNext(chatID, rs)
}

// askNext sends the next prompt of the current room, or wraps the room up
func (b *Bot) askNext(chatID int64, rs *roomSession) {
	world := b.session.ActiveWorld()
	if world == nil {
		delete(b.roomSessions, chatID)
		return
	}

	switch rs.RoomType {
	case game.RoomVocab, game.RoomBoss:
		if rs.Remaining <= 0 {
			b.finishRoom(chatID, rs)
			return
		}
		items := b.session.PickDueVocab(4)
		q, err := b.quizzes.Vocab(items, b.session.State.Settings.ShowHanzi)
		if err != nil {
			// a world with no vocabulary still completes the room
			b.finishRoom(chatID, rs)
			return
		}
		rs.vocabQ = q
		var buttons [][]MenuButton
		for i, c := range q.Choices {
			buttons = append(buttons, []MenuButton{
				{Text: q.Label(c), CallbackData: fmt.Sprintf("a:%d", i)},
			})
		}
		b.sendWithKeyboard(chatID, q.Prompt, buttons)

	case game.RoomSound:
		if rs.Remaining <= 0 {
			b.finishRoom(chatID, rs)
			return
		}
		q := b.quizzes.Sound(world.PhonicsFocus)
		rs.soundQ = q
		var row []MenuButton
		for i, c := range q.Choices {
			row = append(row, MenuButton{Text: c, CallbackData: fmt.Sprintf("s:%d", i)})
		}
		b.sendWithKeyboard(chatID, fmt.Sprintf("Which sound starts “%s”?", q.Syllable), [][]MenuButton{row})

	case game.RoomPattern:
		if rs.Remaining <= 0 {
			b.finishRoom(chatID, rs)
			return
		}
		q := b.quizzes.Pattern(world.Patterns.ABB)
		rs.patternQ = q
		var row []MenuButton
		for i, c := range q.Choices {
			row = append(row, MenuButton{Text: c, CallbackData: fmt.Sprintf("p:%d", i)})
		}
		b.sendWithKeyboard(chatID, "Which one is the real ABB word?", [][]MenuButton{row})

	case game.RoomReading:
		var sb strings.Builder
		sb.WriteString("Read these lines out loud:\n\n")
		for _, line := range world.TextLines {
			sb.WriteString(line.Pinyin)
			if b.session.State.Settings.ShowHanzi && line.Hanzi != "" {
				sb.WriteString("  (" + line.Hanzi + ")")
			}
			sb.WriteString("\n")
		}
		if len(world.TextLines) == 0 {
			sb.WriteString("(no text this week — say this week's vocab instead)\n")
		}
		b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
			{{Text: "✅ I read it!", CallbackData: "read_done"}},
		})

	case game.RoomSecret:
		// the chest ghost asks one review question before giving up the loot
		if rs.Remaining > 0 {
			items := b.session.PickDueVocab(4)
			if q, err := b.quizzes.Vocab(items, b.session.State.Settings.ShowHanzi); err == nil {
				rs.vocabQ = q
				var buttons [][]MenuButton
				for i, c := range q.Choices {
					buttons = append(buttons, []MenuButton{
						{Text: q.Label(c), CallbackData: fmt.Sprintf("a:%d", i)},
					})
				}
				b.sendWithKeyboard(chatID, "👻 A ghost guards the chest! "+q.Prompt, buttons)
				return
			}
			rs.Remaining = 0
		}
		b.sendWithKeyboard(chatID, "🗝 The key turns... something glitters inside!", [][]MenuButton{
			{{Text: "💰 Grab the loot", CallbackData: "collect"}},
		})
	}
}

// handleVocabAnswer marks a vocab / boss answer and moves on
func (b *Bot) handleVocabAnswer(callback *tgbotapi.CallbackQuery, arg string) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.vocabQ == nil {
		b.answerCallback(callback.ID, "No room in progress")
		return
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(rs.vocabQ.Choices) {
		b.answerCallback(callback.ID, "")
		return
	}

	q := rs.vocabQ
	if markVocabAnswer(b.session, rs, idx) {
		b.answerCallback(callback.ID, "✅ Correct!")
	} else {
		b.answerCallback(callback.ID, fmt.Sprintf("❌ It was “%s”", q.Label(q.Target)))
	}
	b.askNext(chatID, rs)
}

// markVocabAnswer feeds one vocab pick into the review schedule and
// advances the room run.
func markVocabAnswer(session *game.Session, rs *roomSession, idx int) bool {
	q := rs.vocabQ
	rs.vocabQ = nil
	correct := q.Choices[idx].ID == q.Target.ID
	session.RecordAnswer(q.Target.ID, correct)
	if correct {
		rs.Correct++
	}
	rs.Remaining--
	return correct
}

// handleSoundAnswer marks a sound-quest answer
func (b *Bot) handleSoundAnswer(callback *tgbotapi.CallbackQuery, arg string) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.soundQ == nil {
		b.answerCallback(callback.ID, "No room in progress")
		return
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(rs.soundQ.Choices) {
		b.answerCallback(callback.ID, "")
		return
	}

	q := rs.soundQ
	rs.soundQ = nil
	correct := q.Choices[idx] == q.Family
	coins := b.session.RecordSoundAnswer(correct)

	if correct {
		rs.Correct++
		b.answerCallback(callback.ID, fmt.Sprintf("✅ +%d coins", coins))
	} else {
		b.answerCallback(callback.ID, fmt.Sprintf("❌ It was “%s”", q.Family))
	}

	rs.Remaining--
	b.askNext(chatID, rs)
}

// handlePatternAnswer marks a pattern-quest answer
func (b *Bot) handlePatternAnswer(callback *tgbotapi.CallbackQuery, arg string) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.patternQ == nil {
		b.answerCallback(callback.ID, "No room in progress")
		return
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(rs.patternQ.Choices) {
		b.answerCallback(callback.ID, "")
		return
	}

	q := rs.patternQ
	rs.patternQ = nil
	if q.Choices[idx] == q.Answer {
		rs.Correct++
		b.answerCallback(callback.ID, "✅ Correct!")
	} else {
		b.answerCallback(callback.ID, fmt.Sprintf("❌ It was “%s”", q.Answer))
	}

	rs.Remaining--
	b.askNext(chatID, rs)
}

// handleReadDone finishes a reading room
func (b *Bot) handleReadDone(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.RoomType != game.RoomReading {
		b.answerCallback(callback.ID, "No room in progress")
		return
	}
	b.answerCallback(callback.ID, "")
	b.finishRoom(chatID, rs)
}

// handleCollect finishes a secret room
func (b *Bot) handleCollect(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.RoomType != game.RoomSecret {
		b.answerCallback(callback.ID, "No room in progress")
		return
	}
	b.answerCallback(callback.ID, "")
	b.finishRoom(chatID, rs)
}

// finishRoom completes the run and announces everything it granted
func (b *Bot) finishRoom(chatID int64, rs *roomSession) {
	delete(b.roomSessions, chatID)
	result := b.session.CompleteRoom(rs.WorldID, rs.RoomNo)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎉 Room %d cleared! +%d coins\n", rs.RoomNo, result.RoomCoins)
	if result.Qualified {
		fmt.Fprintf(&sb, "📅 Daily chest: +%d coins, +%d key, +%d%% battery\n",
			result.Daily.Coins, result.Daily.Keys, result.Daily.Battery)
		fmt.Fprintf(&sb, "🔥 Streak: %d day(s)\n", result.StreakCount)
	}
	if result.FreezeUsed {
		sb.WriteString("❄️ A freeze token saved your streak!\n")
	}
	if result.Milestone {
		sb.WriteString("🏆 Streak milestone! +50 coins, +2 keys\n")
	}

	b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "🚪 Back to the map", CallbackData: "map"}},
	})
}

// startTimeTrial begins a timed run over the active world's vocabulary
func (b *Bot) startTimeTrial(chatID int64) {
	world := b.session.ActiveWorld()
	if world == nil || len(world.Vocab) == 0 {
		b.send(chatID, "No vocabulary to race through. Import a lesson first.")
		return
	}

	pool := b.session.PickDueVocab(6)
	questions := b.quizzes.TimeTrial(pool, b.config.TimeTrialQuestions)
	rs := &roomSession{
		WorldID:   world.ID,
		RoomNo:    game.TimeTrialRoom,
		trial:     questions,
		startedAt: time.Now(),
	}
	b.roomSessions[chatID] = rs

	b.send(chatID, fmt.Sprintf("⏱ Time trial! %d questions, go go go!", len(questions)))
	b.askTrial(chatID, rs)
}

// askTrial sends the next trial question or closes out the run
func (b *Bot) askTrial(chatID int64, rs *roomSession) {
	if rs.trialIdx >= len(rs.trial) {
		b.finishTrial(chatID, rs)
		return
	}

	q := rs.trial[rs.trialIdx]
	var buttons [][]MenuButton
	for i, c := range q.Pool {
		buttons = append(buttons, []MenuButton{
			{Text: c.Pinyin, CallbackData: fmt.Sprintf("tt:%d", i)},
		})
	}
	b.sendWithKeyboard(chatID, fmt.Sprintf("Quick! Which pinyin means “%s”?", q.Target.Meaning), buttons)
}

// handleTrialAnswer marks one trial answer
func (b *Bot) handleTrialAnswer(callback *tgbotapi.CallbackQuery, arg string) {
	chatID := callback.Message.Chat.ID
	rs := b.roomSessions[chatID]
	if rs == nil || rs.RoomNo != game.TimeTrialRoom || rs.trialIdx >= len(rs.trial) {
		b.answerCallback(callback.ID, "No trial in progress")
		return
	}
	idx, err := strconv.Atoi(arg)
	q := rs.trial[rs.trialIdx]
	if err != nil || idx < 0 || idx >= len(q.Pool) {
		b.answerCallback(callback.ID, "")
		return
	}

	if markTrialAnswer(b.session, rs, idx) {
		b.answerCallback(callback.ID, "✅")
	} else {
		b.answerCallback(callback.ID, "❌ "+q.Target.Pinyin)
	}
	b.askTrial(chatID, rs)
}

// markTrialAnswer grades one trial pick. Trial answers feed the review
// schedule like any other quiz answer.
func markTrialAnswer(session *game.Session, rs *roomSession, idx int) bool {
	q := rs.trial[rs.trialIdx]
	correct := q.Pool[idx].ID == q.Target.ID
	session.RecordAnswer(q.Target.ID, correct)
	if correct {
		rs.Correct++
	}
	rs.trialIdx++
	return correct
}

// finishTrial records the run and announces the result
func (b *Bot) finishTrial(chatID int64, rs *roomSession) {
	delete(b.roomSessions, chatID)
	elapsed := time.Since(rs.startedAt).Milliseconds()
	result := b.session.FinishTimeTrial(rs.WorldID, rs.Correct, elapsed)

	var sb strings.Builder
	fmt.Fprintf(&sb, "⏱ %0.1fs, %d/%d correct. +%d coins\n",
		float64(result.ElapsedMs)/1000, result.CorrectCount, len(rs.trial), result.Coins)
	if result.Improved {
		sb.WriteString("🏅 New personal best!\n")
	}
	b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "🚪 Back to the map", CallbackData: "map"}},
	})
}

// showStats renders the progress overview
func (b *Bot) showStats(chatID int64) {
	state := b.session.State
	var sb strings.Builder

	fmt.Fprintf(&sb, "🪙 Coins: %d\n🗝 Keys: %d\n🔋 Battery: %d%%\n\n",
		state.Economy.Coins, state.Economy.Keys, state.Economy.Battery)
	fmt.Fprintf(&sb, "🔥 Streak: %d day(s)\n❄️ Freeze tokens: %d (used %d this month)\n\n",
		state.Streak.Count, state.Streak.FreezeTokens, state.Streak.UsedFreezeThisMonth)
	fmt.Fprintf(&sb, "📚 Due for review: %d\n\n", b.session.DueCount())

	for i := range state.Worlds {
		w := &state.Worlds[i]
		prog := b.session.Progress(w.ID)
		marker := "  "
		if w.ID == state.ActiveWorldID {
			marker = "▶ "
		}
		fmt.Fprintf(&sb, "%s%s: %d/%d rooms, frontier %d",
			marker, w.Title, len(prog.CompletedRooms), game.RoomsPerWorld, prog.UnlockedRoom)
		if prog.BestTimeTrialMs != nil {
			fmt.Fprintf(&sb, ", best trial %0.1fs", float64(*prog.BestTimeTrialMs)/1000)
		}
		sb.WriteString("\n")
	}

	if world := b.session.ActiveWorld(); world != nil {
		sb.WriteString("\nWord schedule:\n")
		for _, v := range world.Vocab {
			entry := state.SRS[v.ID]
			if entry == nil {
				fmt.Fprintf(&sb, "  %s — new\n", v.Pinyin)
				continue
			}
			fmt.Fprintf(&sb, "  %s — every %dd, next %s\n", v.Pinyin, entry.Interval, entry.Due)
		}
	}

	b.sendWithKeyboard(chatID, sb.String(), [][]MenuButton{
		{{Text: "🚪 Back to the map", CallbackData: "map"}},
	})
}

// showSettings renders the preference toggles
func (b *Bot) showSettings(chatID int64) {
	settings := b.session.State.Settings

	hanziLabel := "🈶 Hanzi: off"
	if settings.ShowHanzi {
		hanziLabel = "🈶 Hanzi: on"
	}
	scareLabel := "👻 Spooky level: " + settings.ScareLevel

	b.sendWithKeyboard(chatID, "Settings:", [][]MenuButton{
		{{Text: hanziLabel, CallbackData: "set_hanzi"}},
		{{Text: scareLabel, CallbackData: "set_scare"}},
		{{Text: "🚪 Back to the map", CallbackData: "map"}},
	})
}

func (b *Bot) handleToggleHanzi(callback *tgbotapi.CallbackQuery) {
	settings := b.session.State.Settings
	settings.ShowHanzi = !settings.ShowHanzi
	b.session.UpdateSettings(settings)
	b.answerCallback(callback.ID, "Saved")
	b.showSettings(callback.Message.Chat.ID)
}

func (b *Bot) handleToggleScare(callback *tgbotapi.CallbackQuery) {
	settings := b.session.State.Settings
	if settings.ScareLevel == models.ScareLow {
		settings.ScareLevel = models.ScareMedium
	} else {
		settings.ScareLevel = models.ScareLow
	}
	b.session.UpdateSettings(settings)
	b.answerCallback(callback.ID, "Saved")
	b.showSettings(callback.Message.Chat.ID)
}

// showWorlds lists all lesson worlds with switch and delete controls
func (b *Bot) showWorlds(chatID int64) {
	state := b.session.State

	var buttons [][]MenuButton
	for i := range state.Worlds {
		w := &state.Worlds[i]
		label := w.Title
		if w.ID == state.ActiveWorldID {
			label = "▶ " + label
		}
		buttons = append(buttons, []MenuButton{
			{Text: label, CallbackData: "world:" + w.ID},
			{Text: "🗑", CallbackData: "world_del:" + w.ID},
		})
	}
	buttons = append(buttons, []MenuButton{
		{Text: "📥 Import a new lesson", CallbackData: "import"},
	})
	buttons = append(buttons, []MenuButton{
		{Text: "🚪 Back to the map", CallbackData: "map"},
	})

	b.sendWithKeyboard(chatID, "Your worlds:", buttons)
}

func (b *Bot) handleWorldSwitch(callback *tgbotapi.CallbackQuery, worldID string) {
	if err := b.session.SetActiveWorld(worldID); err != nil {
		b.answerCallback(callback.ID, "That world is gone")
		return
	}
	b.answerCallback(callback.ID, "Switched")
	b.showMap(callback.Message.Chat.ID)
}

func (b *Bot) handleWorldDeleteAsk(callback *tgbotapi.CallbackQuery, worldID string) {
	world := b.session.State.WorldByID(worldID)
	if world == nil {
		b.answerCallback(callback.ID, "That world is gone")
		return
	}
	b.answerCallback(callback.ID, "")
	b.sendWithKeyboard(callback.Message.Chat.ID,
		fmt.Sprintf("Delete “%s” and its progress?", world.Title),
		[][]MenuButton{
			{
				{Text: "🗑 Yes, delete", CallbackData: "world_delc:" + worldID},
				{Text: "Keep it", CallbackData: "worlds"},
			},
		})
}

func (b *Bot) handleWorldDelete(callback *tgbotapi.CallbackQuery, worldID string) {
	b.session.DeleteWorld(worldID)
	b.answerCallback(callback.ID, "Deleted")
	b.showWorlds(callback.Message.Chat.ID)
}

// showImportMenu offers the lesson import formats
func (b *Bot) showImportMenu(chatID int64) {
	text := `📥 Lesson Import (Parent Mode)

Three ways to bring in a new week:
- Paste the lesson as JSON (see the template)
- Paste quick text blocks (vocab and reading lines)
- Upload a .json, .csv or .xlsx file`

	b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "📋 Paste JSON", CallbackData: "imp_json"}},
		{{Text: "✂️ Paste blocks", CallbackData: "imp_blocks"}},
		{{Text: "📄 Show JSON template", CallbackData: "imp_template"}},
		{{Text: "🚪 Back to the map", CallbackData: "map"}},
	})
}

// handleText feeds non-command messages into the import conversation
func (b *Bot) handleText(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	state, exists := b.userStates[chatID]
	if !exists {
		b.send(chatID, "I don't understand. Use /map to show the corridor.")
		return
	}

	switch state.State {
	case "waiting_for_json":
		delete(b.userStates, chatID)
		world, err := importer.ParseJSON([]byte(message.Text))
		if err != nil {
			b.send(chatID, fmt.Sprintf("❌ %v\n\nNothing was changed. Try again with /import.", err))
			return
		}
		b.applyImportedWorld(chatID, world)

	case "waiting_for_vocab_block":
		state.Data["vocab"] = message.Text
		state.State = "waiting_for_text_block"
		b.userStates[chatID] = state
		b.send(chatID, "Now send the reading lines, one per line:\n\nhé yè yuán yuán de | 荷叶圆圆的\n\nSend a single dash (-) if there are none.")

	case "waiting_for_text_block":
		delete(b.userStates, chatID)
		textBlock := message.Text
		if strings.TrimSpace(textBlock) == "-" {
			textBlock = ""
		}
		world, err := importer.FromBlocks("", "", state.Data["vocab"], textBlock)
		if err != nil {
			b.send(chatID, "❌ Nothing to import. Try again with /import.")
			return
		}
		b.applyImportedWorld(chatID, world)

	default:
		delete(b.userStates, chatID)
		b.send(chatID, "I don't understand. Use /map to show the corridor.")
	}
}

// handleDocument imports an uploaded lesson file
func (b *Bot) handleDocument(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document

	ext := strings.ToLower(filepath.Ext(doc.FileName))
	if ext != ".json" && ext != ".csv" && ext != ".xlsx" {
		b.send(chatID, "I can read .json, .csv or .xlsx lesson files.")
		return
	}

	url, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("Error resolving file %s: %v", doc.FileID, err)
		b.send(chatID, "❌ Could not fetch the file from Telegram.")
		return
	}

	path, err := downloadToTemp(url, ext)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		b.send(chatID, "❌ Could not download the file.")
		return
	}
	defer os.Remove(path)

	if ext == ".json" {
		data, err := os.ReadFile(path)
		if err != nil {
			b.send(chatID, "❌ Could not read the file.")
			return
		}
		world, err := importer.ParseJSON(data)
		if err != nil {
			b.send(chatID, fmt.Sprintf("❌ %v\n\nNothing was changed.", err))
			return
		}
		b.applyImportedWorld(chatID, world)
		return
	}

	config := importer.DefaultSpreadsheetConfig()
	config.FilePath = path
	result, err := importer.ImportSpreadsheet(config)
	if err != nil {
		b.send(chatID, fmt.Sprintf("❌ %v", err))
		return
	}
	if len(result.Items) == 0 {
		b.send(chatID, "❌ No usable vocabulary rows in that file.")
		return
	}

	title := strings.TrimSuffix(doc.FileName, ext)
	world := importer.Normalize(models.World{
		Title:        title,
		Vocab:        result.Items,
		PhonicsFocus: []string{"zh", "ch", "sh", "r"},
	})

	if len(result.Errors) > 0 {
		b.send(chatID, fmt.Sprintf("⚠️ %d row(s) skipped:\n%s",
			result.Skipped, strings.Join(result.Errors, "\n")))
	}
	b.applyImportedWorld(chatID, world)
}

// applyImportedWorld stores the world and confirms the import
func (b *Bot) applyImportedWorld(chatID int64, world models.World) {
	b.session.UpsertWorld(world)
	b.sendWithKeyboard(chatID,
		fmt.Sprintf("✅ “%s” imported: %d words, %d reading lines. It is now the active world.",
			world.Title, len(world.Vocab), len(world.TextLines)),
		[][]MenuButton{
			{{Text: "🚪 Open the map", CallbackData: "map"}},
		})
}

func downloadToTemp(url, ext string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.CreateTemp("", "lesson-*"+ext)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
