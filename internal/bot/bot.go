package bot

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/pinyinquest/internal/game"
	"github.com/example/pinyinquest/internal/quiz"
	"github.com/example/pinyinquest/internal/scheduler"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// UserState represents the current state of a chat in conversation with the bot
type UserState struct {
	State     string
	Timestamp time.Time
	Data      map[string]string
}

// roomSession is an in-progress room run for one chat
type roomSession struct {
	WorldID   string
	RoomNo    int
	RoomType  game.RoomType
	Remaining int
	Correct   int

	vocabQ   *quiz.VocabQuestion
	soundQ   *quiz.SoundQuestion
	patternQ *quiz.PatternQuestion

	trial     []quiz.TimeTrialQuestion
	trialIdx  int
	startedAt time.Time
}

// Bot represents the Telegram bot application
type Bot struct {
	api              *tgbotapi.BotAPI
	token            string
	session          *game.Session
	quizzes          *quiz.Generator
	schedulerEnabled bool
	scheduler        *scheduler.Scheduler
	userStates       map[int64]UserState
	roomSessions     map[int64]*roomSession
	config           *BotConfig

	// chat to nudge with reminders; the last chat the learner wrote from.
	// Atomic because the reminder job reads it from the gocron goroutine.
	reminderChatID atomic.Int64
}

// New creates a new bot instance
func New(session *game.Session) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	schedulerEnabled := os.Getenv("ENABLE_SCHEDULER") != "false"

	bot := &Bot{
		token:            token,
		session:          session,
		quizzes:          quiz.New(session.Rand()),
		schedulerEnabled: schedulerEnabled,
		userStates:       make(map[int64]UserState),
		roomSessions:     make(map[int64]*roomSession),
		config:           DefaultConfig(),
	}

	if chatIDStr := os.Getenv("LEARNER_CHAT_ID"); chatIDStr != "" {
		id, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			log.Printf("Warning: Invalid LEARNER_CHAT_ID: %s", chatIDStr)
		} else {
			bot.reminderChatID.Store(id)
		}
	}

	return bot, nil
}

// Start initializes and starts the bot
func (b *Bot) Start() error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b.session, b)
		b.scheduler.Start()
		log.Println("Reminder scheduler started")
	}

	for update := range updates {
		b.handleUpdate(update)
	}

	return nil
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
}

// SendReminder implements the scheduler.Notifier interface. It runs on the
// scheduler goroutine, so it only uses the values the snapshot handed it.
func (b *Bot) SendReminder(dueCount, streakCount int, streakAtRisk bool) error {
	chatID := b.reminderChatID.Load()
	if chatID == 0 {
		log.Println("No reminder chat known yet, skipping reminder")
		return nil
	}

	text := fmt.Sprintf("👻 %d words are waiting in the corridor!", dueCount)
	if streakAtRisk {
		text = fmt.Sprintf("🔥 Your %d-day streak needs one room today! %d words are due.",
			streakCount, dueCount)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{
		{{Text: "🚪 Open the map", CallbackData: "map"}},
	})
	_, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
	return err
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		b.reminderChatID.Store(update.Message.Chat.ID)

		if update.Message.IsCommand() {
			b.handleCommand(update.Message)
			return
		}

		if update.Message.Document != nil {
			b.handleDocument(update.Message)
			return
		}

		b.handleText(update.Message)
		return
	}

	if update.CallbackQuery != nil {
		b.reminderChatID.Store(update.CallbackQuery.Message.Chat.ID)
		b.handleCallback(update.CallbackQuery)
	}
}

// handleCommand routes slash commands
func (b *Bot) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message.Chat.ID)
	case "menu", "map":
		b.showMap(message.Chat.ID)
	case "stats":
		b.showStats(message.Chat.ID)
	case "settings":
		b.showSettings(message.Chat.ID)
	case "worlds":
		b.showWorlds(message.Chat.ID)
	case "import":
		b.showImportMenu(message.Chat.ID)
	case "trial":
		b.startTimeTrial(message.Chat.ID)
	case "cancel":
		delete(b.userStates, message.Chat.ID)
		delete(b.roomSessions, message.Chat.ID)
		b.send(message.Chat.ID, "Cancelled. Use /map to get back to the corridor.")
	default:
		b.send(message.Chat.ID, "Unknown command. Use /map to show the corridor.")
	}
}

// send delivers a plain text message, logging send failures
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// sendWithKeyboard delivers a message with an inline keyboard
func (b *Bot) sendWithKeyboard(chatID int64, text string, buttons [][]MenuButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(buttons)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

// answerCallback closes the callback spinner, optionally with a toast
func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		log.Printf("Error answering callback: %v", err)
	}
}
