package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/pinyinquest/internal/game"
)

// Default window for practice reminders
const (
	DefaultReminderStartHour = 8
	DefaultReminderEndHour   = 20
)

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	session   *game.Session
	notifier  Notifier
}

// Notifier interface for sending reminders
type Notifier interface {
	SendReminder(dueCount, streakCount int, streakAtRisk bool) error
}

// New creates a new scheduler instance
func New(session *game.Session, notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		session:   session,
		notifier:  notifier,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	// Hourly check for due reviews and a streak about to break
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)

	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends a nudge when reviews are due or today's room
// has not been cleared yet, but only inside the configured hours. The game
// state is read through a single ReminderStatus snapshot because this runs
// on the gocron goroutine, not the update loop.
func (s *Scheduler) checkAndSendReminder() {
	currentHour := time.Now().Hour()

	startHour := hourFromEnv("REMINDER_START_HOUR", DefaultReminderStartHour)
	endHour := hourFromEnv("REMINDER_END_HOUR", DefaultReminderEndHour)

	if !withinWindow(currentHour, startHour, endHour) {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminder",
			currentHour, startHour, endHour)
		return
	}

	if err := s.RunManualCheck(); err != nil {
		log.Printf("Error sending reminder: %v", err)
	}
}

// RunManualCheck forces a reminder check regardless of the hour window
func (s *Scheduler) RunManualCheck() error {
	dueCount, streakCount, atRisk := s.session.ReminderStatus()
	if dueCount == 0 && !atRisk {
		return nil
	}
	return s.notifier.SendReminder(dueCount, streakCount, atRisk)
}

func withinWindow(hour, start, end int) bool {
	return hour >= start && hour <= end
}

func hourFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
