package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/example/pinyinquest/internal/spaced_repetition"
	"github.com/example/pinyinquest/pkg/models"
)

var (
	// ErrRoomLocked means the door is past the unlocked-room watermark.
	ErrRoomLocked = errors.New("room is still locked")
	// ErrNeedKey means an uncompleted secret room was entered with no keys.
	ErrNeedKey = errors.New("need a key to enter this secret room")
)

// Saver flushes the whole game state after a mutation. Writes are best
// effort: the engine logs failures and keeps going on its in-memory state.
type Saver interface {
	Save(*models.GameState) error
}

// Session owns the live game state and sequences every rule the game has.
// All clock and randomness use goes through the injected sources. Methods
// are safe for concurrent use; the reminder job polls from its own
// goroutine while the update loop plays.
type Session struct {
	State *models.GameState

	mu    sync.Mutex
	store Saver
	sched *spaced_repetition.Scheduler
	now   func() time.Time
	rng   *rand.Rand
}

// Option customises a Session.
type Option func(*Session)

// WithClock overrides the session's clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand overrides the session's random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// NewSession wraps a loaded game state with its collaborators.
func NewSession(state *models.GameState, store Saver, opts ...Option) *Session {
	s := &Session{
		State: state,
		store: store,
		sched: spaced_repetition.New(),
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the session's current calendar date.
func (s *Session) Today() time.Time {
	return s.now()
}

// Rand exposes the session's random source for the presentation layer.
func (s *Session) Rand() *rand.Rand {
	return s.rng
}

// flush persists the full state. Persistence is best effort: on failure the
// in-memory state stays authoritative until the next successful write.
// Callers hold the session lock.
func (s *Session) flush() {
	if s.store == nil {
		return
	}
	if err := s.store.Save(s.State); err != nil {
		log.Printf("Failed to persist game state: %v", err)
	}
}

// ActiveWorld returns the active world, falling back to the first one when
// the active ID dangles.
func (s *Session) ActiveWorld() *models.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeWorld()
}

func (s *Session) activeWorld() *models.World {
	if w := s.State.WorldByID(s.State.ActiveWorldID); w != nil {
		return w
	}
	if len(s.State.Worlds) == 0 {
		demo := DemoWorld()
		s.State.Worlds = []models.World{demo}
		s.State.ActiveWorldID = demo.ID
	}
	return &s.State.Worlds[0]
}

// SetActiveWorld switches the active world.
func (s *Session) SetActiveWorld(worldID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State.WorldByID(worldID) == nil {
		return fmt.Errorf("unknown world %q", worldID)
	}
	s.State.ActiveWorldID = worldID
	EnsureProgress(s.State.Progression, worldID)
	s.flush()
	return nil
}

// UpdateSettings applies new learner preferences.
func (s *Session) UpdateSettings(settings models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State.Settings = settings
	s.flush()
}

// UpsertWorld replaces a world with the same ID wholesale, or appends a new
// one, and makes it active. World progress is preserved across re-imports;
// schedule entries are keyed by item ID, so re-imported items keep their
// schedule and replaced ones orphan theirs.
func (s *Session) UpsertWorld(world models.World) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.State.Worlds {
		if s.State.Worlds[i].ID == world.ID {
			s.State.Worlds[i] = world
			replaced = true
			break
		}
	}
	if !replaced {
		s.State.Worlds = append(s.State.Worlds, world)
	}
	s.State.ActiveWorldID = world.ID
	EnsureProgress(s.State.Progression, world.ID)
	s.flush()
}

// DeleteWorld removes a world. When the last world goes, the demo world is
// restored so the game never has zero worlds.
func (s *Session) DeleteWorld(worldID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.State.Worlds[:0]
	for _, w := range s.State.Worlds {
		if w.ID != worldID {
			kept = append(kept, w)
		}
	}
	s.State.Worlds = kept
	if len(s.State.Worlds) == 0 {
		s.State.Worlds = []models.World{DemoWorld()}
	}
	if s.State.WorldByID(s.State.ActiveWorldID) == nil {
		s.State.ActiveWorldID = s.State.Worlds[0].ID
	}
	s.flush()
}

// Progress returns the (lazily created) progress for a world.
func (s *Session) Progress(worldID string) *models.WorldProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress(worldID)
}

func (s *Session) progress(worldID string) *models.WorldProgress {
	return EnsureProgress(s.State.Progression, worldID)
}

// EnterRoom gates entry to a door. Locked rooms and keyless secret-room
// entry are refused here, before any state changes; entering an uncompleted
// secret room spends one key.
func (s *Session) EnterRoom(worldID string, roomNo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if roomNo == TimeTrialRoom {
		return nil
	}
	prog := s.progress(worldID)
	if roomNo > prog.UnlockedRoom {
		return ErrRoomLocked
	}
	if Classify(roomNo) == RoomSecret && !prog.CompletedRooms[roomNo] {
		if s.State.Economy.Keys <= 0 {
			return ErrNeedKey
		}
		SpendKey(&s.State.Economy)
		s.flush()
	}
	return nil
}

// RoomResult reports everything a room completion granted, for the
// presentation layer to announce.
type RoomResult struct {
	RoomType    RoomType
	FirstTime   bool
	RoomCoins   int
	Qualified   bool // first qualifying completion today
	FreezeUsed  bool
	Daily       DailyReward // zero unless Qualified
	Milestone   bool
	StreakCount int
}

// CompleteRoom applies a finished room: progression, room reward, streak.
// The first qualifying completion of the day additionally grants the daily
// reward followed by exactly one milestone check, in that order, so the
// milestone grant cannot double as the daily reward.
func (s *Session) CompleteRoom(worldID string, roomNo int) RoomResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if roomNo == TimeTrialRoom {
		return RoomResult{}
	}

	prog := s.progress(worldID)
	firstTime := MarkRoomComplete(prog, roomNo)

	roomType := Classify(roomNo)
	coins := GrantRoomCompletion(&s.State.Economy, roomType)

	before := s.State.Streak.LastComplete
	qualified, froze := BumpStreak(&s.State.Streak, s.now())

	result := RoomResult{
		RoomType:    roomType,
		FirstTime:   firstTime,
		RoomCoins:   coins,
		Qualified:   qualified,
		FreezeUsed:  froze,
		StreakCount: s.State.Streak.Count,
	}
	if s.State.Streak.LastComplete != before {
		result.Daily = GrantDailyReward(&s.State.Economy, s.State.Streak.Count)
		result.Milestone = GrantMilestone(&s.State.Economy, s.State.Streak.Count)
	}

	s.flush()
	return result
}

// RecordAnswer feeds one quiz answer into the review schedule.
func (s *Session) RecordAnswer(itemID string, correct bool) *models.SchedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.sched.RecordAnswer(s.State.SRS, itemID, correct, s.now())
	s.flush()
	return entry
}

// PickDueVocab samples up to n distinct due items from the active world.
func (s *Session) PickDueVocab(n int) []models.VocabItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.SelectDue(s.State.SRS, s.activeWorld(), s.now(), n, s.rng)
}

// DueCount reports how many of the active world's items are due today.
func (s *Session) DueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.DueCount(s.State.SRS, s.activeWorld(), s.now())
}

// StreakAtRisk reports whether today's room is still uncleared while a
// streak is on the line.
func (s *Session) StreakAtRisk() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StreakAtRisk(&s.State.Streak, s.now())
}

// ReminderStatus snapshots everything the reminder job needs in one
// locked read, so it never touches the state from its own goroutine.
func (s *Session) ReminderStatus() (dueCount, streakCount int, atRisk bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dueCount = s.sched.DueCount(s.State.SRS, s.activeWorld(), s.now())
	streakCount = s.State.Streak.Count
	atRisk = StreakAtRisk(&s.State.Streak, s.now())
	return dueCount, streakCount, atRisk
}

// RecordSoundAnswer pays the sound-quest micro-reward for a correct pick.
func (s *Session) RecordSoundAnswer(correct bool) int {
	if !correct {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coins := GrantSoundCorrect(&s.State.Economy)
	s.flush()
	return coins
}

// TimeTrialResult reports the outcome of a finished time-trial run.
type TimeTrialResult struct {
	ElapsedMs    int64
	CorrectCount int
	Improved     bool
	Coins        int
}

// FinishTimeTrial records a completed time-trial run against the world's
// personal best and pays the reward. Time trials never touch room
// progression or the streak.
func (s *Session) FinishTimeTrial(worldID string, correctCount int, elapsedMs int64) TimeTrialResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	prog := s.progress(worldID)
	improved := RecordTimeTrial(prog, elapsedMs)
	coins := GrantTimeTrial(&s.State.Economy, correctCount, improved)
	s.flush()
	return TimeTrialResult{
		ElapsedMs:    elapsedMs,
		CorrectCount: correctCount,
		Improved:     improved,
		Coins:        coins,
	}
}
