package game

import (
	"strings"

	"github.com/example/pinyinquest/pkg/models"
)

// RoomType classifies what a numbered door asks the player to do.
type RoomType string

const (
	RoomVocab   RoomType = "vocab"
	RoomSound   RoomType = "sound"
	RoomReading RoomType = "reading"
	RoomPattern RoomType = "pattern"
	RoomBoss    RoomType = "boss"
	RoomSecret  RoomType = "secret"
)

// TimeTrialRoom is the sentinel room number for the daily time trial. Callers
// route it before classification; it is never a classified room.
const TimeTrialRoom = 999

// RoomsPerWorld is how many doors each world's run shows.
const RoomsPerWorld = 50

var questCycle = [...]RoomType{RoomVocab, RoomSound, RoomReading, RoomPattern}

// Classify maps a room number to its type. Every tenth room is a secret room,
// every remaining fifth a boss review, and the rest cycle through the four
// quest types starting with vocab at room 1. Defined for all positive numbers.
func Classify(roomNo int) RoomType {
	if roomNo%10 == 0 {
		return RoomSecret
	}
	if roomNo%5 == 0 {
		return RoomBoss
	}
	return questCycle[(roomNo-1)%len(questCycle)]
}

// Describe returns the one-line blurb for a room shown on its door.
func Describe(roomNo int, world *models.World) string {
	if roomNo == TimeTrialRoom {
		return "Time Trial: 3 quick questions"
	}
	switch Classify(roomNo) {
	case RoomVocab:
		return "Vocab Loot: pinyin <-> meaning"
	case RoomSound:
		focus := "phonics"
		if world != nil && len(world.PhonicsFocus) > 0 {
			focus = strings.Join(world.PhonicsFocus, "/")
		}
		return "Sound Boss: " + focus
	case RoomReading:
		return "Read Aloud: pinyin-first, optional hanzi"
	case RoomPattern:
		return "Pattern Quest: ABB words & short forms"
	case RoomBoss:
		return "Boss Review: mixed review"
	case RoomSecret:
		return "Secret Room: extra rewards"
	}
	return "Quest"
}
