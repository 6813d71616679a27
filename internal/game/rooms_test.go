package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/pinyinquest/pkg/models"
)

func TestClassifyPriority(t *testing.T) {
	for n := 1; n <= 200; n++ {
		got := Classify(n)
		switch {
		case n%10 == 0:
			assert.Equal(t, RoomSecret, got, "room %d", n)
		case n%5 == 0:
			assert.Equal(t, RoomBoss, got, "room %d", n)
		default:
			assert.Equal(t, questCycle[(n-1)%4], got, "room %d", n)
		}
	}
}

func TestClassifyCycle(t *testing.T) {
	cases := []struct {
		roomNo int
		want   RoomType
	}{
		{1, RoomVocab},
		{2, RoomSound},
		{3, RoomReading},
		{4, RoomPattern},
		{5, RoomBoss},
		{6, RoomSound},
		{7, RoomReading},
		{8, RoomPattern},
		{9, RoomVocab},
		{10, RoomSecret},
		{11, RoomReading},
		{15, RoomBoss},
		{20, RoomSecret},
		{50, RoomSecret},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.roomNo), "room %d", tc.roomNo)
	}
}

func TestDescribe(t *testing.T) {
	world := &models.World{PhonicsFocus: []string{"zh", "ch"}}
	assert.Contains(t, Describe(2, world), "zh/ch")
	assert.Contains(t, Describe(TimeTrialRoom, world), "Time Trial")
	assert.Contains(t, Describe(10, world), "Secret")
}
