package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextLevel_IVInfusion(t *testing.T) {
	cases := []struct {
		name      string
		current   int
		readings  ReadingWindow
		wantLevel int
		wantMove  Transition
	}{
		{"rising above 150 moves up", 3, ReadingWindow{200, 180}, 4, TransitionUp},
		{"single reading above 150 moves up", 2, ReadingWindow{151}, 3, TransitionUp},
		{"drop of exactly 60 still moves up", 2, ReadingWindow{151, 211}, 3, TransitionUp},
		{"sharp drop holds level above 150", 4, ReadingWindow{200, 261}, 4, TransitionMaintain},
		{"sharp drop holds level in range", 4, ReadingWindow{150, 211}, 4, TransitionMaintain},
		{"below 110 moves down", 3, ReadingWindow{100, 120, 140}, 2, TransitionDown},
		{"below 110 after sharp drop still moves down", 3, ReadingWindow{100, 200}, 2, TransitionDown},
		{"110 maintains", 3, ReadingWindow{110, 115}, 3, TransitionMaintain},
		{"150 maintains", 3, ReadingWindow{150, 140}, 3, TransitionMaintain},
		{"down absorbed at minimum", 1, ReadingWindow{100}, 1, TransitionMaintain},
		{"up absorbed at maximum", 7, ReadingWindow{300, 250}, 7, TransitionMaintain},
		{"absent slots skipped when computing delta", 2, ReadingWindow{200, 0, 300}, 2, TransitionMaintain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, move := NextLevel(IVInfusion, tc.current, tc.readings, DoseHistory{}, DefaultBounds)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantMove, move)
		})
	}
}

func TestNextLevel_BasalBolus(t *testing.T) {
	cases := []struct {
		name      string
		current   int
		readings  ReadingWindow
		wantLevel int
		wantMove  Transition
	}{
		{"two readings above 180 move up", 2, ReadingWindow{190, 185, 170, 160, 150}, 3, TransitionUp},
		{"up absorbed at maximum", 7, ReadingWindow{190, 185, 170, 160, 150}, 7, TransitionMaintain},
		{"one reading above 180 maintains", 3, ReadingWindow{190, 170, 160}, 3, TransitionMaintain},
		{"180 is not above 180", 3, ReadingWindow{180, 180, 180}, 3, TransitionMaintain},
		{"any reading below 140 moves down", 3, ReadingWindow{130, 150, 160, 170, 180}, 2, TransitionDown},
		{"140 is not below 140", 3, ReadingWindow{140, 150}, 3, TransitionMaintain},
		{"down wins over up", 4, ReadingWindow{200, 190, 130}, 3, TransitionDown},
		{"absent slots never count as low", 3, ReadingWindow{160, 0, 0, 0, 0}, 3, TransitionMaintain},
		{"down absorbed at minimum", 1, ReadingWindow{120, 125}, 1, TransitionMaintain},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level, move := NextLevel(BasalBolus, tc.current, tc.readings, DoseHistory{}, DefaultBounds)
			assert.Equal(t, tc.wantLevel, level)
			assert.Equal(t, tc.wantMove, move)
		})
	}
}

func TestNextLevel_StaysWithinBounds(t *testing.T) {
	windows := []ReadingWindow{
		{}, {50}, {100, 300}, {500, 490, 480, 470, 460}, {130, 400, 400}, {200, 400},
	}
	bounds := []Bounds{DefaultBounds, {Min: 1, Max: 5}, {Min: 2, Max: 2}}
	for _, b := range bounds {
		for _, alg := range []Algorithm{IVInfusion, BasalBolus} {
			for current := -3; current <= 12; current++ {
				for _, w := range windows {
					level, _ := NextLevel(alg, current, w, DoseHistory{}, b)
					assert.True(t, b.Contains(level), "alg=%s current=%d window=%v bounds=%v got %d", alg, current, w, b, level)
				}
			}
		}
	}
}

func TestBounds_Clamp(t *testing.T) {
	b := Bounds{Min: 1, Max: 7}
	assert.Equal(t, 1, b.Clamp(0))
	assert.Equal(t, 4, b.Clamp(4))
	assert.Equal(t, 7, b.Clamp(9))
}
