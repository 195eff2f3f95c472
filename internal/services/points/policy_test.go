package points

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindmatch/memoryledger/internal/model"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		difficulty model.Difficulty
		won        bool
		daily      bool
		want       uint64
	}{
		{"easy win", model.DifficultyEasy, true, false, 50},
		{"medium win", model.DifficultyMedium, true, false, 100},
		{"hard win", model.DifficultyHard, true, false, 150},
		{"easy daily win", model.DifficultyEasy, true, true, 100},
		{"medium daily win", model.DifficultyMedium, true, true, 200},
		{"hard daily win", model.DifficultyHard, true, true, 300},
		{"easy loss", model.DifficultyEasy, false, false, 0},
		{"hard loss", model.DifficultyHard, false, false, 0},
		{"daily loss still zero", model.DifficultyHard, false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.difficulty, tt.won, tt.daily))
		})
	}
}

func TestComputeMatchesBaseTimesMultiplier(t *testing.T) {
	for _, d := range []model.Difficulty{
		model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard,
	} {
		assert.Equal(t, Base(d), Compute(d, true, false))
		assert.Equal(t, Base(d)*DailyMultiplier, Compute(d, true, true))
	}
}
