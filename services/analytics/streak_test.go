package analytics

import (
	"testing"

	"calmwave/models"

	"github.com/stretchr/testify/assert"
)

func flags(values ...models.AlcoholFlag) []models.CheckIn {
	out := make([]models.CheckIn, len(values))
	for i, v := range values {
		out[i] = models.CheckIn{Alcohol: v}
	}
	return out
}

const (
	y = models.AlcoholYes
	n = models.AlcoholNo
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name string
		in   []models.CheckIn
		want int
	}{
		{"empty", nil, 0},
		{"no trigger ever", flags(n, n, n), 0},
		{"after single trigger", flags(y, n, n, n), 3},
		{"resets on second trigger", flags(y, n, y, n, n), 2},
		{"ends on trigger", flags(n, y, n, y), 0},
		{"unknown flags ignored", flags(y, n, "", n, "maybe"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.in))
		})
	}
}

func TestComputeStreakIncludeLeading(t *testing.T) {
	tests := []struct {
		name string
		in   []models.CheckIn
		want int
	}{
		{"empty", nil, 0},
		{"no trigger ever", flags(n, n, n), 3},
		{"leading run then trigger", flags(n, n, y, n), 1},
		{"resets on trigger", flags(y, n, y, n, n), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreakWithMode(tt.in, StreakIncludeLeading))
		})
	}
}

func TestComputeStreakDoesNotMutateInput(t *testing.T) {
	in := flags(y, n, n)
	before := append([]models.CheckIn(nil), in...)

	first := ComputeStreak(in)
	second := ComputeStreak(in)

	assert.Equal(t, first, second)
	assert.Equal(t, before, in)
}
