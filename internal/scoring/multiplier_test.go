package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayMultiplier(t *testing.T) {
	// Semaine du lundi 5 janvier 2026
	tests := []struct {
		day      string
		date     time.Time
		expected int
	}{
		{"monday", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC), 5},
		{"tuesday", time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC), 3},
		{"wednesday", time.Date(2026, 1, 7, 10, 0, 0, 0, time.UTC), 2},
		{"thursday", time.Date(2026, 1, 8, 10, 0, 0, 0, time.UTC), 1},
		{"friday", time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC), 1},
		{"saturday", time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC), 1},
		{"sunday", time.Date(2026, 1, 11, 10, 0, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayMultiplier(tt.date))
		})
	}
}
