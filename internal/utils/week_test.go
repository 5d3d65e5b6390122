package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekWindowFor(t *testing.T) {
	// Semaine du lundi 5 au vendredi 9 janvier 2026
	expectedStart := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	expectedEnd := time.Date(2026, 1, 9, 23, 59, 59, 999_000_000, time.UTC)

	tests := []struct {
		name string
		now  time.Time
	}{
		{"monday", time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC)},
		{"friday evening", time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)},
		{"sunday maps to same monday", time.Date(2026, 1, 11, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindowFor(tt.now)
			assert.Equal(t, expectedStart, start)
			assert.Equal(t, expectedEnd, end)
		})
	}
}

func TestWeekWindowForCrossesMonthBoundary(t *testing.T) {
	// Dimanche 1er février 2026 : la semaine a commencé le lundi 26 janvier
	start, end := WeekWindowFor(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 30, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestWeekWindowForKeepsLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("timezone data unavailable")
	}

	start, _ := WeekWindowFor(time.Date(2026, 1, 7, 15, 0, 0, 0, paris))
	assert.Equal(t, paris, start.Location())
}

func TestPreviousWeekWindow(t *testing.T) {
	// Mercredi 7 janvier 2026 : la semaine précédente court du lundi 29
	// décembre au dimanche 4 janvier
	start, end := PreviousWeekWindow(time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 4, 23, 59, 59, 999_000_000, time.UTC), end)
}
