package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettlementAllowed(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		allowed bool
	}{
		{"friday before market close", time.Date(2026, 1, 9, 19, 59, 0, 0, time.UTC), false},
		{"friday at market close", time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC), true},
		{"friday late evening", time.Date(2026, 1, 9, 23, 30, 0, 0, time.UTC), true},
		{"monday", time.Date(2026, 1, 5, 21, 0, 0, 0, time.UTC), false},
		{"saturday", time.Date(2026, 1, 10, 21, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, settlementAllowed(tt.now))
		})
	}
}
