package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "key", "value", time.Minute))

	got, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", got)
}

func TestMemoryMiss(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)

	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "key", "value", 5*time.Minute))

	_, err := m.Get(ctx, "key")
	require.NoError(t, err)

	// Avancer l'horloge au-delà du TTL
	now = now.Add(6 * time.Minute)

	_, err = m.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryInvalidate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, m.Invalidate(ctx, "key"))

	_, err := m.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "key", "first", time.Minute))
	require.NoError(t, m.Set(ctx, "key", "second", time.Minute))

	got, err := m.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}
