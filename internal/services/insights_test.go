package services

import (
	"context"
	"strings"
	"testing"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/cache"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightFallbackWithoutAPIKey(t *testing.T) {
	svc := NewInsightsService(&config.Config{}, cache.NewMemory())

	content := svc.Insight(context.Background(), 245.0)

	assert.Contains(t, content, "POSITIVE CATALYSTS:")
	assert.Contains(t, content, "NEGATIVE CATALYSTS:")
}

func TestInsightServedFromCache(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	require.NoError(t, c.Set(ctx, catalystCacheKey, "cached analysis", catalystCacheTTL))

	svc := NewInsightsService(&config.Config{}, c)

	assert.Equal(t, "cached analysis", svc.Insight(ctx, 245.0))
}

func TestInsightInvalidate(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	require.NoError(t, c.Set(ctx, catalystCacheKey, "stale analysis", catalystCacheTTL))

	svc := NewInsightsService(&config.Config{}, c)
	require.NoError(t, svc.Invalidate(ctx))

	// Le cache purgé, on retombe sur le texte de secours
	content := svc.Insight(ctx, 245.0)
	assert.NotEqual(t, "stale analysis", content)
}

func TestCatalystPromptMentionsPrice(t *testing.T) {
	prompt := catalystPrompt(245.5)

	assert.True(t, strings.Contains(prompt, "$245.50"))
	assert.Contains(t, prompt, "POSITIVE CATALYSTS:")
}
