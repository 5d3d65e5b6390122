package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/cache"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/config"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
)

const (
	grokAPIURL       = "https://api.x.ai/v1/chat/completions"
	catalystCacheKey = "insights:catalysts"
	catalystCacheTTL = 30 * time.Minute
)

// Modèles tentés dans l'ordre, du plus récent au plus ancien
var grokModels = []string{"grok-4", "grok-3", "grok-2", "grok-beta"}

type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []grokMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// InsightsService génère l'analyse de marché affichée à côté du formulaire
// de prédiction : catalystes récents (positifs/négatifs) obtenus via Grok,
// avec un texte de secours daté quand l'API est indisponible. Les réponses
// sont cachées avec TTL et invalidables explicitement.
type InsightsService struct {
	apiKey string
	client *http.Client
	cache  cache.Cache
}

func NewInsightsService(cfg *config.Config, c cache.Cache) *InsightsService {
	return &InsightsService{
		apiKey: cfg.GrokAPIKey,
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  c,
	}
}

// Insight retourne l'analyse des catalystes de la semaine pour le prix
// courant. Ne retourne jamais d'erreur : cache, puis Grok, puis fallback.
func (s *InsightsService) Insight(ctx context.Context, currentPrice float64) string {
	if cached, err := s.cache.Get(ctx, catalystCacheKey); err == nil {
		return cached
	}

	content, err := s.askGrok(ctx, catalystPrompt(currentPrice))
	if err != nil {
		logger.Warning("grok unavailable, using fallback catalysts: %v", err)
		return fallbackCatalysts()
	}

	_ = s.cache.Set(ctx, catalystCacheKey, content, catalystCacheTTL)
	return content
}

// Invalidate vide le cache d'analyse (endpoint admin de refresh)
func (s *InsightsService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, catalystCacheKey)
}

// askGrok essaie chaque modèle dans l'ordre jusqu'au premier qui répond
func (s *InsightsService) askGrok(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("grok API key not configured")
	}

	var lastErr error
	for _, model := range grokModels {
		content, err := s.callModel(ctx, model, prompt)
		if err != nil {
			logger.Debug("model %s failed: %v", model, err)
			lastErr = err
			continue
		}
		return content, nil
	}

	return "", fmt.Errorf("all grok models failed: %w", lastErr)
}

func (s *InsightsService) callModel(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(grokRequest{
		Model:       model,
		Messages:    []grokMessage{{Role: "user", Content: prompt}},
		MaxTokens:   800,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, grokAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grok returned status %d", resp.StatusCode)
	}

	var payload grokResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty grok response")
	}

	return payload.Choices[0].Message.Content, nil
}

func catalystPrompt(currentPrice float64) string {
	return fmt.Sprintf(`As a financial analyst, provide a focused analysis of THE MOST RECENT news bullet points from THIS WEEK that could impact Tesla (TSLA) stock price.

Current Tesla stock price: $%.2f
Current date: %s

Please provide ONLY recent news bullet points with dates in MM/DD format, with specific figures, percentages, and market impacts.

IMPORTANT:
- Focus ONLY on THE MOST RECENT news from THIS WEEK
- Use the exact headers "POSITIVE CATALYSTS:" and "NEGATIVE CATALYSTS:"
- Include economic, political, and technological news that could impact Tesla stock
- If no significant recent news exists, state "No significant recent news this week"`,
		currentPrice, time.Now().Format("01/02/2006"))
}

// fallbackCatalysts retourne un texte neutre daté quand aucun modèle ne
// répond, pour que l'UI garde sa structure POSITIVE/NEGATIVE
func fallbackCatalysts() string {
	return `HIGH-IMPACT RECENT NEWS (Last 7 Days):
POSITIVE CATALYSTS:
No significant Tesla news in the past 7 days

NEGATIVE CATALYSTS:
No significant Tesla news in the past 7 days`
}
