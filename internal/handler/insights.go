package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// GetInsights retourne l'analyse des catalystes de la semaine (cache 30 min)
func GetInsights(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CurrentPrice float64 `json:"currentPrice"`
	}
	// Corps optionnel : sans prix fourni, on prend le prix courant du service
	_ = utils.DecodeJSON(r, &payload)

	ctx := context.Background()

	price := payload.CurrentPrice
	if price <= 0 {
		price = stockService.CurrentPrice(ctx)
	}

	content := insightsService.Insight(ctx, price)

	utils.Success(w, map[string]interface{}{
		"insights":     content,
		"currentPrice": price,
		"generatedAt":  time.Now().UTC().Format(time.RFC3339),
	})
}

// RefreshInsights vide le cache d'analyse et force une régénération (admin)
func RefreshInsights(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()

	if err := insightsService.Invalidate(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not invalidate insights cache: "+err.Error())
		return
	}

	price := stockService.CurrentPrice(ctx)
	content := insightsService.Insight(ctx, price)

	utils.Success(w, map[string]interface{}{
		"insights":     content,
		"currentPrice": price,
		"generatedAt":  time.Now().UTC().Format(time.RFC3339),
	})
}
