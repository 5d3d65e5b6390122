package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// GetStockPrice retourne le dernier cours TSLA connu (cache 5 min)
func GetStockPrice(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	price := stockService.CurrentPrice(ctx)

	utils.Success(w, map[string]interface{}{
		"symbol":    "TSLA",
		"price":     price,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetWeeklyStockData retourne les cours d'ouverture et de clôture de la
// semaine courante (date cotée la plus proche si marché fermé)
func GetWeeklyStockData(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()

	weekly := stockService.WeeklyPrices(ctx, time.Now())

	utils.Success(w, weekly)
}
