package handler

import (
	"net/http"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/services"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// Services partagés par les handlers, injectés au démarrage
var (
	stockService    *services.StockPriceService
	insightsService *services.InsightsService
	cloudinarySvc   *services.CloudinaryService // nil si non configuré
)

// Init branche les services externes sur le package handler
func Init(stock *services.StockPriceService, insights *services.InsightsService, cloudinary *services.CloudinaryService) {
	stockService = stock
	insightsService = insights
	cloudinarySvc = cloudinary
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
