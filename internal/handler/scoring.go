package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scanner"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scoring"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// Le marché US clôture vendredi 16h EST, soit 20h UTC : le règlement de la
// semaine n'est autorisé qu'après
const settlementHourUTC = 20

// CalculateScores règle la semaine courante : fige le prix de clôture,
// évalue chaque prédiction non encore réglée et attribue les scores.
// Idempotent : les prédictions déjà réglées ne sont jamais retouchées.
func CalculateScores(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ActualPrice *float64 `json:"actualPrice"`
	}
	// Corps optionnel : sans prix fourni, on prend le prix courant du service
	_ = utils.DecodeJSON(r, &payload)

	now := time.Now().UTC()
	if !settlementAllowed(now) {
		utils.Error(w, http.StatusBadRequest, "Scores can only be calculated after market close on Friday (8 PM UTC)")
		return
	}

	ctx := context.Background()

	var actualPrice float64
	if payload.ActualPrice != nil && *payload.ActualPrice > 0 {
		actualPrice = *payload.ActualPrice
	} else {
		actualPrice = stockService.CurrentPrice(ctx)
	}

	weekStart, _ := utils.WeekWindowFor(now)

	var alreadySettled int
	err := database.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM predictions
		 WHERE week_start_date=$1 AND actual_price IS NOT NULL`,
		weekStart,
	).Scan(&alreadySettled)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not count settled predictions: "+err.Error())
		return
	}

	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions
		 WHERE week_start_date=$1 AND actual_price IS NULL`,
		weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query predictions: "+err.Error())
		return
	}

	// Un batch tronqué fausserait le bonus de la plus petite fourchette :
	// toute erreur de lecture annule la passe entière
	batch, err := scanner.CollectPredictions(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read predictions: "+err.Error())
		return
	}

	pending := make([]*model.Prediction, len(batch))
	for i := range batch {
		pending[i] = &batch[i]
	}

	// Le bonus de fourchette la plus serrée se calcule sur l'ensemble des
	// gagnants du lot, avant tout règlement individuel
	narrowest := scoring.NarrowestCorrectRange(pending, actualPrice)

	settled, correct, skipped := 0, 0, 0
	for _, p := range pending {
		settlement, ok := scoring.ComputeSettlement(p, actualPrice, narrowest)
		if !ok {
			// Ancien format "prix unique" : jamais réglé ni compté
			skipped++
			continue
		}

		_, err := database.DB.Exec(ctx,
			`UPDATE predictions
			 SET actual_price=$1, is_correct=$2, score=$3, range_size=$4, day_multiplier=$5
			 WHERE id=$6 AND actual_price IS NULL`,
			settlement.ActualPrice, settlement.IsCorrect, settlement.Score,
			settlement.RangeSize, settlement.DayMultiplier, p.ID,
		)
		if err != nil {
			// On continue : un échec isolé ne doit pas bloquer le lot
			logger.Error("règlement impossible pour %s: %v", p.ID, err)
			continue
		}

		settled++
		if settlement.IsCorrect {
			correct++
		}
	}

	logger.Success("semaine réglée à %.2f : %d réglées, %d correctes, %d ignorées", actualPrice, settled, correct, skipped)

	response := map[string]interface{}{
		"actualPrice":    actualPrice,
		"settled":        settled,
		"correct":        correct,
		"skipped":        skipped,
		"alreadySettled": alreadySettled,
	}
	if narrowest.Found {
		response["narrowestRange"] = narrowest.Width
		response["narrowestRangeCount"] = len(narrowest.Winners)
	}

	utils.Success(w, response)
}

// settlementAllowed vérifie la fenêtre de règlement : vendredi, après 20h UTC
func settlementAllowed(now time.Time) bool {
	return now.Weekday() == time.Friday && now.Hour() >= settlementHourUTC
}
