package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/logger"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/middleware"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scanner"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

// ResetPredictions supprime toutes les prédictions de la semaine courante,
// journaux de révisions compris (admin)
func ResetPredictions(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()
	weekStart, _ := utils.WeekWindowFor(time.Now())

	// Les révisions partent d'abord (pas de ON DELETE CASCADE à supposer ici)
	_, err := database.DB.Exec(ctx,
		`DELETE FROM prediction_revisions
		 WHERE prediction_id IN (SELECT id FROM predictions WHERE week_start_date >= $1)`,
		weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete revisions: "+err.Error())
		return
	}

	tag, err := database.DB.Exec(ctx,
		`DELETE FROM predictions WHERE week_start_date >= $1`, weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not delete predictions: "+err.Error())
		return
	}

	deleted := tag.RowsAffected()
	logger.Warning("reset : %d prédictions de la semaine supprimées", deleted)

	utils.Success(w, map[string]interface{}{
		"message":      fmt.Sprintf("Reset completed. Deleted %d predictions.", deleted),
		"deletedCount": deleted,
	})
}

// CleanupPredictions migre les anciennes prédictions "prix unique" vers une
// fourchette de ±1% autour du prix, puis purge le champ legacy (admin)
func CleanupPredictions(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()

	tag, err := database.DB.Exec(ctx,
		`UPDATE predictions
		 SET predicted_min = predicted_price * 0.99,
		     predicted_max = predicted_price * 1.01,
		     predicted_price = NULL,
		     updated_at = NOW()
		 WHERE predicted_price IS NOT NULL
		   AND (predicted_min IS NULL OR predicted_max IS NULL)`,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not cleanup predictions: "+err.Error())
		return
	}

	updated := tag.RowsAffected()
	logger.Success("cleanup : %d prédictions legacy migrées en fourchette", updated)

	utils.Success(w, map[string]interface{}{
		"message":      fmt.Sprintf("Cleaned up %d old predictions", updated),
		"updatedCount": updated,
	})
}

// DebugPredictions expose l'état brut de la semaine courante, avec les
// bornes de la fenêtre et la forme de chaque document (admin)
func DebugPredictions(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		utils.Error(w, http.StatusForbidden, "admin access required")
		return
	}

	ctx := context.Background()
	weekStart, weekEnd := utils.WeekWindowFor(time.Now())

	rows, err := database.DB.Query(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions
		 WHERE week_start_date >= $1
		 ORDER BY created_at DESC`,
		weekStart,
	)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query predictions: "+err.Error())
		return
	}

	predictions, err := scanner.CollectPredictions(rows)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not read predictions: "+err.Error())
		return
	}

	debug := []map[string]interface{}{}
	for i := range predictions {
		p := &predictions[i]
		debug = append(debug, map[string]interface{}{
			"id":             p.ID,
			"username":       p.Username,
			"predictedMin":   p.PredictedMin,
			"predictedMax":   p.PredictedMax,
			"predictedPrice": p.PredictedPrice,
			"hasMin":         p.PredictedMin != nil,
			"hasMax":         p.PredictedMax != nil,
			"hasPrice":       p.PredictedPrice != nil,
			"settled":        p.IsSettled(),
			"createdAt":      p.CreatedAt,
			"updatedAt":      p.UpdatedAt,
		})
	}

	utils.Success(w, map[string]interface{}{
		"weekStart":       weekStart,
		"weekEnd":         weekEnd,
		"predictionCount": len(debug),
		"predictions":     debug,
	})
}
