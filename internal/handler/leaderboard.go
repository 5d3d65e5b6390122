package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/database"
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scanner"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/scoring"
	"github.com/baobaokim2008-bit/Tesla-prediction-game/internal/utils"
)

const defaultLeaderboardLimit = 50

// leaderboardResponse garde totalUsers et previousWeekWinner au même niveau
// que data, comme attendu par le front
type leaderboardResponse struct {
	Success            bool                   `json:"success"`
	Data               []model.LeaderboardRow `json:"data"`
	TotalUsers         int                    `json:"totalUsers"`
	PreviousWeekWinner *model.WeekWinner      `json:"previousWeekWinner"`
}

// GetLeaderboard agrège toutes les prédictions en classement général et y
// joint le gagnant de la semaine précédente
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	ctx := context.Background()

	all, err := queryPredictions(ctx,
		`SELECT `+scanner.PredictionColumns+` FROM predictions ORDER BY created_at ASC`)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query predictions: "+err.Error())
		return
	}

	rows := scoring.BuildLeaderboard(all)
	totalUsers := len(rows)
	if len(rows) > limit {
		rows = rows[:limit]
	}

	// Gagnant de la semaine passée : uniquement les prédictions réglées de
	// la fenêtre lundi-dimanche précédente
	prevStart, prevEnd := utils.PreviousWeekWindow(time.Now())
	prevWeek, err := queryPredictions(ctx,
		`SELECT `+scanner.PredictionColumns+`
		 FROM predictions
		 WHERE week_start_date >= $1 AND week_start_date <= $2
		 ORDER BY created_at ASC`,
		prevStart, prevEnd)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query previous week: "+err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, leaderboardResponse{
		Success:            true,
		Data:               rows,
		TotalUsers:         totalUsers,
		PreviousWeekWinner: scoring.PreviousWeekWinner(prevWeek),
	})
}

// queryPredictions exécute une requête SELECT sur predictions et scanne
// toutes les lignes
func queryPredictions(ctx context.Context, sql string, args ...interface{}) ([]model.Prediction, error) {
	rows, err := database.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanner.CollectPredictions(rows)
}
