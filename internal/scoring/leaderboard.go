package scoring

import (
	"math"
	"sort"
	"time"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
)

// BuildLeaderboard agrège toutes les prédictions par utilisateur et produit
// le classement. Un score absent compte 0, un isCorrect absent compte faux.
// Tri : totalScore desc, puis accuracy desc, puis predictionCount desc ;
// rang 1-based, stable, sans partage de rang entre ex æquo.
func BuildLeaderboard(predictions []model.Prediction) []model.LeaderboardRow {
	byUser := make(map[string]*model.LeaderboardRow)
	order := make([]string, 0)

	for i := range predictions {
		p := &predictions[i]

		row, exists := byUser[p.UserID]
		if !exists {
			row = &model.LeaderboardRow{
				UserID:          p.UserID,
				Username:        p.Username,
				FirstPrediction: p.CreatedAt,
				LastPrediction:  p.CreatedAt,
			}
			byUser[p.UserID] = row
			order = append(order, p.UserID)
		}

		row.PredictionCount++
		if p.Score != nil {
			row.TotalScore += *p.Score
		}
		if p.IsCorrect != nil && *p.IsCorrect {
			row.CorrectPredictions++
		}
		if p.CreatedAt.Before(row.FirstPrediction) {
			row.FirstPrediction = p.CreatedAt
		}
		if p.CreatedAt.After(row.LastPrediction) {
			row.LastPrediction = p.CreatedAt
		}
	}

	rows := make([]model.LeaderboardRow, 0, len(byUser))
	for _, userID := range order {
		row := byUser[userID]

		if row.PredictionCount > 0 {
			row.Accuracy = float64(row.CorrectPredictions) / float64(row.PredictionCount) * 100
			row.AverageScore = float64(row.TotalScore) / float64(row.PredictionCount)
		}
		row.WeeksActive = weeksBetween(row.FirstPrediction, row.LastPrediction)

		rows = append(rows, *row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalScore != rows[j].TotalScore {
			return rows[i].TotalScore > rows[j].TotalScore
		}
		if rows[i].Accuracy != rows[j].Accuracy {
			return rows[i].Accuracy > rows[j].Accuracy
		}
		return rows[i].PredictionCount > rows[j].PredictionCount
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows
}

// PreviousWeekWinner somme les scores par utilisateur sur les prédictions de
// la fenêtre fournie (déjà filtrées sur la semaine précédente et sur
// score non null) et retourne le meilleur, avec sa première prédiction en
// guise de record représentatif. nil si la fenêtre est vide.
func PreviousWeekWinner(predictions []model.Prediction) *model.WeekWinner {
	type entry struct {
		winner model.WeekWinner
		seen   int
	}

	byUser := make(map[string]*entry)
	order := make([]string, 0)

	for i := range predictions {
		p := &predictions[i]
		if p.Score == nil {
			continue
		}

		e, exists := byUser[p.UserID]
		if !exists {
			e = &entry{winner: model.WeekWinner{Username: p.Username, Prediction: p}}
			byUser[p.UserID] = e
			order = append(order, p.UserID)
		}
		e.winner.Score += *p.Score
	}

	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return byUser[order[i]].winner.Score > byUser[order[j]].winner.Score
	})

	best := byUser[order[0]].winner
	return &best
}

// weeksBetween reproduit le "weeks active" du leaderboard :
// ceil((last-first)/7 jours), donc 0 pour un utilisateur à prédiction unique
func weeksBetween(first, last time.Time) int {
	if !last.After(first) {
		return 0
	}
	const week = 7 * 24 * time.Hour
	return int(math.Ceil(float64(last.Sub(first)) / float64(week)))
}
