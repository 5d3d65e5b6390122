package scoring

import (
	"fmt"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
)

// Tolérance ±1% du chemin legacy "prix unique"
const pointTolerance = 0.01

// Evaluate juge une prédiction contre le prix de clôture réel.
// La forme fourchette est correcte ssi min <= actual <= max (bornes
// incluses, aucune tolérance). La forme legacy "prix unique" est jugée à
// ±1% du prix prédit. ok=false si le document n'a aucune forme exploitable.
func Evaluate(p *model.Prediction, actualPrice float64) (correct bool, ok bool) {
	switch p.Kind() {
	case model.GuessRange:
		return actualPrice >= *p.PredictedMin && actualPrice <= *p.PredictedMax, true
	case model.GuessPoint:
		tolerance := *p.PredictedPrice * pointTolerance
		diff := actualPrice - *p.PredictedPrice
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance, true
	default:
		return false, false
	}
}

// ValidateRange vérifie la politique de soumission d'une fourchette :
// bornes positives, min < max, largeur entre $1 et 100% du prix courant.
// Retourne une erreur lisible destinée au client.
func ValidateRange(min, max, currentPrice float64) error {
	if min <= 0 || max <= 0 {
		return fmt.Errorf("predicted prices must be positive")
	}
	if min >= max {
		return fmt.Errorf("minimum price must be less than maximum price")
	}

	width := max - min
	if width < 1.0 {
		return fmt.Errorf("prediction range must be at least $1 wide")
	}
	if currentPrice > 0 && width > currentPrice {
		return fmt.Errorf("prediction range cannot exceed 100%% of the current price ($%.2f)", currentPrice)
	}

	return nil
}
