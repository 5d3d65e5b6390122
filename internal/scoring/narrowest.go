package scoring

import (
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
)

// NarrowestResult est le résultat du scan de la plus petite fourchette sur
// un batch de settlement : la largeur minimale et toutes les prédictions
// correctes ex æquo à cette largeur
type NarrowestResult struct {
	Width   float64
	Winners []*model.Prediction
	Found   bool
}

// IsWinner indique si une largeur donnée est à égalité avec le minimum
func (n NarrowestResult) IsWinner(width float64) bool {
	return n.Found && width == n.Width
}

// NarrowestCorrectRange parcourt le batch et retourne la plus petite largeur
// parmi les prédictions correctes. Tous les ex æquo sont gagnants, aucun
// tie-break arbitraire. Found=false si aucune prédiction n'est correcte.
func NarrowestCorrectRange(predictions []*model.Prediction, actualPrice float64) NarrowestResult {
	var result NarrowestResult

	for _, p := range predictions {
		if p.Kind() != model.GuessRange {
			continue
		}

		correct, ok := Evaluate(p, actualPrice)
		if !ok || !correct {
			continue
		}

		width := p.Width()
		switch {
		case !result.Found || width < result.Width:
			result.Width = width
			result.Winners = []*model.Prediction{p}
			result.Found = true
		case width == result.Width:
			result.Winners = append(result.Winners, p)
		}
	}

	return result
}
