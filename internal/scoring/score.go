package scoring

import (
	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
)

// Settlement est le résultat du calcul de score d'une prédiction, destiné à
// être écrit sur le document puis plus jamais modifié
type Settlement struct {
	ActualPrice   float64
	IsCorrect     bool
	Score         int
	RangeSize     float64
	DayMultiplier int
}

// ComputeSettlement calcule le score final d'une prédiction :
//
//	base = 1 (participation)
//	+10 si la fourchette contient le prix de clôture
//	+30 si elle est ex æquo à la plus petite fourchette correcte du batch
//	score = base × multiplicateur du jour de la dernière soumission
//
// Le multiplicateur figé à la dernière édition fait foi ; à défaut (vieux
// documents) il est résolu depuis updatedAt. ok=false pour les documents
// sans fourchette (legacy non migré) : sautés, pas scorés.
func ComputeSettlement(p *model.Prediction, actualPrice float64, narrowest NarrowestResult) (Settlement, bool) {
	if p.Kind() != model.GuessRange {
		return Settlement{}, false
	}

	correct, _ := Evaluate(p, actualPrice)
	width := p.Width()

	base := ParticipationPoint
	if correct {
		base += CorrectBonus
		if narrowest.IsWinner(width) {
			base += NarrowestRangeBonus
		}
	}

	multiplier := 0
	if p.DayMultiplier != nil {
		multiplier = *p.DayMultiplier
	}
	if multiplier == 0 {
		multiplier = DayMultiplier(p.UpdatedAt)
	}

	return Settlement{
		ActualPrice:   actualPrice,
		IsCorrect:     correct,
		Score:         base * multiplier,
		RangeSize:     width,
		DayMultiplier: multiplier,
	}, true
}
