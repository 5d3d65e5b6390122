package scoring

import (
	"time"
)

// Points de base du barème
const (
	ParticipationPoint  = 1
	CorrectBonus        = 10
	NarrowestRangeBonus = 30
)

// DayMultiplier retourne le multiplicateur de points selon le jour de la
// soumission : plus on prédit tôt dans la semaine, plus le risque est
// récompensé. Lundi→5, mardi→3, mercredi→2, tout autre jour→1.
func DayMultiplier(t time.Time) int {
	switch t.Weekday() {
	case time.Monday:
		return 5
	case time.Tuesday:
		return 3
	case time.Wednesday:
		return 2
	default:
		return 1
	}
}
