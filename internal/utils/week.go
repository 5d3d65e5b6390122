package utils

import (
	"time"
)

// WeekWindowFor retourne la fenêtre de prédiction de la semaine contenant t :
// lundi 00:00:00 → vendredi 23:59:59.999, dans la timezone de t.
// Seule source de vérité pour les bornes de semaine, utilisée partout.
func WeekWindowFor(t time.Time) (time.Time, time.Time) {
	daysToMonday := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		daysToMonday = 6
	}

	start := time.Date(t.Year(), t.Month(), t.Day()-daysToMonday, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 4)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())

	return start, end
}

// PreviousWeekWindow retourne la semaine calendaire précédant celle de t :
// lundi 00:00:00 → dimanche 23:59:59.999. Utilisée pour la recherche du
// gagnant de la semaine passée.
func PreviousWeekWindow(t time.Time) (time.Time, time.Time) {
	currentStart, _ := WeekWindowFor(t)

	start := currentStart.AddDate(0, 0, -7)
	end := start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999_000_000, end.Location())

	return start, end
}
