package model

import (
	"time"
)

// GuessKind distingue les deux formes historiques de prédiction :
// fourchette [min, max] (forme courante) ou prix unique (forme legacy)
type GuessKind int

const (
	GuessNone GuessKind = iota
	GuessRange
	GuessPoint
)

// Prediction est la prédiction d'un utilisateur pour une semaine donnée.
// Une seule par (user, semaine), éditée sur place jusqu'au settlement.
type Prediction struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Username     string     `json:"username"`
	PredictedMin *float64   `json:"predictedMin,omitempty"`
	PredictedMax *float64   `json:"predictedMax,omitempty"`
	// PredictedPrice est l'ancien champ "prix unique", conservé en lecture
	// seule le temps de la migration
	PredictedPrice *float64  `json:"predictedPrice,omitempty"`
	WeekStartDate  time.Time `json:"weekStartDate"`
	WeekEndDate    time.Time `json:"weekEndDate"`

	// Champs de settlement, null tant que la passe de scoring n'est pas passée
	ActualPrice   *float64 `json:"actualPrice,omitempty"`
	IsCorrect     *bool    `json:"isCorrect,omitempty"`
	Score         *int     `json:"score,omitempty"`
	RangeSize     *float64 `json:"rangeSize,omitempty"`
	DayMultiplier *int     `json:"dayMultiplier,omitempty"`

	History []RevisionEntry `json:"predictionHistory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RevisionEntry est une entrée du journal de révisions : chaque POST/PUT en
// ajoute une, jamais supprimée
type RevisionEntry struct {
	PredictedMin  float64   `json:"predictedMin"`
	PredictedMax  float64   `json:"predictedMax"`
	DayMultiplier int       `json:"dayMultiplier"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Kind retourne la variante de la prédiction
func (p *Prediction) Kind() GuessKind {
	if p.PredictedMin != nil && p.PredictedMax != nil {
		return GuessRange
	}
	if p.PredictedPrice != nil {
		return GuessPoint
	}
	return GuessNone
}

// IsSettled indique si la passe de scoring est déjà passée sur cette
// prédiction ; une prédiction settled n'est plus éditable
func (p *Prediction) IsSettled() bool {
	return p.ActualPrice != nil
}

// Width retourne la largeur de la fourchette (0 pour la forme legacy)
func (p *Prediction) Width() float64 {
	if p.Kind() != GuessRange {
		return 0
	}
	return *p.PredictedMax - *p.PredictedMin
}
