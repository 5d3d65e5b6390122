package model

import (
	"time"
)

// LeaderboardRow est l'agrégat par utilisateur, recalculé à chaque lecture
// du leaderboard (jamais persisté)
type LeaderboardRow struct {
	UserID             string    `json:"userId"`
	Username           string    `json:"username"`
	TotalScore         int       `json:"totalScore"`
	PredictionCount    int       `json:"predictionCount"`
	CorrectPredictions int       `json:"correctPredictions"`
	Accuracy           float64   `json:"accuracy"`
	AverageScore       float64   `json:"averageScore"`
	WeeksActive        int       `json:"weeksActive"`
	FirstPrediction    time.Time `json:"firstPrediction"`
	LastPrediction     time.Time `json:"lastPrediction"`
	Rank               int       `json:"rank"`
}

// WeekWinner est le gagnant de la semaine précédente, avec une prédiction
// représentative pour l'affichage de la fourchette et du prix réel
type WeekWinner struct {
	Username   string      `json:"username"`
	Score      int         `json:"score"`
	Prediction *Prediction `json:"prediction,omitempty"`
}
