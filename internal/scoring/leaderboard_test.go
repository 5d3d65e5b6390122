package scoring

import (
	"testing"
	"time"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b(v bool) *bool { return &v }

func pred(userID, username string, score *int, correct *bool, createdAt time.Time) model.Prediction {
	return model.Prediction{
		UserID:    userID,
		Username:  username,
		Score:     score,
		IsCorrect: correct,
		CreatedAt: createdAt,
	}
}

func TestBuildLeaderboardAggregation(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	rows := BuildLeaderboard([]model.Prediction{
		pred("u1", "Alice", i(205), b(true), base),
		pred("u1", "Alice", i(11), b(true), base.AddDate(0, 0, 7)),
		pred("u2", "Bob", i(3), b(false), base),
		// Prédiction non réglée : score compte 0, correct compte faux
		pred("u2", "Bob", nil, nil, base.AddDate(0, 0, 7)),
	})

	require.Len(t, rows, 2)

	alice := rows[0]
	assert.Equal(t, 1, alice.Rank)
	assert.Equal(t, "u1", alice.UserID)
	assert.Equal(t, 216, alice.TotalScore)
	assert.Equal(t, 2, alice.PredictionCount)
	assert.Equal(t, 2, alice.CorrectPredictions)
	assert.Equal(t, 100.0, alice.Accuracy)
	assert.Equal(t, 108.0, alice.AverageScore)
	assert.Equal(t, 1, alice.WeeksActive)

	bob := rows[1]
	assert.Equal(t, 2, bob.Rank)
	assert.Equal(t, 3, bob.TotalScore)
	assert.Equal(t, 2, bob.PredictionCount)
	assert.Equal(t, 0, bob.CorrectPredictions)
	assert.Equal(t, 0.0, bob.Accuracy)
}

func TestBuildLeaderboardSortTieBreakers(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// Même total : l'accuracy départage, puis le nombre de prédictions
	rows := BuildLeaderboard([]model.Prediction{
		pred("low-accuracy", "Low", i(10), b(true), base),
		pred("low-accuracy", "Low", i(0), b(false), base.Add(time.Hour)),
		pred("high-accuracy", "High", i(10), b(true), base),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, "high-accuracy", rows[0].UserID)
	assert.Equal(t, "low-accuracy", rows[1].UserID)
}

func TestBuildLeaderboardSingleUserWeeksActive(t *testing.T) {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	rows := BuildLeaderboard([]model.Prediction{
		pred("u1", "Solo", i(11), b(true), base),
	})

	require.Len(t, rows, 1)
	// Un utilisateur à prédiction unique n'a aucune semaine écoulée
	assert.Equal(t, 0, rows[0].WeeksActive)
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, BuildLeaderboard(nil))
}

func TestPreviousWeekWinner(t *testing.T) {
	base := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	winner := PreviousWeekWinner([]model.Prediction{
		pred("u1", "Alice", i(55), b(true), base),
		pred("u2", "Bob", i(205), b(true), base),
		pred("u3", "Carol", nil, nil, base),
	})

	require.NotNil(t, winner)
	assert.Equal(t, "Bob", winner.Username)
	assert.Equal(t, 205, winner.Score)
	require.NotNil(t, winner.Prediction)
	assert.Equal(t, "u2", winner.Prediction.UserID)
}

func TestPreviousWeekWinnerNilWhenNoSettledPredictions(t *testing.T) {
	base := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, PreviousWeekWinner(nil))
	assert.Nil(t, PreviousWeekWinner([]model.Prediction{
		pred("u1", "Alice", nil, nil, base),
	}))
}
