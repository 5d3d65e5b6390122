package scoring

import (
	"testing"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrowestCorrectRange(t *testing.T) {
	narrow := rangePrediction(243, 247)  // largeur 4, correcte
	wide := rangePrediction(230, 260)    // largeur 30, correcte
	missed := rangePrediction(250, 260)  // largeur 10, incorrecte

	result := NarrowestCorrectRange([]*model.Prediction{wide, narrow, missed}, 245)

	require.True(t, result.Found)
	assert.Equal(t, 4.0, result.Width)
	require.Len(t, result.Winners, 1)
	assert.Same(t, narrow, result.Winners[0])
}

func TestNarrowestCorrectRangeTies(t *testing.T) {
	// Deux fourchettes correctes de même largeur : toutes deux gagnantes
	a := rangePrediction(243, 247)
	b := rangePrediction(244, 248)
	wide := rangePrediction(200, 300)

	result := NarrowestCorrectRange([]*model.Prediction{a, wide, b}, 245)

	require.True(t, result.Found)
	assert.Equal(t, 4.0, result.Width)
	assert.Len(t, result.Winners, 2)
	assert.True(t, result.IsWinner(4.0))
	assert.False(t, result.IsWinner(100.0))
}

func TestNarrowestCorrectRangeNoneCorrect(t *testing.T) {
	result := NarrowestCorrectRange([]*model.Prediction{
		rangePrediction(250, 260),
		rangePrediction(270, 280),
	}, 245)

	assert.False(t, result.Found)
	assert.False(t, result.IsWinner(10.0))
}

func TestNarrowestCorrectRangeSkipsLegacy(t *testing.T) {
	// Les prédictions legacy "prix unique" ne concourent pas au bonus
	legacy := &model.Prediction{PredictedPrice: f(245)}
	ranged := rangePrediction(240, 250)

	result := NarrowestCorrectRange([]*model.Prediction{legacy, ranged}, 245)

	require.True(t, result.Found)
	require.Len(t, result.Winners, 1)
	assert.Same(t, ranged, result.Winners[0])
}

func TestNarrowestCorrectRangeEmptyBatch(t *testing.T) {
	result := NarrowestCorrectRange(nil, 245)
	assert.False(t, result.Found)
}
