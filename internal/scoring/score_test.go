package scoring

import (
	"testing"
	"time"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func i(v int) *int { return &v }

func TestComputeSettlementWeekExample(t *testing.T) {
	// Clôture du vendredi : 245.00
	const actual = 245.0

	chris := rangePrediction(243, 247) // largeur 4, correcte, soumise lundi
	chris.DayMultiplier = i(5)
	dana := rangePrediction(230, 260) // largeur 30, correcte, soumise vendredi
	dana.DayMultiplier = i(1)
	eli := rangePrediction(250, 260) // incorrecte, soumise mardi
	eli.DayMultiplier = i(3)

	batch := []*model.Prediction{chris, dana, eli}
	narrowest := NarrowestCorrectRange(batch, actual)

	s, ok := ComputeSettlement(chris, actual, narrowest)
	require.True(t, ok)
	assert.True(t, s.IsCorrect)
	assert.Equal(t, (1+10+30)*5, s.Score) // 205
	assert.Equal(t, 4.0, s.RangeSize)
	assert.Equal(t, 5, s.DayMultiplier)
	assert.Equal(t, actual, s.ActualPrice)

	s, ok = ComputeSettlement(dana, actual, narrowest)
	require.True(t, ok)
	assert.True(t, s.IsCorrect)
	assert.Equal(t, 11, s.Score) // correcte mais pas la plus serrée

	s, ok = ComputeSettlement(eli, actual, narrowest)
	require.True(t, ok)
	assert.False(t, s.IsCorrect)
	assert.Equal(t, 3, s.Score) // participation seule × 3
}

func TestComputeSettlementNarrowestTieBothGetBonus(t *testing.T) {
	a := rangePrediction(243, 247)
	a.DayMultiplier = i(1)
	b := rangePrediction(244, 248)
	b.DayMultiplier = i(2)

	batch := []*model.Prediction{a, b}
	narrowest := NarrowestCorrectRange(batch, 245)

	sa, ok := ComputeSettlement(a, 245, narrowest)
	require.True(t, ok)
	sb, ok := ComputeSettlement(b, 245, narrowest)
	require.True(t, ok)

	assert.Equal(t, 41, sa.Score)
	assert.Equal(t, 82, sb.Score)
}

func TestComputeSettlementMultiplierFallsBackToUpdatedAt(t *testing.T) {
	// Vieux document sans multiplicateur figé : résolu depuis updatedAt
	p := rangePrediction(240, 250)
	p.UpdatedAt = time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC) // lundi

	s, ok := ComputeSettlement(p, 245, NarrowestResult{})
	require.True(t, ok)
	assert.Equal(t, 5, s.DayMultiplier)
	assert.Equal(t, 11*5, s.Score)
}

func TestComputeSettlementSkipsLegacyPoint(t *testing.T) {
	p := &model.Prediction{PredictedPrice: f(245)}

	_, ok := ComputeSettlement(p, 245, NarrowestResult{})
	assert.False(t, ok)
}

func TestComputeSettlementNoBonusWhenIncorrect(t *testing.T) {
	// Une fourchette incorrecte ne touche jamais le bonus, même si sa
	// largeur égale le minimum du batch
	p := rangePrediction(250, 254)
	p.DayMultiplier = i(1)

	s, ok := ComputeSettlement(p, 245, NarrowestResult{Width: 4, Found: true})
	require.True(t, ok)
	assert.False(t, s.IsCorrect)
	assert.Equal(t, 1, s.Score)
}
