package scanner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows simule un résultat pgx : n lignes, puis une éventuelle erreur
// d'itération constatée après coup
type fakeRows struct {
	total   int
	current int
	iterErr error
	closed  bool
}

func (f *fakeRows) Next() bool {
	if f.current < f.total {
		f.current++
		return true
	}
	return false
}

func (f *fakeRows) Err() error { return f.iterErr }
func (f *fakeRows) Close()     { f.closed = true }

func (f *fakeRows) Scan(dest ...interface{}) error {
	for _, d := range dest {
		if s, ok := d.(*string); ok {
			*s = fmt.Sprintf("row-%d", f.current)
		}
	}
	return nil
}

func TestCollectPredictions(t *testing.T) {
	rows := &fakeRows{total: 3}

	predictions, err := CollectPredictions(rows)

	require.NoError(t, err)
	require.Len(t, predictions, 3)
	assert.Equal(t, "row-1", predictions[0].ID)
	assert.Equal(t, "row-3", predictions[2].ID)
	assert.True(t, rows.closed)
}

func TestCollectPredictionsEmpty(t *testing.T) {
	predictions, err := CollectPredictions(&fakeRows{})

	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestCollectPredictionsTruncatedResult(t *testing.T) {
	// Une erreur d'itération signifie un résultat partiel : il doit faire
	// échouer la lecture, pas passer pour un batch complet
	rows := &fakeRows{total: 2, iterErr: errors.New("connection reset")}

	predictions, err := CollectPredictions(rows)

	assert.Error(t, err)
	assert.Nil(t, predictions)
	assert.True(t, rows.closed)
}
