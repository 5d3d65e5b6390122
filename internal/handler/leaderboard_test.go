package handler

import (
	"encoding/json"
	"testing"

	model "github.com/baobaokim2008-bit/Tesla-prediction-game/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardResponseShape(t *testing.T) {
	payload, err := json.Marshal(leaderboardResponse{
		Success:    true,
		Data:       []model.LeaderboardRow{{UserID: "u1", Username: "Alice", Rank: 1}},
		TotalUsers: 1,
	})
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))

	// totalUsers et previousWeekWinner sont frères de data, pas imbriqués
	assert.Contains(t, decoded, "success")
	assert.Contains(t, decoded, "data")
	assert.Contains(t, decoded, "totalUsers")
	assert.Contains(t, decoded, "previousWeekWinner")

	var rows []model.LeaderboardRow
	require.NoError(t, json.Unmarshal(decoded["data"], &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].Username)

	// Sans gagnant la clé est présente et nulle, comme dans l'API d'origine
	assert.Equal(t, "null", string(decoded["previousWeekWinner"]))
}
