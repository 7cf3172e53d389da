package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfl-pickem-go/models"
)

func TestLeaderboardKey(t *testing.T) {
	assert.Equal(t, "leaderboard:2025", LeaderboardKey(2025))
}

func TestEncodeDecodeStandings(t *testing.T) {
	standings := []models.PlayerStanding{{
		Player:      "Jaren",
		TotalPoints: 4,
		Record:      "1-1-1",
		WinPct:      0.5,
		Last3Points: 4,
		Last3Record: "1-1-1",
		Last5Points: 4,
		Last5Record: "1-1-1",
		Weekly:      []models.WeeklyScore{{Week: 1, Points: 4, Wins: 1, Losses: 1, Ties: 1}},
	}}

	data, err := EncodeStandings(standings)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"win_pct":0.5`)

	decoded, err := DecodeStandings(data)
	require.NoError(t, err)
	assert.Equal(t, standings, decoded)
}

func TestEncodeDecodeEmpty(t *testing.T) {
	data, err := EncodeStandings(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	decoded, err := DecodeStandings([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)

	_, err = DecodeStandings([]byte("{"))
	assert.Error(t, err)
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	_, err := NewRedisCache(t.Context(), "not a url", 0)
	assert.Error(t, err)
}
