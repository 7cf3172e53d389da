package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfl-pickem-go/models"
)

func TestGetLeaderboardComputesAndCaches(t *testing.T) {
	ctx := context.Background()
	players := &fakePlayers{}
	results := newFakeResults()
	cache := newFakeCache()

	jaren := players.add("Jaren")
	kim := players.add("Kim")
	results.add(testSeason, 1, jaren, models.CategoryMoneyline, models.OutcomeWin)
	results.add(testSeason, 1, jaren, models.CategoryFavorite, models.OutcomeLoss)
	results.add(testSeason, 1, jaren, models.CategoryOver, models.OutcomeTie)
	results.add(testSeason, 1, kim, models.CategoryMoneyline, models.OutcomeWin)
	results.add(testSeason, 2, kim, models.CategoryMoneyline, models.OutcomeWin)
	results.add(testSeason-1, 1, jaren, models.CategoryMoneyline, models.OutcomeWin)

	svc := NewLeaderboardService(results, players, cache, nil)
	standings, err := svc.GetLeaderboard(ctx, testSeason)
	require.NoError(t, err)

	require.Len(t, standings, 2)
	assert.Equal(t, "Kim", standings[0].Player)
	assert.Equal(t, 6, standings[0].TotalPoints)
	assert.Equal(t, "Jaren", standings[1].Player)
	assert.Equal(t, 4, standings[1].TotalPoints)
	assert.Equal(t, "1-1-1", standings[1].Record)
	assert.Equal(t, 0.5, standings[1].WinPct)

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, standings, cache.standings[testSeason])
}

func TestGetLeaderboardServesCache(t *testing.T) {
	cache := newFakeCache()
	cached := []models.PlayerStanding{{Player: "Cached", TotalPoints: 99}}
	cache.standings[testSeason] = cached

	// the result store would panic if it were read
	svc := NewLeaderboardService(nil, nil, cache, nil)
	standings, err := svc.GetLeaderboard(context.Background(), testSeason)
	require.NoError(t, err)
	assert.Equal(t, cached, standings)
}

func TestGetLeaderboardEmptySeason(t *testing.T) {
	svc := NewLeaderboardService(newFakeResults(), &fakePlayers{}, nil, nil)

	standings, err := svc.GetLeaderboard(context.Background(), testSeason)
	require.NoError(t, err)
	assert.NotNil(t, standings)
	assert.Empty(t, standings)
}

func TestGetLeaderboardSkipsUnknownPlayers(t *testing.T) {
	players := &fakePlayers{}
	results := newFakeResults()
	known := players.add("Known")
	results.add(testSeason, 1, known, models.CategoryMoneyline, models.OutcomeWin)
	results.add(testSeason, 1, &models.Player{Name: "Ghost"}, models.CategoryMoneyline, models.OutcomeWin)

	standings, err := NewLeaderboardService(results, players, nil, nil).GetLeaderboard(context.Background(), testSeason)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Known", standings[0].Player)
}
