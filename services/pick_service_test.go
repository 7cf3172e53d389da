package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfl-pickem-go/models"
)

type pickFixture struct {
	players *fakePlayers
	games   *fakeGames
	picks   *fakePicks
	results *fakeResults
	locks   fakeLocks
	cache   *fakeCache
	svc     *PickService
}

func newPickFixture() *pickFixture {
	f := &pickFixture{
		players: &fakePlayers{},
		games:   &fakeGames{},
		picks:   &fakePicks{},
		results: newFakeResults(),
		locks:   fakeLocks{},
		cache:   newFakeCache(),
	}
	f.svc = NewPickService(PickServiceDeps{
		Picks:   f.picks,
		Players: f.players,
		Games:   f.games,
		Results: f.results,
		Locks:   f.locks,
		NFLPlayers: fakeNFLPlayers{
			{Name: "Travis Kelce", Position: "TE", Team: "KC", Active: true},
			{Name: "Josh Allen", Position: "QB", Team: "BUF", Active: true},
			{Name: "Retired Guy", Position: "WR", Team: "KC", Active: false},
		},
		Cache: f.cache,
	})
	f.games.add(testSeason, 3, "BUF", "KC")
	f.games.add(testSeason, 3, "DAL", "PHI")
	return f
}

func TestSubmitPickCreatesPlayerAndLinksGame(t *testing.T) {
	f := newPickFixture()

	pick, err := f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player:   " Alice ",
		Week:     "2025-3",
		Category: "moneyline",
		Value:    "KC",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, pick.Week)
	assert.Equal(t, models.CategoryMoneyline, pick.Category)
	assert.Equal(t, "KC", pick.Value)
	require.True(t, pick.HasGame())
	assert.Equal(t, f.games.games[0].ID, *pick.GameID)

	player, _ := f.players.FindByName(context.Background(), "Alice")
	require.NotNil(t, player)
	assert.Equal(t, player.ID, pick.PlayerID)
}

func TestSubmitPickTotalLinkedByGameKey(t *testing.T) {
	f := newPickFixture()

	pick, err := f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player: "Alice", Week: "3", Category: "Over", Value: "Over", Game: "DAL @ PHI",
	})
	require.NoError(t, err)
	require.True(t, pick.HasGame())
	assert.Equal(t, f.games.games[1].ID, *pick.GameID)

	unlinked, err := f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player: "Alice", Week: "3", Category: "Under", Value: "Under",
	})
	require.NoError(t, err)
	assert.False(t, unlinked.HasGame())
}

func TestSubmitPickTotalNamingItsGame(t *testing.T) {
	f := newPickFixture()

	pick, err := f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player: "Alice", Week: "3", Category: "Over", Value: "Over 44.5 (BUF @ KC)",
	})
	require.NoError(t, err)
	require.True(t, pick.HasGame())
	assert.Equal(t, f.games.games[0].ID, *pick.GameID)
	assert.Equal(t, "Over 44.5 (BUF @ KC)", pick.Value)
}

func TestSubmitPickExplicitGameMustMatch(t *testing.T) {
	tests := map[string]struct {
		sub     PickSubmission
		wantErr error
	}{
		"unknown game":         {PickSubmission{Player: "Alice", Week: "3", Category: "Over", Value: "Over", Game: "BUF @ KCC"}, ErrInvalidPick},
		"team not in game":     {PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "DAL", Game: "BUF @ KC"}, ErrInvalidPick},
		"underdog not in game": {PickSubmission{Player: "Alice", Week: "3", Category: "Underdog", Value: "PHI", Game: "BUF @ KC"}, ErrInvalidPick},
		"team in game":         {PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "KC", Game: "BUF @ KC"}, nil},
		"total in game":        {PickSubmission{Player: "Alice", Week: "3", Category: "Under", Value: "Under", Game: "DAL @ PHI"}, nil},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newPickFixture()
			pick, err := f.svc.SubmitPick(context.Background(), testSeason, tc.sub)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, f.picks.picks)
				assert.Empty(t, f.players.players)
				return
			}
			require.NoError(t, err)
			require.True(t, pick.HasGame())
		})
	}
}

func TestSubmitPickValidation(t *testing.T) {
	f := newPickFixture()

	tests := map[string]struct {
		sub     PickSubmission
		wantErr error
	}{
		"missing player":   {PickSubmission{Week: "3", Category: "Moneyline", Value: "KC"}, ErrInvalidPick},
		"missing value":    {PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline"}, ErrInvalidPick},
		"missing week":     {PickSubmission{Player: "Alice", Category: "Moneyline", Value: "KC"}, ErrInvalidPick},
		"bad week":         {PickSubmission{Player: "Alice", Week: "week three", Category: "Moneyline", Value: "KC"}, ErrInvalidPick},
		"unknown category": {PickSubmission{Player: "Alice", Week: "3", Category: "Parlay", Value: "KC"}, ErrInvalidCategory},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.SubmitPick(context.Background(), testSeason, tc.sub)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Empty(t, f.picks.picks)
}

func TestSubmitPickLockedWeek(t *testing.T) {
	f := newPickFixture()
	f.locks[[2]int{testSeason, 3}] = &models.WeekLock{Season: testSeason, Week: 3, LockedAt: time.Now()}

	_, err := f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player: "Alice", Week: "3", Category: "Moneyline", Value: "KC",
	})
	assert.ErrorIs(t, err, ErrWeekLocked)
	assert.Empty(t, f.picks.picks)

	// other weeks stay open
	_, err = f.svc.SubmitPick(context.Background(), testSeason, PickSubmission{
		Player: "Alice", Week: "4", Category: "Moneyline", Value: "KC",
	})
	assert.NoError(t, err)
}

func TestSubmitPickTakenByAnotherPlayer(t *testing.T) {
	f := newPickFixture()
	ctx := context.Background()

	_, err := f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "KC"})
	require.NoError(t, err)

	_, err = f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Bob", Week: "3", Category: "Moneyline", Value: "KC"})
	assert.ErrorIs(t, err, ErrPickTaken)

	// the same team in a different category is fine
	_, err = f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Bob", Week: "3", Category: "Favorite", Value: "KC"})
	assert.NoError(t, err)
}

func TestSubmitPickResubmissionReplacesValue(t *testing.T) {
	f := newPickFixture()
	ctx := context.Background()

	first, err := f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "KC"})
	require.NoError(t, err)
	// picking your own value again is not a conflict
	_, err = f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "KC"})
	require.NoError(t, err)

	second, err := f.svc.SubmitPick(ctx, testSeason, PickSubmission{Player: "Alice", Week: "3", Category: "Moneyline", Value: "PHI"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, f.picks.picks, 1)
	assert.Equal(t, "PHI", f.picks.picks[0].Value)
	assert.Equal(t, f.games.games[1].ID, *f.picks.picks[0].GameID)
}

func TestGetWeekPicksAndResults(t *testing.T) {
	f := newPickFixture()
	ctx := context.Background()

	alice := f.players.add("Alice")
	bob := f.players.add("Bob")
	f.picks.add(testSeason, 3, alice, models.CategoryMoneyline, "KC", nil)
	f.picks.add(testSeason, 3, alice, models.CategoryTouchdownScorer, "Travis Kelce", nil)
	f.picks.add(testSeason, 3, bob, models.CategoryMoneyline, "PHI", nil)
	f.picks.add(testSeason, 4, bob, models.CategoryMoneyline, "DAL", nil)
	f.results.add(testSeason, 3, alice, models.CategoryMoneyline, models.OutcomeWin)
	f.results.add(testSeason, 3, bob, models.CategoryMoneyline, models.OutcomeLoss)

	picks, err := f.svc.GetWeekPicks(ctx, testSeason, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{
		"Alice": {"Moneyline": "KC", "Touchdown Scorer": "Travis Kelce"},
		"Bob":   {"Moneyline": "PHI"},
	}, picks)

	results, err := f.svc.GetWeekResults(ctx, testSeason, 3)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]models.PickOutcome{
		"Alice": {
			"Moneyline":        {Pick: "KC", Outcome: "win"},
			"Touchdown Scorer": {Pick: "Travis Kelce", Outcome: "pending"},
		},
		"Bob": {"Moneyline": {Pick: "PHI", Outcome: "loss"}},
	}, results)

	empty, err := f.svc.GetWeekPicks(ctx, testSeason, 9)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecordManualResult(t *testing.T) {
	f := newPickFixture()
	ctx := context.Background()

	carol := f.players.add("Carol")
	f.picks.add(testSeason, 3, carol, models.CategoryTouchdownScorer, "Travis Kelce", nil)

	result, err := f.svc.RecordManualResult(ctx, testSeason, ManualResult{
		Player: "Carol", Week: 3, Category: "Touchdown Scorer", Outcome: "win",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeWin, result.Outcome)
	assert.Equal(t, models.OutcomeWin, f.results.get(testSeason, 3, carol, models.CategoryTouchdownScorer).Outcome)
	assert.Equal(t, []int{testSeason}, f.cache.invalidations)

	// overriding replaces the outcome
	_, err = f.svc.RecordManualResult(ctx, testSeason, ManualResult{
		Player: "Carol", Week: 3, Category: "Touchdown Scorer", Outcome: "loss",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeLoss, f.results.get(testSeason, 3, carol, models.CategoryTouchdownScorer).Outcome)
	assert.Equal(t, 1, f.results.count())
}

func TestRecordManualResultErrors(t *testing.T) {
	f := newPickFixture()
	carol := f.players.add("Carol")
	f.picks.add(testSeason, 3, carol, models.CategoryTouchdownScorer, "Travis Kelce", nil)

	tests := map[string]struct {
		mr      ManualResult
		wantErr error
	}{
		"unknown outcome":  {ManualResult{Player: "Carol", Week: 3, Category: "Touchdown Scorer", Outcome: "push"}, ErrInvalidOutcome},
		"pending outcome":  {ManualResult{Player: "Carol", Week: 3, Category: "Touchdown Scorer", Outcome: "pending"}, ErrInvalidOutcome},
		"unknown player":   {ManualResult{Player: "Dana", Week: 3, Category: "Touchdown Scorer", Outcome: "win"}, ErrPlayerNotFound},
		"no such pick":     {ManualResult{Player: "Carol", Week: 3, Category: "Moneyline", Outcome: "win"}, ErrPickNotFound},
		"other week":       {ManualResult{Player: "Carol", Week: 4, Category: "Touchdown Scorer", Outcome: "win"}, ErrPickNotFound},
		"unknown category": {ManualResult{Player: "Carol", Week: 3, Category: "Parlay", Outcome: "win"}, ErrInvalidCategory},
		"missing week":     {ManualResult{Player: "Carol", Category: "Touchdown Scorer", Outcome: "win"}, ErrInvalidPick},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.RecordManualResult(context.Background(), testSeason, tc.mr)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
	assert.Zero(t, f.results.count())
	assert.Empty(t, f.cache.invalidations)
}

func TestGetWeekLock(t *testing.T) {
	f := newPickFixture()
	f.locks[[2]int{testSeason, 5}] = &models.WeekLock{Season: testSeason, Week: 5, LockedBy: "admin"}

	lock, err := f.svc.GetWeekLock(context.Background(), testSeason, 5)
	require.NoError(t, err)
	assert.True(t, lock.Status(5).Locked)

	lock, err = f.svc.GetWeekLock(context.Background(), testSeason, 6)
	require.NoError(t, err)
	assert.Nil(t, lock)
	assert.False(t, lock.Status(6).Locked)
}

func TestGetStarters(t *testing.T) {
	f := newPickFixture()

	players, err := f.svc.GetStarters(context.Background(), []string{"KC"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Travis Kelce", players[0].Name)

	none, err := f.svc.GetStarters(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	unknown, err := f.svc.GetStarters(context.Background(), []string{"XYZ"})
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}
