package services

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfl-pickem-go/models"
)

func scored(player string, week int, outcome models.Outcome) models.ScoredResult {
	return models.ScoredResult{Player: player, Week: week, Outcome: outcome}
}

func TestAggregateLeaderboardSingleWeek(t *testing.T) {
	standings := AggregateLeaderboard([]models.ScoredResult{
		scored("Jaren", 1, models.OutcomeWin),
		scored("Jaren", 1, models.OutcomeLoss),
		scored("Jaren", 1, models.OutcomeTie),
	})

	require.Len(t, standings, 1)
	s := standings[0]
	assert.Equal(t, "Jaren", s.Player)
	assert.Equal(t, 4, s.TotalPoints)
	assert.Equal(t, "1-1-1", s.Record)
	assert.Equal(t, 0.5, s.WinPct)
	assert.Equal(t, 4, s.Last3Points)
	assert.Equal(t, "1-1-1", s.Last3Record)
	assert.Equal(t, 4, s.Last5Points)
	require.Len(t, s.Weekly, 1)
	assert.Equal(t, models.WeeklyScore{Week: 1, Points: 4, Wins: 1, Losses: 1, Ties: 1}, s.Weekly[0])
}

func TestAggregateLeaderboardOrdering(t *testing.T) {
	standings := AggregateLeaderboard([]models.ScoredResult{
		scored("Avery", 1, models.OutcomeWin),
		scored("Blake", 1, models.OutcomeWin),
		scored("Casey", 1, models.OutcomeWin),
		scored("Blake", 2, models.OutcomeWin),
		scored("Avery", 2, models.OutcomeLoss),
		scored("Casey", 2, models.OutcomeLoss),
	})

	require.Len(t, standings, 3)
	// equal totals keep first-seen order
	assert.Equal(t, []string{"Blake", "Avery", "Casey"}, []string{standings[0].Player, standings[1].Player, standings[2].Player})
	assert.Equal(t, 6, standings[0].TotalPoints)
	assert.Equal(t, 3, standings[1].TotalPoints)
	assert.Equal(t, 3, standings[2].TotalPoints)
}

func TestAggregateLeaderboardIgnoresUnresolved(t *testing.T) {
	standings := AggregateLeaderboard([]models.ScoredResult{
		scored("Avery", 1, models.OutcomeUnresolved),
		scored("Blake", 1, models.OutcomeWin),
		scored("Blake", 1, models.OutcomeUnresolved),
	})

	require.Len(t, standings, 1)
	assert.Equal(t, "Blake", standings[0].Player)
	assert.Equal(t, "1-0-0", standings[0].Record)
	assert.Equal(t, 1.0, standings[0].WinPct)
}

func TestAggregateLeaderboardEmpty(t *testing.T) {
	standings := AggregateLeaderboard(nil)
	assert.NotNil(t, standings)
	assert.Empty(t, standings)
}

func TestAggregateLeaderboardRecentWindows(t *testing.T) {
	var entries []models.ScoredResult
	for week := 1; week <= 7; week++ {
		entries = append(entries, scored("Avery", week, models.OutcomeWin))
	}
	// week 1 also carries a tie and a loss
	entries = append(entries, scored("Avery", 1, models.OutcomeTie), scored("Avery", 1, models.OutcomeLoss))

	standings := AggregateLeaderboard(entries)
	require.Len(t, standings, 1)
	s := standings[0]

	assert.Equal(t, 7*3+1, s.TotalPoints)
	assert.Equal(t, "7-1-1", s.Record)
	assert.Equal(t, 0.833, s.WinPct)
	assert.Equal(t, 9, s.Last3Points)
	assert.Equal(t, "3-0-0", s.Last3Record)
	assert.Equal(t, 15, s.Last5Points)
	assert.Equal(t, "5-0-0", s.Last5Record)

	require.Len(t, s.Weekly, 7)
	for i, ws := range s.Weekly {
		assert.Equal(t, i+1, ws.Week)
	}
}

func TestAggregateLeaderboardWindowsSkipGaps(t *testing.T) {
	// windows cover the player's latest weeks with results, not calendar weeks
	standings := AggregateLeaderboard([]models.ScoredResult{
		scored("Avery", 9, models.OutcomeWin),
		scored("Avery", 1, models.OutcomeWin),
		scored("Avery", 4, models.OutcomeLoss),
		scored("Avery", 2, models.OutcomeTie),
	})

	require.Len(t, standings, 1)
	s := standings[0]
	assert.Equal(t, 7, s.TotalPoints)
	assert.Equal(t, 4, s.Last3Points)
	assert.Equal(t, "1-1-1", s.Last3Record)
	assert.Equal(t, 7, s.Last5Points)
	assert.Equal(t, []int{1, 2, 4, 9}, []int{s.Weekly[0].Week, s.Weekly[1].Week, s.Weekly[2].Week, s.Weekly[3].Week})
}

func TestAggregateLeaderboardPointLaws(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	outcomes := []models.Outcome{models.OutcomeWin, models.OutcomeLoss, models.OutcomeTie, models.OutcomeUnresolved}

	type tally struct{ w, l, t int }
	want := map[string]*tally{}
	var entries []models.ScoredResult
	for week := 1; week <= 12; week++ {
		for p := 0; p < 8; p++ {
			// later players skip more weeks
			if rng.IntN(8) < p {
				continue
			}
			player := fmt.Sprintf("player-%d", p)
			for n := rng.IntN(4); n >= 0; n-- {
				o := outcomes[rng.IntN(len(outcomes))]
				entries = append(entries, scored(player, week, o))
				if want[player] == nil {
					want[player] = &tally{}
				}
				switch o {
				case models.OutcomeWin:
					want[player].w++
				case models.OutcomeLoss:
					want[player].l++
				case models.OutcomeTie:
					want[player].t++
				}
			}
		}
	}

	standings := AggregateLeaderboard(entries)
	require.NotEmpty(t, standings)

	for i, s := range standings {
		if i > 0 {
			assert.GreaterOrEqual(t, standings[i-1].TotalPoints, s.TotalPoints)
		}
		tl := want[s.Player]
		require.NotNil(t, tl, s.Player)
		assert.Equal(t, 3*tl.w+tl.t, s.TotalPoints, s.Player)
		assert.Equal(t, fmt.Sprintf("%d-%d-%d", tl.w, tl.l, tl.t), s.Record, s.Player)

		weekly := append([]models.WeeklyScore(nil), s.Weekly...)
		sort.Slice(weekly, func(a, b int) bool { return weekly[a].Week < weekly[b].Week })
		sum := 0
		for _, ws := range weekly {
			assert.Positive(t, ws.Decided(), "%s week %d", s.Player, ws.Week)
			sum += ws.Points
		}
		assert.Equal(t, s.TotalPoints, sum, s.Player)

		for _, window := range []struct {
			size   int
			points int
		}{{3, s.Last3Points}, {5, s.Last5Points}} {
			if len(weekly) < window.size {
				assert.Equal(t, s.TotalPoints, window.points, s.Player)
				continue
			}
			earlier := 0
			for _, ws := range weekly[:len(weekly)-window.size] {
				earlier += ws.Points
			}
			assert.Equal(t, s.TotalPoints, window.points+earlier, "%s last%d", s.Player, window.size)
		}
	}
}
