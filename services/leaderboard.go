package services

import (
	"sort"

	"nfl-pickem-go/models"
)

// Recent form windows, in weeks
const (
	Last3Window = 3
	Last5Window = 5
)

// AggregateLeaderboard folds stored results into ranked standings.
// Players are ranked by total points, highest first; the sort is stable so equal
// totals keep the order in which the players were first seen. Unresolved entries
// are ignored and players with nothing resolved do not appear.
func AggregateLeaderboard(entries []models.ScoredResult) []models.PlayerStanding {
	byPlayer := make(map[string]map[int]*models.WeeklyScore)
	var order []string

	for _, entry := range entries {
		if !entry.Outcome.IsResolved() {
			continue
		}
		weeks, ok := byPlayer[entry.Player]
		if !ok {
			weeks = make(map[int]*models.WeeklyScore)
			byPlayer[entry.Player] = weeks
			order = append(order, entry.Player)
		}
		ws, ok := weeks[entry.Week]
		if !ok {
			ws = &models.WeeklyScore{Week: entry.Week}
			weeks[entry.Week] = ws
		}
		ws.Add(entry.Outcome)
	}

	standings := make([]models.PlayerStanding, 0, len(order))
	for _, player := range order {
		standings = append(standings, buildStanding(player, byPlayer[player]))
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalPoints > standings[j].TotalPoints
	})

	return standings
}

func buildStanding(player string, weeks map[int]*models.WeeklyScore) models.PlayerStanding {
	weekly := make([]models.WeeklyScore, 0, len(weeks))
	for _, ws := range weeks {
		weekly = append(weekly, *ws)
	}
	sort.Slice(weekly, func(i, j int) bool {
		return weekly[i].Week < weekly[j].Week
	})

	season := sumWeeks(weekly)
	last3 := sumWeeks(latestWeeks(weekly, Last3Window))
	last5 := sumWeeks(latestWeeks(weekly, Last5Window))

	return models.PlayerStanding{
		Player:      player,
		TotalPoints: season.Points,
		Record:      season.Record(),
		WinPct:      season.WinPercentage(),
		Last3Points: last3.Points,
		Last3Record: last3.Record(),
		Last5Points: last5.Points,
		Last5Record: last5.Record(),
		Weekly:      weekly,
	}
}

// latestWeeks returns the last n entries of weeks sorted ascending
func latestWeeks(weekly []models.WeeklyScore, n int) []models.WeeklyScore {
	if len(weekly) <= n {
		return weekly
	}
	return weekly[len(weekly)-n:]
}

func sumWeeks(weekly []models.WeeklyScore) models.WeeklyScore {
	var total models.WeeklyScore
	for _, ws := range weekly {
		total.Merge(ws)
	}
	return total
}
