package models

import (
	"fmt"
	"math"
)

// Points awarded per outcome
const (
	PointsWin  = 3
	PointsTie  = 1
	PointsLoss = 0
)

// PointsFor returns the leaderboard points for an outcome
func PointsFor(o Outcome) int {
	switch o {
	case OutcomeWin:
		return PointsWin
	case OutcomeTie:
		return PointsTie
	default:
		return PointsLoss
	}
}

// WeeklyScore is one player's tally for a single week
type WeeklyScore struct {
	Week   int `json:"week"`
	Points int `json:"points"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Add counts one outcome into the tally
func (ws *WeeklyScore) Add(o Outcome) {
	switch o {
	case OutcomeWin:
		ws.Wins++
	case OutcomeLoss:
		ws.Losses++
	case OutcomeTie:
		ws.Ties++
	default:
		return
	}
	ws.Points += PointsFor(o)
}

// Merge adds another tally into this one
func (ws *WeeklyScore) Merge(other WeeklyScore) {
	ws.Points += other.Points
	ws.Wins += other.Wins
	ws.Losses += other.Losses
	ws.Ties += other.Ties
}

// Decided returns the number of graded picks
func (ws *WeeklyScore) Decided() int {
	return ws.Wins + ws.Losses + ws.Ties
}

// Record returns the tally in "W-L-T" format
func (ws *WeeklyScore) Record() string {
	return fmt.Sprintf("%d-%d-%d", ws.Wins, ws.Losses, ws.Ties)
}

// WinPercentage counts ties as half a win, rounded to 3 places. Zero decided picks gives 0.
func (ws *WeeklyScore) WinPercentage() float64 {
	total := ws.Decided()
	if total == 0 {
		return 0
	}
	pct := (float64(ws.Wins) + 0.5*float64(ws.Ties)) / float64(total)
	return math.Round(pct*1000) / 1000
}

// PlayerStanding is one leaderboard row
type PlayerStanding struct {
	Player      string        `json:"player"`
	TotalPoints int           `json:"total_points"`
	Record      string        `json:"record"`
	WinPct      float64       `json:"win_pct"`
	Last3Points int           `json:"last3_points"`
	Last3Record string        `json:"last3_record"`
	Last5Points int           `json:"last5_points"`
	Last5Record string        `json:"last5_record"`
	Weekly      []WeeklyScore `json:"weekly"`
}
