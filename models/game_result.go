package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Total result values
const (
	TotalOver  = "over"
	TotalUnder = "under"
)

// GameResult is the final score of a game together with the line figures it was graded against.
// A nil winner or total result means a tie or push; a nil Spread or Total means the line was unavailable.
type GameResult struct {
	ID              primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Season          int                `json:"season" bson:"season"`
	Week            int                `json:"week" bson:"week"`
	HomeTeam        string             `json:"home_team" bson:"home_team"`
	AwayTeam        string             `json:"away_team" bson:"away_team"`
	HomeScore       int                `json:"home_score" bson:"home_score"`
	AwayScore       int                `json:"away_score" bson:"away_score"`
	Final           bool               `json:"final" bson:"final"`
	Spread          *float64           `json:"spread" bson:"spread"`
	Total           *float64           `json:"total" bson:"total"`
	MoneylineWinner *string            `json:"moneyline_winner" bson:"moneyline_winner"`
	SpreadWinner    *string            `json:"spread_winner" bson:"spread_winner"`
	TotalResult     *string            `json:"total_result" bson:"total_result"`
	LastUpdated     time.Time          `json:"last_updated" bson:"last_updated"`
}

// Key returns the "Away @ Home" label for the result
func (r *GameResult) Key() string {
	return GameKey(r.AwayTeam, r.HomeTeam)
}

// IsFinal returns true if the result can be used to grade picks
func (r *GameResult) IsFinal() bool {
	return r != nil && r.Final
}

// MoneylineWinnerIs returns true if the named team won outright
func (r *GameResult) MoneylineWinnerIs(team string) bool {
	return r.MoneylineWinner != nil && *r.MoneylineWinner == team
}

// SpreadWinnerIs returns true if the named team covered
func (r *GameResult) SpreadWinnerIs(team string) bool {
	return r.SpreadWinner != nil && *r.SpreadWinner == team
}

// TotalResultIs returns true if the total landed on the given side
func (r *GameResult) TotalResultIs(side string) bool {
	return r.TotalResult != nil && *r.TotalResult == side
}

// GradeScores fills the moneyline winner, spread winner and total result from the scores
// and whatever line figures are set. Spread is the home team's handicap.
func (r *GameResult) GradeScores() {
	r.MoneylineWinner = nil
	r.SpreadWinner = nil
	r.TotalResult = nil

	if r.HomeScore > r.AwayScore {
		r.MoneylineWinner = stringPtr(r.HomeTeam)
	} else if r.AwayScore > r.HomeScore {
		r.MoneylineWinner = stringPtr(r.AwayTeam)
	}

	if r.Spread != nil {
		homeWithSpread := float64(r.HomeScore) + *r.Spread
		away := float64(r.AwayScore)
		if homeWithSpread > away {
			r.SpreadWinner = stringPtr(r.HomeTeam)
		} else if away > homeWithSpread {
			r.SpreadWinner = stringPtr(r.AwayTeam)
		}
	}

	if r.Total != nil {
		points := float64(r.HomeScore + r.AwayScore)
		if points > *r.Total {
			r.TotalResult = stringPtr(TotalOver)
		} else if points < *r.Total {
			r.TotalResult = stringPtr(TotalUnder)
		}
	}
}

func stringPtr(s string) *string {
	return &s
}
