package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Outcome is the graded state of a pick. The zero value is OutcomeUnresolved,
// which is never written to storage; a pick without a stored Result is unresolved.
type Outcome string

const (
	OutcomeUnresolved Outcome = ""
	OutcomeWin        Outcome = "win"
	OutcomeLoss       Outcome = "loss"
	OutcomeTie        Outcome = "tie"
)

// PendingLabel is shown to clients for picks with no stored result
const PendingLabel = "pending"

// IsResolved returns true for win, loss and tie
func (o Outcome) IsResolved() bool {
	switch o {
	case OutcomeWin, OutcomeLoss, OutcomeTie:
		return true
	}
	return false
}

// Label returns the client-facing label, "pending" for unresolved
func (o Outcome) Label() string {
	if !o.IsResolved() {
		return PendingLabel
	}
	return string(o)
}

// ParseOutcome accepts win, loss or tie
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !o.IsResolved() {
		return OutcomeUnresolved, fmt.Errorf("invalid outcome %q", s)
	}
	return o, nil
}

// Result is the persisted outcome of one pick, unique per (season, week, player, category)
type Result struct {
	ID        primitive.ObjectID  `json:"-" bson:"_id,omitempty"`
	Season    int                 `json:"season" bson:"season"`
	Week      int                 `json:"week" bson:"week"`
	PlayerID  primitive.ObjectID  `json:"player_id" bson:"player_id"`
	Category  Category            `json:"category" bson:"category"`
	Outcome   Outcome             `json:"outcome" bson:"outcome"`
	PickID    *primitive.ObjectID `json:"pick_id,omitempty" bson:"pick_id,omitempty"`
	UpdatedAt time.Time           `json:"updated_at" bson:"updated_at"`
}

// NewResultForPick builds the Result row for a graded pick
func NewResultForPick(pick *Pick, outcome Outcome) *Result {
	pickID := pick.ID
	return &Result{
		Season:    pick.Season,
		Week:      pick.Week,
		PlayerID:  pick.PlayerID,
		Category:  pick.Category,
		Outcome:   outcome,
		PickID:    &pickID,
		UpdatedAt: time.Now(),
	}
}

// ScoredResult is the leaderboard's view of a Result: who, which week, what happened
type ScoredResult struct {
	Player  string
	Week    int
	Outcome Outcome
}

// PickOutcome is a pick value with its graded outcome label
type PickOutcome struct {
	Pick    string `json:"pick"`
	Outcome string `json:"outcome"`
}
