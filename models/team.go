package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NFLPlayer is a rostered player offered as a touchdown scorer option
type NFLPlayer struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Position string             `json:"position" bson:"position"`
	Team     string             `json:"team" bson:"team"`
	Active   bool               `json:"-" bson:"active"`
}

// DisplayName returns the player's name with position and team
func (p *NFLPlayer) DisplayName() string {
	return p.Name + " (" + p.Position + ", " + p.Team + ")"
}

// ParseTeamList splits a comma separated list of team abbreviations,
// upper-casing and dropping blanks
func ParseTeamList(s string) []string {
	var teams []string
	for _, part := range strings.Split(s, ",") {
		t := strings.ToUpper(strings.TrimSpace(part))
		if t != "" {
			teams = append(teams, t)
		}
	}
	return teams
}
