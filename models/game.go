package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game is one scheduled NFL game with the bookmaker lines captured for it
type Game struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Season       int                `json:"season" bson:"season"`
	Week         int                `json:"week" bson:"week"`
	HomeTeam     string             `json:"home_team" bson:"home_team"`
	AwayTeam     string             `json:"away_team" bson:"away_team"`
	CommenceTime string             `json:"commence_time" bson:"commence_time"`
	LineData     string             `json:"-" bson:"line_data,omitempty"` // raw bookmaker JSON, empty until odds are fetched
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Bookmaker is one sportsbook's markets for a game
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update,omitempty"`
	Markets    []Market `json:"markets"`
}

// Market is a single line offered by a bookmaker (h2h, spreads, totals)
type Market struct {
	Key      string          `json:"key"`
	Outcomes []MarketOutcome `json:"outcomes"`
}

// MarketOutcome is one side of a market. Point is nil for h2h.
type MarketOutcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

// Market keys used by the odds provider
const (
	MarketMoneyline = "h2h"
	MarketSpreads   = "spreads"
	MarketTotals    = "totals"
)

// Key returns the "Away @ Home" label for the game
func (g *Game) Key() string {
	return GameKey(g.AwayTeam, g.HomeTeam)
}

// GameKey builds the "Away @ Home" label
func GameKey(away, home string) string {
	return fmt.Sprintf("%s @ %s", away, home)
}

// ParseGameKey splits an "Away @ Home" label
func ParseGameKey(key string) (away, home string, ok bool) {
	parts := strings.Split(key, " @ ")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// GameKeyFromValue finds the game a pick value names: either the whole value is
// "Away @ Home", or it ends in a parenthesised one as in "Over 47.5 (Away @ Home)"
func GameKeyFromValue(value string) (away, home string, ok bool) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, ")") {
		if open := strings.LastIndex(value, "("); open >= 0 {
			return ParseGameKey(strings.TrimSpace(value[open+1 : len(value)-1]))
		}
	}
	return ParseGameKey(value)
}

// HasTeam returns true if the team plays in this game
func (g *Game) HasTeam(team string) bool {
	return team != "" && (g.HomeTeam == team || g.AwayTeam == team)
}

// HasOdds returns true if line data has been captured
func (g *Game) HasOdds() bool {
	return g.LineData != ""
}

// Bookmakers decodes the stored line data. An empty blob decodes to no bookmakers.
func (g *Game) Bookmakers() ([]Bookmaker, error) {
	if g.LineData == "" {
		return []Bookmaker{}, nil
	}
	var books []Bookmaker
	if err := json.Unmarshal([]byte(g.LineData), &books); err != nil {
		return nil, fmt.Errorf("failed to decode line data for %s: %w", g.Key(), err)
	}
	return books, nil
}

// SetBookmakers stores bookmakers as the game's line data
func (g *Game) SetBookmakers(books []Bookmaker) error {
	if len(books) == 0 {
		g.LineData = ""
		return nil
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to encode line data for %s: %w", g.Key(), err)
	}
	g.LineData = string(data)
	return nil
}

// FindBookmaker returns the bookmaker with the given key or nil
func FindBookmaker(books []Bookmaker, key string) *Bookmaker {
	for i := range books {
		if books[i].Key == key {
			return &books[i]
		}
	}
	return nil
}

// Market returns the market with the given key or nil
func (b *Bookmaker) Market(key string) *Market {
	for i := range b.Markets {
		if b.Markets[i].Key == key {
			return &b.Markets[i]
		}
	}
	return nil
}

// Point returns the point of the named outcome, nil when absent
func (m *Market) Point(name string) *float64 {
	for _, o := range m.Outcomes {
		if o.Name == name {
			return o.Point
		}
	}
	return nil
}
