package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the betting line a pick is made against
type Category string

const (
	CategoryMoneyline       Category = "Moneyline"
	CategoryFavorite        Category = "Favorite"
	CategoryUnderdog        Category = "Underdog"
	CategoryOver            Category = "Over"
	CategoryUnder           Category = "Under"
	CategoryTouchdownScorer Category = "Touchdown Scorer"
)

// Categories returns every pick category in display order
func Categories() []Category {
	return []Category{
		CategoryMoneyline,
		CategoryFavorite,
		CategoryUnderdog,
		CategoryOver,
		CategoryUnder,
		CategoryTouchdownScorer,
	}
}

// ParseCategory converts a submitted category name to a Category
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown pick category %q", s)
}

// IsTeamPick returns true if the pick value names a team
func (c Category) IsTeamPick() bool {
	switch c {
	case CategoryMoneyline, CategoryFavorite, CategoryUnderdog:
		return true
	}
	return false
}

// IsTotalPick returns true for over/under picks
func (c Category) IsTotalPick() bool {
	return c == CategoryOver || c == CategoryUnder
}

// Pick is a player's prediction for one category in one week.
// At most one pick exists per (season, week, player, category); resubmitting replaces the value.
type Pick struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Season    int                 `bson:"season" json:"season"`
	Week      int                 `bson:"week" json:"week"`
	PlayerID  primitive.ObjectID  `bson:"player_id" json:"player_id"`
	Category  Category            `bson:"category" json:"category"`
	Value     string              `bson:"value" json:"value"`
	GameID    *primitive.ObjectID `bson:"game_id,omitempty" json:"game_id,omitempty"` // nil until a game is linked
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// HasGame returns true if the pick is linked to a specific game
func (p *Pick) HasGame() bool {
	return p.GameID != nil && !p.GameID.IsZero()
}

// ParseWeek accepts either "3" or the "season-week" form "2025-3"
func ParseWeek(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "-"); i > 0 {
		s = s[i+1:]
	}
	week, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid week %q", s)
	}
	if week < 1 {
		return 0, fmt.Errorf("invalid week %d", week)
	}
	return week, nil
}

// WeekKey returns the "season-week" key used by clients
func WeekKey(season, week int) string {
	return fmt.Sprintf("%d-%d", season, week)
}
