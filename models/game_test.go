package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameKey(t *testing.T) {
	away, home, ok := ParseGameKey("Dallas Cowboys @ Philadelphia Eagles")
	require.True(t, ok)
	assert.Equal(t, "Dallas Cowboys", away)
	assert.Equal(t, "Philadelphia Eagles", home)

	for _, bad := range []string{"KC", "@ KC", "BUF @ ", "A @ B @ C", ""} {
		_, _, ok := ParseGameKey(bad)
		assert.False(t, ok, bad)
	}

	g := &Game{AwayTeam: "BUF", HomeTeam: "KC"}
	away, home, ok = ParseGameKey(g.Key())
	require.True(t, ok)
	assert.Equal(t, "BUF", away)
	assert.Equal(t, "KC", home)
}

func TestGameKeyFromValue(t *testing.T) {
	tests := map[string]struct {
		value      string
		away, home string
		ok         bool
	}{
		"bare key":        {"BUF @ KC", "BUF", "KC", true},
		"over with game":  {"Over 47.5 (Buffalo Bills @ Kansas City Chiefs)", "Buffalo Bills", "Kansas City Chiefs", true},
		"under with game": {" Under 41 (DAL @ PHI) ", "DAL", "PHI", true},
		"team":            {"KC", "", "", false},
		"line only":       {"Over 47.5", "", "", false},
		"empty parens":    {"Over 47.5 ()", "", "", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			away, home, ok := GameKeyFromValue(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.away, away)
			assert.Equal(t, tc.home, home)
		})
	}
}

func TestGameBookmakers(t *testing.T) {
	g := &Game{AwayTeam: "BUF", HomeTeam: "KC"}
	books, err := g.Bookmakers()
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.False(t, g.HasOdds())

	point := -3.5
	require.NoError(t, g.SetBookmakers([]Bookmaker{{
		Key: "draftkings",
		Markets: []Market{{Key: MarketSpreads, Outcomes: []MarketOutcome{{Name: "KC", Price: -110, Point: &point}}}},
	}}))
	assert.True(t, g.HasOdds())

	books, err = g.Bookmakers()
	require.NoError(t, err)
	book := FindBookmaker(books, "draftkings")
	require.NotNil(t, book)
	assert.Nil(t, FindBookmaker(books, "fanduel"))
	assert.Nil(t, book.Market(MarketTotals))
	spreads := book.Market(MarketSpreads)
	require.NotNil(t, spreads)
	assert.Equal(t, -3.5, *spreads.Point("KC"))
	assert.Nil(t, spreads.Point("BUF"))

	require.NoError(t, g.SetBookmakers(nil))
	assert.False(t, g.HasOdds())

	g.LineData = "{broken"
	_, err = g.Bookmakers()
	assert.Error(t, err)
}

func TestGameHasTeam(t *testing.T) {
	g := &Game{AwayTeam: "BUF", HomeTeam: "KC"}
	assert.True(t, g.HasTeam("BUF"))
	assert.True(t, g.HasTeam("KC"))
	assert.False(t, g.HasTeam("DAL"))
	assert.False(t, g.HasTeam(""))
}
