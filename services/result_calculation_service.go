package services

import (
	"context"
	"fmt"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
	"nfl-pickem-go/models"
)

// ResultCalculationService grades a week's picks against stored game results
// and writes the outcomes
type ResultCalculationService struct {
	picks       PickRepository
	games       GameRepository
	gameResults GameResultRepository
	results     ResultRepository
	cache       LeaderboardCache
	metrics     *metrics.Metrics
	logger      *logging.Logger
}

// NewResultCalculationService creates a new result calculation service.
// cache and m may be nil.
func NewResultCalculationService(
	picks PickRepository,
	games GameRepository,
	gameResults GameResultRepository,
	results ResultRepository,
	cache LeaderboardCache,
	m *metrics.Metrics,
) *ResultCalculationService {
	return &ResultCalculationService{
		picks:       picks,
		games:       games,
		gameResults: gameResults,
		results:     results,
		cache:       cache,
		metrics:     m,
		logger:      logging.WithPrefix("ResultCalculation"),
	}
}

// ResolveWeek grades every pick of the week and upserts a Result for each one that
// resolves. Unresolved picks leave any existing Result untouched. Returns the number
// of Results written, which is the same on every re-run over unchanged data.
func (s *ResultCalculationService) ResolveWeek(ctx context.Context, season, week int) (int, error) {
	picks, err := s.picks.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, fmt.Errorf("failed to load picks for week %d: %w", week, err)
	}
	if len(picks) == 0 {
		s.logger.Debugf("No picks for season %d week %d", season, week)
		return 0, nil
	}

	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}

	stored, err := s.gameResults.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, fmt.Errorf("failed to load game results for week %d: %w", week, err)
	}
	byKey := make(map[string]*models.GameResult, len(stored))
	for _, r := range stored {
		byKey[r.Key()] = r
	}

	written := 0
	for _, pick := range picks {
		game := gameForPick(pick, games)
		if game == nil {
			s.logger.Debugf("No unique game for %s pick %q (player %s)", pick.Category, pick.Value, pick.PlayerID.Hex())
			continue
		}

		outcome := ResolveOutcome(pick, byKey[game.Key()])
		if !outcome.IsResolved() {
			continue
		}

		if err := s.results.Upsert(ctx, models.NewResultForPick(pick, outcome)); err != nil {
			return written, fmt.Errorf("failed to store result for pick %s: %w", pick.ID.Hex(), err)
		}
		s.metrics.ResultWritten(string(outcome), "calculated")
		written++
	}

	s.logger.Infof("Resolved %d of %d picks for season %d week %d", written, len(picks), season, week)

	if written > 0 {
		invalidateLeaderboard(ctx, s.cache, s.logger, season)
	}
	return written, nil
}

// gameForPick finds the game a pick was made against. Picks linked at submission
// use that game; otherwise a team pick matches the single game its team plays in
// that week. Anything ambiguous returns nil.
func gameForPick(pick *models.Pick, games []*models.Game) *models.Game {
	if pick.HasGame() {
		for _, g := range games {
			if g.ID == *pick.GameID {
				return g
			}
		}
		return nil
	}
	return LocateGame(games, pick.Category, pick.Value)
}

// LocateGame resolves a pick value to a game of the week. A value naming its game,
// "Away @ Home" or "Over 47.5 (Away @ Home)", matches that game; a team-valued
// category matches the single game the team plays in. Returns nil when there is
// no unique match.
func LocateGame(games []*models.Game, category models.Category, value string) *models.Game {
	if away, home, ok := models.GameKeyFromValue(value); ok {
		for _, g := range games {
			if g.AwayTeam == away && g.HomeTeam == home {
				return g
			}
		}
		return nil
	}

	if !category.IsTeamPick() {
		return nil
	}

	var match *models.Game
	for _, g := range games {
		if !g.HasTeam(value) {
			continue
		}
		if match != nil {
			return nil
		}
		match = g
	}
	return match
}

func invalidateLeaderboard(ctx context.Context, cache LeaderboardCache, logger *logging.Logger, season int) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateLeaderboard(ctx, season); err != nil {
		logger.Warnf("Failed to invalidate cached leaderboard for season %d: %v", season, err)
	}
}
