package services

import (
	"context"
	"fmt"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// DefaultBookmaker is the sportsbook whose lines picks are graded against
const DefaultBookmaker = "draftkings"

// WeekResolver grades a week's picks
type WeekResolver interface {
	ResolveWeek(ctx context.Context, season, week int) (int, error)
}

// GameResultService stores final scores from the provider and triggers grading
type GameResultService struct {
	gameResults GameResultRepository
	games       GameRepository
	provider    OddsProvider
	resolver    WeekResolver
	calendar    SeasonCalendar
	bookmaker   string
	logger      *logging.Logger
}

// NewGameResultService creates a new game result service
func NewGameResultService(
	gameResults GameResultRepository,
	games GameRepository,
	provider OddsProvider,
	resolver WeekResolver,
	calendar SeasonCalendar,
	bookmaker string,
) *GameResultService {
	if bookmaker == "" {
		bookmaker = DefaultBookmaker
	}
	return &GameResultService{
		gameResults: gameResults,
		games:       games,
		provider:    provider,
		resolver:    resolver,
		calendar:    calendar,
		bookmaker:   bookmaker,
		logger:      logging.WithPrefix("GameResults"),
	}
}

// BuildGameResult grades a completed game's score against the lines stored on game.
// The spread is the home team's point in the bookmaker's spreads market and the total
// is the Over point in its totals market. Missing or malformed line data leaves
// Spread and Total nil. ok is false when the score is not final or a team score is missing.
func BuildGameResult(season, week int, score *ScoreEvent, game *models.Game, bookmakerKey string) (*models.GameResult, bool) {
	if score == nil || !score.Completed {
		return nil, false
	}
	home, away, ok := score.TeamScores()
	if !ok {
		return nil, false
	}

	result := &models.GameResult{
		Season:      season,
		Week:        week,
		HomeTeam:    score.HomeTeam,
		AwayTeam:    score.AwayTeam,
		HomeScore:   home,
		AwayScore:   away,
		Final:       true,
		LastUpdated: time.Now(),
	}

	if game != nil {
		if books, err := game.Bookmakers(); err == nil {
			if book := models.FindBookmaker(books, bookmakerKey); book != nil {
				if m := book.Market(models.MarketSpreads); m != nil {
					result.Spread = m.Point(score.HomeTeam)
				}
				if m := book.Market(models.MarketTotals); m != nil {
					result.Total = m.Point("Over")
				}
			}
		}
	}

	result.GradeScores()
	return result, true
}

// RefreshWeek fetches scores for the week's date window, stores a GameResult for
// every completed game and then grades the week's picks.
// Returns the number of games stored and the number of pick results written.
func (s *GameResultService) RefreshWeek(ctx context.Context, season, week int) (int, int, error) {
	if s.provider == nil {
		return 0, 0, ErrNoAPIKey
	}

	from, to := s.calendar.WeekWindow(week)
	scores, err := s.provider.FetchScores(ctx, from, to)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch scores for week %d: %w", week, err)
	}

	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	byKey := make(map[string]*models.Game, len(games))
	for _, g := range games {
		byKey[g.Key()] = g
	}

	stored := 0
	for i := range scores {
		score := &scores[i]
		result, ok := BuildGameResult(season, week, score, byKey[models.GameKey(score.AwayTeam, score.HomeTeam)], s.bookmaker)
		if !ok {
			continue
		}
		if err := s.gameResults.Upsert(ctx, result); err != nil {
			return stored, 0, fmt.Errorf("failed to store result for %s: %w", result.Key(), err)
		}
		stored++
	}
	s.logger.Infof("Stored %d game results for season %d week %d", stored, season, week)

	if stored == 0 {
		return 0, 0, nil
	}

	updated, err := s.resolver.ResolveWeek(ctx, season, week)
	if err != nil {
		return stored, updated, err
	}
	return stored, updated, nil
}

// GetWeekResults returns the stored game results for a week
func (s *GameResultService) GetWeekResults(ctx context.Context, season, week int) ([]*models.GameResult, error) {
	results, err := s.gameResults.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load game results for week %d: %w", week, err)
	}
	return results, nil
}
