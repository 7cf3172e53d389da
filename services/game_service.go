package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// OddsProvider is the external source of odds and scores
type OddsProvider interface {
	Configured() bool
	FetchOdds(ctx context.Context) ([]OddsEvent, error)
	FetchScores(ctx context.Context, from, to time.Time) ([]ScoreEvent, error)
}

// SeasonCalendar maps dates to NFL weeks. Weeks run seven days from Week1Start.
type SeasonCalendar struct {
	Week1Start time.Time
	Weeks      int
}

// WeekForTime returns the week containing t, clamped to [1, Weeks]
func (c SeasonCalendar) WeekForTime(t time.Time) int {
	days := math.Floor(t.Sub(c.Week1Start).Hours() / 24)
	week := int(math.Floor(days/7)) + 1
	if week < 1 {
		return 1
	}
	if c.Weeks > 0 && week > c.Weeks {
		return c.Weeks
	}
	return week
}

// WeekWindow returns the [start, end) range of a week
func (c SeasonCalendar) WeekWindow(week int) (time.Time, time.Time) {
	start := c.Week1Start.AddDate(0, 0, (week-1)*7)
	return start, start.AddDate(0, 0, 7)
}

// GameService keeps the stored schedule and lines in step with the odds provider
type GameService struct {
	games    GameRepository
	provider OddsProvider
	calendar SeasonCalendar
	logger   *logging.Logger
}

// NewGameService creates a new game service
func NewGameService(games GameRepository, provider OddsProvider, calendar SeasonCalendar) *GameService {
	return &GameService{
		games:    games,
		provider: provider,
		calendar: calendar,
		logger:   logging.WithPrefix("GameService"),
	}
}

// WeekForTime returns the NFL week for a moment in time
func (s *GameService) WeekForTime(t time.Time) int {
	return s.calendar.WeekForTime(t)
}

// CurrentWeek returns the NFL week for now
func (s *GameService) CurrentWeek() int {
	return s.calendar.WeekForTime(time.Now().UTC())
}

// RefreshWeek fetches current odds and upserts the requested week's games. A game's
// stored lines are replaced only when the provider sent bookmakers for it. Returns
// the number of games written.
func (s *GameService) RefreshWeek(ctx context.Context, season, week int) (int, error) {
	byWeek, err := s.fetchByWeek(ctx)
	if err != nil {
		return 0, err
	}

	existing, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return 0, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	known := make(map[string]*models.Game, len(existing))
	for _, g := range existing {
		known[g.Key()] = g
	}

	updated := 0
	for _, event := range byWeek[week] {
		game, ok := known[models.GameKey(event.AwayTeam, event.HomeTeam)]
		if !ok {
			game = &models.Game{
				Season:   season,
				Week:     week,
				HomeTeam: event.HomeTeam,
				AwayTeam: event.AwayTeam,
			}
		}
		game.CommenceTime = event.CommenceTime
		if len(event.Bookmakers) > 0 {
			if err := game.SetBookmakers(event.Bookmakers); err != nil {
				return updated, err
			}
		}
		game.UpdatedAt = time.Now()

		if err := s.games.Upsert(ctx, game); err != nil {
			return updated, fmt.Errorf("failed to store game %s: %w", game.Key(), err)
		}
		updated++
	}

	s.logger.Infof("Refreshed %d games for season %d week %d", updated, season, week)
	return updated, nil
}

// GetWeekGames returns the stored games for a week. When nothing is stored yet and
// the provider is configured, the whole schedule is fetched and stored first.
func (s *GameService) GetWeekGames(ctx context.Context, season, week int) ([]*models.Game, error) {
	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}
	if len(games) > 0 || s.provider == nil || !s.provider.Configured() {
		return games, nil
	}

	s.logger.Infof("No games stored for week %d, loading schedule from provider", week)
	if err := s.loadSchedule(ctx, season); err != nil {
		return nil, err
	}
	return s.games.FindByWeek(ctx, season, week)
}

// loadSchedule stores every game the provider knows about, leaving games already stored untouched
func (s *GameService) loadSchedule(ctx context.Context, season int) error {
	byWeek, err := s.fetchByWeek(ctx)
	if err != nil {
		return err
	}

	stored := 0
	for week, events := range byWeek {
		existing, err := s.games.FindByWeek(ctx, season, week)
		if err != nil {
			return fmt.Errorf("failed to load games for week %d: %w", week, err)
		}
		known := make(map[string]bool, len(existing))
		for _, g := range existing {
			known[g.Key()] = true
		}

		for _, event := range events {
			if known[models.GameKey(event.AwayTeam, event.HomeTeam)] {
				continue
			}
			game := &models.Game{
				Season:       season,
				Week:         week,
				HomeTeam:     event.HomeTeam,
				AwayTeam:     event.AwayTeam,
				CommenceTime: event.CommenceTime,
				UpdatedAt:    time.Now(),
			}
			if err := game.SetBookmakers(event.Bookmakers); err != nil {
				return err
			}
			if err := s.games.Upsert(ctx, game); err != nil {
				return fmt.Errorf("failed to store game %s: %w", game.Key(), err)
			}
			stored++
		}
	}

	s.logger.Infof("Stored %d new games across %d weeks", stored, len(byWeek))
	return nil
}

// fetchByWeek fetches odds and buckets the events by the week of their kickoff.
// Events with an unparseable kickoff are skipped.
func (s *GameService) fetchByWeek(ctx context.Context) (map[int][]OddsEvent, error) {
	if s.provider == nil {
		return nil, ErrNoAPIKey
	}
	events, err := s.provider.FetchOdds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds: %w", err)
	}

	byWeek := make(map[int][]OddsEvent)
	for _, event := range events {
		kickoff, err := time.Parse(time.RFC3339, event.CommenceTime)
		if err != nil {
			s.logger.Warnf("Skipping %s: bad commence time %q", models.GameKey(event.AwayTeam, event.HomeTeam), event.CommenceTime)
			continue
		}
		week := s.calendar.WeekForTime(kickoff)
		byWeek[week] = append(byWeek[week], event)
	}
	return byWeek, nil
}
