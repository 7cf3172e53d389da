package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
	"nfl-pickem-go/models"
)

// PickSubmission is a player's pick as submitted by a client.
// Week may be "3" or "2025-3". Game optionally names the "Away @ Home" game the pick is for.
type PickSubmission struct {
	Player   string `json:"player"`
	Week     string `json:"week"`
	Category string `json:"category"`
	Value    string `json:"value"`
	Game     string `json:"game,omitempty"`
}

// ManualResult is an admin-entered outcome, used for picks that cannot be graded from scores
type ManualResult struct {
	Player   string `json:"player"`
	Week     int    `json:"week"`
	Category string `json:"category"`
	Outcome  string `json:"outcome"`
}

// PickService handles business logic for picks
type PickService struct {
	picks      PickRepository
	players    PlayerRepository
	games      GameRepository
	results    ResultRepository
	locks      WeekLockRepository
	nflPlayers NFLPlayerRepository
	cache      LeaderboardCache
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// PickServiceDeps groups the stores a PickService reads and writes
type PickServiceDeps struct {
	Picks      PickRepository
	Players    PlayerRepository
	Games      GameRepository
	Results    ResultRepository
	Locks      WeekLockRepository
	NFLPlayers NFLPlayerRepository
	Cache      LeaderboardCache
	Metrics    *metrics.Metrics
}

// NewPickService creates a new pick service
func NewPickService(deps PickServiceDeps) *PickService {
	return &PickService{
		picks:      deps.Picks,
		players:    deps.Players,
		games:      deps.Games,
		results:    deps.Results,
		locks:      deps.Locks,
		nflPlayers: deps.NFLPlayers,
		cache:      deps.Cache,
		metrics:    deps.Metrics,
		logger:     logging.WithPrefix("PickService"),
	}
}

// SubmitPick validates and stores a pick, replacing the player's earlier pick for the
// same category and week. The pick is linked to its game when one can be identified.
func (s *PickService) SubmitPick(ctx context.Context, season int, sub PickSubmission) (*models.Pick, error) {
	name := strings.TrimSpace(sub.Player)
	value := strings.TrimSpace(sub.Value)
	if name == "" || value == "" || strings.TrimSpace(sub.Week) == "" || strings.TrimSpace(sub.Category) == "" {
		return nil, ErrInvalidPick
	}

	week, err := models.ParseWeek(sub.Week)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPick, err)
	}
	category, err := models.ParseCategory(sub.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	locked, err := s.IsWeekLocked(ctx, season, week)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrWeekLocked
	}

	game, err := s.linkGame(ctx, season, week, category, value, sub.Game)
	if err != nil {
		return nil, err
	}

	player, err := s.players.FindOrCreate(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load player %q: %w", name, err)
	}

	holders, err := s.picks.FindByValue(ctx, season, week, category, value)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing picks: %w", err)
	}
	for _, h := range holders {
		if h.PlayerID != player.ID {
			return nil, ErrPickTaken
		}
	}

	pick, err := s.picks.FindByPlayerCategory(ctx, season, week, player.ID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing pick: %w", err)
	}
	now := time.Now()
	if pick == nil {
		pick = &models.Pick{
			Season:    season,
			Week:      week,
			PlayerID:  player.ID,
			Category:  category,
			CreatedAt: now,
		}
	}
	pick.Value = value
	pick.UpdatedAt = now
	pick.GameID = nil
	if game != nil {
		id := game.ID
		pick.GameID = &id
	}

	if err := s.picks.Upsert(ctx, pick); err != nil {
		return nil, fmt.Errorf("failed to save pick: %w", err)
	}

	s.logger.Infof("Saved %s pick %q for %s (season %d week %d)", category, value, name, season, week)
	return pick, nil
}

// linkGame finds the game a submission refers to, nil when it cannot be pinned down.
// An explicit game key must name a game of the week, and a team pick must be for a
// team playing in it.
func (s *PickService) linkGame(ctx context.Context, season, week int, category models.Category, value, gameKey string) (*models.Game, error) {
	games, err := s.games.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for week %d: %w", week, err)
	}

	if gameKey = strings.TrimSpace(gameKey); gameKey != "" {
		game := LocateGame(games, category, gameKey)
		if game == nil {
			return nil, fmt.Errorf("%w: no game %q in week %d", ErrInvalidPick, gameKey, week)
		}
		if category.IsTeamPick() && !game.HasTeam(value) {
			return nil, fmt.Errorf("%w: %s does not play in %s", ErrInvalidPick, value, game.Key())
		}
		return game, nil
	}

	game := LocateGame(games, category, value)
	if game == nil {
		s.logger.Debugf("No unique game for %s pick %q in week %d", category, value, week)
	}
	return game, nil
}

// GetWeekPicks returns the week's picks as player -> category -> value
func (s *PickService) GetWeekPicks(ctx context.Context, season, week int) (map[string]map[string]string, error) {
	picks, err := s.picks.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for week %d: %w", week, err)
	}
	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]string)
	for _, p := range picks {
		name, ok := names[p.PlayerID]
		if !ok {
			continue
		}
		if out[name] == nil {
			out[name] = make(map[string]string)
		}
		out[name][string(p.Category)] = p.Value
	}
	return out, nil
}

// GetWeekResults returns the week's picks with their outcomes as player -> category -> {pick, outcome}.
// Picks without a stored result are reported as pending.
func (s *PickService) GetWeekResults(ctx context.Context, season, week int) (map[string]map[string]models.PickOutcome, error) {
	picks, err := s.picks.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load picks for week %d: %w", week, err)
	}
	results, err := s.results.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for week %d: %w", week, err)
	}
	names, err := s.playerNames(ctx)
	if err != nil {
		return nil, err
	}

	type resultKey struct {
		player   primitive.ObjectID
		category models.Category
	}
	outcomes := make(map[resultKey]models.Outcome, len(results))
	for _, r := range results {
		outcomes[resultKey{r.PlayerID, r.Category}] = r.Outcome
	}

	out := make(map[string]map[string]models.PickOutcome)
	for _, p := range picks {
		name, ok := names[p.PlayerID]
		if !ok {
			continue
		}
		if out[name] == nil {
			out[name] = make(map[string]models.PickOutcome)
		}
		out[name][string(p.Category)] = models.PickOutcome{
			Pick:    p.Value,
			Outcome: outcomes[resultKey{p.PlayerID, p.Category}].Label(),
		}
	}
	return out, nil
}

// RecordManualResult stores an admin-entered outcome for an existing pick
func (s *PickService) RecordManualResult(ctx context.Context, season int, mr ManualResult) (*models.Result, error) {
	if strings.TrimSpace(mr.Player) == "" || mr.Week < 1 || strings.TrimSpace(mr.Category) == "" || mr.Outcome == "" {
		return nil, ErrInvalidPick
	}
	outcome, err := models.ParseOutcome(mr.Outcome)
	if err != nil {
		return nil, ErrInvalidOutcome
	}
	category, err := models.ParseCategory(mr.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
	}

	player, err := s.players.FindByName(ctx, strings.TrimSpace(mr.Player))
	if err != nil {
		return nil, fmt.Errorf("failed to load player: %w", err)
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}

	pick, err := s.picks.FindByPlayerCategory(ctx, season, mr.Week, player.ID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load pick: %w", err)
	}
	if pick == nil {
		return nil, ErrPickNotFound
	}

	result := models.NewResultForPick(pick, outcome)
	if err := s.results.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	s.metrics.ResultWritten(string(outcome), "manual")
	invalidateLeaderboard(ctx, s.cache, s.logger, season)

	s.logger.Infof("Recorded manual %s for %s %s (week %d)", outcome, player.Name, category, mr.Week)
	return result, nil
}

// IsWeekLocked returns true if picks are closed for the week
func (s *PickService) IsWeekLocked(ctx context.Context, season, week int) (bool, error) {
	lock, err := s.GetWeekLock(ctx, season, week)
	if err != nil {
		return false, err
	}
	return lock != nil, nil
}

// GetWeekLock returns the week's lock or nil
func (s *PickService) GetWeekLock(ctx context.Context, season, week int) (*models.WeekLock, error) {
	if s.locks == nil {
		return nil, nil
	}
	lock, err := s.locks.FindByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to check lock for week %d: %w", week, err)
	}
	return lock, nil
}

// GetStarters returns the active rostered players for the given team abbreviations
func (s *PickService) GetStarters(ctx context.Context, teams []string) ([]*models.NFLPlayer, error) {
	if len(teams) == 0 || s.nflPlayers == nil {
		return []*models.NFLPlayer{}, nil
	}
	players, err := s.nflPlayers.FindActiveByTeams(ctx, teams)
	if err != nil {
		return nil, fmt.Errorf("failed to load starters: %w", err)
	}
	if players == nil {
		players = []*models.NFLPlayer{}
	}
	return players, nil
}

func (s *PickService) playerNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	players, err := s.players.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	return names, nil
}
