package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
	"nfl-pickem-go/models"
)

// LeaderboardService builds season standings from stored results
type LeaderboardService struct {
	results ResultRepository
	players PlayerRepository
	cache   LeaderboardCache
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewLeaderboardService creates a new leaderboard service. cache and m may be nil.
func NewLeaderboardService(results ResultRepository, players PlayerRepository, cache LeaderboardCache, m *metrics.Metrics) *LeaderboardService {
	return &LeaderboardService{
		results: results,
		players: players,
		cache:   cache,
		metrics: m,
		logger:  logging.WithPrefix("Leaderboard"),
	}
}

// GetLeaderboard returns the ranked standings for a season. A season with no
// results yields an empty list. Cache failures are logged and the standings are
// computed from storage.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, season int) ([]models.PlayerStanding, error) {
	if s.cache != nil {
		standings, ok, err := s.cache.GetLeaderboard(ctx, season)
		if err != nil {
			s.logger.Warnf("Leaderboard cache read failed for season %d: %v", season, err)
		} else if ok {
			s.metrics.CacheHit()
			return standings, nil
		}
	}
	s.metrics.CacheMiss()

	results, err := s.results.FindBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load results for season %d: %w", season, err)
	}
	if len(results) == 0 {
		return []models.PlayerStanding{}, nil
	}

	players, err := s.players.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	entries := make([]models.ScoredResult, 0, len(results))
	for _, r := range results {
		name, ok := names[r.PlayerID]
		if !ok {
			s.logger.Warnf("Skipping result for unknown player %s", r.PlayerID.Hex())
			continue
		}
		entries = append(entries, models.ScoredResult{
			Player:  name,
			Week:    r.Week,
			Outcome: r.Outcome,
		})
	}

	standings := AggregateLeaderboard(entries)

	if s.cache != nil {
		if err := s.cache.SetLeaderboard(ctx, season, standings); err != nil {
			s.logger.Warnf("Leaderboard cache write failed for season %d: %v", season, err)
		}
	}
	return standings, nil
}
