package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nfl-pickem-go/models"
)

// Errors returned by the services and mapped to HTTP statuses by the handlers
var (
	ErrWeekLocked         = errors.New("this week is locked and picks can no longer be submitted")
	ErrPickTaken          = errors.New("this pick is already taken by another player")
	ErrPickNotFound       = errors.New("pick not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrInvalidCategory    = errors.New("invalid pick category")
	ErrInvalidOutcome     = errors.New("outcome must be win, loss or tie")
	ErrInvalidPick        = errors.New("player, week, category and value are required")
	ErrNoAPIKey           = errors.New("odds API key is not configured")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Repository contracts. Finders return nil, nil when nothing matches.

// PlayerRepository stores pick'em players
type PlayerRepository interface {
	FindByName(ctx context.Context, name string) (*models.Player, error)
	FindOrCreate(ctx context.Context, name string) (*models.Player, error)
	FindAll(ctx context.Context) ([]*models.Player, error)
}

// GameRepository stores scheduled games and their lines
type GameRepository interface {
	FindByWeek(ctx context.Context, season, week int) ([]*models.Game, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	Upsert(ctx context.Context, game *models.Game) error
}

// PickRepository stores player picks
type PickRepository interface {
	FindByWeek(ctx context.Context, season, week int) ([]*models.Pick, error)
	FindByPlayerCategory(ctx context.Context, season, week int, playerID primitive.ObjectID, category models.Category) (*models.Pick, error)
	FindByValue(ctx context.Context, season, week int, category models.Category, value string) ([]*models.Pick, error)
	Upsert(ctx context.Context, pick *models.Pick) error
}

// GameResultRepository stores final scores and graded lines
type GameResultRepository interface {
	FindByWeek(ctx context.Context, season, week int) ([]*models.GameResult, error)
	Upsert(ctx context.Context, result *models.GameResult) error
}

// ResultRepository stores pick outcomes
type ResultRepository interface {
	FindByWeek(ctx context.Context, season, week int) ([]*models.Result, error)
	FindBySeason(ctx context.Context, season int) ([]*models.Result, error)
	Upsert(ctx context.Context, result *models.Result) error
}

// WeekLockRepository reads week locks
type WeekLockRepository interface {
	FindByWeek(ctx context.Context, season, week int) (*models.WeekLock, error)
}

// NFLPlayerRepository reads the touchdown scorer roster
type NFLPlayerRepository interface {
	FindActiveByTeams(ctx context.Context, teams []string) ([]*models.NFLPlayer, error)
}

// LeaderboardCache holds computed standings per season. A miss returns nil, false, nil.
type LeaderboardCache interface {
	GetLeaderboard(ctx context.Context, season int) ([]models.PlayerStanding, bool, error)
	SetLeaderboard(ctx context.Context, season int, standings []models.PlayerStanding) error
	InvalidateLeaderboard(ctx context.Context, season int) error
}
