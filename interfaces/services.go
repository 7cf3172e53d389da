package interfaces

import (
	"context"

	"nfl-pickem-go/models"
	"nfl-pickem-go/services"
)

// GameService defines methods for the stored schedule and lines
type GameService interface {
	GetWeekGames(ctx context.Context, season, week int) ([]*models.Game, error)
	RefreshWeek(ctx context.Context, season, week int) (int, error)
	CurrentWeek() int
}

// GameResultService defines methods for final scores
type GameResultService interface {
	GetWeekResults(ctx context.Context, season, week int) ([]*models.GameResult, error)
	RefreshWeek(ctx context.Context, season, week int) (int, int, error)
}

// PickService defines methods for pick submission and reporting
type PickService interface {
	SubmitPick(ctx context.Context, season int, sub services.PickSubmission) (*models.Pick, error)
	GetWeekPicks(ctx context.Context, season, week int) (map[string]map[string]string, error)
	GetWeekResults(ctx context.Context, season, week int) (map[string]map[string]models.PickOutcome, error)
	RecordManualResult(ctx context.Context, season int, mr services.ManualResult) (*models.Result, error)
	GetWeekLock(ctx context.Context, season, week int) (*models.WeekLock, error)
	GetStarters(ctx context.Context, teams []string) ([]*models.NFLPlayer, error)
}

// ResultCalculationService defines methods for grading picks
type ResultCalculationService interface {
	ResolveWeek(ctx context.Context, season, week int) (int, error)
}

// LeaderboardService defines methods for season standings
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, season int) ([]models.PlayerStanding, error)
}

// AuthService defines methods for admin authentication
type AuthService interface {
	Login(username, password string) (*models.AuthResponse, error)
	ValidateToken(tokenString string) (*services.AdminClaims, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}
