package interfaces

import (
	"nfl-pickem-go/cache"
	"nfl-pickem-go/database"
	"nfl-pickem-go/services"
)

// Interface compliance checks - these will fail to compile if implementations drift
var (
	_ GameService              = (*services.GameService)(nil)
	_ GameResultService        = (*services.GameResultService)(nil)
	_ PickService              = (*services.PickService)(nil)
	_ ResultCalculationService = (*services.ResultCalculationService)(nil)
	_ LeaderboardService       = (*services.LeaderboardService)(nil)
	_ AuthService              = (*services.AuthService)(nil)
	_ HealthChecker            = (*database.MongoDB)(nil)
	_ HealthChecker            = (*cache.RedisCache)(nil)

	_ services.OddsProvider     = (*services.OddsAPIService)(nil)
	_ services.WeekResolver     = (*services.ResultCalculationService)(nil)
	_ services.ResultRefresher  = (*services.GameResultService)(nil)
	_ services.LeaderboardCache = (*cache.RedisCache)(nil)

	_ services.PlayerRepository     = (*database.MongoPlayerRepository)(nil)
	_ services.GameRepository       = (*database.MongoGameRepository)(nil)
	_ services.PickRepository       = (*database.MongoPickRepository)(nil)
	_ services.GameResultRepository = (*database.MongoGameResultRepository)(nil)
	_ services.ResultRepository     = (*database.MongoResultRepository)(nil)
	_ services.WeekLockRepository   = (*database.MongoWeekLockRepository)(nil)
	_ services.NFLPlayerRepository  = (*database.MongoNFLPlayerRepository)(nil)
)
