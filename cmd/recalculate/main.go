package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"nfl-pickem-go/cache"
	"nfl-pickem-go/config"
	"nfl-pickem-go/database"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/services"
)

// recalculate re-grades stored picks against stored game results, one week at a time.
// Usage:
//
//	go run ./cmd/recalculate --season 2025 --from 1 --to 18
//	go run ./cmd/recalculate --week 7
func main() {
	app := &cli.App{
		Name:  "recalculate",
		Usage: "re-grade picks for a range of weeks",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "season", Usage: "season to recalculate (default CURRENT_SEASON)"},
			&cli.IntFlag{Name: "week", Aliases: []string{"w"}, Usage: "single week, overrides --from/--to"},
			&cli.IntFlag{Name: "from", Value: 1, Usage: "first week"},
			&cli.IntFlag{Name: "to", Usage: "last week (default NFL_WEEKS)"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logging.Fatalf("Recalculation failed: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logCloser, err := logging.Configure(cfg.ToLoggingConfig())
	if err != nil {
		return err
	}
	defer logCloser.Close()

	season := c.Int("season")
	if season == 0 {
		season = cfg.App.CurrentSeason
	}
	from, to := c.Int("from"), c.Int("to")
	if to == 0 {
		to = cfg.App.NFLWeeks
	}
	if week := c.Int("week"); week > 0 {
		from, to = week, week
	}
	if from < 1 || to < from {
		return fmt.Errorf("invalid week range %d..%d", from, to)
	}

	ctx := c.Context
	db, err := database.NewMongoConnection(ctx, cfg.ToDatabaseConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	var leaderboardCache services.LeaderboardCache
	if cfg.IsCacheEnabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.LeaderboardTTL)
		if err != nil {
			logging.Warnf("Redis unavailable, cached leaderboard may be stale until it expires: %v", err)
		} else {
			defer rc.Close()
			leaderboardCache = rc
		}
	}

	calculator := services.NewResultCalculationService(
		database.NewMongoPickRepository(db),
		database.NewMongoGameRepository(db),
		database.NewMongoGameResultRepository(db),
		database.NewMongoResultRepository(db),
		leaderboardCache,
		nil,
	)

	return recalculate(ctx, calculator, season, from, to)
}

func recalculate(ctx context.Context, calculator services.WeekResolver, season, from, to int) error {
	total := 0
	for week := from; week <= to; week++ {
		updated, err := calculator.ResolveWeek(ctx, season, week)
		if err != nil {
			return fmt.Errorf("week %d: %w", week, err)
		}
		logging.Infof("Season %d week %d: %d results written", season, week, updated)
		total += updated
	}
	logging.Infof("Done: %d results written across weeks %d-%d", total, from, to)
	return nil
}
