package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nfl-pickem-go/cache"
	"nfl-pickem-go/config"
	"nfl-pickem-go/database"
	"nfl-pickem-go/handlers"
	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
	"nfl-pickem-go/middleware"
	"nfl-pickem-go/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	// Loggers are captured by services at construction, so this comes first
	logCloser, err := logging.Configure(cfg.ToLoggingConfig())
	if err != nil {
		logging.Fatalf("Failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	cfg.LogConfiguration()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	db, err := database.NewMongoConnection(connectCtx, cfg.ToDatabaseConfig())
	cancel()
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	// Repositories
	playerRepo := database.NewMongoPlayerRepository(db)
	gameRepo := database.NewMongoGameRepository(db)
	pickRepo := database.NewMongoPickRepository(db)
	gameResultRepo := database.NewMongoGameResultRepository(db)
	resultRepo := database.NewMongoResultRepository(db)
	lockRepo := database.NewMongoWeekLockRepository(db)
	nflPlayerRepo := database.NewMongoNFLPlayerRepository(db)

	// The cache must stay a nil interface when disabled, not a typed nil
	var leaderboardCache services.LeaderboardCache
	var redisHealth interfaces.HealthChecker
	if cfg.IsCacheEnabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.LeaderboardTTL)
		if err != nil {
			logging.Warnf("Redis unavailable, leaderboard caching disabled: %v", err)
		} else {
			defer rc.Close()
			leaderboardCache = rc
			redisHealth = rc
		}
	}

	// Services
	calendar := cfg.ToSeasonCalendar()
	oddsAPI := services.NewOddsAPIService(cfg.ToOddsAPIConfig(), m)
	if !oddsAPI.Configured() {
		logging.Warn("ODDS_API_KEY not set, game and score refresh are disabled")
	}

	calculator := services.NewResultCalculationService(pickRepo, gameRepo, gameResultRepo, resultRepo, leaderboardCache, m)
	gameService := services.NewGameService(gameRepo, oddsAPI, calendar)
	gameResultService := services.NewGameResultService(gameResultRepo, gameRepo, oddsAPI, calculator, calendar, cfg.Odds.Bookmaker)
	leaderboardService := services.NewLeaderboardService(resultRepo, playerRepo, leaderboardCache, m)
	pickService := services.NewPickService(services.PickServiceDeps{
		Picks:      pickRepo,
		Players:    playerRepo,
		Games:      gameRepo,
		Results:    resultRepo,
		Locks:      lockRepo,
		NFLPlayers: nflPlayerRepo,
		Cache:      leaderboardCache,
		Metrics:    m,
	})
	authService := services.NewAuthService(cfg.ToAdmin(), cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	if !cfg.IsAdminConfigured() {
		logging.Warn("ADMIN_PASSWORD_HASH not set, admin routes will reject every request")
	}

	var updater *services.BackgroundUpdater
	if cfg.App.BackgroundUpdaterEnabled && oddsAPI.Configured() {
		updater = services.NewBackgroundUpdater(gameResultService, gameService.CurrentWeek, cfg.App.CurrentSeason, cfg.App.RefreshSchedule, m)
		if err := updater.Start(); err != nil {
			logging.Fatalf("Failed to start background updater: %v", err)
		}
	}

	router := handlers.Router{
		Games:       handlers.NewGameHandler(gameService, gameResultService, cfg.App.CurrentSeason),
		Picks:       handlers.NewPickHandler(pickService, calculator, cfg.App.CurrentSeason),
		Leaderboard: handlers.NewLeaderboardHandler(leaderboardService, cfg.App.CurrentSeason),
		Auth:        handlers.NewAuthHandler(authService, !cfg.App.IsDevelopment),
		Health: handlers.NewHealthHandler(map[string]interfaces.HealthChecker{
			"mongodb": db,
			"redis":   redisHealth,
		}),
		AuthMW:      middleware.NewAuthMiddleware(authService),
		Metrics:     m,
		MetricsHTTP: metrics.Handler(reg),
		BehindProxy: cfg.Server.BehindProxy,
	}

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router.Build(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down...")

	if updater != nil {
		updater.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Graceful shutdown failed: %v", err)
	}
	logging.Info("Server stopped")
}
