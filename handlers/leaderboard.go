package handlers

import (
	"net/http"

	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
)

// LeaderboardHandler serves season standings
type LeaderboardHandler struct {
	leaderboard   interfaces.LeaderboardService
	currentSeason int
	logger        *logging.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboard interfaces.LeaderboardService, currentSeason int) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard:   leaderboard,
		currentSeason: currentSeason,
		logger:        logging.WithPrefix("LeaderboardHandler"),
	}
}

// GetLeaderboard handles GET /api/leaderboard?season=
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r, h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	standings, err := h.leaderboard.GetLeaderboard(r.Context(), season)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}
