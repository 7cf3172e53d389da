package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
)

// GameHandler serves games, lines and final scores
type GameHandler struct {
	games         interfaces.GameService
	gameResults   interfaces.GameResultService
	currentSeason int
	logger        *logging.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(games interfaces.GameService, gameResults interfaces.GameResultService, currentSeason int) *GameHandler {
	return &GameHandler{
		games:         games,
		gameResults:   gameResults,
		currentSeason: currentSeason,
		logger:        logging.WithPrefix("GameHandler"),
	}
}

// gameView is a game with its line data decoded
type gameView struct {
	*models.Game
	Matchup    string             `json:"game"`
	Bookmakers []models.Bookmaker `json:"bookmakers"`
}

// GetGames handles GET /api/games?week=&season=. Week defaults to the current week.
func (h *GameHandler) GetGames(w http.ResponseWriter, r *http.Request) {
	season, err := seasonParam(r, h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	week, ok, err := weekParam(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !ok {
		week = h.games.CurrentWeek()
	}

	games, err := h.games.GetWeekGames(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	views := make([]gameView, 0, len(games))
	for _, g := range games {
		books, err := g.Bookmakers()
		if err != nil {
			h.logger.Warnf("Ignoring line data for %s: %v", g.Key(), err)
			books = []models.Bookmaker{}
		}
		views = append(views, gameView{Game: g, Matchup: g.Key(), Bookmakers: books})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"season": season,
		"week":   week,
		"games":  views,
	})
}

// RefreshGames handles POST /api/games/refresh with body {"week": n}
func (h *GameHandler) RefreshGames(w http.ResponseWriter, r *http.Request) {
	var req WeekRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	week, season, err := req.parse(h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.games.RefreshWeek(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"week":          week,
		"updated_count": updated,
	})
}

// GetGameResults handles GET /api/game-results/{week}
func (h *GameHandler) GetGameResults(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}
	season, err := seasonParam(r, h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.gameResults.GetWeekResults(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	type resultView struct {
		*models.GameResult
		Matchup string `json:"game"`
	}
	views := make([]resultView, 0, len(results))
	for _, res := range results {
		views = append(views, resultView{GameResult: res, Matchup: res.Key()})
	}
	writeJSON(w, http.StatusOK, views)
}

// RefreshGameResults handles POST /api/game-results/refresh/{week}: store final scores, then grade picks
func (h *GameHandler) RefreshGameResults(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "invalid week")
		return
	}
	season, err := seasonParam(r, h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, updated, err := h.gameResults.RefreshWeek(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if stored == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "no completed games found for this week",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"games_stored":  stored,
		"picks_updated": updated,
	})
}
