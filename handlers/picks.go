package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nfl-pickem-go/interfaces"
	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
	"nfl-pickem-go/services"
)

// PickHandler serves pick submission, pick outcomes and the touchdown scorer roster
type PickHandler struct {
	picks         interfaces.PickService
	calculator    interfaces.ResultCalculationService
	currentSeason int
	logger        *logging.Logger
}

// NewPickHandler creates a new pick handler
func NewPickHandler(picks interfaces.PickService, calculator interfaces.ResultCalculationService, currentSeason int) *PickHandler {
	return &PickHandler{
		picks:         picks,
		calculator:    calculator,
		currentSeason: currentSeason,
		logger:        logging.WithPrefix("PickHandler"),
	}
}

// requiredWeek reads ?week= and ?season=, writing a 400 when either is missing or bad
func (h *PickHandler) requiredWeek(w http.ResponseWriter, r *http.Request) (season, week int, ok bool) {
	season, err := seasonParam(r, h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	week, present, err := weekParam(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	if !present {
		writeError(w, http.StatusBadRequest, "missing week parameter")
		return 0, 0, false
	}
	return season, week, true
}

// GetPicks handles GET /api/picks?week=
func (h *PickHandler) GetPicks(w http.ResponseWriter, r *http.Request) {
	season, week, ok := h.requiredWeek(w, r)
	if !ok {
		return
	}

	picks, err := h.picks.GetWeekPicks(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, picks)
}

// SubmitPick handles POST /api/picks
func (h *PickHandler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player   string    `json:"player"`
		Week     weekValue `json:"week"`
		Category string    `json:"category"`
		Value    string    `json:"value"`
		Game     string    `json:"game"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pick, err := h.picks.SubmitPick(r.Context(), h.currentSeason, services.PickSubmission{
		Player:   req.Player,
		Week:     string(req.Week),
		Category: req.Category,
		Value:    req.Value,
		Game:     req.Game,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pick":    pick,
	})
}

// GetResults handles GET /api/results?week=
func (h *PickHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	season, week, ok := h.requiredWeek(w, r)
	if !ok {
		return
	}

	results, err := h.picks.GetWeekResults(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// SaveResult handles POST /api/results, an admin override of one pick's outcome
func (h *PickHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Player   string    `json:"player"`
		Week     weekValue `json:"week"`
		Category string    `json:"category"`
		Outcome  string    `json:"outcome"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	week, err := models.ParseWeek(string(req.Week))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid week")
		return
	}

	result, err := h.picks.RecordManualResult(r.Context(), h.currentSeason, services.ManualResult{
		Player:   req.Player,
		Week:     week,
		Category: req.Category,
		Outcome:  req.Outcome,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  result,
	})
}

// CalculateResults handles POST /api/results/calculate with body {"week": n}
func (h *PickHandler) CalculateResults(w http.ResponseWriter, r *http.Request) {
	var req WeekRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	week, season, err := req.parse(h.currentSeason)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing week parameter")
		return
	}

	updated, err := h.calculator.ResolveWeek(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"updated_count": updated,
	})
}

// GetStarters handles GET /api/starters?teams=KC,BUF
func (h *PickHandler) GetStarters(w http.ResponseWriter, r *http.Request) {
	teams := models.ParseTeamList(r.URL.Query().Get("teams"))

	players, err := h.picks.GetStarters(r.Context(), teams)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	type starter struct {
		Name string `json:"name"`
		Pos  string `json:"pos"`
		Team string `json:"team"`
	}
	out := make([]starter, 0, len(players))
	for _, p := range players {
		out = append(out, starter{Name: p.Name, Pos: p.Position, Team: p.Team})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetWeekLock handles GET /api/week/lock/{week}
func (h *PickHandler) GetWeekLock(w http.ResponseWriter, r *http.Request) {
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

	lock, err := h.picks.GetWeekLock(r.Context(), season, week)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lock.Status(week))
}
