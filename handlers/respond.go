package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/models"
	"nfl-pickem-go/services"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors to status codes. Anything unrecognised is a 500
// and its detail is logged rather than returned.
func writeServiceError(w http.ResponseWriter, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidPick),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidOutcome),
		errors.Is(err, services.ErrWeekLocked):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPickTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrPickNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNoAPIKey):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// weekParam reads a week from the query string, accepting "3" or "2025-3".
// ok is false when the parameter is absent.
func weekParam(r *http.Request, name string) (week int, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	week, err = models.ParseWeek(raw)
	return week, true, err
}

// seasonParam reads ?season=, falling back to the configured season
func seasonParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return fallback, nil
	}
	season, err := strconv.Atoi(raw)
	if err != nil || season < 1 {
		return 0, errors.New("invalid season")
	}
	return season, nil
}

// weekValue accepts a week sent as a JSON number or string
type weekValue string

func (v *weekValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = weekValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("week must be a number or string")
	}
	*v = weekValue(n.String())
	return nil
}

// WeekRequest is the body of admin actions scoped to one week
type WeekRequest struct {
	Week   weekValue `json:"week"`
	Season int       `json:"season,omitempty"`
}

// parse returns the week and season, defaulting the season
func (req WeekRequest) parse(fallbackSeason int) (int, int, error) {
	week, err := models.ParseWeek(string(req.Week))
	if err != nil {
		return 0, 0, err
	}
	season := req.Season
	if season == 0 {
		season = fallbackSeason
	}
	return week, season, nil
}
