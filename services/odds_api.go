package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"nfl-pickem-go/logging"
	"nfl-pickem-go/metrics"
	"nfl-pickem-go/models"
)

// DefaultOddsAPIBaseURL is The Odds API v4 host
const DefaultOddsAPIBaseURL = "https://api.the-odds-api.com"

const (
	oddsSport          = "americanfootball_nfl"
	oddsTimeLayout     = "2006-01-02T15:04:05Z"
	oddsEndpointOdds   = "odds"
	oddsEndpointScores = "scores"
)

// OddsAPIConfig configures the odds provider client
type OddsAPIConfig struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// OddsAPIService handles The Odds API interactions
type OddsAPIService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewOddsAPIService creates a new odds provider client
func NewOddsAPIService(cfg OddsAPIConfig, m *metrics.Metrics) *OddsAPIService {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOddsAPIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &OddsAPIService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(limit, 1),
		metrics: m,
		logger:  logging.WithPrefix("OddsAPI"),
	}
}

// Configured returns true if an API key is set
func (o *OddsAPIService) Configured() bool {
	return o.apiKey != ""
}

// OddsEvent is one game from the odds endpoint
type OddsEvent struct {
	ID           string             `json:"id"`
	SportKey     string             `json:"sport_key"`
	CommenceTime string             `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []models.Bookmaker `json:"bookmakers"`
}

// ScoreEvent is one game from the scores endpoint
type ScoreEvent struct {
	ID           string      `json:"id"`
	CommenceTime string      `json:"commence_time"`
	Completed    bool        `json:"completed"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Scores       []TeamScore `json:"scores"`
	LastUpdate   *string     `json:"last_update"`
}

// TeamScore is a team's score. The provider sends scores as strings.
type TeamScore struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

// TeamScores returns the parsed home and away scores. ok is false unless both are present and numeric.
func (e *ScoreEvent) TeamScores() (home, away int, ok bool) {
	var haveHome, haveAway bool
	for _, s := range e.Scores {
		n, err := strconv.Atoi(strings.TrimSpace(s.Score))
		if err != nil {
			continue
		}
		switch s.Name {
		case e.HomeTeam:
			home, haveHome = n, true
		case e.AwayTeam:
			away, haveAway = n, true
		}
	}
	return home, away, haveHome && haveAway
}

// FetchOdds returns upcoming NFL games with h2h, spread and total markets from US books
func (o *OddsAPIService) FetchOdds(ctx context.Context) ([]OddsEvent, error) {
	params := url.Values{}
	params.Set("regions", "us")
	params.Set("markets", strings.Join([]string{models.MarketMoneyline, models.MarketSpreads, models.MarketTotals}, ","))
	params.Set("dateFormat", "iso")
	params.Set("oddsFormat", "american")

	var events []OddsEvent
	if err := o.get(ctx, oddsEndpointOdds, params, &events); err != nil {
		return nil, err
	}
	o.logger.Infof("Received odds for %d games", len(events))
	return events, nil
}

// FetchScores returns games commencing within [from, to)
func (o *OddsAPIService) FetchScores(ctx context.Context, from, to time.Time) ([]ScoreEvent, error) {
	params := url.Values{}
	params.Set("dateFormat", "iso")
	params.Set("commenceTimeFrom", from.UTC().Format(oddsTimeLayout))
	params.Set("commenceTimeTo", to.UTC().Format(oddsTimeLayout))

	var events []ScoreEvent
	if err := o.get(ctx, oddsEndpointScores, params, &events); err != nil {
		return nil, err
	}
	o.logger.Infof("Received scores for %d games", len(events))
	return events, nil
}

func (o *OddsAPIService) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if !o.Configured() {
		return ErrNoAPIKey
	}
	if err := o.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("odds API rate limiter: %w", err)
	}

	params.Set("apiKey", o.apiKey)
	reqURL := fmt.Sprintf("%s/v4/sports/%s/%s/?%s", o.baseURL, oddsSport, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, withoutURL(err))
	}

	o.logger.Debugf("Fetching %s", endpoint)
	resp, err := o.client.Do(req)
	if err != nil {
		o.metrics.ProviderRequest(endpoint, 0)
		return fmt.Errorf("failed to fetch %s: %w", endpoint, withoutURL(err))
	}
	defer resp.Body.Close()
	o.metrics.ProviderRequest(endpoint, resp.StatusCode)

	if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
		o.logger.Debugf("Requests remaining: %s", remaining)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odds API %s returned status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// withoutURL drops the request URL from transport errors; it carries the API key
func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
	}
	return err
}
