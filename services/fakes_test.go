package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nfl-pickem-go/models"
)

var errStore = errors.New("store unavailable")

type fakePlayers struct {
	mu      sync.Mutex
	players []*models.Player
}

func (f *fakePlayers) add(name string) *models.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Player{ID: primitive.NewObjectID(), Name: name, CreatedAt: time.Now()}
	f.players = append(f.players, p)
	return p
}

func (f *fakePlayers) FindByName(_ context.Context, name string) (*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlayers) FindOrCreate(ctx context.Context, name string) (*models.Player, error) {
	if p, _ := f.FindByName(ctx, name); p != nil {
		return p, nil
	}
	return f.add(name), nil
}

func (f *fakePlayers) FindAll(_ context.Context) ([]*models.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Player(nil), f.players...), nil
}

type fakeGames struct {
	mu    sync.Mutex
	games []*models.Game
}

func (f *fakeGames) add(season, week int, away, home string) *models.Game {
	g := &models.Game{ID: primitive.NewObjectID(), Season: season, Week: week, AwayTeam: away, HomeTeam: home}
	f.mu.Lock()
	f.games = append(f.games, g)
	f.mu.Unlock()
	return g
}

func (f *fakeGames) FindByWeek(_ context.Context, season, week int) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Game
	for _, g := range f.games {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGames) FindByID(_ context.Context, id primitive.ObjectID) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}

func (f *fakeGames) Upsert(_ context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.games {
		if g.Season == game.Season && g.Week == game.Week && g.Key() == game.Key() {
			game.ID = g.ID
			f.games[i] = game
			return nil
		}
	}
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}
	f.games = append(f.games, game)
	return nil
}

type fakePicks struct {
	mu    sync.Mutex
	picks []*models.Pick
	err   error
}

func (f *fakePicks) add(season, week int, player *models.Player, category models.Category, value string, game *models.Game) *models.Pick {
	p := &models.Pick{
		ID:       primitive.NewObjectID(),
		Season:   season,
		Week:     week,
		PlayerID: player.ID,
		Category: category,
		Value:    value,
	}
	if game != nil {
		id := game.ID
		p.GameID = &id
	}
	f.mu.Lock()
	f.picks = append(f.picks, p)
	f.mu.Unlock()
	return p
}

func (f *fakePicks) FindByWeek(_ context.Context, season, week int) ([]*models.Pick, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Pick
	for _, p := range f.picks {
		if p.Season == season && p.Week == week {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePicks) FindByPlayerCategory(_ context.Context, season, week int, playerID primitive.ObjectID, category models.Category) (*models.Pick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.picks {
		if p.Season == season && p.Week == week && p.PlayerID == playerID && p.Category == category {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePicks) FindByValue(_ context.Context, season, week int, category models.Category, value string) ([]*models.Pick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Pick
	for _, p := range f.picks {
		if p.Season == season && p.Week == week && p.Category == category && p.Value == value {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePicks) Upsert(_ context.Context, pick *models.Pick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.picks {
		if p.Season == pick.Season && p.Week == pick.Week && p.PlayerID == pick.PlayerID && p.Category == pick.Category {
			pick.ID = p.ID
			cp := *pick
			f.picks[i] = &cp
			return nil
		}
	}
	pick.ID = primitive.NewObjectID()
	cp := *pick
	f.picks = append(f.picks, &cp)
	return nil
}

type fakeGameResults struct {
	mu      sync.Mutex
	results []*models.GameResult
}

func (f *fakeGameResults) FindByWeek(_ context.Context, season, week int) ([]*models.GameResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.GameResult
	for _, r := range f.results {
		if r.Season == season && r.Week == week {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeGameResults) Upsert(_ context.Context, result *models.GameResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.results {
		if r.Season == result.Season && r.Week == result.Week && r.Key() == result.Key() {
			f.results[i] = result
			return nil
		}
	}
	f.results = append(f.results, result)
	return nil
}

type resultKey struct {
	season, week int
	player       primitive.ObjectID
	category     models.Category
}

type fakeResults struct {
	mu      sync.Mutex
	order   []resultKey
	byKey   map[resultKey]*models.Result
	upserts int
}

func newFakeResults() *fakeResults {
	return &fakeResults{byKey: make(map[resultKey]*models.Result)}
}

func (f *fakeResults) add(season, week int, player *models.Player, category models.Category, outcome models.Outcome) {
	_ = f.Upsert(context.Background(), &models.Result{
		Season: season, Week: week, PlayerID: player.ID, Category: category, Outcome: outcome,
	})
}

func (f *fakeResults) get(season, week int, player *models.Player, category models.Category) *models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byKey[resultKey{season, week, player.ID, category}]
}

func (f *fakeResults) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byKey)
}

func (f *fakeResults) list(match func(*models.Result) bool) []*models.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Result
	for _, k := range f.order {
		if r := f.byKey[k]; match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeResults) FindByWeek(_ context.Context, season, week int) ([]*models.Result, error) {
	return f.list(func(r *models.Result) bool { return r.Season == season && r.Week == week }), nil
}

func (f *fakeResults) FindBySeason(_ context.Context, season int) ([]*models.Result, error) {
	return f.list(func(r *models.Result) bool { return r.Season == season }), nil
}

func (f *fakeResults) Upsert(_ context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := resultKey{result.Season, result.Week, result.PlayerID, result.Category}
	if _, ok := f.byKey[k]; !ok {
		f.order = append(f.order, k)
	}
	cp := *result
	f.byKey[k] = &cp
	f.upserts++
	return nil
}

type fakeLocks map[[2]int]*models.WeekLock

func (f fakeLocks) FindByWeek(_ context.Context, season, week int) (*models.WeekLock, error) {
	return f[[2]int{season, week}], nil
}

type fakeNFLPlayers []*models.NFLPlayer

func (f fakeNFLPlayers) FindActiveByTeams(_ context.Context, teams []string) ([]*models.NFLPlayer, error) {
	want := make(map[string]bool, len(teams))
	for _, t := range teams {
		want[t] = true
	}
	var out []*models.NFLPlayer
	for _, p := range f {
		if p.Active && want[p.Team] {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu            sync.Mutex
	standings     map[int][]models.PlayerStanding
	sets          int
	invalidations []int
}

func newFakeCache() *fakeCache {
	return &fakeCache{standings: make(map[int][]models.PlayerStanding)}
}

func (f *fakeCache) GetLeaderboard(_ context.Context, season int) ([]models.PlayerStanding, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.standings[season]
	return s, ok, nil
}

func (f *fakeCache) SetLeaderboard(_ context.Context, season int, standings []models.PlayerStanding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.standings[season] = standings
	f.sets++
	return nil
}

func (f *fakeCache) InvalidateLeaderboard(_ context.Context, season int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.standings, season)
	f.invalidations = append(f.invalidations, season)
	return nil
}

type fakeProvider struct {
	configured bool
	odds       []OddsEvent
	scores     []ScoreEvent
	err        error
	oddsCalls  int
	scoreFrom  time.Time
	scoreTo    time.Time
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) FetchOdds(_ context.Context) ([]OddsEvent, error) {
	f.oddsCalls++
	return f.odds, f.err
}

func (f *fakeProvider) FetchScores(_ context.Context, from, to time.Time) ([]ScoreEvent, error) {
	f.scoreFrom, f.scoreTo = from, to
	return f.scores, f.err
}

type fakeResolver struct {
	calls   [][2]int
	updated int
	err     error
}

func (f *fakeResolver) ResolveWeek(_ context.Context, season, week int) (int, error) {
	f.calls = append(f.calls, [2]int{season, week})
	return f.updated, f.err
}

func floatPtr(f float64) *float64 { return &f }
