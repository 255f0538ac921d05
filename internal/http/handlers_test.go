package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/duffsix/golf-league/internal/config"
	"github.com/duffsix/golf-league/internal/database"
	"github.com/duffsix/golf-league/internal/forty"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/metrics"
	"github.com/duffsix/golf-league/internal/notifier"
	"github.com/duffsix/golf-league/internal/pubsub"
	"github.com/duffsix/golf-league/internal/scoring"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/duffsix/golf-league/internal/stableford"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*Server, league.LeagueStore, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	leagueStore := league.New(db)
	scoreStore := ledger.New(db)
	cfg := config.Config{Forty: config.FortyConfig{NumScores: 40, MinHole1: 3, MinHole18: 2}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	skinsEngine := skins.New(db)
	fortyEngine := forty.New(db, cfg.Forty)
	gascupEngine := gascup.New(db)
	stablefordEngine := stableford.New(db)
	mockNotifier := notifier.NewMock()
	mockPubsub := pubsub.NewMock()
	proc := scoring.NewProcessor(db, leagueStore, scoreStore, skinsEngine, gascupEngine, stablefordEngine, mockPubsub, mockNotifier, metricsSvc)

	server := NewServer(leagueStore, scoreStore, skinsEngine, fortyEngine, gascupEngine, stablefordEngine, proc, mockNotifier, metricsSvc, metricsHandler, cfg, mockPubsub)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, leagueStore, teardown
}

func seedGame(t *testing.T, server *Server, store league.LeagueStore) {
	t.Helper()

	require.NoError(t, store.CreateCourse("c1", "Test Course"))
	require.NoError(t, store.CreateTeeSet(league.TeeSet{ID: "tee1", CourseID: "c1", Name: "White", Slope: 113, Rating: 70.0}))
	holes := make([]league.CourseHole, 0, 18)
	for hole := 1; hole <= 18; hole++ {
		holes = append(holes, league.CourseHole{TeeSetID: "tee1", Hole: hole, Par: 4, Yardage: 400, StrokeIndex: hole})
	}
	require.NoError(t, store.AddHoles(holes))
	require.NoError(t, store.UpsertPlayer(league.Player{ID: "p1", Name: "Alice Anderson", Index: 0, Member: true}))
	require.NoError(t, store.CreateGame(league.Game{ID: "g1", Type: league.GameSkins, PlayDate: "2026-06-01", CourseID: "c1", TeeSetID: "tee1", Format: league.FormatFullHandicap}))

	require.NoError(t, server.Processor.InitializeGame("g1", []ledger.InitEntry{
		{PlayerID: "p1", TeeSetID: "tee1", Group: "A"},
	}))
}

func postJSON(t *testing.T, server *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestRecordScoreHandler(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	rr := postJSON(t, server, "/score", map[string]any{
		"game_id": "g1", "player_id": "p1", "hole": 1, "raw_score": 4, "putts": 2, "actor": "test",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var result ledger.ScoreResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, 4, result.RawScore)
	assert.Equal(t, 4, result.NetScore)
	assert.False(t, result.Updated)
}

func TestRecordScoreHandlerValidation(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	rr := postJSON(t, server, "/score", map[string]any{
		"game_id": "g1", "player_id": "p1", "hole": 19, "raw_score": 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "out of range")
}

func TestRecordScoreHandlerLockedGame(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	req := httptest.NewRequest(http.MethodPost, "/games/lock?gameID=g1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, server, "/score", map[string]any{
		"game_id": "g1", "player_id": "p1", "hole": 1, "raw_score": 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "locked")
}

func TestScorecardsHandler(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	postJSON(t, server, "/score", map[string]any{
		"game_id": "g1", "player_id": "p1", "hole": 1, "raw_score": 4, "actor": "test",
	})

	req := httptest.NewRequest(http.MethodGet, "/scorecards?gameID=g1", nil)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var cards []ledger.PlayerCard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, "Alice Anderson", cards[0].PlayerName)
	assert.Equal(t, 4, cards[0].RawTotal)

	// Missing gameID is a bad request, not an empty list.
	req = httptest.NewRequest(http.MethodGet, "/scorecards", nil)
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNotifyScoreHandler(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	postJSON(t, server, "/score", map[string]any{
		"game_id": "g1", "player_id": "p1", "hole": 1, "raw_score": 4, "actor": "test",
	})

	mockPubsub := server.pubsub.(*pubsub.MockPubSubClient)
	mockPubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
		result := returnValue.(*ledger.ScoreResult)
		result.GameID = "g1"
		result.PlayerID = "p1"
		result.Hole = 1
		return nil
	}

	rr := postJSON(t, server, "/notify-score", map[string]any{
		"subscription": "projects/test/subscriptions/score-recorded",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString([]byte("payload")),
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "OK", rr.Body.String())

	mockNotifier := server.Notifier.(*notifier.Mock)
	require.Len(t, mockNotifier.SendSkinsLeaderboardCalls, 1)
	assert.Empty(t, mockNotifier.SendGasCupStatusCalls, "no cup game is anchored on g1")
}

func TestFortySelectHandlerRejection(t *testing.T) {
	server, store, teardown := setupTestServer(t)
	defer teardown()
	seedGame(t, server, store)

	rr := postJSON(t, server, "/forty/select", map[string]any{
		"forty_game_id": "nope", "hole": 1, "group": "A", "player_ids": []string{"p1"}, "actor": "test",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCreateGameHandlerUnknownType(t *testing.T) {
	server, _, teardown := setupTestServer(t)
	defer teardown()

	rr := postJSON(t, server, "/games", map[string]any{
		"id": "g9", "type": "bingo", "play_date": "2026-06-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
