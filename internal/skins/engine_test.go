package skins_test

import (
	"database/sql"
	"testing"

	"github.com/duffsix/golf-league/internal/database"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (skins.Engine, ledger.ScoreStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	engine := skins.New(db)
	scoreStore := ledger.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return engine, scoreStore, db, teardown
}

// seedGame sets up a course (slope 113, stroke_index == hole), three scratch
// players and a live skins game with everyone initialized.
func seedGame(t *testing.T, db *sql.DB, scoreStore ledger.ScoreStore) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO courses (id, name) VALUES ('c1', 'Test Course')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tee_sets (id, course_id, name, slope, rating) VALUES ('tee1', 'c1', 'White', 113, 70.0)`)
	require.NoError(t, err)
	for hole := 1; hole <= 18; hole++ {
		_, err = db.Exec(`INSERT INTO course_holes (tee_set_id, hole, par, yardage, stroke_index) VALUES ('tee1', ?, 4, 400, ?)`, hole, hole)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO players (id, name, mobile, email, hcp_index, member) VALUES
		('p1', 'Player One', '', '', 0.0, 1),
		('p2', 'Player Two', '', '', 0.0, 1),
		('p3', 'Player Three', '', '', 0.0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, locked)
		VALUES ('g1', 'skins', '2026-06-01', 'c1', 'tee1', 'full_handicap', 'live', 0)`)
	require.NoError(t, err)

	err = scoreStore.InitializeGame("g1", []ledger.InitEntry{
		{PlayerID: "p1", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p2", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p3", TeeSetID: "tee1", Group: "A"},
	}, league.FormatFullHandicap)
	require.NoError(t, err)
}

// score posts a raw score and recomputes skins in one transaction, the way
// the cascade does.
func score(t *testing.T, db *sql.DB, scoreStore ledger.ScoreStore, engine skins.Engine, playerID string, hole, raw int) {
	t.Helper()
	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = scoreStore.RecordScore(tx, "g1", playerID, hole, raw, 0, "test")
	require.NoError(t, err)
	require.NoError(t, engine.Recompute(tx, "g1"))
	require.NoError(t, tx.Commit())
}

func skinCounter(t *testing.T, db *sql.DB, playerID string) int {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT skins FROM scorecard_meta WHERE game_id = 'g1' AND player_id = ?`, playerID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestOutrightLowWinsSkin(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	score(t, db, scoreStore, engine, "p1", 1, 3)
	score(t, db, scoreStore, engine, "p2", 1, 4)
	score(t, db, scoreStore, engine, "p3", 1, 5)

	entries, err := engine.Leaderboard("g1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1", entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].Skins)
	assert.Equal(t, []int{1}, entries[0].Holes)
	assert.Equal(t, 1, skinCounter(t, db, "p1"))
}

func TestTieVoidsHole(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	score(t, db, scoreStore, engine, "p1", 1, 4)
	score(t, db, scoreStore, engine, "p2", 1, 4)
	score(t, db, scoreStore, engine, "p3", 1, 6)

	entries, err := engine.Leaderboard("g1")
	require.NoError(t, err)
	assert.Empty(t, entries, "a tied low voids the hole even with a worse third score")
}

func TestCorrectionMovesSkin(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	score(t, db, scoreStore, engine, "p1", 1, 3)
	score(t, db, scoreStore, engine, "p2", 1, 4)
	assert.Equal(t, 1, skinCounter(t, db, "p1"))

	// p2's card was wrong: they made 2, taking the skin from p1.
	score(t, db, scoreStore, engine, "p2", 1, 2)

	assert.Equal(t, 0, skinCounter(t, db, "p1"))
	assert.Equal(t, 1, skinCounter(t, db, "p2"))

	entries, err := engine.Leaderboard("g1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p2", entries[0].PlayerID)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	score(t, db, scoreStore, engine, "p1", 1, 3)
	score(t, db, scoreStore, engine, "p2", 1, 4)
	score(t, db, scoreStore, engine, "p1", 2, 5)
	score(t, db, scoreStore, engine, "p2", 2, 4)

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, engine.Recompute(tx, "g1"))
	require.NoError(t, tx.Commit())

	assert.Equal(t, 1, skinCounter(t, db, "p1"))
	assert.Equal(t, 1, skinCounter(t, db, "p2"))

	var total int
	err = db.QueryRow(`SELECT COUNT(*) FROM skins WHERE game_id = 'g1'`).Scan(&total)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestSingleScoreOnHoleWinsSkin(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	// Only one card posted on the hole so far: outright low by definition.
	score(t, db, scoreStore, engine, "p3", 7, 4)

	entries, err := engine.Leaderboard("g1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p3", entries[0].PlayerID)
	assert.Equal(t, []int{7}, entries[0].Holes)
}
