package gascup_test

import (
	"database/sql"
	"testing"

	"github.com/duffsix/golf-league/internal/database"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (gascup.Engine, ledger.ScoreStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	engine := gascup.New(db)
	scoreStore := ledger.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return engine, scoreStore, db, teardown
}

// seedMatch sets up an anchor game with a linked cup game and one group:
// PGA fields p1+p2, LIV fields p3 alone.
func seedMatch(t *testing.T, db *sql.DB, engine gascup.Engine, scoreStore ledger.ScoreStore) {
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
	_, err = db.Exec(`INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked)
		VALUES ('g-base', 'skins', '2026-06-01', 'c1', 'tee1', 'full_handicap', 'live', 'g-cup', 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked)
		VALUES ('g-cup', 'gas_cup', '2026-06-01', 'c1', 'tee1', 'full_handicap', 'live', 'g-base', 0)`)
	require.NoError(t, err)

	require.NoError(t, scoreStore.InitializeGame("g-base", []ledger.InitEntry{
		{PlayerID: "p1", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p2", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p3", TeeSetID: "tee1", Group: "A"},
	}, league.FormatFullHandicap))

	require.NoError(t, engine.CreatePairs("g-cup", []gascup.PairSpec{
		{Team: gascup.TeamPGA, Group: "A", Player1: "p1", Player2: "p2"},
		{Team: gascup.TeamLIV, Group: "A", Player1: "p3"},
	}))
}

// post writes a raw score and refreshes the cup best-ball in one transaction.
func post(t *testing.T, db *sql.DB, scoreStore ledger.ScoreStore, engine gascup.Engine, playerID string, hole, raw int) {
	t.Helper()
	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = scoreStore.RecordScore(tx, "g-base", playerID, hole, raw, 0, "test")
	require.NoError(t, err)
	require.NoError(t, engine.UpdateHole(tx, "g-base", playerID, hole))
	require.NoError(t, tx.Commit())
}

func bestNet(t *testing.T, db *sql.DB, team string, hole int) (int, bool) {
	t.Helper()
	var net int
	err := db.QueryRow(`
		SELECT s.best_net FROM gas_cup_scores s
		JOIN gas_cup_pairs p ON p.id = s.pair_id
		WHERE p.game_id = 'g-cup' AND p.team = ? AND s.hole = ?
	`, team, hole).Scan(&net)
	if err == sql.ErrNoRows {
		return 0, false
	}
	require.NoError(t, err)
	return net, true
}

func TestBestBallTakesLowerOfPair(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	post(t, db, scoreStore, engine, "p1", 1, 5)
	net, ok := bestNet(t, db, gascup.TeamPGA, 1)
	require.True(t, ok)
	assert.Equal(t, 5, net, "one posted ball is the best ball so far")

	post(t, db, scoreStore, engine, "p2", 1, 4)
	net, ok = bestNet(t, db, gascup.TeamPGA, 1)
	require.True(t, ok)
	assert.Equal(t, 4, net)

	// Correcting the better ball upward re-derives the best ball.
	post(t, db, scoreStore, engine, "p2", 1, 7)
	net, ok = bestNet(t, db, gascup.TeamPGA, 1)
	require.True(t, ok)
	assert.Equal(t, 5, net)
}

func TestUpdateHoleWithoutCupIsNoOp(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	_, err := db.Exec(`DELETE FROM gas_cup_pairs WHERE game_id = 'g-cup'`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM games WHERE id = 'g-cup'`)
	require.NoError(t, err)

	post(t, db, scoreStore, engine, "p1", 1, 4)

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM gas_cup_scores`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStaleBestBallDeletedWhenNeitherPosted(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	// A leftover LIV row on hole 2 with no backing scorecard rows, as a
	// withdrawn correction would leave behind.
	var livPairID string
	err := db.QueryRow(`SELECT id FROM gas_cup_pairs WHERE game_id = 'g-cup' AND team = ?`, gascup.TeamLIV).Scan(&livPairID)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO gas_cup_scores (pair_id, hole, best_net) VALUES (?, 2, 6)`, livPairID)
	require.NoError(t, err)

	// A group-mate's score write refreshes every pair in the group.
	post(t, db, scoreStore, engine, "p1", 2, 5)

	_, ok := bestNet(t, db, gascup.TeamLIV, 2)
	assert.False(t, ok, "row with no posted scores behind it must be deleted")

	net, ok := bestNet(t, db, gascup.TeamPGA, 2)
	require.True(t, ok)
	assert.Equal(t, 5, net)
}

func TestStatusSegments(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	// Hole 1: PGA 4 vs LIV 5. Hole 2: 4 apiece.
	post(t, db, scoreStore, engine, "p1", 1, 4)
	post(t, db, scoreStore, engine, "p3", 1, 5)
	post(t, db, scoreStore, engine, "p1", 2, 4)
	post(t, db, scoreStore, engine, "p3", 2, 4)

	status, err := engine.Status("g-base", "A", 18)
	require.NoError(t, err)
	assert.Equal(t, "A", status.Group)
	assert.Equal(t, gascup.TeamPGA, status.Front.Winner)
	assert.Equal(t, 1, status.Front.Margin)
	assert.Equal(t, "PGA +1", status.Front.Text)
	assert.Equal(t, "All Square", status.Back.Text)
	assert.Equal(t, "PGA +1", status.Overall.Text)
}

func TestPointsUnsettledBeforeNine(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	for hole := 1; hole <= 8; hole++ {
		post(t, db, scoreStore, engine, "p1", hole, 4)
		post(t, db, scoreStore, engine, "p3", hole, 5)
	}

	standings, err := engine.Points("g-cup")
	require.NoError(t, err)
	require.Len(t, standings.Groups, 1)
	assert.False(t, standings.Groups[0].Settled, "no proration: thru 8 settles nothing")
	assert.Equal(t, 0.0, standings.Teams[gascup.TeamPGA])
	assert.Equal(t, 0.0, standings.Teams[gascup.TeamLIV])
}

func TestPointsFrontSettlesAtNine(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	for hole := 1; hole <= 9; hole++ {
		post(t, db, scoreStore, engine, "p1", hole, 4)
		post(t, db, scoreStore, engine, "p3", hole, 5)
	}

	standings, err := engine.Points("g-cup")
	require.NoError(t, err)
	require.Len(t, standings.Groups, 1)
	assert.True(t, standings.Groups[0].Settled)
	assert.Equal(t, 1.0, standings.Teams[gascup.TeamPGA], "front point only; back and overall wait for 18")
	assert.Equal(t, 0.0, standings.Teams[gascup.TeamLIV])
}

func TestPointsHalvedSegments(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	// PGA wins hole 1, LIV wins hole 2, everything else tied: every segment
	// is halved.
	for hole := 1; hole <= 18; hole++ {
		pga, liv := 4, 4
		switch hole {
		case 1, 10:
			liv = 5
		case 2, 11:
			pga = 5
		}
		post(t, db, scoreStore, engine, "p1", hole, pga)
		post(t, db, scoreStore, engine, "p3", hole, liv)
	}

	standings, err := engine.Points("g-cup")
	require.NoError(t, err)
	assert.Equal(t, 1.5, standings.Teams[gascup.TeamPGA])
	assert.Equal(t, 1.5, standings.Teams[gascup.TeamLIV])
}

func TestOverrideTakesPrecedence(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedMatch(t, db, engine, scoreStore)

	for hole := 1; hole <= 9; hole++ {
		post(t, db, scoreStore, engine, "p1", hole, 4)
		post(t, db, scoreStore, engine, "p3", hole, 5)
	}

	// Sides are ordered by team name, so team1 is LIV.
	require.NoError(t, engine.SetOverride("g-cup", "A", 3, 0, "LIV wins by forfeit"))

	standings, err := engine.Points("g-cup")
	require.NoError(t, err)
	require.Len(t, standings.Groups, 1)
	assert.True(t, standings.Groups[0].Overridden)
	assert.Equal(t, "LIV wins by forfeit", standings.Groups[0].Display)
	assert.Equal(t, 3.0, standings.Teams[gascup.TeamLIV])
	assert.Equal(t, 0.0, standings.Teams[gascup.TeamPGA])
}
