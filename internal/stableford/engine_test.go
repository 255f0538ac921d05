package stableford_test

import (
	"database/sql"
	"testing"

	"github.com/duffsix/golf-league/internal/database"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/stableford"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsScale(t *testing.T) {
	tests := []struct {
		name   string
		par    int
		net    int
		points int
	}{
		{"net double bogey", 4, 6, 0},
		{"net triple bogey", 4, 7, 0},
		{"net bogey", 4, 5, 1},
		{"net par", 4, 4, 2},
		{"net birdie", 4, 3, 3},
		{"net eagle", 5, 3, 4},
		{"net albatross", 5, 2, 5},
		{"better than albatross still capped", 5, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.points, stableford.Points(tt.par, tt.net))
		})
	}
}

func setupTestDB(t *testing.T) (stableford.Engine, ledger.ScoreStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	engine := stableford.New(db)
	scoreStore := ledger.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return engine, scoreStore, db, teardown
}

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
		('p1', 'Alice Anderson', '', '', 0.0, 1),
		('p2', 'Bob Brown', '', '', 0.0, 1),
		('p3', 'Carol Clark', '', '', 0.0, 1),
		('p4', 'Dave Davis', '', '', 0.0, 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked)
		VALUES ('g-base', 'skins', '2026-06-01', 'c1', 'tee1', 'full_handicap', 'live', 'g-stbl', 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked)
		VALUES ('g-stbl', 'stableford', '2026-06-01', 'c1', 'tee1', 'full_handicap', 'live', 'g-base', 0)`)
	require.NoError(t, err)

	require.NoError(t, scoreStore.InitializeGame("g-base", []ledger.InitEntry{
		{PlayerID: "p1", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p2", TeeSetID: "tee1", Group: "A"},
		{PlayerID: "p3", TeeSetID: "tee1", Group: "B"},
		{PlayerID: "p4", TeeSetID: "tee1", Group: "B"},
	}, league.FormatFullHandicap))
}

func post(t *testing.T, db *sql.DB, scoreStore ledger.ScoreStore, engine stableford.Engine, playerID string, hole, raw int) {
	t.Helper()
	tx, err := db.Begin()
	require.NoError(t, err)
	_, err = scoreStore.RecordScore(tx, "g-base", playerID, hole, raw, 0, "test")
	require.NoError(t, err)
	require.NoError(t, engine.UpsertHole(tx, "g-base", playerID, hole))
	require.NoError(t, tx.Commit())
}

func TestUpsertHoleWritesPoints(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	post(t, db, scoreStore, engine, "p1", 1, 3)

	var points int
	err := db.QueryRow(`SELECT points FROM stbl_scores WHERE stbl_game_id = 'g-stbl' AND player_id = 'p1' AND hole = 1`).Scan(&points)
	require.NoError(t, err)
	assert.Equal(t, 3, points, "net birdie on a par 4")

	// A correction overwrites, never duplicates.
	post(t, db, scoreStore, engine, "p1", 1, 6)
	err = db.QueryRow(`SELECT points FROM stbl_scores WHERE stbl_game_id = 'g-stbl' AND player_id = 'p1' AND hole = 1`).Scan(&points)
	require.NoError(t, err)
	assert.Equal(t, 0, points)

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM stbl_scores WHERE stbl_game_id = 'g-stbl'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUpsertHoleWithoutStablefordGameIsNoOp(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	_, err := db.Exec(`DELETE FROM games WHERE id = 'g-stbl'`)
	require.NoError(t, err)

	post(t, db, scoreStore, engine, "p1", 1, 3)

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM stbl_scores`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAssembleTeamsIndividual(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	err := engine.AssembleTeams("g-stbl", stableford.FormatIndividual, [][]string{{"p1", "p2"}, {"p3"}})
	require.NoError(t, err)

	standings, err := engine.Standings("g-stbl")
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, "A. Anderson", standings[0].Name)
	assert.Equal(t, "B. Brown", standings[1].Name)
	assert.Equal(t, "C. Clark", standings[2].Name)
}

func TestAssembleTeamsIndividualNonASCIIName(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	_, err := db.Exec(`INSERT INTO players (id, name, mobile, email, hcp_index, member) VALUES ('p5', 'Åke Öberg', '', '', 0.0, 1)`)
	require.NoError(t, err)

	require.NoError(t, engine.AssembleTeams("g-stbl", stableford.FormatIndividual, [][]string{{"p5"}}))

	standings, err := engine.Standings("g-stbl")
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, "Å. Öberg", standings[0].Name)
}

func TestAssembleTeamsTwosomeReplacesPrior(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	err := engine.AssembleTeams("g-stbl", stableford.FormatIndividual, [][]string{{"p1", "p2", "p3", "p4"}})
	require.NoError(t, err)

	err = engine.AssembleTeams("g-stbl", stableford.FormatTwosome, [][]string{{"p1", "p2"}, {"p3", "p4"}})
	require.NoError(t, err)

	standings, err := engine.Standings("g-stbl")
	require.NoError(t, err)
	require.Len(t, standings, 2, "reassembly replaces prior teams wholesale")
	assert.Equal(t, "Anderson-Brown", standings[0].Name)
	assert.Equal(t, "Clark-Davis", standings[1].Name)
}

func TestAssembleTeamsUnknownFormat(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	err := engine.AssembleTeams("g-stbl", stableford.TeamFormat("3some"), [][]string{{"p1"}})
	var vErr *league.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestStandingsSumTeamPoints(t *testing.T) {
	engine, scoreStore, db, teardown := setupTestDB(t)
	defer teardown()
	seedGame(t, db, scoreStore)

	require.NoError(t, engine.AssembleTeams("g-stbl", stableford.FormatTwosome, [][]string{{"p1", "p2"}, {"p3", "p4"}}))

	post(t, db, scoreStore, engine, "p1", 1, 4) // 2 points
	post(t, db, scoreStore, engine, "p2", 1, 5) // 1 point
	post(t, db, scoreStore, engine, "p3", 1, 3) // 3 points

	standings, err := engine.Standings("g-stbl")
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, 3, standings[0].Points)
	assert.Equal(t, 2, standings[0].Holes)
	assert.Equal(t, 3, standings[1].Points)
	assert.Equal(t, 1, standings[1].Holes)
}
