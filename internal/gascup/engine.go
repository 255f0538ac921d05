// Package gascup implements best-ball net team match play. Two pairs in
// each tee-time group play hole-by-hole; the front nine, back nine, and
// overall each carry one point, halved on a tie.
package gascup

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/google/uuid"
)

// New creates a new Gas Cup Engine.
func New(db *sql.DB) Engine {
	return &engine{
		db: db,
	}
}

func (e *engine) CreatePairs(gameID string, pairs []PairSpec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO gas_cup_pairs (id, game_id, team, group_label, player1_id, player2_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range pairs {
		var p2 any
		if p.Player2 != "" {
			p2 = p.Player2
		}
		if _, err := stmt.Exec(uuid.New().String(), gameID, p.Team, p.Group, p.Player1, p2); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create pair for %s in group %s: %w", p.Team, p.Group, err)
		}
	}
	return tx.Commit()
}

// UpdateHole is triggered after every score write on the anchor game. When
// no open cup game is anchored there it does nothing, so the scoring path
// can call it unconditionally.
func (e *engine) UpdateHole(tx *sql.Tx, baseGameID, playerID string, hole int) error {
	var cupGameID string
	err := tx.QueryRow(`
		SELECT id FROM games
		WHERE assoc_game = ? AND game_type IN (?, ?) AND status != ?
		LIMIT 1
	`, baseGameID, string(league.GameGasCup), string(league.GameFallClassic), string(league.StatusClosed)).Scan(&cupGameID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve cup game for %s: %w", baseGameID, err)
	}

	var group string
	err = tx.QueryRow(`
		SELECT group_label FROM scorecard_meta WHERE game_id = ? AND player_id = ?
	`, baseGameID, playerID).Scan(&group)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := tx.Query(`
		SELECT id, player1_id, COALESCE(player2_id, '') FROM gas_cup_pairs
		WHERE game_id = ? AND group_label = ?
	`, cupGameID, group)
	if err != nil {
		return err
	}
	type pairRow struct {
		id, p1, p2 string
	}
	var pairs []pairRow
	for rows.Next() {
		var p pairRow
		if err := rows.Scan(&p.id, &p.p1, &p.p2); err != nil {
			rows.Close()
			return err
		}
		pairs = append(pairs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, p := range pairs {
		var bestNet sql.NullInt64
		err := tx.QueryRow(`
			SELECT MIN(net_score) FROM scorecards
			WHERE game_id = ? AND hole = ? AND player_id IN (?, ?)
		`, baseGameID, hole, p.p1, p.p2).Scan(&bestNet)
		if err != nil {
			return fmt.Errorf("failed to read best ball for pair %s hole %d: %w", p.id, hole, err)
		}

		if !bestNet.Valid {
			// Neither member has a posted score: drop the row entirely so
			// holes-completed counts stay accurate.
			if _, err := tx.Exec(`DELETE FROM gas_cup_scores WHERE pair_id = ? AND hole = ?`, p.id, hole); err != nil {
				return err
			}
			continue
		}
		_, err = tx.Exec(`
			INSERT INTO gas_cup_scores (pair_id, hole, best_net) VALUES (?, ?, ?)
			ON CONFLICT(pair_id, hole) DO UPDATE SET best_net = excluded.best_net
		`, p.id, hole, bestNet.Int64)
		if err != nil {
			return fmt.Errorf("failed to upsert best ball for pair %s hole %d: %w", p.id, hole, err)
		}
	}
	log.Debug("Gas cup hole updated", "cup", cupGameID, "group", group, "hole", hole)
	return nil
}

type matchPair struct {
	id   string
	team string
}

// loadMatch returns the two pairs for a group in the cup game, and their
// per-hole best-ball scores.
func (e *engine) loadMatch(cupGameID, group string) ([2]matchPair, map[string]map[int]int, error) {
	var match [2]matchPair

	rows, err := e.db.Query(`
		SELECT id, team FROM gas_cup_pairs WHERE game_id = ? AND group_label = ? ORDER BY team
	`, cupGameID, group)
	if err != nil {
		return match, nil, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var p matchPair
		if err := rows.Scan(&p.id, &p.team); err != nil {
			return match, nil, err
		}
		if n < 2 {
			match[n] = p
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return match, nil, err
	}
	if n != 2 {
		return match, nil, &league.ValidationError{Reason: fmt.Sprintf("group %s does not have exactly two sides", group)}
	}

	scores := map[string]map[int]int{match[0].id: {}, match[1].id: {}}
	srows, err := e.db.Query(`
		SELECT pair_id, hole, best_net FROM gas_cup_scores WHERE pair_id IN (?, ?)
	`, match[0].id, match[1].id)
	if err != nil {
		return match, nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var pairID string
		var hole, net int
		if err := srows.Scan(&pairID, &hole, &net); err != nil {
			return match, nil, err
		}
		scores[pairID][hole] = net
	}
	return match, scores, srows.Err()
}

func segment(match [2]matchPair, scores map[string]map[int]int, from, to, thru int) Segment {
	wins := [2]int{}
	for hole := from; hole <= to && hole <= thru; hole++ {
		a, okA := scores[match[0].id][hole]
		b, okB := scores[match[1].id][hole]
		if !okA || !okB {
			continue
		}
		switch {
		case a < b:
			wins[0]++
		case b < a:
			wins[1]++
		}
	}
	switch {
	case wins[0] > wins[1]:
		m := wins[0] - wins[1]
		return Segment{Winner: match[0].team, Margin: m, Text: fmt.Sprintf("%s +%d", match[0].team, m)}
	case wins[1] > wins[0]:
		m := wins[1] - wins[0]
		return Segment{Winner: match[1].team, Margin: m, Text: fmt.Sprintf("%s +%d", match[1].team, m)}
	default:
		return Segment{Text: "All Square"}
	}
}

func (e *engine) Status(baseGameID, group string, thru int) (*MatchStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var cupGameID string
	err := e.db.QueryRow(`
		SELECT id FROM games WHERE assoc_game = ? AND game_type IN (?, ?) LIMIT 1
	`, baseGameID, string(league.GameGasCup), string(league.GameFallClassic)).Scan(&cupGameID)
	if err == sql.ErrNoRows {
		return nil, &league.ValidationError{Reason: fmt.Sprintf("no cup game anchored on %s", baseGameID)}
	}
	if err != nil {
		return nil, err
	}

	match, scores, err := e.loadMatch(cupGameID, group)
	if err != nil {
		return nil, err
	}
	return &MatchStatus{
		Group:   group,
		Thru:    thru,
		Front:   segment(match, scores, 1, 9, thru),
		Back:    segment(match, scores, 10, 18, thru),
		Overall: segment(match, scores, 1, 18, thru),
	}, nil
}

// Points settles each group's match. Front is awarded once the match is
// thru 9, back and overall once thru 18; a match stopped short of a
// checkpoint simply stays unsettled, no proration. Manual overrides are
// summed exactly as recorded.
func (e *engine) Points(cupGameID string) (*Standings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	groups, err := e.groupLabels(cupGameID)
	if err != nil {
		return nil, err
	}

	standings := &Standings{Teams: map[string]float64{}}
	for _, group := range groups {
		match, scores, err := e.loadMatch(cupGameID, group)
		if err != nil {
			return nil, err
		}
		standings.Teams[match[0].team] += 0
		standings.Teams[match[1].team] += 0

		gp := GroupPoints{Group: group, Points: map[string]float64{}}

		var t1, t2 float64
		var display string
		err = e.db.QueryRow(`
			SELECT team1_points, team2_points, display FROM gas_cup_overrides
			WHERE game_id = ? AND group_label = ?
		`, cupGameID, group).Scan(&t1, &t2, &display)
		switch {
		case err == sql.ErrNoRows:
			gp = e.settle(match, scores, group)
		case err != nil:
			return nil, err
		default:
			gp.Points[match[0].team] = t1
			gp.Points[match[1].team] = t2
			gp.Display = display
			gp.Settled = true
			gp.Overridden = true
		}

		for team, pts := range gp.Points {
			standings.Teams[team] += pts
		}
		standings.Groups = append(standings.Groups, gp)
	}
	return standings, nil
}

func (e *engine) settle(match [2]matchPair, scores map[string]map[int]int, group string) GroupPoints {
	gp := GroupPoints{Group: group, Points: map[string]float64{}}

	// Thru is the highest hole both sides have posted.
	thru := 0
	for hole := 1; hole <= 18; hole++ {
		_, okA := scores[match[0].id][hole]
		_, okB := scores[match[1].id][hole]
		if okA && okB && hole > thru {
			thru = hole
		}
	}

	award := func(seg Segment) {
		if seg.Winner == "" {
			gp.Points[match[0].team] += 0.5
			gp.Points[match[1].team] += 0.5
			return
		}
		gp.Points[seg.Winner] += 1
	}

	if thru >= 9 {
		award(segment(match, scores, 1, 9, thru))
		gp.Settled = true
	}
	if thru >= 18 {
		award(segment(match, scores, 10, 18, thru))
		award(segment(match, scores, 1, 18, thru))
	}
	if !gp.Settled {
		gp.Points = map[string]float64{}
	}
	return gp
}

func (e *engine) groupLabels(cupGameID string) ([]string, error) {
	rows, err := e.db.Query(`
		SELECT DISTINCT group_label FROM gas_cup_pairs WHERE game_id = ? ORDER BY group_label
	`, cupGameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (e *engine) SetOverride(cupGameID, group string, team1Points, team2Points float64, display string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, err := e.db.Exec(`
		INSERT INTO gas_cup_overrides (game_id, group_label, team1_points, team2_points, display)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id, group_label) DO UPDATE SET
			team1_points = excluded.team1_points,
			team2_points = excluded.team2_points,
			display = excluded.display
	`, cupGameID, group, team1Points, team2Points, display)
	return err
}
