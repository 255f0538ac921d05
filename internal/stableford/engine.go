// Package stableford converts net scores to Stableford points on a fixed
// (par - net) scale and keeps team standings for the derived game.
package stableford

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/league"
)

// New creates a new Stableford Engine.
func New(db *sql.DB) Engine {
	return &engine{
		db: db,
	}
}

// Points maps a hole result to Stableford points. Net double bogey or worse
// scores zero; every stroke under par past that is worth one more point,
// capped at 5 for net albatross or better.
func Points(par, netScore int) int {
	switch diff := par - netScore; {
	case diff <= -2:
		return 0
	case diff >= 3:
		return 5
	default:
		return diff + 2
	}
}

func (e *engine) UpsertHole(tx *sql.Tx, baseGameID, playerID string, hole int) error {
	var stblGameID string
	err := tx.QueryRow(`
		SELECT id FROM games
		WHERE assoc_game = ? AND game_type = ? AND status != ?
		LIMIT 1
	`, baseGameID, string(league.GameStableford), string(league.StatusClosed)).Scan(&stblGameID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve stableford game for %s: %w", baseGameID, err)
	}

	var rawScore, netScore, par int
	err = tx.QueryRow(`
		SELECT c.raw_score, c.net_score, h.par
		FROM scorecards c
		JOIN scorecard_meta m ON m.id = c.meta_id
		JOIN course_holes h ON h.tee_set_id = m.tee_set_id AND h.hole = c.hole
		WHERE c.game_id = ? AND c.player_id = ? AND c.hole = ?
	`, baseGameID, playerID, hole).Scan(&rawScore, &netScore, &par)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	points := Points(par, netScore)
	_, err = tx.Exec(`
		INSERT INTO stbl_scores (stbl_game_id, player_id, hole, points, raw_score, net_score)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(stbl_game_id, player_id, hole) DO UPDATE SET
			points = excluded.points,
			raw_score = excluded.raw_score,
			net_score = excluded.net_score
	`, stblGameID, playerID, hole, points, rawScore, netScore)
	if err != nil {
		return fmt.Errorf("failed to upsert stableford points: %w", err)
	}
	log.Debug("Stableford points upserted", "game", stblGameID, "player", playerID, "hole", hole, "points", points)
	return nil
}

// AssembleTeams replaces the game's team rows from the declared pairings.
// Individual format numbers each player as their own team named "F. Last";
// 2some/4some teams join last names with a hyphen in the order supplied.
// Delete-then-recreate keeps reconfiguration idempotent.
func (e *engine) AssembleTeams(stblGameID string, format TeamFormat, pairings [][]string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM stbl_teams WHERE stbl_game_id = ?`, stblGameID); err != nil {
		tx.Rollback()
		return err
	}

	var teams []Team
	switch format {
	case FormatIndividual:
		teamNo := 0
		for _, group := range pairings {
			for _, playerID := range group {
				name, err := e.playerName(tx, playerID)
				if err != nil {
					tx.Rollback()
					return err
				}
				teamNo++
				teams = append(teams, Team{GameID: stblGameID, TeamNo: teamNo, Name: initialLast(name), PlayerIDs: []string{playerID}})
			}
		}
	case FormatTwosome, FormatFoursome:
		for i, group := range pairings {
			var lasts []string
			for _, playerID := range group {
				name, err := e.playerName(tx, playerID)
				if err != nil {
					tx.Rollback()
					return err
				}
				lasts = append(lasts, lastName(name))
			}
			teams = append(teams, Team{GameID: stblGameID, TeamNo: i + 1, Name: strings.Join(lasts, "-"), PlayerIDs: group})
		}
	default:
		tx.Rollback()
		return &league.ValidationError{Reason: fmt.Sprintf("unknown team format %q", format)}
	}

	for _, team := range teams {
		ids, err := json.Marshal(team.PlayerIDs)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO stbl_teams (stbl_game_id, team_no, name, player_ids) VALUES (?, ?, ?, ?)
		`, team.GameID, team.TeamNo, team.Name, string(ids))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create team %d: %w", team.TeamNo, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Stableford teams assembled", "game", stblGameID, "format", format, "teams", len(teams))
	return nil
}

func (e *engine) playerName(tx *sql.Tx, playerID string) (string, error) {
	var name string
	err := tx.QueryRow(`SELECT name FROM players WHERE id = ?`, playerID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", &league.ValidationError{Reason: fmt.Sprintf("unknown player %s", playerID)}
	}
	return name, err
}

func initialLast(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	// Index runes, not bytes, so multi-byte initials survive.
	return fmt.Sprintf("%c. %s", []rune(fields[0])[0], fields[len(fields)-1])
}

func lastName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

func (e *engine) Standings(stblGameID string) ([]TeamStanding, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rows, err := e.db.Query(`SELECT team_no, name, player_ids FROM stbl_teams WHERE stbl_game_id = ? ORDER BY team_no`, stblGameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type teamRow struct {
		standing TeamStanding
		players  []string
	}
	var teams []teamRow
	for rows.Next() {
		var tr teamRow
		var idsJSON string
		if err := rows.Scan(&tr.standing.TeamNo, &tr.standing.Name, &idsJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(idsJSON), &tr.players); err != nil {
			return nil, fmt.Errorf("failed to unmarshal players for team %d: %w", tr.standing.TeamNo, err)
		}
		teams = append(teams, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range teams {
		for _, playerID := range teams[i].players {
			var pts, holes int
			err := e.db.QueryRow(`
				SELECT COALESCE(SUM(points), 0), COUNT(*) FROM stbl_scores
				WHERE stbl_game_id = ? AND player_id = ?
			`, stblGameID, playerID).Scan(&pts, &holes)
			if err != nil {
				return nil, err
			}
			teams[i].standing.Points += pts
			teams[i].standing.Holes += holes
		}
	}

	standings := make([]TeamStanding, 0, len(teams))
	for _, tr := range teams {
		standings = append(standings, tr.standing)
	}
	return standings, nil
}
