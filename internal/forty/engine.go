// Package forty implements the Forty selection game. Each group banks a
// capped number of its net scores across the round; hole 1 and hole 18 carry
// minimum-use rules, and the pace rules force catch-up as holes run out.
package forty

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/config"
	"github.com/duffsix/golf-league/internal/league"
)

// New creates a new Forty Engine.
func New(db *sql.DB, cfg config.FortyConfig) Engine {
	return &engine{
		db:  db,
		cfg: cfg,
	}
}

func (e *engine) SelectScores(fortyGameID string, hole int, group string, playerIDs []string, actor string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if hole < 1 || hole > 18 {
		return &league.ValidationError{Reason: fmt.Sprintf("hole %d is out of range", hole)}
	}

	tx, err := e.db.Begin()
	if err != nil {
		return err
	}

	var gameType, baseGameID string
	err = tx.QueryRow(`SELECT game_type, COALESCE(assoc_game, '') FROM games WHERE id = ?`, fortyGameID).Scan(&gameType, &baseGameID)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return &league.ValidationError{Reason: fmt.Sprintf("game %s not found", fortyGameID)}
	}
	if err != nil {
		tx.Rollback()
		return err
	}
	if league.GameType(gameType) != league.GameForty || baseGameID == "" {
		tx.Rollback()
		return &league.ValidationError{Reason: fmt.Sprintf("game %s is not a Forty game with an anchor", fortyGameID)}
	}

	// Resubmission/back-navigation guard: a hole is committed for a group
	// exactly once.
	var already int
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM forty_scores WHERE forty_game_id = ? AND group_label = ? AND hole = ?
	`, fortyGameID, group, hole).Scan(&already); err != nil {
		tx.Rollback()
		return err
	}
	if already > 0 {
		tx.Rollback()
		return &league.ValidationError{Reason: fmt.Sprintf("group %s already selected scores for hole %d", group, hole)}
	}

	var used, groupSize int
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM forty_scores WHERE forty_game_id = ? AND group_label = ?
	`, fortyGameID, group).Scan(&used); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.QueryRow(`
		SELECT COUNT(*) FROM scorecard_meta WHERE game_id = ? AND group_label = ?
	`, baseGameID, group).Scan(&groupSize); err != nil {
		tx.Rollback()
		return err
	}
	if groupSize == 0 {
		tx.Rollback()
		return &league.ValidationError{Reason: fmt.Sprintf("no players in group %s", group)}
	}

	if reason := checkSelectionCount(e.cfg, hole, len(playerIDs), used, groupSize); reason != "" {
		tx.Rollback()
		return &league.ValidationError{Reason: reason}
	}

	now := time.Now().Unix()
	seen := make(map[string]bool, len(playerIDs))
	for _, playerID := range playerIDs {
		if seen[playerID] {
			tx.Rollback()
			return &league.ValidationError{Reason: fmt.Sprintf("player %s selected twice", playerID)}
		}
		seen[playerID] = true

		var teeSetID, metaGroup string
		err := tx.QueryRow(`
			SELECT tee_set_id, group_label FROM scorecard_meta WHERE game_id = ? AND player_id = ?
		`, baseGameID, playerID).Scan(&teeSetID, &metaGroup)
		if err == sql.ErrNoRows {
			tx.Rollback()
			return &league.NotInitializedError{GameID: baseGameID, PlayerID: playerID}
		}
		if err != nil {
			tx.Rollback()
			return err
		}
		if metaGroup != group {
			tx.Rollback()
			return &league.ValidationError{Reason: fmt.Sprintf("player %s is not in group %s", playerID, group)}
		}

		// Snapshot, not a live join: the selection records the score as it
		// stood when the group banked it.
		var rawScore, netScore, par int
		err = tx.QueryRow(`
			SELECT c.raw_score, c.net_score, h.par
			FROM scorecards c
			JOIN course_holes h ON h.tee_set_id = ? AND h.hole = c.hole
			WHERE c.game_id = ? AND c.player_id = ? AND c.hole = ?
		`, teeSetID, baseGameID, playerID, hole).Scan(&rawScore, &netScore, &par)
		if err == sql.ErrNoRows {
			tx.Rollback()
			return &league.ValidationError{Reason: fmt.Sprintf("player %s has no posted score for hole %d", playerID, hole)}
		}
		if err != nil {
			tx.Rollback()
			return err
		}

		_, err = tx.Exec(`
			INSERT INTO forty_scores (forty_game_id, group_label, hole, player_id, raw_score, net_score, par, created_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, fortyGameID, group, hole, playerID, rawScore, netScore, par, actor, now)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record selection for player %s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Forty scores selected", "game", fortyGameID, "group", group, "hole", hole, "count", len(playerIDs))
	return nil
}

// checkSelectionCount enforces the count rules for one hole. It returns the
// human-readable rejection reason, or "" when the selection is allowed.
func checkSelectionCount(cfg config.FortyConfig, hole, selected, used, groupSize int) string {
	needed := cfg.NumScores - used

	if selected > groupSize {
		return fmt.Sprintf("cannot select %d scores from a group of %d", selected, groupSize)
	}
	if selected > needed {
		return fmt.Sprintf("only %d more scores may be used this round", needed)
	}
	if hole == 1 && selected < cfg.MinHole1 {
		return fmt.Sprintf("hole 1 requires at least %d scores", cfg.MinHole1)
	}
	if hole == 18 {
		if selected != needed {
			return fmt.Sprintf("hole 18 must use exactly the remaining %d scores", needed)
		}
		return ""
	}

	// Catch-up floor: enough selections must remain possible on the holes
	// left to reach the round target.
	availableAfter := (18 - hole) * groupSize
	if floor := needed - availableAfter; floor > 0 && selected < floor {
		return fmt.Sprintf("at least %d scores must be used on hole %d to stay on pace", floor, hole)
	}

	// Hole-18 reserve: never spend so many that fewer than MinHole18
	// selections remain for the final hole.
	if limit := needed - cfg.MinHole18; selected > limit {
		return fmt.Sprintf("at most %d scores may be used before hole 18", max(limit, 0))
	}
	return ""
}

func (e *engine) Leaderboard(fortyGameID string) ([]GroupStanding, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rows, err := e.db.Query(`
		SELECT group_label, COUNT(*), SUM(net_score), SUM(par)
		FROM forty_scores
		WHERE forty_game_id = ?
		GROUP BY group_label
		ORDER BY SUM(net_score) - SUM(par)
	`, fortyGameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var standings []GroupStanding
	for rows.Next() {
		var s GroupStanding
		if err := rows.Scan(&s.Group, &s.ScoresUsed, &s.NetSum, &s.ParSum); err != nil {
			return nil, err
		}
		s.OverUnder = s.NetSum - s.ParSum
		standings = append(standings, s)
	}
	return standings, rows.Err()
}

func (e *engine) Progress(fortyGameID, group string) (*GroupProgress, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var baseGameID string
	err := e.db.QueryRow(`SELECT COALESCE(assoc_game, '') FROM games WHERE id = ?`, fortyGameID).Scan(&baseGameID)
	if err == sql.ErrNoRows {
		return nil, &league.ValidationError{Reason: fmt.Sprintf("game %s not found", fortyGameID)}
	}
	if err != nil {
		return nil, err
	}

	var used, lastHole, groupSize int
	if err := e.db.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(hole), 0) FROM forty_scores WHERE forty_game_id = ? AND group_label = ?
	`, fortyGameID, group).Scan(&used, &lastHole); err != nil {
		return nil, err
	}
	if err := e.db.QueryRow(`
		SELECT COUNT(*) FROM scorecard_meta WHERE game_id = ? AND group_label = ?
	`, baseGameID, group).Scan(&groupSize); err != nil {
		return nil, err
	}

	nextHole := lastHole + 1
	needed := e.cfg.NumScores - used
	p := &GroupProgress{
		Group:        group,
		ScoresUsed:   used,
		ScoresNeeded: needed,
		NextHole:     nextHole,
	}
	if nextHole > 18 {
		return p, nil
	}

	switch {
	case nextHole == 18:
		p.MinSelect = needed
		p.MaxSelect = needed
	default:
		if nextHole == 1 {
			p.MinSelect = e.cfg.MinHole1
		}
		if floor := needed - (18-nextHole)*groupSize; floor > p.MinSelect {
			p.MinSelect = floor
		}
		p.MaxSelect = min(groupSize, min(needed, needed-e.cfg.MinHole18))
	}
	if p.MaxSelect < 0 {
		p.MaxSelect = 0
	}
	return p, nil
}
