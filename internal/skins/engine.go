// Package skins awards a skin to the single outright lowest net score on a
// hole; ties void the hole.
package skins

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new skins Engine.
func New(db *sql.DB) Engine {
	return &engine{
		db: db,
	}
}

// Recompute deletes every skin row for the game, zeroes the per-player skin
// counters, and re-derives both from the current scorecard rows. Full
// recompute rather than incremental: a corrected or out-of-order edit can
// move a skin between players, and rebuilding from scratch is O(holes x
// players) per write, which is small for a league game and trivially
// auditable.
func (e *engine) Recompute(tx *sql.Tx, gameID string) error {
	if _, err := tx.Exec(`DELETE FROM skins WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("failed to clear skins for game %s: %w", gameID, err)
	}
	if _, err := tx.Exec(`UPDATE scorecard_meta SET skins = 0 WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("failed to reset skin counters for game %s: %w", gameID, err)
	}

	rows, err := tx.Query(`
		SELECT hole, player_id, net_score FROM scorecards WHERE game_id = ? ORDER BY hole
	`, gameID)
	if err != nil {
		return fmt.Errorf("failed to read scorecards for game %s: %w", gameID, err)
	}
	defer rows.Close()

	type holeState struct {
		minNet  int
		winner  string
		winners int
	}
	holes := make(map[int]*holeState)
	for rows.Next() {
		var hole, net int
		var playerID string
		if err := rows.Scan(&hole, &playerID, &net); err != nil {
			return err
		}
		h, ok := holes[hole]
		if !ok {
			holes[hole] = &holeState{minNet: net, winner: playerID, winners: 1}
			continue
		}
		switch {
		case net < h.minNet:
			h.minNet = net
			h.winner = playerID
			h.winners = 1
		case net == h.minNet:
			h.winners++
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	awarded := 0
	for hole, h := range holes {
		if h.winners != 1 {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO skins (game_id, player_id, hole) VALUES (?, ?, ?)`, gameID, h.winner, hole); err != nil {
			return fmt.Errorf("failed to award skin on hole %d: %w", hole, err)
		}
		if _, err := tx.Exec(`
			UPDATE scorecard_meta SET skins = skins + 1 WHERE game_id = ? AND player_id = ?
		`, gameID, h.winner); err != nil {
			return fmt.Errorf("failed to bump skin counter for %s: %w", h.winner, err)
		}
		awarded++
	}
	log.Debug("Skins recomputed", "game", gameID, "holes", len(holes), "awarded", awarded)
	return nil
}

func (e *engine) Leaderboard(gameID string) ([]LeaderboardEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rows, err := e.db.Query(`
		SELECT s.player_id, p.name, s.hole
		FROM skins s
		JOIN players p ON p.id = s.player_id
		WHERE s.game_id = ?
		ORDER BY s.player_id, s.hole
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPlayer := make(map[string]*LeaderboardEntry)
	var order []string
	for rows.Next() {
		var playerID, name string
		var hole int
		if err := rows.Scan(&playerID, &name, &hole); err != nil {
			return nil, err
		}
		entry, ok := byPlayer[playerID]
		if !ok {
			entry = &LeaderboardEntry{PlayerID: playerID, PlayerName: name}
			byPlayer[playerID] = entry
			order = append(order, playerID)
		}
		entry.Skins++
		entry.Holes = append(entry.Holes, hole)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byPlayer[id])
	}
	return entries, nil
}
