package skins

import "database/sql"

// Engine recomputes skin awards for a game.
type Engine interface {
	// Recompute rebuilds the whole skins table for the game from the current
	// scorecard rows. Safe to call after every score write; calling it twice
	// with no intervening change yields the identical result.
	Recompute(tx *sql.Tx, gameID string) error

	Leaderboard(gameID string) ([]LeaderboardEntry, error)
}
