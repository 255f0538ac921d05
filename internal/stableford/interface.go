package stableford

import "database/sql"

// Engine maintains Stableford points derived from an anchor game's scores.
type Engine interface {
	// UpsertHole writes the points row for one (player, hole). It is a safe
	// no-op when no Stableford game is anchored on baseGameID.
	UpsertHole(tx *sql.Tx, baseGameID, playerID string, hole int) error

	// AssembleTeams deterministically (re)builds the team rows for the game
	// from the declared pairings; prior teams are replaced wholesale.
	AssembleTeams(stblGameID string, format TeamFormat, pairings [][]string) error

	Standings(stblGameID string) ([]TeamStanding, error)
}
