package gascup

import "database/sql"

// Engine runs the Gas Cup / Fall Classic team match play derived from an
// anchor game's scores.
type Engine interface {
	// CreatePairs declares the sides for the cup game, one-time setup.
	CreatePairs(gameID string, pairs []PairSpec) error

	// UpdateHole refreshes the best-ball scores for the scoring player's
	// group on one hole. It is a safe no-op when no cup game is anchored on
	// baseGameID; callers invoke it on every score write.
	UpdateHole(tx *sql.Tx, baseGameID, playerID string, hole int) error

	// Status reports the match state for a group through a hole limit.
	Status(baseGameID, group string, thru int) (*MatchStatus, error)

	// Points settles segment points at the defined checkpoints (front at
	// thru >= 9, back and overall at thru >= 18) and sums manual overrides
	// verbatim where present.
	Points(cupGameID string) (*Standings, error)

	// SetOverride records a manual point outcome for one group's match; it
	// takes precedence over the computed result.
	SetOverride(cupGameID, group string, team1Points, team2Points float64, display string) error
}
