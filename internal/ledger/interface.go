package ledger

import (
	"database/sql"

	"github.com/duffsix/golf-league/internal/league"
)

// ScoreStore is the ledger of raw and net scores: the system of record the
// derived-game engines read.
type ScoreStore interface {
	// InitializeGame creates the scorecard meta rows and computes each
	// player's net handicap once, before any score is accepted.
	InitializeGame(gameID string, entries []InitEntry, format league.Format) error

	// RecordScore inserts or corrects the (game, player, hole) score inside
	// the caller's transaction, keeping the meta aggregates equal to the sum
	// of the current scorecard rows.
	RecordScore(tx *sql.Tx, gameID, playerID string, hole, rawScore, putts int, actor string) (*ScoreResult, error)

	Meta(gameID, playerID string) (*ScorecardMeta, error)
	Scorecards(gameID string) ([]PlayerCard, error)
}
