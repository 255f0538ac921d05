package scoring

import (
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
)

// Processor is the single entry point for score writes. It owns the
// transaction and the per-game serialization the engines rely on.
type Processor interface {
	// InitializeGame validates the game and creates the scorecard meta rows,
	// then moves the game to live.
	InitializeGame(gameID string, entries []ledger.InitEntry) error

	// RecordScore posts or corrects one hole score and cascades the derived
	// games (skins, cup best-ball, stableford points) atomically.
	RecordScore(gameID, playerID string, hole, rawScore, putts int, actor string, dryRun bool) (*ledger.ScoreResult, error)
}

// Ensure processor satisfies the interface.
var _ Processor = &processor{}

// gameForScoring rejects writes against games that are missing, locked or closed.
func gameForScoring(store league.LeagueStore, gameID string) (*league.Game, error) {
	game, err := store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &league.ValidationError{Reason: "game not found: " + gameID}
	}
	if game.Locked || game.Status == league.StatusClosed {
		return nil, &league.ValidationError{Reason: "game is locked: " + gameID}
	}
	return game, nil
}
