package league

import "fmt"

// ConfigurationError means a game could not be initialized because a player
// is missing the data (tee, slope, index) the handicap computation needs.
// Fatal to initialization; surfaced to the operator.
type ConfigurationError struct {
	Player string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for player %s: %s", e.Player, e.Reason)
}

// NotInitializedError means a score arrived for a player with no scorecard
// meta in the game. This indicates a setup bug; the ledger never creates a
// default row on the fly.
type NotInitializedError struct {
	GameID   string
	PlayerID string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("player %s is not initialized in game %s", e.PlayerID, e.GameID)
}

// ValidationError is a recoverable rule violation. Reason is shown to the
// user verbatim so they can correct the submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConcurrencyConflictError means a lost update was detected while writing
// aggregates. The caller should retry the whole score transaction.
type ConcurrencyConflictError struct {
	Op string
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("concurrency conflict during %s, retry the operation", e.Op)
}
