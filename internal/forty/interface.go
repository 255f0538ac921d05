package forty

// Engine runs the Forty selection game: a group banks a fixed number of its
// net scores across the round against par.
type Engine interface {
	// SelectScores commits the group's chosen scores for a hole, snapshotting
	// raw/net/par from the ledger. Count-rule violations return a
	// league.ValidationError and commit nothing.
	SelectScores(fortyGameID string, hole int, group string, playerIDs []string, actor string) error

	Leaderboard(fortyGameID string) ([]GroupStanding, error)

	// Progress reports how many scores the group has used and the selection
	// bounds for the next hole, for the selection UI.
	Progress(fortyGameID, group string) (*GroupProgress, error)
}
