package notifier

import (
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/skins"
)

// Notifier defines a high-level interface for sending notifications about league events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
// Delivery mechanics live entirely behind this interface.
type Notifier interface {
	// For posted/corrected hole scores
	SendScorePosted(result *ledger.ScoreResult, playerName string, dryRun bool) (string, error)
	// For the skins banner after a recompute
	SendSkinsLeaderboard(entries []skins.LeaderboardEntry, dryRun bool) error
	// For the cup match banner
	SendGasCupStatus(status *gascup.MatchStatus, dryRun bool) error

	// For formatting responses for slash commands
	FormatSkinsLeaderboardResponse(entries []skins.LeaderboardEntry) (any, error)
	FormatScorecardsResponse(cards []ledger.PlayerCard) (any, error)
}
