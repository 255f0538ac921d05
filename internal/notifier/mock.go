package notifier

import (
	"sync"

	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/skins"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendScorePostedCalls []struct {
		Result     *ledger.ScoreResult
		PlayerName string
	}
	SendSkinsLeaderboardCalls [][]skins.LeaderboardEntry
	SendGasCupStatusCalls     []*gascup.MatchStatus

	// Spies for format functions
	FormatSkinsLeaderboardResponseFunc func(entries []skins.LeaderboardEntry) (any, error)
	FormatScorecardsResponseFunc       func(cards []ledger.PlayerCard) (any, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScorePostedCalls = nil
	m.SendSkinsLeaderboardCalls = nil
	m.SendGasCupStatusCalls = nil
}

func (m *Mock) SendScorePosted(result *ledger.ScoreResult, playerName string, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendScorePostedCalls = append(m.SendScorePostedCalls, struct {
		Result     *ledger.ScoreResult
		PlayerName string
	}{result, playerName})
	return "", nil
}

func (m *Mock) SendSkinsLeaderboard(entries []skins.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSkinsLeaderboardCalls = append(m.SendSkinsLeaderboardCalls, entries)
	return nil
}

func (m *Mock) SendGasCupStatus(status *gascup.MatchStatus, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGasCupStatusCalls = append(m.SendGasCupStatusCalls, status)
	return nil
}

func (m *Mock) FormatSkinsLeaderboardResponse(entries []skins.LeaderboardEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatSkinsLeaderboardResponseFunc != nil {
		return m.FormatSkinsLeaderboardResponseFunc(entries)
	}
	return entries, nil
}

func (m *Mock) FormatScorecardsResponse(cards []ledger.PlayerCard) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatScorecardsResponseFunc != nil {
		return m.FormatScorecardsResponseFunc(cards)
	}
	return cards, nil
}
