package metrics

import "sync"

// MockMetrics is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type MockMetrics struct {
	mu sync.Mutex

	ScoresRecordedCount   int
	ScoresRejectedCount   int
	CascadeObservations   []float64
	FortySelectionsCount  int
	FortyRejectionsCount  int
	SlackNotifSentCount   int
	SlackNotifFailedCount int
	StartupTime           float64
}

// NewMock creates a new mock Metrics instance.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncScoresRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresRecordedCount++
}

func (m *MockMetrics) IncScoreRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoresRejectedCount++
}

func (m *MockMetrics) ObserveCascadeDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CascadeObservations = append(m.CascadeObservations, duration)
}

func (m *MockMetrics) IncFortySelections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FortySelectionsCount++
}

func (m *MockMetrics) IncFortyRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FortyRejectionsCount++
}

func (m *MockMetrics) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifSentCount++
}

func (m *MockMetrics) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackNotifFailedCount++
}

func (m *MockMetrics) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
