package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncScoresRecorded()
	IncScoreRejected()
	ObserveCascadeDuration(duration float64)
	IncFortySelections()
	IncFortyRejections()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
