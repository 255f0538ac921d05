package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	ScoresRecorded     prometheus.Counter
	ScoresRejected     prometheus.Counter
	CascadeDuration    prometheus.Histogram
	FortySelections    prometheus.Counter
	FortyRejections    prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
