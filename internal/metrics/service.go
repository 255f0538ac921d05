package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ScoresRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_scores_recorded_total",
			Help: "The total number of hole scores accepted by the ledger.",
		}),
		ScoresRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_scores_rejected_total",
			Help: "The total number of score submissions rejected.",
		}),
		CascadeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "league_score_cascade_duration_seconds",
			Help:    "The duration of a score write plus its derived-game recomputation.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FortySelections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_forty_selections_total",
			Help: "The total number of committed Forty hole selections.",
		}),
		FortyRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_forty_rejections_total",
			Help: "The total number of Forty selections rejected by the count rules.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "league_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "league_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ScoresRecorded,
		s.ScoresRejected,
		s.CascadeDuration,
		s.FortySelections,
		s.FortyRejections,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncScoresRecorded() {
	s.ScoresRecorded.Inc()
}

func (s *Service) IncScoreRejected() {
	s.ScoresRejected.Inc()
}

func (s *Service) ObserveCascadeDuration(duration float64) {
	s.CascadeDuration.Observe(duration)
}

func (s *Service) IncFortySelections() {
	s.FortySelections.Inc()
}

func (s *Service) IncFortyRejections() {
	s.FortyRejections.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
