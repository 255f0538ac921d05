package http

import (
	"net/http"

	"github.com/duffsix/golf-league/internal/config"
	"github.com/duffsix/golf-league/internal/forty"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/metrics"
	"github.com/duffsix/golf-league/internal/notifier"
	"github.com/duffsix/golf-league/internal/pubsub"
	"github.com/duffsix/golf-league/internal/scoring"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/duffsix/golf-league/internal/stableford"
)

type Server struct {
	League         league.LeagueStore
	Ledger         ledger.ScoreStore
	Skins          skins.Engine
	Forty          forty.Engine
	GasCup         gascup.Engine
	Stableford     stableford.Engine
	Processor      scoring.Processor
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
