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

func NewServer(
	leagueStore league.LeagueStore,
	scoreStore ledger.ScoreStore,
	skinsEngine skins.Engine,
	fortyEngine forty.Engine,
	gascupEngine gascup.Engine,
	stablefordEngine stableford.Engine,
	proc scoring.Processor,
	n notifier.Notifier,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	ps pubsub.PubSubClient,
) *Server {
	server := &Server{
		League:         leagueStore,
		Ledger:         scoreStore,
		Skins:          skinsEngine,
		Forty:          fortyEngine,
		GasCup:         gascupEngine,
		Stableford:     stablefordEngine,
		Processor:      proc,
		Notifier:       n,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         ps,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.PlayersHandler(), paramsMiddleware))
	s.Router.Handle("/games", Chain(s.CreateGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/link", Chain(s.LinkGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/init", Chain(s.InitGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/lock", Chain(s.LockGameHandler(), paramsMiddleware))
	s.Router.Handle("/score", Chain(s.RecordScoreHandler(), paramsMiddleware))
	s.Router.Handle("/scorecards", Chain(s.ScorecardsHandler(), paramsMiddleware))
	s.Router.Handle("/skins", Chain(s.SkinsLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/forty/select", Chain(s.FortySelectHandler(), paramsMiddleware))
	s.Router.Handle("/forty/leaderboard", Chain(s.FortyLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/forty/progress", Chain(s.FortyProgressHandler(), paramsMiddleware))
	s.Router.Handle("/gascup/pairs", Chain(s.GasCupPairsHandler(), paramsMiddleware))
	s.Router.Handle("/gascup/status", Chain(s.GasCupStatusHandler(), paramsMiddleware))
	s.Router.Handle("/gascup/points", Chain(s.GasCupPointsHandler(), paramsMiddleware))
	s.Router.Handle("/gascup/override", Chain(s.GasCupOverrideHandler(), paramsMiddleware))
	s.Router.Handle("/stableford/teams", Chain(s.StablefordTeamsHandler(), paramsMiddleware))
	s.Router.Handle("/stableford/standings", Chain(s.StablefordStandingsHandler(), paramsMiddleware))
	s.Router.Handle("/notify-score", Chain(s.NotifyScoreHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/skins", Chain(s.SkinsCommandHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/scorecards", Chain(s.ScorecardsCommandHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
