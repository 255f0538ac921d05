package scoring

import (
	"database/sql"
	"sync"

	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/metrics"
	"github.com/duffsix/golf-league/internal/notifier"
	"github.com/duffsix/golf-league/internal/pubsub"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/duffsix/golf-league/internal/stableford"
)

// processor runs the score cascade. All derived-game writes triggered by one
// score share the score's transaction, so a failure anywhere rolls the whole
// posting back.
type processor struct {
	db         *sql.DB
	league     league.LeagueStore
	ledger     ledger.ScoreStore
	skins      skins.Engine
	gascup     gascup.Engine
	stableford stableford.Engine
	pubsub     pubsub.PubSubClient
	notifier   notifier.Notifier
	metrics    metrics.Metrics

	// One lock per game serializes concurrent postings for the same game.
	locks sync.Map
}

func (p *processor) gameLock(gameID string) *sync.Mutex {
	mu, _ := p.locks.LoadOrStore(gameID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
