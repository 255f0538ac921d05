package scoring

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/metrics"
	"github.com/duffsix/golf-league/internal/notifier"
	"github.com/duffsix/golf-league/internal/pubsub"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/duffsix/golf-league/internal/stableford"
)

// NewProcessor wires the score cascade across the ledger and the derived-game
// engines.
func NewProcessor(
	db *sql.DB,
	leagueStore league.LeagueStore,
	scoreStore ledger.ScoreStore,
	skinsEngine skins.Engine,
	gascupEngine gascup.Engine,
	stablefordEngine stableford.Engine,
	psClient pubsub.PubSubClient,
	n notifier.Notifier,
	m metrics.Metrics,
) Processor {
	return &processor{
		db:         db,
		league:     leagueStore,
		ledger:     scoreStore,
		skins:      skinsEngine,
		gascup:     gascupEngine,
		stableford: stablefordEngine,
		pubsub:     psClient,
		notifier:   n,
		metrics:    m,
	}
}

func (p *processor) InitializeGame(gameID string, entries []ledger.InitEntry) error {
	game, err := gameForScoring(p.league, gameID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return &league.ValidationError{Reason: "no players to initialize"}
	}

	if err := p.ledger.InitializeGame(gameID, entries, game.Format); err != nil {
		return err
	}
	if err := p.league.SetGameStatus(gameID, league.StatusLive); err != nil {
		return err
	}
	log.Info("Game initialized", "gameID", gameID, "players", len(entries), "format", game.Format)
	return nil
}

func (p *processor) RecordScore(gameID, playerID string, hole, rawScore, putts int, actor string, dryRun bool) (*ledger.ScoreResult, error) {
	if _, err := gameForScoring(p.league, gameID); err != nil {
		p.metrics.IncScoreRejected()
		return nil, err
	}

	mu := p.gameLock(gameID)
	mu.Lock()
	defer mu.Unlock()

	start := time.Now()
	result, err := p.recordScoreTx(gameID, playerID, hole, rawScore, putts, actor)
	if err != nil {
		p.metrics.IncScoreRejected()
		return nil, err
	}
	p.metrics.IncScoresRecorded()
	p.metrics.ObserveCascadeDuration(time.Since(start).Seconds())

	p.announce(result, dryRun)
	return result, nil
}

// recordScoreTx runs the whole cascade in one transaction: ledger write,
// skins recompute, cup best-ball refresh, stableford points.
func (p *processor) recordScoreTx(gameID, playerID string, hole, rawScore, putts int, actor string) (*ledger.ScoreResult, error) {
	tx, err := p.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := p.ledger.RecordScore(tx, gameID, playerID, hole, rawScore, putts, actor)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := p.skins.Recompute(tx, gameID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("skins recompute failed: %w", err)
	}
	if err := p.gascup.UpdateHole(tx, gameID, playerID, hole); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cup update failed: %w", err)
	}
	if err := p.stableford.UpsertHole(tx, gameID, playerID, hole); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("stableford update failed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score cascade: %w", err)
	}
	return result, nil
}

// announce publishes the committed score and pings Slack. Both are
// best-effort: the score is already durable.
func (p *processor) announce(result *ledger.ScoreResult, dryRun bool) {
	if err := p.pubsub.SendMessage(pubsub.TopicScoreRecorded, result); err != nil {
		log.Error("Failed to publish score event", "error", err, "gameID", result.GameID, "playerID", result.PlayerID)
	}

	player, err := p.league.GetPlayer(result.PlayerID)
	if err != nil || player == nil {
		log.Error("Failed to look up player for notification", "error", err, "playerID", result.PlayerID)
		return
	}
	if _, err := p.notifier.SendScorePosted(result, player.Name, dryRun); err != nil {
		log.Error("Failed to send score notification", "error", err, "playerID", result.PlayerID)
	}
}
