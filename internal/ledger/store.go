package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/handicap"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/google/uuid"
)

// New creates a new ScoreStore.
func New(db *sql.DB) ScoreStore {
	return &store{
		db: db,
	}
}

type initRow struct {
	entry      InitEntry
	playerName string
	raw        handicap.Raw
}

// InitializeGame computes every player's net handicap and creates their
// scorecard meta row. Handicaps are computed once here, not per hole; a
// player missing a tee or slope fails the whole initialization.
func (s *store) InitializeGame(gameID string, entries []InitEntry, format league.Format) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]initRow, 0, len(entries))
	for _, e := range entries {
		var name string
		var index float64
		err := s.db.QueryRow(`SELECT name, hcp_index FROM players WHERE id = ?`, e.PlayerID).Scan(&name, &index)
		if err == sql.ErrNoRows {
			return &league.ConfigurationError{Player: e.PlayerID, Reason: "unknown player"}
		}
		if err != nil {
			return fmt.Errorf("failed to look up player %s: %w", e.PlayerID, err)
		}

		var slope int
		err = s.db.QueryRow(`SELECT slope FROM tee_sets WHERE id = ?`, e.TeeSetID).Scan(&slope)
		if err == sql.ErrNoRows {
			return &league.ConfigurationError{Player: name, Reason: fmt.Sprintf("tee set %s not found", e.TeeSetID)}
		}
		if err != nil {
			return fmt.Errorf("failed to look up tee set %s: %w", e.TeeSetID, err)
		}
		if slope == 0 {
			return &league.ConfigurationError{Player: name, Reason: fmt.Sprintf("tee set %s has no slope rating", e.TeeSetID)}
		}

		rows = append(rows, initRow{entry: e, playerName: name, raw: handicap.FromIndex(index, slope)})
	}

	var lowest handicap.Raw
	if format == league.FormatLowMan {
		raws := make([]handicap.Raw, len(rows))
		for i, r := range rows {
			raws[i] = r.raw
		}
		lowest = handicap.Lowest(raws)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO scorecard_meta (id, game_id, player_id, tee_set_id, group_label, raw_handicap_num, raw_handicap_den, net_handicap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		var net int
		if format == league.FormatLowMan {
			net = handicap.NetLowMan(r.raw, lowest)
		} else {
			net = handicap.Net(r.raw)
		}
		_, err := stmt.Exec(uuid.New().String(), gameID, r.entry.PlayerID, r.entry.TeeSetID, r.entry.Group, r.raw.Num, r.raw.Den, net)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to initialize player %s in game %s: %w", r.entry.PlayerID, gameID, err)
		}
		log.Debug("Initialized scorecard", "game", gameID, "player", r.playerName, "net_handicap", net)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Game initialized", "game", gameID, "players", len(rows), "format", format)
	return nil
}

// RecordScore is the single write path for raw scores. A first submission
// adds the score into the player's Out/In/Total buckets; a correction applies
// only the delta against the row the transaction read, so the aggregates
// always equal the sum of the current scorecard rows.
func (s *store) RecordScore(tx *sql.Tx, gameID, playerID string, hole, rawScore, putts int, actor string) (*ScoreResult, error) {
	if hole < 1 || hole > 18 {
		return nil, &league.ValidationError{Reason: fmt.Sprintf("hole %d is out of range", hole)}
	}
	if rawScore < 1 {
		return nil, &league.ValidationError{Reason: fmt.Sprintf("raw score %d is not a valid stroke count", rawScore)}
	}

	var metaID, teeSetID string
	var netHandicap int
	err := tx.QueryRow(`
		SELECT id, tee_set_id, net_handicap FROM scorecard_meta WHERE game_id = ? AND player_id = ?
	`, gameID, playerID).Scan(&metaID, &teeSetID, &netHandicap)
	if err == sql.ErrNoRows {
		return nil, &league.NotInitializedError{GameID: gameID, PlayerID: playerID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scorecard meta: %w", err)
	}

	var strokeIndex int
	err = tx.QueryRow(`
		SELECT stroke_index FROM course_holes WHERE tee_set_id = ? AND hole = ?
	`, teeSetID, hole).Scan(&strokeIndex)
	if err == sql.ErrNoRows {
		return nil, &league.ConfigurationError{Player: playerID, Reason: fmt.Sprintf("tee set %s has no hole %d", teeSetID, hole)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load hole %d: %w", hole, err)
	}

	netScore := handicap.NetScore(rawScore, netHandicap, strokeIndex)
	now := time.Now().Unix()

	var rowID string
	var prevRaw, prevNet, prevPutts int
	err = tx.QueryRow(`
		SELECT id, raw_score, net_score, putts FROM scorecards WHERE game_id = ? AND player_id = ? AND hole = ?
	`, gameID, playerID, hole).Scan(&rowID, &prevRaw, &prevNet, &prevPutts)

	switch {
	case err == sql.ErrNoRows:
		rowID = uuid.New().String()
		_, err = tx.Exec(`
			INSERT INTO scorecards (id, meta_id, game_id, player_id, hole, raw_score, net_score, putts, altered_at, altered_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rowID, metaID, gameID, playerID, hole, rawScore, netScore, putts, now, actor)
		if err != nil {
			return nil, fmt.Errorf("failed to insert scorecard row: %w", err)
		}
		if err := s.applyDelta(tx, metaID, hole, rawScore, netScore, putts); err != nil {
			return nil, err
		}
		return &ScoreResult{ScorecardID: rowID, GameID: gameID, PlayerID: playerID, Hole: hole, RawScore: rawScore, NetScore: netScore}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to read existing scorecard row: %w", err)

	default:
		_, err = tx.Exec(`
			UPDATE scorecards SET raw_score = ?, net_score = ?, putts = ?, altered_at = ?, altered_by = ? WHERE id = ?
		`, rawScore, netScore, putts, now, actor, rowID)
		if err != nil {
			return nil, fmt.Errorf("failed to update scorecard row: %w", err)
		}
		if err := s.applyDelta(tx, metaID, hole, rawScore-prevRaw, netScore-prevNet, putts-prevPutts); err != nil {
			return nil, err
		}
		return &ScoreResult{ScorecardID: rowID, GameID: gameID, PlayerID: playerID, Hole: hole, RawScore: rawScore, NetScore: netScore, Updated: true}, nil
	}
}

// applyDelta adds the raw/net/putt deltas into the Out (holes 1-9) or In
// (holes 10-18) bucket and the totals.
func (s *store) applyDelta(tx *sql.Tx, metaID string, hole, dRaw, dNet, dPutts int) error {
	bucket := `raw_in = raw_in + ?, net_in = net_in + ?`
	if hole <= 9 {
		bucket = `raw_out = raw_out + ?, net_out = net_out + ?`
	}
	res, err := tx.Exec(`
		UPDATE scorecard_meta SET `+bucket+`, raw_total = raw_total + ?, net_total = net_total + ?, putts = putts + ? WHERE id = ?
	`, dRaw, dNet, dRaw, dNet, dPutts, metaID)
	if err != nil {
		return fmt.Errorf("failed to update aggregates: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return &league.ConcurrencyConflictError{Op: "aggregate update"}
	}
	return nil
}

func (s *store) Meta(gameID, playerID string) (*ScorecardMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m ScorecardMeta
	err := s.db.QueryRow(`
		SELECT id, game_id, player_id, tee_set_id, group_label, raw_handicap_num, raw_handicap_den, net_handicap,
		       raw_out, net_out, raw_in, net_in, raw_total, net_total, putts, skins
		FROM scorecard_meta WHERE game_id = ? AND player_id = ?
	`, gameID, playerID).Scan(
		&m.ID, &m.GameID, &m.PlayerID, &m.TeeSetID, &m.Group, &m.RawHandicap.Num, &m.RawHandicap.Den, &m.NetHandicap,
		&m.RawOut, &m.NetOut, &m.RawIn, &m.NetIn, &m.RawTotal, &m.NetTotal, &m.Putts, &m.Skins,
	)
	if err == sql.ErrNoRows {
		return nil, &league.NotInitializedError{GameID: gameID, PlayerID: playerID}
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *store) Scorecards(gameID string) ([]PlayerCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT m.player_id, p.name, m.group_label, m.net_handicap,
		       m.raw_out, m.net_out, m.raw_in, m.net_in, m.raw_total, m.net_total, m.putts, m.skins,
		       (SELECT COUNT(*) FROM scorecards c WHERE c.meta_id = m.id) AS holes_posted
		FROM scorecard_meta m
		JOIN players p ON p.id = m.player_id
		WHERE m.game_id = ?
		ORDER BY m.net_total, m.player_id
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []PlayerCard
	for rows.Next() {
		var c PlayerCard
		if err := rows.Scan(
			&c.PlayerID, &c.PlayerName, &c.Group, &c.NetHandicap,
			&c.RawOut, &c.NetOut, &c.RawIn, &c.NetIn, &c.RawTotal, &c.NetTotal, &c.Putts, &c.Skins,
			&c.HolesPosted,
		); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
