package ledger

import (
	"database/sql"
	"sync"

	"github.com/duffsix/golf-league/internal/handicap"
)

// store handles all database operations for scorecards.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// InitEntry names one player joining a game, with the tee they play and the
// tee-time group they belong to.
type InitEntry struct {
	PlayerID string `json:"player_id"`
	TeeSetID string `json:"tee_set_id"`
	Group    string `json:"group"`
}

// ScorecardMeta is the one-per-(game, player) row holding the player's
// handicap for the game and the running aggregates the ledger maintains.
type ScorecardMeta struct {
	ID          string       `json:"id"`
	GameID      string       `json:"game_id"`
	PlayerID    string       `json:"player_id"`
	TeeSetID    string       `json:"tee_set_id"`
	Group       string       `json:"group"`
	RawHandicap handicap.Raw `json:"-"`
	NetHandicap int          `json:"net_handicap"`
	RawOut      int          `json:"raw_out"`
	NetOut      int          `json:"net_out"`
	RawIn       int          `json:"raw_in"`
	NetIn       int          `json:"net_in"`
	RawTotal    int          `json:"raw_total"`
	NetTotal    int          `json:"net_total"`
	Putts       int          `json:"putts"`
	Skins       int          `json:"skins"`
}

// ScoreResult is what RecordScore hands back so callers can trigger the
// derived-game engines.
type ScoreResult struct {
	ScorecardID string `json:"scorecard_id"`
	GameID      string `json:"game_id"`
	PlayerID    string `json:"player_id"`
	Hole        int    `json:"hole"`
	RawScore    int    `json:"raw_score"`
	NetScore    int    `json:"net_score"`
	Updated     bool   `json:"updated"`
}

// PlayerCard is one leaderboard row: the player's meta aggregates plus
// display fields.
type PlayerCard struct {
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Group       string `json:"group"`
	NetHandicap int    `json:"net_handicap"`
	RawOut      int    `json:"raw_out"`
	NetOut      int    `json:"net_out"`
	RawIn       int    `json:"raw_in"`
	NetIn       int    `json:"net_in"`
	RawTotal    int    `json:"raw_total"`
	NetTotal    int    `json:"net_total"`
	Putts       int    `json:"putts"`
	Skins       int    `json:"skins"`
	HolesPosted int    `json:"holes_posted"`
}
