package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for league reference data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// GameType is the closed set of scoring games the league runs.
type GameType string

const (
	GameSkins       GameType = "skins"
	GameForty       GameType = "forty"
	GameGasCup      GameType = "gas_cup"
	GameFallClassic GameType = "fall_classic"
	GameStableford  GameType = "stableford"
)

// Valid reports whether t is one of the known game types.
func (t GameType) Valid() bool {
	switch t {
	case GameSkins, GameForty, GameGasCup, GameFallClassic, GameStableford:
		return true
	}
	return false
}

// Derived reports whether games of this type compute from an anchor game's scores.
func (t GameType) Derived() bool {
	switch t {
	case GameForty, GameGasCup, GameFallClassic, GameStableford:
		return true
	}
	return false
}

// Format selects how net handicaps are computed for a game.
type Format string

const (
	FormatFullHandicap Format = "full_handicap"
	FormatLowMan       Format = "low_man"
)

// GameStatus tracks the lifecycle of a game.
type GameStatus string

const (
	StatusPending GameStatus = "pending"
	StatusTees    GameStatus = "tees"
	StatusLive    GameStatus = "live"
	StatusClosed  GameStatus = "closed"
)

// Player is a league member. Index carries one fractional digit and is
// maintained by an admin process outside this service.
type Player struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Mobile string  `json:"mobile"`
	Email  string  `json:"email"`
	Index  float64 `json:"index"`
	Member bool    `json:"member"`
}

// Game is one scoring event. A derived game (Forty, Gas Cup, Fall Classic,
// Stableford) carries AssocGame pointing at the anchor game whose scores it
// reads; the anchor's own AssocGame is set back symmetrically on linking.
type Game struct {
	ID        string     `json:"id"`
	Type      GameType   `json:"type"`
	PlayDate  string     `json:"play_date"`
	CourseID  string     `json:"course_id"`
	TeeSetID  string     `json:"tee_set_id"`
	Format    Format     `json:"format"`
	Status    GameStatus `json:"status"`
	AssocGame string     `json:"assoc_game,omitempty"`
	Locked    bool       `json:"locked"`
	LockedAt  int64      `json:"locked_at,omitempty"`
}

// TeeSet is one rated set of tees on a course.
type TeeSet struct {
	ID       string  `json:"id"`
	CourseID string  `json:"course_id"`
	Name     string  `json:"name"`
	Slope    int     `json:"slope"`
	Rating   float64 `json:"rating"`
}

// CourseHole is static per-tee reference data. StrokeIndex ranks the hole's
// difficulty, 1 = hardest.
type CourseHole struct {
	TeeSetID    string `json:"tee_set_id"`
	Hole        int    `json:"hole"`
	Par         int    `json:"par"`
	Yardage     int    `json:"yardage"`
	StrokeIndex int    `json:"stroke_index"`
}
