package gascup

import (
	"database/sql"
	"sync"
)

type engine struct {
	db *sql.DB
	mu sync.RWMutex
}

// Team labels used by the two cup formats.
const (
	TeamPGA  = "PGA"
	TeamLIV  = "LIV"
	TeamCubs = "Cubs"
	TeamSox  = "Sox"
)

// PairSpec declares one side of a match at setup time. Player2 is empty for
// a solo side.
type PairSpec struct {
	Team    string `json:"team"`
	Group   string `json:"group"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2,omitempty"`
}

// Pair is a persisted side of a match.
type Pair struct {
	ID      string `json:"id"`
	GameID  string `json:"game_id"`
	Team    string `json:"team"`
	Group   string `json:"group"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2,omitempty"`
}

// Segment is one scored stretch of a match: front nine, back nine, or the
// full eighteen.
type Segment struct {
	Winner string `json:"winner,omitempty"`
	Margin int    `json:"margin"`
	Text   string `json:"text"`
}

// MatchStatus is the hole-by-hole state of one group's match through a
// given hole.
type MatchStatus struct {
	Group   string  `json:"group"`
	Thru    int     `json:"thru"`
	Front   Segment `json:"front"`
	Back    Segment `json:"back"`
	Overall Segment `json:"overall"`
}

// GroupPoints is the settled (or overridden) point outcome for one group's
// match.
type GroupPoints struct {
	Group      string             `json:"group"`
	Points     map[string]float64 `json:"points"`
	Display    string             `json:"display,omitempty"`
	Settled    bool               `json:"settled"`
	Overridden bool               `json:"overridden"`
}

// Standings is the running team point totals across all groups.
type Standings struct {
	Teams  map[string]float64 `json:"teams"`
	Groups []GroupPoints      `json:"groups"`
}
