package stableford

import (
	"database/sql"
	"sync"
)

type engine struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamFormat selects how teams are assembled for a Stableford game.
type TeamFormat string

const (
	FormatIndividual TeamFormat = "individual"
	FormatTwosome    TeamFormat = "2some"
	FormatFoursome   TeamFormat = "4some"
)

// Team is one scoring unit in a Stableford game.
type Team struct {
	GameID    string   `json:"game_id"`
	TeamNo    int      `json:"team_no"`
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`
}

// TeamStanding is one team's running point total.
type TeamStanding struct {
	TeamNo int    `json:"team_no"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Holes  int    `json:"holes"`
}
