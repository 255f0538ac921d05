package skins

import (
	"database/sql"
	"sync"
)

type engine struct {
	db *sql.DB
	mu sync.RWMutex
}

// LeaderboardEntry is one player's skin count and the holes they won.
type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Skins      int    `json:"skins"`
	Holes      []int  `json:"holes"`
}
