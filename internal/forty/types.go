package forty

import (
	"database/sql"
	"sync"

	"github.com/duffsix/golf-league/internal/config"
)

type engine struct {
	db  *sql.DB
	cfg config.FortyConfig
	mu  sync.RWMutex
}

// GroupStanding is one group's running Forty total.
type GroupStanding struct {
	Group      string `json:"group"`
	ScoresUsed int    `json:"scores_used"`
	NetSum     int    `json:"net_sum"`
	ParSum     int    `json:"par_sum"`
	OverUnder  int    `json:"over_under"`
}

// GroupProgress is the selection state the UI needs before the next hole.
type GroupProgress struct {
	Group        string `json:"group"`
	ScoresUsed   int    `json:"scores_used"`
	ScoresNeeded int    `json:"scores_needed"`
	NextHole     int    `json:"next_hole"`
	MinSelect    int    `json:"min_select"`
	MaxSelect    int    `json:"max_select"`
}
