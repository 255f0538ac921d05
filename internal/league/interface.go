package league

// LeagueStore defines the interface for the league's reference data:
// players, courses/tees, and the games themselves.
type LeagueStore interface {
	UpsertPlayer(p Player) error
	GetPlayer(playerID string) (*Player, error)
	GetAllPlayers() ([]Player, error)

	CreateCourse(courseID, name string) error
	CreateTeeSet(t TeeSet) error
	AddHoles(holes []CourseHole) error
	GetHoles(teeSetID string) ([]CourseHole, error)
	GetTeeSet(teeSetID string) (*TeeSet, error)

	CreateGame(g Game) error
	GetGame(gameID string) (*Game, error)
	// LinkDerivedGame creates the derived game with AssocGame set to the
	// anchor and writes the symmetric back-reference onto the anchor. The
	// back-reference is only set when the anchor has none yet, so the first
	// linked game keeps it; lookups always go derived-side via
	// FindDerivedGame.
	LinkDerivedGame(anchorGameID string, derived Game) error
	// FindDerivedGame returns the open derived game of the given type
	// anchored on anchorGameID, or nil when the league is not running one.
	FindDerivedGame(anchorGameID string, types ...GameType) (*Game, error)
	SetGameStatus(gameID string, status GameStatus) error
	LockGame(gameID string) error
}
