package league

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

func (s *store) UpsertPlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	member := 0
	if p.Member {
		member = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, mobile, email, hcp_index, member)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			mobile = excluded.mobile,
			email = excluded.email,
			hcp_index = excluded.hcp_index,
			member = excluded.member;
	`, p.ID, p.Name, p.Mobile, p.Email, p.Index, member)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
	}
	return nil
}

func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Player
	var member int
	err := s.db.QueryRow(`
		SELECT id, name, COALESCE(mobile, ''), COALESCE(email, ''), hcp_index, member
		FROM players WHERE id = ?
	`, playerID).Scan(&p.ID, &p.Name, &p.Mobile, &p.Email, &p.Index, &member)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Member = member != 0
	return &p, nil
}

func (s *store) GetAllPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(mobile, ''), COALESCE(email, ''), hcp_index, member
		FROM players ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var member int
		if err := rows.Scan(&p.ID, &p.Name, &p.Mobile, &p.Email, &p.Index, &member); err != nil {
			return nil, err
		}
		p.Member = member != 0
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) CreateCourse(courseID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO courses (id, name) VALUES (?, ?)`, courseID, name)
	return err
}

func (s *store) CreateTeeSet(t TeeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tee_sets (id, course_id, name, slope, rating) VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.CourseID, t.Name, t.Slope, t.Rating)
	return err
}

func (s *store) AddHoles(holes []CourseHole) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO course_holes (tee_set_id, hole, par, yardage, stroke_index)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, h := range holes {
		if _, err := stmt.Exec(h.TeeSetID, h.Hole, h.Par, h.Yardage, h.StrokeIndex); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert hole %d: %w", h.Hole, err)
		}
	}
	return tx.Commit()
}

func (s *store) GetHoles(teeSetID string) ([]CourseHole, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT tee_set_id, hole, par, yardage, stroke_index
		FROM course_holes WHERE tee_set_id = ? ORDER BY hole
	`, teeSetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holes []CourseHole
	for rows.Next() {
		var h CourseHole
		if err := rows.Scan(&h.TeeSetID, &h.Hole, &h.Par, &h.Yardage, &h.StrokeIndex); err != nil {
			return nil, err
		}
		holes = append(holes, h)
	}
	return holes, rows.Err()
}

func (s *store) GetTeeSet(teeSetID string) (*TeeSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t TeeSet
	err := s.db.QueryRow(`
		SELECT id, course_id, name, slope, rating FROM tee_sets WHERE id = ?
	`, teeSetID).Scan(&t.ID, &t.CourseID, &t.Name, &t.Slope, &t.Rating)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *store) CreateGame(g Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !g.Type.Valid() {
		return fmt.Errorf("unknown game type %q", g.Type)
	}
	return s.insertGame(s.db, g)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) insertGame(ex execer, g Game) error {
	status := g.Status
	if status == "" {
		status = StatusPending
	}
	format := g.Format
	if format == "" {
		format = FormatFullHandicap
	}
	locked := 0
	if g.Locked {
		locked = 1
	}
	var assoc any
	if g.AssocGame != "" {
		assoc = g.AssocGame
	}
	_, err := ex.Exec(`
		INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked, locked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`, g.ID, string(g.Type), g.PlayDate, g.CourseID, g.TeeSetID, string(format), string(status), assoc, locked)
	if err != nil {
		return fmt.Errorf("failed to create game %s: %w", g.ID, err)
	}
	return nil
}

func (s *store) GetGame(gameID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanGame(s.db.QueryRow(`
		SELECT id, game_type, play_date, COALESCE(course_id, ''), COALESCE(tee_set_id, ''), format, status, COALESCE(assoc_game, ''), locked, COALESCE(locked_at, 0)
		FROM games WHERE id = ?
	`, gameID))
}

func (s *store) scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var g Game
	var locked int
	err := scanner.Scan(&g.ID, &g.Type, &g.PlayDate, &g.CourseID, &g.TeeSetID, &g.Format, &g.Status, &g.AssocGame, &locked, &g.LockedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Locked = locked != 0
	return &g, nil
}

func (s *store) LinkDerivedGame(anchorGameID string, derived Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !derived.Type.Derived() {
		return fmt.Errorf("game type %q cannot be anchored to another game", derived.Type)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	derived.AssocGame = anchorGameID
	if err := s.insertGame(tx, derived); err != nil {
		tx.Rollback()
		return err
	}
	// First link wins; an anchor running several derived games keeps the
	// back-reference to the one linked first. Derived games are always
	// resolved from their own assoc_game column.
	if _, err := tx.Exec(`UPDATE games SET assoc_game = ? WHERE id = ? AND assoc_game IS NULL`, derived.ID, anchorGameID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to back-link anchor game %s: %w", anchorGameID, err)
	}
	return tx.Commit()
}

func (s *store) FindDerivedGame(anchorGameID string, types ...GameType) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(types) == 0 {
		return nil, fmt.Errorf("at least one game type is required")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(types)), ",")
	args := []any{anchorGameID}
	for _, t := range types {
		args = append(args, string(t))
	}
	args = append(args, string(StatusClosed))

	return s.scanGame(s.db.QueryRow(`
		SELECT id, game_type, play_date, COALESCE(course_id, ''), COALESCE(tee_set_id, ''), format, status, COALESCE(assoc_game, ''), locked, COALESCE(locked_at, 0)
		FROM games
		WHERE assoc_game = ? AND game_type IN (`+placeholders+`) AND status != ?
		LIMIT 1
	`, args...))
}

func (s *store) SetGameStatus(gameID string, status GameStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE games SET status = ? WHERE id = ?`, string(status), gameID)
	return err
}

func (s *store) LockGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE games SET locked = 1, locked_at = ? WHERE id = ?`, time.Now().Unix(), gameID)
	return err
}
