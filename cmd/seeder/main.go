package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

// Par and stroke index for a typical members course, hole 1 through 18.
var seedPars = []int{4, 5, 3, 4, 4, 4, 3, 5, 4, 4, 3, 5, 4, 4, 4, 3, 5, 4}
var seedIndexes = []int{7, 1, 17, 5, 11, 3, 15, 9, 13, 2, 18, 8, 4, 10, 12, 16, 6, 14}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	courseID := "course-ridge"
	teeSetID := "tee-ridge-white"
	if _, err := tx.Exec("INSERT OR IGNORE INTO courses (id, name) VALUES (?, ?)", courseID, "Ridge Park GC"); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert course: %s", err)
	}
	if _, err := tx.Exec("INSERT OR IGNORE INTO tee_sets (id, course_id, name, slope, rating) VALUES (?, ?, ?, ?, ?)",
		teeSetID, courseID, "White", 122, 70.1); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert tee set: %s", err)
	}
	for hole := 1; hole <= 18; hole++ {
		yardage := 150 + 20*seedPars[hole-1]*2
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO course_holes (tee_set_id, hole, par, yardage, stroke_index)
			VALUES (?, ?, ?, ?, ?)`,
			teeSetID, hole, seedPars[hole-1], yardage, seedIndexes[hole-1]); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert hole %d: %s", hole, err)
		}
	}
	log.Info("Ensured course, tees and holes exist.", "course", courseID)

	seedPlayers := []struct {
		Name  string
		Index float64
	}{
		{"Seeder Player A", 5.3},
		{"Seeder Player B", 10.0},
		{"Seeder Player C", 12.1},
		{"Seeder Player D", 17.8},
		{"Seeder Player E", 21.4},
		{"Seeder Player F", 8.6},
		{"Seeder Player G", 14.9},
		{"Seeder Player H", 25.0},
	}
	playerIDs := make([]string, 0, len(seedPlayers))
	for i, p := range seedPlayers {
		id := fmt.Sprintf("player-%d", i+1)
		playerIDs = append(playerIDs, id)
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO players (id, name, mobile, email, hcp_index, member)
			VALUES (?, ?, '', '', ?, 1)`, id, p.Name, p.Index); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured seed players exist.", "count", len(playerIDs))

	playDate := time.Now().Format("2006-01-02")
	anchorID := uuid.NewString()
	fortyID := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, locked)
		VALUES (?, 'skins', ?, ?, ?, 'low_man', 'pending', 0)`,
		anchorID, playDate, courseID, teeSetID); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert anchor game: %s", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO games (id, game_type, play_date, course_id, tee_set_id, format, status, assoc_game, locked)
		VALUES (?, 'forty', ?, ?, ?, 'low_man', 'pending', ?, 0)`,
		fortyID, playDate, courseID, teeSetID, anchorID); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to insert forty game: %s", err)
	}
	if _, err := tx.Exec("UPDATE games SET assoc_game = ? WHERE id = ?", fortyID, anchorID); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to link games: %s", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	log.Info("Seeding complete.", "anchorGame", anchorID, "fortyGame", fortyID)
}
