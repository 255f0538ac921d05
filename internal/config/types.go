package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	Forty         FortyConfig
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// FortyConfig carries the selection-count rules for the Forty game.
// NumScores is the round-long target; MinHole1 and MinHole18 are the
// minimum selections required on the first and last holes.
type FortyConfig struct {
	NumScores int
	MinHole1  int
	MinHole18 int
}
