package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/league"
	"github.com/duffsix/golf-league/internal/stableford"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// writeJSON is a helper to encode a response body.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeDomainError maps the typed scoring errors onto HTTP statuses. Rule
// violations and setup problems are the caller's to fix (422); a lost update
// is retryable (409); anything else is ours (500).
func writeDomainError(w http.ResponseWriter, err error) {
	var vErr *league.ValidationError
	var cfgErr *league.ConfigurationError
	var initErr *league.NotInitializedError
	var ccErr *league.ConcurrencyConflictError

	switch {
	case errors.As(err, &vErr):
		http.Error(w, vErr.Reason, http.StatusUnprocessableEntity)
	case errors.As(err, &cfgErr):
		http.Error(w, cfgErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &initErr):
		http.Error(w, initErr.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &ccErr):
		http.Error(w, ccErr.Error(), http.StatusConflict)
	default:
		log.Error("Request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			players, err := s.League.GetAllPlayers()
			if err != nil {
				http.Error(w, "Failed to get players", http.StatusInternalServerError)
				log.Error("Failed to get players from store", "error", err)
				return
			}
			writeJSON(w, players)
		case http.MethodPost:
			var p league.Player
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if err := s.League.UpsertPlayer(p); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Player upserted.")
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var g league.Game
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if !g.Type.Valid() {
			http.Error(w, "Unknown game type: "+string(g.Type), http.StatusUnprocessableEntity)
			return
		}
		if err := s.League.CreateGame(g); err != nil {
			writeDomainError(w, err)
			return
		}
		log.Info("Game created", "gameID", g.ID, "type", g.Type)
		writeJSON(w, g)
	}
}

func (s *Server) LinkGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			AnchorGameID string      `json:"anchor_game_id"`
			Derived      league.Game `json:"derived"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if !req.Derived.Type.Derived() {
			http.Error(w, "Game type is not a derived game: "+string(req.Derived.Type), http.StatusUnprocessableEntity)
			return
		}
		if err := s.League.LinkDerivedGame(req.AnchorGameID, req.Derived); err != nil {
			writeDomainError(w, err)
			return
		}
		log.Info("Derived game linked", "anchor", req.AnchorGameID, "derived", req.Derived.ID, "type", req.Derived.Type)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Game linked.")
	}
}

func (s *Server) InitGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID  string             `json:"game_id"`
			Entries []ledger.InitEntry `json:"entries"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Processor.InitializeGame(req.GameID, req.Entries); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Game initialized.")
	}
}

func (s *Server) LockGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		if err := s.League.LockGame(gameID); err != nil {
			writeDomainError(w, err)
			return
		}
		log.Info("Game locked", "gameID", gameID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Game locked.")
	}
}

func (s *Server) RecordScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID   string `json:"game_id"`
			PlayerID string `json:"player_id"`
			Hole     int    `json:"hole"`
			RawScore int    `json:"raw_score"`
			Putts    int    `json:"putts"`
			Actor    string `json:"actor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		result, err := s.Processor.RecordScore(req.GameID, req.PlayerID, req.Hole, req.RawScore, req.Putts, req.Actor, isDryRun)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, result)
	}
}

func (s *Server) ScorecardsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		cards, err := s.Ledger.Scorecards(gameID)
		if err != nil {
			http.Error(w, "Failed to get scorecards", http.StatusInternalServerError)
			log.Error("Failed to get scorecards", "error", err, "gameID", gameID)
			return
		}
		writeJSON(w, cards)
	}
}

func (s *Server) SkinsLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		entries, err := s.Skins.Leaderboard(gameID)
		if err != nil {
			http.Error(w, "Failed to get skins leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get skins leaderboard", "error", err, "gameID", gameID)
			return
		}
		writeJSON(w, entries)
	}
}

func (s *Server) FortySelectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			FortyGameID string   `json:"forty_game_id"`
			Hole        int      `json:"hole"`
			Group       string   `json:"group"`
			PlayerIDs   []string `json:"player_ids"`
			Actor       string   `json:"actor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Forty.SelectScores(req.FortyGameID, req.Hole, req.Group, req.PlayerIDs, req.Actor); err != nil {
			s.Metrics.IncFortyRejections()
			writeDomainError(w, err)
			return
		}
		s.Metrics.IncFortySelections()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Selections recorded.")
	}
}

func (s *Server) FortyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		standings, err := s.Forty.Leaderboard(gameID)
		if err != nil {
			http.Error(w, "Failed to get forty leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get forty leaderboard", "error", err, "gameID", gameID)
			return
		}
		writeJSON(w, standings)
	}
}

func (s *Server) FortyProgressHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		group := r.URL.Query().Get("group")
		if gameID == "" || group == "" {
			http.Error(w, "gameID and group are required", http.StatusBadRequest)
			return
		}
		progress, err := s.Forty.Progress(gameID, group)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, progress)
	}
}

func (s *Server) GasCupPairsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID string            `json:"game_id"`
			Pairs  []gascup.PairSpec `json:"pairs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.GasCup.CreatePairs(req.GameID, req.Pairs); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Pairs created.")
	}
}

func (s *Server) GasCupStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		group := r.URL.Query().Get("group")
		if gameID == "" || group == "" {
			http.Error(w, "gameID and group are required", http.StatusBadRequest)
			return
		}
		thru := 18
		if v := r.URL.Query().Get("thru"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 || parsed > 18 {
				http.Error(w, "thru must be a hole number between 1 and 18", http.StatusBadRequest)
				return
			}
			thru = parsed
		}
		status, err := s.GasCup.Status(gameID, group, thru)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, status)
	}
}

func (s *Server) GasCupPointsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		standings, err := s.GasCup.Points(gameID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, standings)
	}
}

func (s *Server) GasCupOverrideHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID      string  `json:"game_id"`
			Group       string  `json:"group"`
			Team1Points float64 `json:"team1_points"`
			Team2Points float64 `json:"team2_points"`
			Display     string  `json:"display"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.GasCup.SetOverride(req.GameID, req.Group, req.Team1Points, req.Team2Points, req.Display); err != nil {
			writeDomainError(w, err)
			return
		}
		log.Info("Cup override recorded", "gameID", req.GameID, "group", req.Group, "display", req.Display)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Override recorded.")
	}
}

func (s *Server) StablefordTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			GameID   string                `json:"game_id"`
			Format   stableford.TeamFormat `json:"format"`
			Pairings [][]string            `json:"pairings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if err := s.Stableford.AssembleTeams(req.GameID, req.Format, req.Pairings); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Teams assembled.")
	}
}

func (s *Server) StablefordStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID is required", http.StatusBadRequest)
			return
		}
		standings, err := s.Stableford.Standings(gameID)
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get stableford standings", "error", err, "gameID", gameID)
			return
		}
		writeJSON(w, standings)
	}
}

// NotifyScoreHandler consumes the score-recorded pub/sub push subscription
// and posts the refreshed skins banner and, where a cup game is running, the
// match status for the scoring player's group.
func (s *Server) NotifyScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received score-recorded message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		result := ledger.ScoreResult{}
		if err := s.pubsub.ProcessMessage(rawData, &result); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		entries, err := s.Skins.Leaderboard(result.GameID)
		if err != nil {
			log.Error("Failed to get skins leaderboard", "error", err, "gameID", result.GameID)
			http.Error(w, "Failed to get skins leaderboard", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendSkinsLeaderboard(entries, isDryRun); err != nil {
			log.Error("Failed to send skins leaderboard", "error", err)
		}

		cup, err := s.League.FindDerivedGame(result.GameID, league.GameGasCup, league.GameFallClassic)
		if err != nil {
			log.Error("Failed to resolve cup game", "error", err, "gameID", result.GameID)
		} else if cup != nil {
			meta, err := s.Ledger.Meta(result.GameID, result.PlayerID)
			if err == nil {
				status, err := s.GasCup.Status(result.GameID, meta.Group, result.Hole)
				if err == nil {
					if err := s.Notifier.SendGasCupStatus(status, isDryRun); err != nil {
						log.Error("Failed to send cup status", "error", err)
					}
				}
			}
		}
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// SkinsCommandHandler returns a handler for the /skins Slack command.
func (s *Server) SkinsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		gameID := r.FormValue("text")
		if gameID == "" {
			http.Error(w, "Game ID is required.", http.StatusBadRequest)
			return
		}

		entries, err := s.Skins.Leaderboard(gameID)
		if err != nil {
			http.Error(w, "Failed to get skins leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get skins leaderboard", "error", err, "gameID", gameID)
			return
		}

		msg, err := s.Notifier.FormatSkinsLeaderboardResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format skins leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format skins leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// ScorecardsCommandHandler returns a handler for the /scorecards Slack command.
func (s *Server) ScorecardsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		gameID := r.FormValue("text")
		if gameID == "" {
			http.Error(w, "Game ID is required.", http.StatusBadRequest)
			return
		}

		cards, err := s.Ledger.Scorecards(gameID)
		if err != nil {
			http.Error(w, "Failed to get scorecards", http.StatusInternalServerError)
			log.Error("Failed to get scorecards", "error", err, "gameID", gameID)
			return
		}

		msg, err := s.Notifier.FormatScorecardsResponse(cards)
		if err != nil {
			http.Error(w, "Failed to format scorecards", http.StatusInternalServerError)
			log.Error("Failed to format scorecards", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}
