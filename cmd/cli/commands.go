package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func init() {
	scoreCmd.Flags().StringVar(&scoreGameID, "game", "", "Game ID")
	scoreCmd.Flags().StringVar(&scorePlayerID, "player", "", "Player ID")
	scoreCmd.Flags().IntVar(&scoreHole, "hole", 0, "Hole number (1-18)")
	scoreCmd.Flags().IntVar(&scoreRaw, "strokes", 0, "Gross strokes")
	scoreCmd.Flags().IntVar(&scorePutts, "putts", 0, "Putts")
	scoreCmd.MarkFlagRequired("game")
	scoreCmd.MarkFlagRequired("player")
	scoreCmd.MarkFlagRequired("hole")
	scoreCmd.MarkFlagRequired("strokes")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(scorecardsCmd)
	rootCmd.AddCommand(skinsCmd)
	rootCmd.AddCommand(fortyCmd)
	rootCmd.AddCommand(gascupCmd)
	rootCmd.AddCommand(stablefordCmd)
	rootCmd.AddCommand(metricsCmd)
}

var (
	scoreGameID   string
	scorePlayerID string
	scoreHole     int
	scoreRaw      int
	scorePutts    int
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Post a hole score for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		body := fmt.Sprintf(`{"game_id":%q,"player_id":%q,"hole":%d,"raw_score":%d,"putts":%d,"actor":"cli"}`,
			scoreGameID, scorePlayerID, scoreHole, scoreRaw, scorePutts)
		return performPostRequest("/score", body)
	},
}

var scorecardsCmd = &cobra.Command{
	Use:   "scorecards [gameID]",
	Short: "Show the net leaderboard for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/scorecards?gameID=" + url.QueryEscape(args[0]))
	},
}

var skinsCmd = &cobra.Command{
	Use:   "skins [gameID]",
	Short: "Show the skins leaderboard for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/skins?gameID=" + url.QueryEscape(args[0]))
	},
}

var fortyCmd = &cobra.Command{
	Use:   "forty [gameID]",
	Short: "Show the forty leaderboard for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/forty/leaderboard?gameID=" + url.QueryEscape(args[0]))
	},
}

var gascupCmd = &cobra.Command{
	Use:   "gascup [gameID]",
	Short: "Show the cup standings for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/gascup/points?gameID=" + url.QueryEscape(args[0]))
	},
}

var stablefordCmd = &cobra.Command{
	Use:   "stableford [gameID]",
	Short: "Show the stableford standings for a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stableford/standings?gameID=" + url.QueryEscape(args[0]))
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, body string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
