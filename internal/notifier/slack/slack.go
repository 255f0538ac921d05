package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/metrics"
	"github.com/duffsix/golf-league/internal/notifier"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return timestamp, nil
}

func (s *Notifier) SendScorePosted(result *ledger.ScoreResult, playerName string, dryRun bool) (string, error) {
	return s.sendMessage(s.FormatScorePosted(result, playerName), dryRun)
}

func (s *Notifier) SendSkinsLeaderboard(entries []skins.LeaderboardEntry, dryRun bool) error {
	_, err := s.sendMessage(s.FormatSkinsLeaderboard(entries), dryRun)
	return err
}

func (s *Notifier) SendGasCupStatus(status *gascup.MatchStatus, dryRun bool) error {
	_, err := s.sendMessage(s.FormatGasCupStatus(status), dryRun)
	return err
}

func (s *Notifier) FormatSkinsLeaderboardResponse(entries []skins.LeaderboardEntry) (any, error) {
	msg := s.FormatSkinsLeaderboard(entries)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}

func (s *Notifier) FormatScorecardsResponse(cards []ledger.PlayerCard) (any, error) {
	msg := s.FormatScorecards(cards)
	msg.ResponseType = slack.ResponseTypeInChannel
	return msg, nil
}
