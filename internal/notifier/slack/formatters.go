package slack

import (
	"fmt"
	"strings"

	"github.com/duffsix/golf-league/internal/gascup"
	"github.com/duffsix/golf-league/internal/ledger"
	"github.com/duffsix/golf-league/internal/skins"
	"github.com/slack-go/slack"
)

// FormatScorePosted creates the Slack message for a posted or corrected hole score.
func (s *Notifier) FormatScorePosted(result *ledger.ScoreResult, playerName string) slack.Message {
	blocks := make([]slack.Block, 0)

	verb := "posted"
	if result.Updated {
		verb = "corrected"
	}
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⛳ Score %s", verb), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s — hole %d: %d gross / %d net", playerName, result.Hole, result.RawScore, result.NetScore)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatSkinsLeaderboard creates the Slack message for the skins standings.
func (s *Notifier) FormatSkinsLeaderboard(entries []skins.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "💰 Skins", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No skins awarded yet — everything is getting halved.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, e := range entries {
		holes := make([]string, len(e.Holes))
		for i, h := range e.Holes {
			holes[i] = fmt.Sprintf("%d", h)
		}
		lines = append(lines, fmt.Sprintf("• %s: %d (holes %s)", e.PlayerName, e.Skins, strings.Join(holes, ", ")))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatGasCupStatus creates the Slack message for a cup match banner.
func (s *Notifier) FormatGasCupStatus(status *gascup.MatchStatus) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 Gas Cup — group %s thru %d", status.Group, status.Thru), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Front: %s\nBack: %s\nOverall: %s", status.Front.Text, status.Back.Text, status.Overall.Text)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// FormatScorecards creates the Slack message for the net leaderboard.
func (s *Notifier) FormatScorecards(cards []ledger.PlayerCard) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "📋 Leaderboard", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(cards) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No scorecards yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for i, c := range cards {
		lines = append(lines, fmt.Sprintf("%d. %s — net %d (gross %d, thru %d)", i+1, c.PlayerName, c.NetTotal, c.RawTotal, c.HolesPosted))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
