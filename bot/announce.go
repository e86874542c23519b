/* announce.go
 * Contains the publisher that keeps standing Discord messages in sync with tournament state:
 * the per-match state message in the game channel and the guild's tournament summary. The
 * engine calls this through the API's Announcer interface, so webhook-driven changes surface
 * in Discord without anyone typing a command
 * Authors: Zachary Bower
 */

package bot

import (
	"tournament-bot/api/api"
)

// SummaryPublisher posts and edits the bot's standing messages
type SummaryPublisher struct {
	Session DiscordSession
}

// Ensure SummaryPublisher implements api.Announcer
var _ api.Announcer = (*SummaryPublisher)(nil)

// PublishMatchState writes the rendered match state to the game's channel
// Preconditions: Receives the channel id, the id of the previous state message or "", and
// the match state view
// Postconditions: Returns the id of the message now carrying the state, or an error
func (p *SummaryPublisher) PublishMatchState(channelID string, messageID string, state api.MatchState) (string, error) {
	return p.publish(channelID, messageID, renderMatchState(state))
}

// PublishSummary writes the rendered tournament summary to the configured summary channel
func (p *SummaryPublisher) PublishSummary(channelID string, messageID string, summary api.TournamentSummary) (string, error) {
	return p.publish(channelID, messageID, renderSummary(summary))
}

func (p *SummaryPublisher) publish(channelID string, messageID string, content string) (string, error) {
	if messageID != "" {
		if _, err := p.Session.ChannelMessageEdit(channelID, messageID, content); err == nil {
			return messageID, nil
		}
		// The message may have been deleted by hand; post a fresh one
	}
	message, err := p.Session.ChannelMessageSend(channelID, content)
	if err != nil {
		return "", err
	}
	return message.ID, nil
}
