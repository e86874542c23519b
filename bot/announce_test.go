/* announce_test.go
 * Contains unit tests for the standing message publisher
 * Authors: Zachary Bower
 */

package bot

import (
	"errors"
	"testing"

	"tournament-bot/api/api"
	"tournament-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatchState() api.MatchState {
	return api.MatchState{
		TeamOne:   "Astra",
		TeamTwo:   "Borea",
		Format:    shared.Bo1,
		RoundType: shared.Swiss1,
		Turn:      shared.TeamOne,
	}
}

// TestSummaryPublisher_FirstPublishSends posts a new message when no id is known yet
func TestSummaryPublisher_FirstPublishSends(t *testing.T) {
	session := NewMockDiscordSession()
	publisher := &SummaryPublisher{Session: session}

	messageID, err := publisher.PublishMatchState("chan-match", "", testMatchState())
	require.NoError(t, err)
	assert.NotEmpty(t, messageID)

	require.Len(t, session.SentMessages, 1)
	assert.Equal(t, "chan-match", session.SentMessages[0].ChannelID)
	assert.Contains(t, session.SentMessages[0].Content, "Astra vs Borea")
	assert.Empty(t, session.EditedMessages)
}

// TestSummaryPublisher_RepublishEdits edits the known message instead of posting again
func TestSummaryPublisher_RepublishEdits(t *testing.T) {
	session := NewMockDiscordSession()
	publisher := &SummaryPublisher{Session: session}

	first, err := publisher.PublishMatchState("chan-match", "", testMatchState())
	require.NoError(t, err)

	second, err := publisher.PublishMatchState("chan-match", first, testMatchState())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, session.SentMessages, 1)
	require.Len(t, session.EditedMessages, 1)
	assert.Equal(t, first, session.EditedMessages[0].MessageID)
}

// TestSummaryPublisher_RepostsWhenEditFails posts a fresh message when the old one is gone
func TestSummaryPublisher_RepostsWhenEditFails(t *testing.T) {
	session := NewMockDiscordSession()
	session.EditErrorToReturn = errors.New("Unknown Message")
	publisher := &SummaryPublisher{Session: session}

	messageID, err := publisher.PublishSummary("chan-summary", "stale-id", api.TournamentSummary{})
	require.NoError(t, err)
	assert.NotEqual(t, "stale-id", messageID)

	require.Len(t, session.SentMessages, 1)
	assert.Equal(t, "chan-summary", session.SentMessages[0].ChannelID)
}
