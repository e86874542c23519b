/* mock_session.go
 * Contains mock implementation of DiscordSession for testing
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession implements DiscordSession for testing purposes
type MockDiscordSession struct {
	// SentMessages stores all messages sent during tests
	SentMessages []MockMessage
	// EditedMessages stores all message edits made during tests
	EditedMessages []MockEdit
	// CreatedRoles stores all roles created during tests
	CreatedRoles []*discordgo.Role
	// CreatedChannels stores all channels created during tests
	CreatedChannels []*discordgo.Channel
	// RoleAssignments maps user id to assigned role ids
	RoleAssignments map[string][]string

	// ErrorToReturn allows tests to simulate errors on every call
	ErrorToReturn error
	// EditErrorToReturn simulates edit failures only, e.g. a hand-deleted message
	EditErrorToReturn error

	nextID int
}

// MockMessage represents a message sent to a channel
type MockMessage struct {
	ChannelID string
	Content   string
}

// MockEdit represents an edit of an existing message
type MockEdit struct {
	ChannelID string
	MessageID string
	Content   string
}

// NewMockDiscordSession creates a new MockDiscordSession for testing
func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		SentMessages:    make([]MockMessage, 0),
		RoleAssignments: make(map[string][]string),
	}
}

// ChannelMessageSend implements DiscordSession.ChannelMessageSend
func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.nextID++
	m.SentMessages = append(m.SentMessages, MockMessage{
		ChannelID: channelID,
		Content:   content,
	})

	return &discordgo.Message{
		ID:        fmt.Sprintf("mock_message_%d", m.nextID),
		ChannelID: channelID,
		Content:   content,
	}, nil
}

// ChannelMessageEdit implements DiscordSession.ChannelMessageEdit
func (m *MockDiscordSession) ChannelMessageEdit(channelID string, messageID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	if m.EditErrorToReturn != nil {
		return nil, m.EditErrorToReturn
	}

	m.EditedMessages = append(m.EditedMessages, MockEdit{
		ChannelID: channelID,
		MessageID: messageID,
		Content:   content,
	})

	return &discordgo.Message{
		ID:        messageID,
		ChannelID: channelID,
		Content:   content,
	}, nil
}

// GuildRoleCreate implements DiscordSession.GuildRoleCreate
func (m *MockDiscordSession) GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.nextID++
	role := &discordgo.Role{
		ID:   fmt.Sprintf("mock_role_%d", m.nextID),
		Name: data.Name,
	}
	m.CreatedRoles = append(m.CreatedRoles, role)
	return role, nil
}

// GuildMemberRoleAdd implements DiscordSession.GuildMemberRoleAdd
func (m *MockDiscordSession) GuildMemberRoleAdd(guildID string, userID string, roleID string, options ...discordgo.RequestOption) error {
	if m.ErrorToReturn != nil {
		return m.ErrorToReturn
	}
	m.RoleAssignments[userID] = append(m.RoleAssignments[userID], roleID)
	return nil
}

// GuildChannelCreateComplex implements DiscordSession.GuildChannelCreateComplex
func (m *MockDiscordSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}

	m.nextID++
	channel := &discordgo.Channel{
		ID:   fmt.Sprintf("mock_channel_%d", m.nextID),
		Name: data.Name,
		Type: data.Type,
	}
	m.CreatedChannels = append(m.CreatedChannels, channel)
	return channel, nil
}

// GetLastMessage returns the last message sent, or empty MockMessage if none
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// ClearMessages clears all stored messages
func (m *MockDiscordSession) ClearMessages() {
	m.SentMessages = nil
}
