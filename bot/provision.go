/* provision.go
 * Contains the channel provisioning for newly scheduled games: a public match channel, a
 * private admin channel and one voice channel per team, locked down with the team roles.
 * The scheduler calls this through the API's Provisioner interface
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"

	"tournament-bot/api/store"

	"github.com/bwmarrin/discordgo"
)

// ChannelProvisioner creates the Discord surfaces for a game
type ChannelProvisioner struct {
	Session DiscordSession
}

// ProvisionGame creates the game's channels and returns the game with their ids filled in
// Preconditions: Receives the created game row and both team rows
// Postconditions: Returns the game with its channel fields set, or an error if it occurs
func (p *ChannelProvisioner) ProvisionGame(game store.Game, teamOne store.Team, teamTwo store.Team) (store.Game, error) {
	base := channelName(teamOne.Name) + "-vs-" + channelName(teamTwo.Name)

	// The @everyone role id equals the guild id
	hidden := []*discordgo.PermissionOverwrite{
		{ID: game.GuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
	}
	for _, roleID := range []string{teamOne.RoleID, teamTwo.RoleID} {
		if roleID == "" {
			continue
		}
		hidden = append(hidden, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel,
		})
	}

	gameChannel, err := p.Session.GuildChannelCreateComplex(game.GuildID, discordgo.GuildChannelCreateData{
		Name:                 base,
		Type:                 discordgo.ChannelTypeGuildText,
		PermissionOverwrites: hidden,
	})
	if err != nil {
		return store.Game{}, fmt.Errorf("failed to create match channel: %w", err)
	}
	game.GameChannelID = gameChannel.ID

	adminChannel, err := p.Session.GuildChannelCreateComplex(game.GuildID, discordgo.GuildChannelCreateData{
		Name: base + "-admin",
		Type: discordgo.ChannelTypeGuildText,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: game.GuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		},
	})
	if err != nil {
		return store.Game{}, fmt.Errorf("failed to create admin channel: %w", err)
	}
	game.AdminChannelID = adminChannel.ID

	for _, side := range []struct {
		team   store.Team
		target *string
	}{
		{teamOne, &game.VoiceChannelOneID},
		{teamTwo, &game.VoiceChannelTwoID},
	} {
		overwrites := []*discordgo.PermissionOverwrite{
			{ID: game.GuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		}
		if side.team.RoleID != "" {
			overwrites = append(overwrites, &discordgo.PermissionOverwrite{
				ID:    side.team.RoleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel | discordgo.PermissionVoiceConnect,
			})
		}
		voice, err := p.Session.GuildChannelCreateComplex(game.GuildID, discordgo.GuildChannelCreateData{
			Name:                 channelName(side.team.Name) + "-voice",
			Type:                 discordgo.ChannelTypeGuildVoice,
			PermissionOverwrites: overwrites,
		})
		if err != nil {
			return store.Game{}, fmt.Errorf("failed to create voice channel for %s: %w", side.team.Name, err)
		}
		*side.target = voice.ID
	}

	if _, err := p.Session.ChannelMessageSend(gameChannel.ID,
		fmt.Sprintf("**%s vs %s** - use `$veto map` and `$pick map` on your team's turn, `$match` to see the state", teamOne.Name, teamTwo.Name)); err != nil {
		return store.Game{}, fmt.Errorf("failed to post match welcome: %w", err)
	}

	return game, nil
}

// channelName builds a Discord safe channel name fragment from a team name
func channelName(name string) string {
	lowered := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	var b strings.Builder
	for _, r := range lowered {
		if r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
