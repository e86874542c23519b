/* host.go
 * Contains the SeriesHost, which books a whole series on DatHost once its map order is known.
 * One server match is created per map; each carries a webhook event URL scoped to the game so
 * the receiver can resolve the series without a lookup table
 * Authors: Zachary Bower
 */

package external

import (
	"context"
	"fmt"

	"tournament-bot/api/store"
)

// SeriesHost books series on DatHost. It satisfies the API's MatchHost interface.
type SeriesHost struct {
	Client         *Client
	Store          store.Interface
	GameServerID   string
	WebhookBaseURL string // empty disables webhooks
	WebhookAuth    string
	TeamSize       int
}

// NewSeriesHost creates a SeriesHost around an existing client and store
func NewSeriesHost(client *Client, s store.Interface, serverID string, webhookBaseURL string, webhookAuth string) *SeriesHost {
	return &SeriesHost{
		Client:         client,
		Store:          s,
		GameServerID:   serverID,
		WebhookBaseURL: webhookBaseURL,
		WebhookAuth:    webhookAuth,
		TeamSize:       7,
	}
}

// CreateSeries books one server match per map of the series, whitelisting both rosters
// Preconditions: Receives the game, both team rows and the map names in play order
// Postconditions: Every map is booked, or an error is returned for the first failure
func (h *SeriesHost) CreateSeries(game store.Game, teamOne store.Team, teamTwo store.Team, maps []string) error {
	players, err := h.seriesPlayers(game.GuildID, teamOne, teamTwo)
	if err != nil {
		return err
	}

	for _, mapName := range maps {
		req := CreateMatchRequest{
			GameServerID: h.GameServerID,
			Team1:        MatchTeam{Name: teamOne.Name},
			Team2:        MatchTeam{Name: teamTwo.Name},
			Players:      players,
			Settings: MatchSettings{
				Map:             mapName,
				TeamSize:        h.TeamSize,
				WaitForGOTV:     true,
				EnablePlugin:    true,
				EnableTechPause: true,
			},
		}
		if h.WebhookBaseURL != "" {
			req.Webhooks = &MatchWebhooks{
				EventURL:            fmt.Sprintf("%s/webhooks/match/%s/%s", h.WebhookBaseURL, game.GuildID, game.ID.Hex()),
				EnabledEvents:       []string{"*"},
				AuthorizationHeader: h.WebhookAuth,
			}
		}
		if _, err := h.Client.CreateMatch(context.Background(), req); err != nil {
			return fmt.Errorf("failed to book %s for game %s: %w", mapName, game.ID.Hex(), err)
		}
	}
	return nil
}

// seriesPlayers builds the whitelist entries for both rosters
func (h *SeriesHost) seriesPlayers(guildID string, teamOne store.Team, teamTwo store.Team) ([]MatchPlayer, error) {
	var players []MatchPlayer
	for _, side := range []struct {
		team  store.Team
		label string
	}{
		{teamOne, "team1"},
		{teamTwo, "team2"},
	} {
		roster, err := h.Store.GetPlayersByTeam(guildID, side.team.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster for %s: %w", side.team.Name, err)
		}
		for _, player := range roster {
			players = append(players, MatchPlayer{
				SteamID64:        player.SteamID,
				NicknameOverride: player.Nickname,
				Team:             side.label,
			})
		}
	}
	return players, nil
}
