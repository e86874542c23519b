/* models.go
 * Contains the wire structs for the match host integration: the request body for booking a
 * server and the event payloads its plugin posts back to our webhook
 * Authors: Zachary Bower
 */

package external

import (
	"fmt"

	"tournament-bot/api/shared"
)

// region Match creation request

// MatchTeam is one side of a booked match
type MatchTeam struct {
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// MatchPlayer is one whitelisted player of a booked match
type MatchPlayer struct {
	SteamID64        string `json:"steam_id_64"`
	NicknameOverride string `json:"nickname_override"`
	Team             string `json:"team"` // "team1" or "team2"
}

// MatchSettings holds the server settings of a booked match
type MatchSettings struct {
	Map             string `json:"map"`
	TeamSize        int    `json:"team_size"`
	WaitForGOTV     bool   `json:"wait_for_gotv"`
	EnablePlugin    bool   `json:"enable_plugin"`
	EnableTechPause bool   `json:"enable_tech_pause"`
}

// MatchWebhooks tells the host where to post its events
type MatchWebhooks struct {
	EventURL            string   `json:"event_url"`
	EnabledEvents       []string `json:"enabled_events"`
	AuthorizationHeader string   `json:"authorization_header"`
}

// CreateMatchRequest is the body posted to the host's cs2-matches endpoint
type CreateMatchRequest struct {
	GameServerID string         `json:"game_server_id"`
	Team1        MatchTeam      `json:"team1"`
	Team2        MatchTeam      `json:"team2"`
	Players      []MatchPlayer  `json:"players"`
	Settings     MatchSettings  `json:"settings"`
	Webhooks     *MatchWebhooks `json:"webhooks,omitempty"`
}

// CreateMatchResponse is the subset of the host's response we care about
type CreateMatchResponse struct {
	ID string `json:"id"`
}

// endregion

// region Webhook events

// Event types posted by the server plugin
const (
	EventMapVetoed = "map_vetoed"
	EventMapPicked = "map_picked"
	EventMapResult = "map_result"
)

// Event is the envelope every plugin payload carries; the full shape depends on the type
type Event struct {
	Event   string `json:"event"`
	MatchID string `json:"matchid"`
}

// MapVetoedEvent is posted when a team bans a map during server side warmup
type MapVetoedEvent struct {
	Event   string `json:"event"`
	MatchID string `json:"matchid"`
	Team    string `json:"team"` // "team1" or "team2"
	MapName string `json:"map_name"`
}

// MapPickedEvent is posted when a team picks a map during server side warmup
type MapPickedEvent struct {
	Event     string `json:"event"`
	MatchID   string `json:"matchid"`
	Team      string `json:"team"`
	MapName   string `json:"map_name"`
	MapNumber int    `json:"map_number"`
}

// EventWinner names the winning side of a map
type EventWinner struct {
	Side string `json:"side"` // "ct" or "t"
	Team string `json:"team"` // "team1" or "team2"
}

// MapResultEvent is posted when a map finishes
type MapResultEvent struct {
	Event     string      `json:"event"`
	MatchID   string      `json:"matchid"`
	MapNumber int         `json:"map_number"`
	Winner    EventWinner `json:"winner"`
}

// TeamNumberFromLabel converts the host's "team1"/"team2" labels to a TeamNumber
// Preconditions: Receives the team label string from an event payload
// Postconditions: Returns the TeamNumber, or shared.ErrInvalidTeamNumber for anything else
func TeamNumberFromLabel(label string) (shared.TeamNumber, error) {
	switch label {
	case "team1":
		return shared.TeamOne, nil
	case "team2":
		return shared.TeamTwo, nil
	default:
		return shared.NoTeam, fmt.Errorf("unknown team label %q: %w", label, shared.ErrInvalidTeamNumber)
	}
}

// endregion
