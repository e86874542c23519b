/* models.go
 * This file contains the structs that map to DB documents and their helper functions. Every
 * document carries guild_id and every query filters by it; guilds never see each other's rows
 * Authors: Zachary Bower
 */

package store

import (
	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team is a registered tournament team with its swiss record and playoff eligibility flags.
// The flags are monotonic; they are set once by a series decision and never cleared.
type Team struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	GuildID           string             `bson:"guild_id"`
	Name              string             `bson:"name"`
	RoleID            string             `bson:"role_id,omitempty"`
	SwissWins         int                `bson:"swiss_wins"`
	SwissLosses       int                `bson:"swiss_losses"`
	IsQuarterfinalist bool               `bson:"is_quarterfinalist"`
	IsSemifinalist    bool               `bson:"is_semifinalist"`
	IsFinalist        bool               `bson:"is_finalist"`
	IsThirdPlace      bool               `bson:"is_third_place"`
}

// TeamFlag names a playoff eligibility field for bucket queries
type TeamFlag string

const (
	FlagQuarterfinalist TeamFlag = "is_quarterfinalist"
	FlagSemifinalist    TeamFlag = "is_semifinalist"
	FlagFinalist        TeamFlag = "is_finalist"
	FlagThirdPlace      TeamFlag = "is_third_place"
)

// FlagForRound returns the eligibility flag whose holders play the given playoff round.
// ok is false for swiss rounds, which select teams by record bucket instead.
func FlagForRound(round shared.RoundType) (TeamFlag, bool) {
	switch round {
	case shared.Quarterfinal:
		return FlagQuarterfinalist, true
	case shared.Semifinal:
		return FlagSemifinalist, true
	case shared.Final:
		return FlagFinalist, true
	case shared.ThirdPlace:
		return FlagThirdPlace, true
	default:
		return "", false
	}
}

// Game is one series between two teams. Team order is significant: team one acts first in the
// veto. WinnerNumber stays 0 until the series is decided and is immutable afterwards. The
// channel and message fields correlate the game with its Discord surfaces and are opaque to
// the engine.
type Game struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	GuildID           string             `bson:"guild_id"`
	TeamOneID         primitive.ObjectID `bson:"team_one_id"`
	TeamTwoID         primitive.ObjectID `bson:"team_two_id"`
	RoundType         shared.RoundType   `bson:"round_type"`
	WinnerNumber      int                `bson:"winner_number"`
	GameChannelID     string             `bson:"game_channel_id,omitempty"`
	AdminChannelID    string             `bson:"admin_channel_id,omitempty"`
	VoiceChannelOneID string             `bson:"voice_channel_one_id,omitempty"`
	VoiceChannelTwoID string             `bson:"voice_channel_two_id,omitempty"`
	SummaryMessageID  string             `bson:"summary_message_id,omitempty"`
}

// Finished reports whether the series winner has been decided
func (g Game) Finished() bool {
	return g.WinnerNumber == 1 || g.WinnerNumber == 2
}

// TeamNumberOf returns which side a team plays for in this game, or NoTeam for outsiders
func (g Game) TeamNumberOf(teamID primitive.ObjectID) shared.TeamNumber {
	switch teamID {
	case g.TeamOneID:
		return shared.TeamOne
	case g.TeamTwoID:
		return shared.TeamTwo
	default:
		return shared.NoTeam
	}
}

// Veto is one banned map. Order is strictly increasing per game and shares its sequence space
// with Pick; the combined ordering is the chronological ban/pick history. Append-only.
type Veto struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	GuildID string             `bson:"guild_id"`
	GameID  primitive.ObjectID `bson:"game_id"`
	TeamID  primitive.ObjectID `bson:"team_id"`
	MapName string             `bson:"map_name"`
	Order   int                `bson:"order"`
}

// Pick is one selected map. A zero TeamID marks the system-derived decider. Append-only.
type Pick struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	GuildID string             `bson:"guild_id"`
	GameID  primitive.ObjectID `bson:"game_id"`
	TeamID  primitive.ObjectID `bson:"team_id,omitempty"`
	MapName string             `bson:"map_name"`
	Order   int                `bson:"order"`
}

// IsDecider reports whether this pick was derived by the system rather than chosen by a team
func (p Pick) IsDecider() bool {
	return p.TeamID.IsZero()
}

// GameMap is the outcome record for one map of a series, created from the picks once the
// ban/pick phase completes. WinnerNumber is 0 until the map is reported and is then immutable.
type GameMap struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	GuildID      string             `bson:"guild_id"`
	GameID       primitive.ObjectID `bson:"game_id"`
	MapName      string             `bson:"map_name"`
	MapNumber    int                `bson:"map_number"`
	WinnerNumber int                `bson:"winner_number"`
}

// Player is a roster entry, consumed when configuring the external match server
type Player struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	GuildID  string             `bson:"guild_id"`
	TeamID   primitive.ObjectID `bson:"team_id"`
	Nickname string             `bson:"nickname"`
	SteamID  string             `bson:"steam_id"`
	Role     string             `bson:"role,omitempty"`
}

// Setting is a per-guild key/value row used for channel and message correlation
type Setting struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	GuildID string             `bson:"guild_id"`
	Key     string             `bson:"key"`
	Value   string             `bson:"value"`
}
