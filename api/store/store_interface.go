/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"tournament-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Teams
	CreateTeam(team Team) (primitive.ObjectID, error)
	GetTeamByID(guildID string, id primitive.ObjectID) (Team, error)
	GetTeamByName(guildID string, name string) (Team, error)
	GetAllTeams(guildID string) ([]Team, error)
	GetTeamsByRecord(guildID string, wins int, losses int) ([]Team, error)
	GetTeamsByFlag(guildID string, flag TeamFlag) ([]Team, error)
	GetTeamsByStanding(guildID string) ([]Team, error)
	UpdateTeam(team Team) error
	CountTeams(guildID string) (int64, error)

	// Games
	CreateGame(game Game) (primitive.ObjectID, error)
	GetGameByID(guildID string, id primitive.ObjectID) (Game, error)
	GetGameByChannel(guildID string, channelID string) (Game, error)
	GetGamesByType(guildID string, round shared.RoundType) ([]Game, error)
	GetGameByTeamsAndType(guildID string, teamA, teamB primitive.ObjectID, round shared.RoundType) (Game, error)
	GetAllGames(guildID string) ([]Game, error)
	CountGames(guildID string) (int64, error)
	CountFinishedGames(guildID string) (int64, error)
	SetGameWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error
	UpdateGameChannels(game Game) error

	// Vetoes and picks
	CreateVeto(veto Veto) (primitive.ObjectID, error)
	CreatePick(pick Pick) (primitive.ObjectID, error)
	GetVetoesByGame(guildID string, gameID primitive.ObjectID) ([]Veto, error)
	GetPicksByGame(guildID string, gameID primitive.ObjectID) ([]Pick, error)

	// Game maps
	CreateGameMap(gameMap GameMap) (primitive.ObjectID, error)
	GetGameMapsByGame(guildID string, gameID primitive.ObjectID) ([]GameMap, error)
	GetOpenGameMapByName(guildID string, gameID primitive.ObjectID, mapName string) (GameMap, error)
	SetGameMapWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error

	// Players
	CreatePlayer(player Player) (primitive.ObjectID, error)
	GetPlayersByTeam(guildID string, teamID primitive.ObjectID) ([]Player, error)
	GetPlayerBySteamID(guildID string, steamID string) (Player, error)

	// Settings
	GetSetting(guildID string, key string) (string, bool, error)
	SetSetting(guildID string, key string, value string) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
