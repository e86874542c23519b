/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package. MockStore is a full
 * in-memory implementation of store.Interface so whole tournaments can run in a unit test
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"sort"

	"tournament-bot/api/shared"
	"tournament-bot/api/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockStore implements the store.Interface for testing
type MockStore struct {
	Teams    []store.Team
	Games    []store.Game
	Vetoes   []store.Veto
	Picks    []store.Pick
	GameMaps []store.GameMap
	Players  []store.Player
	Settings map[string]string

	// Error injection for testing error paths
	CreateGameError    error
	SetGameWinnerError error
	UpdateTeamError    error
	CreatePickError    error
	CreateGameMapError error
}

// Ensure MockStore implements store.Interface
var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates a new empty MockStore
func NewMockStore() *MockStore {
	return &MockStore{Settings: make(map[string]string)}
}

var errMockNotFound = errors.New("not found")

// region Teams

func (m *MockStore) CreateTeam(team store.Team) (primitive.ObjectID, error) {
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	m.Teams = append(m.Teams, team)
	return team.ID, nil
}

func (m *MockStore) GetTeamByID(guildID string, id primitive.ObjectID) (store.Team, error) {
	for _, team := range m.Teams {
		if team.GuildID == guildID && team.ID == id {
			return team, nil
		}
	}
	return store.Team{}, errMockNotFound
}

func (m *MockStore) GetTeamByName(guildID string, name string) (store.Team, error) {
	for _, team := range m.Teams {
		if team.GuildID == guildID && team.Name == name {
			return team, nil
		}
	}
	return store.Team{}, errMockNotFound
}

func (m *MockStore) GetAllTeams(guildID string) ([]store.Team, error) {
	var out []store.Team
	for _, team := range m.Teams {
		if team.GuildID == guildID {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *MockStore) GetTeamsByRecord(guildID string, wins int, losses int) ([]store.Team, error) {
	var out []store.Team
	for _, team := range m.Teams {
		if team.GuildID == guildID && team.SwissWins == wins && team.SwissLosses == losses {
			out = append(out, team)
		}
	}
	return out, nil
}

func (m *MockStore) GetTeamsByFlag(guildID string, flag store.TeamFlag) ([]store.Team, error) {
	var out []store.Team
	for _, team := range m.Teams {
		if team.GuildID != guildID {
			continue
		}
		switch flag {
		case store.FlagQuarterfinalist:
			if team.IsQuarterfinalist {
				out = append(out, team)
			}
		case store.FlagSemifinalist:
			if team.IsSemifinalist {
				out = append(out, team)
			}
		case store.FlagFinalist:
			if team.IsFinalist {
				out = append(out, team)
			}
		case store.FlagThirdPlace:
			if team.IsThirdPlace {
				out = append(out, team)
			}
		}
	}
	return out, nil
}

func (m *MockStore) GetTeamsByStanding(guildID string) ([]store.Team, error) {
	out, _ := m.GetAllTeams(guildID)
	sort.Slice(out, func(i, j int) bool {
		if out[i].SwissWins != out[j].SwissWins {
			return out[i].SwissWins > out[j].SwissWins
		}
		if out[i].SwissLosses != out[j].SwissLosses {
			return out[i].SwissLosses < out[j].SwissLosses
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MockStore) UpdateTeam(team store.Team) error {
	if m.UpdateTeamError != nil {
		return m.UpdateTeamError
	}
	for i := range m.Teams {
		if m.Teams[i].ID == team.ID && m.Teams[i].GuildID == team.GuildID {
			m.Teams[i] = team
			return nil
		}
	}
	return errMockNotFound
}

func (m *MockStore) CountTeams(guildID string) (int64, error) {
	teams, _ := m.GetAllTeams(guildID)
	return int64(len(teams)), nil
}

// endregion

// region Games

func (m *MockStore) CreateGame(game store.Game) (primitive.ObjectID, error) {
	if m.CreateGameError != nil {
		return primitive.NilObjectID, m.CreateGameError
	}
	if game.ID.IsZero() {
		game.ID = primitive.NewObjectID()
	}
	m.Games = append(m.Games, game)
	return game.ID, nil
}

func (m *MockStore) GetGameByID(guildID string, id primitive.ObjectID) (store.Game, error) {
	for _, game := range m.Games {
		if game.GuildID == guildID && game.ID == id {
			return game, nil
		}
	}
	return store.Game{}, errMockNotFound
}

func (m *MockStore) GetGameByChannel(guildID string, channelID string) (store.Game, error) {
	for _, game := range m.Games {
		if game.GuildID == guildID && (game.GameChannelID == channelID || game.AdminChannelID == channelID) {
			return game, nil
		}
	}
	return store.Game{}, errMockNotFound
}

func (m *MockStore) GetGamesByType(guildID string, round shared.RoundType) ([]store.Game, error) {
	var out []store.Game
	for _, game := range m.Games {
		if game.GuildID == guildID && game.RoundType == round {
			out = append(out, game)
		}
	}
	return out, nil
}

func (m *MockStore) GetGameByTeamsAndType(guildID string, teamA, teamB primitive.ObjectID, round shared.RoundType) (store.Game, error) {
	for _, game := range m.Games {
		if game.GuildID != guildID || game.RoundType != round {
			continue
		}
		if (game.TeamOneID == teamA && game.TeamTwoID == teamB) ||
			(game.TeamOneID == teamB && game.TeamTwoID == teamA) {
			return game, nil
		}
	}
	return store.Game{}, errMockNotFound
}

func (m *MockStore) GetAllGames(guildID string) ([]store.Game, error) {
	var out []store.Game
	for _, game := range m.Games {
		if game.GuildID == guildID {
			out = append(out, game)
		}
	}
	return out, nil
}

func (m *MockStore) CountGames(guildID string) (int64, error) {
	games, _ := m.GetAllGames(guildID)
	return int64(len(games)), nil
}

func (m *MockStore) CountFinishedGames(guildID string) (int64, error) {
	var count int64
	for _, game := range m.Games {
		if game.GuildID == guildID && game.Finished() {
			count++
		}
	}
	return count, nil
}

func (m *MockStore) SetGameWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error {
	if m.SetGameWinnerError != nil {
		return m.SetGameWinnerError
	}
	for i := range m.Games {
		if m.Games[i].ID == id && m.Games[i].GuildID == guildID {
			if m.Games[i].Finished() {
				return shared.ErrSeriesAlreadyDecided
			}
			m.Games[i].WinnerNumber = int(winner)
			return nil
		}
	}
	return errMockNotFound
}

func (m *MockStore) UpdateGameChannels(game store.Game) error {
	for i := range m.Games {
		if m.Games[i].ID == game.ID && m.Games[i].GuildID == game.GuildID {
			m.Games[i].GameChannelID = game.GameChannelID
			m.Games[i].AdminChannelID = game.AdminChannelID
			m.Games[i].VoiceChannelOneID = game.VoiceChannelOneID
			m.Games[i].VoiceChannelTwoID = game.VoiceChannelTwoID
			m.Games[i].SummaryMessageID = game.SummaryMessageID
			return nil
		}
	}
	return errMockNotFound
}

// endregion

// region Vetoes and picks

func (m *MockStore) CreateVeto(veto store.Veto) (primitive.ObjectID, error) {
	if veto.ID.IsZero() {
		veto.ID = primitive.NewObjectID()
	}
	m.Vetoes = append(m.Vetoes, veto)
	return veto.ID, nil
}

func (m *MockStore) CreatePick(pick store.Pick) (primitive.ObjectID, error) {
	if m.CreatePickError != nil {
		return primitive.NilObjectID, m.CreatePickError
	}
	if pick.ID.IsZero() {
		pick.ID = primitive.NewObjectID()
	}
	m.Picks = append(m.Picks, pick)
	return pick.ID, nil
}

func (m *MockStore) GetVetoesByGame(guildID string, gameID primitive.ObjectID) ([]store.Veto, error) {
	var out []store.Veto
	for _, veto := range m.Vetoes {
		if veto.GuildID == guildID && veto.GameID == gameID {
			out = append(out, veto)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *MockStore) GetPicksByGame(guildID string, gameID primitive.ObjectID) ([]store.Pick, error) {
	var out []store.Pick
	for _, pick := range m.Picks {
		if pick.GuildID == guildID && pick.GameID == gameID {
			out = append(out, pick)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

// endregion

// region Game maps

func (m *MockStore) CreateGameMap(gameMap store.GameMap) (primitive.ObjectID, error) {
	if m.CreateGameMapError != nil {
		return primitive.NilObjectID, m.CreateGameMapError
	}
	if gameMap.ID.IsZero() {
		gameMap.ID = primitive.NewObjectID()
	}
	m.GameMaps = append(m.GameMaps, gameMap)
	return gameMap.ID, nil
}

func (m *MockStore) GetGameMapsByGame(guildID string, gameID primitive.ObjectID) ([]store.GameMap, error) {
	var out []store.GameMap
	for _, gm := range m.GameMaps {
		if gm.GuildID == guildID && gm.GameID == gameID {
			out = append(out, gm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MapNumber < out[j].MapNumber })
	return out, nil
}

func (m *MockStore) GetOpenGameMapByName(guildID string, gameID primitive.ObjectID, mapName string) (store.GameMap, error) {
	maps, _ := m.GetGameMapsByGame(guildID, gameID)
	for _, gm := range maps {
		if gm.MapName == mapName && gm.WinnerNumber == 0 {
			return gm, nil
		}
	}
	return store.GameMap{}, shared.ErrMapNotFound
}

func (m *MockStore) SetGameMapWinner(guildID string, id primitive.ObjectID, winner shared.TeamNumber) error {
	for i := range m.GameMaps {
		if m.GameMaps[i].ID == id && m.GameMaps[i].GuildID == guildID {
			if m.GameMaps[i].WinnerNumber != 0 {
				return errMockNotFound
			}
			m.GameMaps[i].WinnerNumber = int(winner)
			return nil
		}
	}
	return errMockNotFound
}

// endregion

// region Players and settings

func (m *MockStore) CreatePlayer(player store.Player) (primitive.ObjectID, error) {
	if player.ID.IsZero() {
		player.ID = primitive.NewObjectID()
	}
	m.Players = append(m.Players, player)
	return player.ID, nil
}

func (m *MockStore) GetPlayersByTeam(guildID string, teamID primitive.ObjectID) ([]store.Player, error) {
	var out []store.Player
	for _, player := range m.Players {
		if player.GuildID == guildID && player.TeamID == teamID {
			out = append(out, player)
		}
	}
	return out, nil
}

func (m *MockStore) GetPlayerBySteamID(guildID string, steamID string) (store.Player, error) {
	for _, player := range m.Players {
		if player.GuildID == guildID && player.SteamID == steamID {
			return player, nil
		}
	}
	return store.Player{}, errMockNotFound
}

func (m *MockStore) GetSetting(guildID string, key string) (string, bool, error) {
	value, ok := m.Settings[guildID+"/"+key]
	return value, ok, nil
}

func (m *MockStore) SetSetting(guildID string, key string, value string) error {
	m.Settings[guildID+"/"+key] = value
	return nil
}

// endregion
