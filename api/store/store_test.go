/* store_test.go
 * Contains integration tests for the store package. These tests need a reachable MongoDB and
 * are skipped when MONGO_TEST_URI is unset
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"os"
	"testing"

	"tournament-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewTestStore(t *testing.T) *Store {
	t.Helper()

	mongoURI := os.Getenv("MONGO_TEST_URI")
	if mongoURI == "" {
		t.Skip("MONGO_TEST_URI not set, skipping integration test")
	}

	s, err := NewStore("test_tournament", mongoURI)
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Clear all collections before test
	_ = s.Collections.Teams.Drop(context.TODO())
	_ = s.Collections.Games.Drop(context.TODO())
	_ = s.Collections.Vetoes.Drop(context.TODO())
	_ = s.Collections.Picks.Drop(context.TODO())
	_ = s.Collections.GameMaps.Drop(context.TODO())
	_ = s.Collections.Players.Drop(context.TODO())
	_ = s.Collections.Settings.Drop(context.TODO())

	t.Cleanup(func() {
		s.Client.Disconnect(context.TODO())
	})

	return s
}

func TestCreateAndGetTeam(t *testing.T) {
	s := NewTestStore(t)

	id, err := s.CreateTeam(Team{GuildID: "guild-1", Name: "Astra"})
	require.NoError(t, err)

	byID, err := s.GetTeamByID("guild-1", id)
	require.NoError(t, err)
	assert.Equal(t, "Astra", byID.Name)

	byName, err := s.GetTeamByName("guild-1", "Astra")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	// Other guilds must not see the team
	_, err = s.GetTeamByName("guild-2", "Astra")
	assert.Error(t, err)
}

func TestGetTeamsByRecord(t *testing.T) {
	s := NewTestStore(t)

	_, err := s.CreateTeam(Team{GuildID: "guild-1", Name: "OneZero", SwissWins: 1, SwissLosses: 0})
	require.NoError(t, err)
	_, err = s.CreateTeam(Team{GuildID: "guild-1", Name: "ZeroOne", SwissWins: 0, SwissLosses: 1})
	require.NoError(t, err)
	_, err = s.CreateTeam(Team{GuildID: "guild-1", Name: "Qualified", SwissWins: 3, SwissLosses: 1})
	require.NoError(t, err)

	teams, err := s.GetTeamsByRecord("guild-1", 1, 0)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "OneZero", teams[0].Name)
}

func TestSetGameWinner_OnlyOnce(t *testing.T) {
	s := NewTestStore(t)

	gameID, err := s.CreateGame(Game{
		GuildID:   "guild-1",
		TeamOneID: primitive.NewObjectID(),
		TeamTwoID: primitive.NewObjectID(),
		RoundType: shared.Swiss1,
	})
	require.NoError(t, err)

	require.NoError(t, s.SetGameWinner("guild-1", gameID, shared.TeamOne))

	err = s.SetGameWinner("guild-1", gameID, shared.TeamTwo)
	assert.ErrorIs(t, err, shared.ErrSeriesAlreadyDecided)

	game, err := s.GetGameByID("guild-1", gameID)
	require.NoError(t, err)
	assert.Equal(t, 1, game.WinnerNumber)
}

func TestCountFinishedGames(t *testing.T) {
	s := NewTestStore(t)

	a, err := s.CreateGame(CreateSampleGame("guild-1", primitive.NewObjectID(), primitive.NewObjectID(), shared.Swiss1))
	require.NoError(t, err)
	_, err = s.CreateGame(CreateSampleGame("guild-1", primitive.NewObjectID(), primitive.NewObjectID(), shared.Swiss1))
	require.NoError(t, err)

	count, err := s.CountFinishedGames("guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, s.SetGameWinner("guild-1", a, shared.TeamTwo))

	count, err = s.CountFinishedGames("guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSelectionsSortedByOrder(t *testing.T) {
	s := NewTestStore(t)
	gameID := primitive.NewObjectID()

	// Insert out of order to prove the sort
	for _, order := range []int{1, 0} {
		_, err := s.CreateVeto(Veto{
			GuildID: "guild-1",
			GameID:  gameID,
			TeamID:  primitive.NewObjectID(),
			MapName: map[int]string{0: "inferno", 1: "anubis"}[order],
			Order:   order,
		})
		require.NoError(t, err)
	}

	vetoes, err := s.GetVetoesByGame("guild-1", gameID)
	require.NoError(t, err)
	require.Len(t, vetoes, 2)
	assert.Equal(t, "inferno", vetoes[0].MapName)
	assert.Equal(t, "anubis", vetoes[1].MapName)
}

func TestGetOpenGameMapByName(t *testing.T) {
	s := NewTestStore(t)
	gameID := primitive.NewObjectID()

	first, err := s.CreateGameMap(GameMap{GuildID: "guild-1", GameID: gameID, MapName: "nuke", MapNumber: 0})
	require.NoError(t, err)
	_, err = s.CreateGameMap(GameMap{GuildID: "guild-1", GameID: gameID, MapName: "nuke", MapNumber: 1})
	require.NoError(t, err)

	open, err := s.GetOpenGameMapByName("guild-1", gameID, "nuke")
	require.NoError(t, err)
	assert.Equal(t, 0, open.MapNumber)

	require.NoError(t, s.SetGameMapWinner("guild-1", first, shared.TeamOne))

	open, err = s.GetOpenGameMapByName("guild-1", gameID, "nuke")
	require.NoError(t, err)
	assert.Equal(t, 1, open.MapNumber)

	require.NoError(t, s.SetGameMapWinner("guild-1", open.ID, shared.TeamTwo))

	_, err = s.GetOpenGameMapByName("guild-1", gameID, "nuke")
	assert.ErrorIs(t, err, shared.ErrMapNotFound)
}

func TestSettings_Upsert(t *testing.T) {
	s := NewTestStore(t)

	_, ok, err := s.GetSetting("guild-1", "category_id")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetSetting("guild-1", "category_id", "123"))
	require.NoError(t, s.SetSetting("guild-1", "category_id", "456"))

	value, ok, err := s.GetSetting("guild-1", "category_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "456", value)
}
