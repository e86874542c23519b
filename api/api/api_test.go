/* api_test.go
 * Contains unit tests for api.go using the in-memory MockStore. The scenario tests walk whole
 * series and whole tournaments through the public methods only
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"tournament-bot/api/logic"
	"tournament-bot/api/shared"
	"tournament-bot/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testGuild = "guild-1"

var testPool = []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train", "dust2"}

// newTestAPI builds an API around a fresh MockStore with a fixed rng seed
func newTestAPI(t *testing.T) (*API, *MockStore) {
	t.Helper()
	mock := NewMockStore()
	a := NewAPIWithStore(mock, shared.DefaultFormatConfig(), testPool)
	a.rng = rand.New(rand.NewSource(1))
	return a, mock
}

// seedGame inserts two teams and one game of the given round type
func seedGame(t *testing.T, mock *MockStore, round shared.RoundType) store.Game {
	t.Helper()
	oneID, err := mock.CreateTeam(store.Team{GuildID: testGuild, Name: "Astra"})
	require.NoError(t, err)
	twoID, err := mock.CreateTeam(store.Team{GuildID: testGuild, Name: "Borea"})
	require.NoError(t, err)
	game := store.Game{GuildID: testGuild, TeamOneID: oneID, TeamTwoID: twoID, RoundType: round}
	gameID, err := mock.CreateGame(game)
	require.NoError(t, err)
	game.ID = gameID
	return game
}

// region Pick/veto scenario tests

// TestBo3Walkthrough runs a full bo3 ban/pick sequence and its map results end to end
func TestBo3Walkthrough(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Quarterfinal) // quarterfinals resolve to bo3

	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "anubis"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "train"))
	require.NoError(t, a.SubmitPick(testGuild, game.ID, shared.TeamOne, "inferno"))
	require.NoError(t, a.SubmitPick(testGuild, game.ID, shared.TeamTwo, "mirage"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "nuke"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "ancient"))

	state, err := a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.True(t, state.VetoDone)
	assert.Empty(t, state.Remaining)

	// dust2 is the leftover map and becomes the system-authored decider
	require.Len(t, state.History, 7)
	last := state.History[6]
	assert.Equal(t, "dust2", last.MapName)
	assert.True(t, last.Decider)
	assert.Equal(t, shared.NoTeam, last.Team)

	// Maps derive from the picks in pick order
	require.Len(t, state.Maps, 3)
	assert.Equal(t, []MapState{
		{MapName: "inferno", MapNumber: 0},
		{MapName: "mirage", MapNumber: 1},
		{MapName: "dust2", MapNumber: 2},
	}, state.Maps)

	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "inferno", 1))
	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "mirage", 2))
	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "dust2", 1))

	state, err = a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamOne, state.Winner)
}

// TestBo1Walkthrough runs a full bo1 veto, which has no explicit picks
func TestBo1Walkthrough(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}

	state, err := a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.True(t, state.VetoDone)
	require.Len(t, state.Maps, 1)
	assert.Equal(t, "dust2", state.Maps[0].MapName)

	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "dust2", 2))
	state, err = a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamTwo, state.Winner)
}

// endregion

// region Precondition tests

// TestSubmitVeto_MapUnavailable rejects out-of-pool and already used maps
func TestSubmitVeto_MapUnavailable(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	err := a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "vertigo")
	assert.ErrorIs(t, err, shared.ErrMapUnavailable)

	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "nuke"))
	err = a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "nuke")
	assert.ErrorIs(t, err, shared.ErrMapUnavailable)

	// The rejected submissions wrote nothing
	vetoes, err := mock.GetVetoesByGame(testGuild, game.ID)
	require.NoError(t, err)
	assert.Len(t, vetoes, 1)
}

// TestSubmitPick_WrongPhase rejects a pick in a veto slot and the other way around
func TestSubmitPick_WrongPhase(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Quarterfinal) // bo3: veto,veto,pick,pick,veto,veto

	err := a.SubmitPick(testGuild, game.ID, shared.TeamOne, "inferno")
	assert.ErrorIs(t, err, shared.ErrWrongPhase)

	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "anubis"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "train"))

	err = a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "inferno")
	assert.ErrorIs(t, err, shared.ErrWrongPhase)
}

// TestSubmitVeto_NotAuthorized rejects the team whose turn it is not
func TestSubmitVeto_NotAuthorized(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	err := a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "inferno")
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)

	err = a.SubmitVeto(testGuild, game.ID, shared.NoTeam, "inferno")
	assert.ErrorIs(t, err, shared.ErrNotAuthorized)
}

// TestSubmitVeto_VetoAlreadyComplete rejects any submission once the decider exists
func TestSubmitVeto_VetoAlreadyComplete(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}

	// Every pool map is now used, so availability fails before the bound check
	err := a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "dust2")
	assert.ErrorIs(t, err, shared.ErrMapUnavailable)
}

// TestRecordMapResult_Preconditions covers the result engine's rejection order
func TestRecordMapResult_Preconditions(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}

	err := a.RecordMapResult(testGuild, game.ID, "dust2", 3)
	assert.ErrorIs(t, err, shared.ErrInvalidTeamNumber)

	err = a.RecordMapResult(testGuild, game.ID, "nuke", 1)
	assert.ErrorIs(t, err, shared.ErrMapNotFound)

	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "dust2", 1))

	// The series is decided; nothing may be reported again
	err = a.RecordMapResult(testGuild, game.ID, "dust2", 2)
	assert.ErrorIs(t, err, shared.ErrSeriesAlreadyDecided)
}

// endregion

// region Series decision tests

// seedSwissHistory inserts finished swiss games against throwaway opponents so that a team's
// derived record reads the given wins and losses
func seedSwissHistory(t *testing.T, mock *MockStore, teamID primitive.ObjectID, wins int, losses int) {
	t.Helper()
	for i := 0; i < wins; i++ {
		_, err := mock.CreateGame(store.Game{GuildID: testGuild, TeamOneID: teamID,
			TeamTwoID: primitive.NewObjectID(), RoundType: shared.Swiss1, WinnerNumber: 1})
		require.NoError(t, err)
	}
	for i := 0; i < losses; i++ {
		_, err := mock.CreateGame(store.Game{GuildID: testGuild, TeamOneID: teamID,
			TeamTwoID: primitive.NewObjectID(), RoundType: shared.Swiss1, WinnerNumber: 2})
		require.NoError(t, err)
	}
}

// TestSwissDecision_UpdatesRecords checks win/loss counters and the 3-win qualification flag
func TestSwissDecision_UpdatesRecords(t *testing.T) {
	a, mock := newTestAPI(t)
	oneID, err := mock.CreateTeam(store.Team{GuildID: testGuild, Name: "Astra", SwissWins: 2, SwissLosses: 1})
	require.NoError(t, err)
	twoID, err := mock.CreateTeam(store.Team{GuildID: testGuild, Name: "Borea", SwissWins: 2, SwissLosses: 1})
	require.NoError(t, err)
	seedSwissHistory(t, mock, oneID, 2, 1)
	seedSwissHistory(t, mock, twoID, 2, 1)
	gameID, err := mock.CreateGame(store.Game{GuildID: testGuild, TeamOneID: oneID, TeamTwoID: twoID, RoundType: shared.Swiss4High})
	require.NoError(t, err)
	require.NoError(t, mock.SetGameWinner(testGuild, gameID, shared.TeamOne))

	game, err := mock.GetGameByID(testGuild, gameID)
	require.NoError(t, err)
	require.NoError(t, a.applySeriesDecision(testGuild, game, shared.TeamOne))

	winner, err := mock.GetTeamByID(testGuild, oneID)
	require.NoError(t, err)
	assert.Equal(t, 3, winner.SwissWins)
	assert.True(t, winner.IsQuarterfinalist)

	loser, err := mock.GetTeamByID(testGuild, twoID)
	require.NoError(t, err)
	assert.Equal(t, 2, loser.SwissLosses)
	assert.False(t, loser.IsQuarterfinalist)
}

// TestSwissDecision_Reapplied applies the same decision twice and expects identical records
func TestSwissDecision_Reapplied(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)
	require.NoError(t, mock.SetGameWinner(testGuild, game.ID, shared.TeamOne))

	require.NoError(t, a.applySeriesDecision(testGuild, game, shared.TeamOne))
	require.NoError(t, a.applySeriesDecision(testGuild, game, shared.TeamOne))

	winner, err := mock.GetTeamByID(testGuild, game.TeamOneID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.SwissWins)

	loser, err := mock.GetTeamByID(testGuild, game.TeamTwoID)
	require.NoError(t, err)
	assert.Equal(t, 1, loser.SwissLosses)
}

// TestSemifinalDecision_SetsBothFlags checks that the loser earns the third place game
func TestSemifinalDecision_SetsBothFlags(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Semifinal)

	require.NoError(t, a.applySeriesDecision(testGuild, game, shared.TeamTwo))

	winner, err := mock.GetTeamByID(testGuild, game.TeamTwoID)
	require.NoError(t, err)
	assert.True(t, winner.IsFinalist)

	loser, err := mock.GetTeamByID(testGuild, game.TeamOneID)
	require.NoError(t, err)
	assert.True(t, loser.IsThirdPlace)
	assert.False(t, loser.IsFinalist)
}

// endregion

// region Scheduler tests

// seedSixteenTeams registers a full field with the given records
func seedSixteenTeams(t *testing.T, mock *MockStore) []store.Team {
	t.Helper()
	teams := make([]store.Team, 0, logic.TeamCount)
	for i := 0; i < logic.TeamCount; i++ {
		team := store.Team{GuildID: testGuild, Name: string(rune('A' + i))}
		id, err := mock.CreateTeam(team)
		require.NoError(t, err)
		team.ID = id
		teams = append(teams, team)
	}
	return teams
}

// finishGame marks a game decided without touching team records
func finishGame(t *testing.T, mock *MockStore, game store.Game) {
	t.Helper()
	require.NoError(t, mock.SetGameWinner(testGuild, game.ID, shared.TeamOne))
}

// TestStartTournament creates exactly 8 swiss_1 games covering every team once
func TestStartTournament(t *testing.T) {
	a, mock := newTestAPI(t)
	seedSixteenTeams(t, mock)

	require.NoError(t, a.StartTournament(testGuild))

	games, err := mock.GetGamesByType(testGuild, shared.Swiss1)
	require.NoError(t, err)
	require.Len(t, games, 8)

	seen := make(map[primitive.ObjectID]bool)
	for _, game := range games {
		assert.False(t, seen[game.TeamOneID])
		assert.False(t, seen[game.TeamTwoID])
		seen[game.TeamOneID] = true
		seen[game.TeamTwoID] = true
	}
	assert.Len(t, seen, 16)

	assert.Error(t, a.StartTournament(testGuild), "a second start must be rejected")
}

// TestStartTournament_RequiresFullField rejects a short field
func TestStartTournament_RequiresFullField(t *testing.T) {
	a, mock := newTestAPI(t)
	_, err := mock.CreateTeam(store.Team{GuildID: testGuild, Name: "Astra"})
	require.NoError(t, err)

	assert.Error(t, a.StartTournament(testGuild))
}

// TestBucketIsolation pairs swiss round 2 strictly within record buckets. A 1-0 team and a
// 0-1 team are never paired even when each is alone in its bucket pool
func TestBucketIsolation(t *testing.T) {
	a, mock := newTestAPI(t)
	teams := seedSixteenTeams(t, mock)

	// Round 1 done: first 8 teams won, last 8 lost
	for i := 0; i < 8; i++ {
		mock.Teams[i].SwissWins = 1
		mock.Teams[8+i].SwissLosses = 1
		game := store.Game{GuildID: testGuild, TeamOneID: teams[i].ID, TeamTwoID: teams[8+i].ID, RoundType: shared.Swiss1, WinnerNumber: 1}
		_, err := mock.CreateGame(game)
		require.NoError(t, err)
	}

	require.NoError(t, a.checkRoundCompletion(testGuild))

	winnersBucket := make(map[primitive.ObjectID]bool)
	for i := 0; i < 8; i++ {
		winnersBucket[teams[i].ID] = true
	}

	high, err := mock.GetGamesByType(testGuild, shared.Swiss2High)
	require.NoError(t, err)
	require.Len(t, high, 4)
	for _, game := range high {
		assert.True(t, winnersBucket[game.TeamOneID])
		assert.True(t, winnersBucket[game.TeamTwoID])
	}

	low, err := mock.GetGamesByType(testGuild, shared.Swiss2Low)
	require.NoError(t, err)
	require.Len(t, low, 4)
	for _, game := range low {
		assert.False(t, winnersBucket[game.TeamOneID])
		assert.False(t, winnersBucket[game.TeamTwoID])
	}
}

// TestSchedulerIdempotent re-runs the completion check without duplicating rounds
func TestSchedulerIdempotent(t *testing.T) {
	a, mock := newTestAPI(t)
	teams := seedSixteenTeams(t, mock)
	for i := 0; i < 8; i++ {
		mock.Teams[i].SwissWins = 1
		mock.Teams[8+i].SwissLosses = 1
		_, err := mock.CreateGame(store.Game{GuildID: testGuild, TeamOneID: teams[i].ID, TeamTwoID: teams[8+i].ID, RoundType: shared.Swiss1, WinnerNumber: 1})
		require.NoError(t, err)
	}

	require.NoError(t, a.checkRoundCompletion(testGuild))
	require.NoError(t, a.checkRoundCompletion(testGuild))

	high, err := mock.GetGamesByType(testGuild, shared.Swiss2High)
	require.NoError(t, err)
	assert.Len(t, high, 4)
	low, err := mock.GetGamesByType(testGuild, shared.Swiss2Low)
	require.NoError(t, err)
	assert.Len(t, low, 4)
}

// failingProvisioner always fails to create channels
type failingProvisioner struct{}

func (failingProvisioner) ProvisionGame(game store.Game, teamOne store.Team, teamTwo store.Team) (store.Game, error) {
	return store.Game{}, errors.New("discord is down")
}

// TestProvisioningFailure_DoesNotDuplicateGames keeps the game rows when channel creation
// fails and never re-creates the round
func TestProvisioningFailure_DoesNotDuplicateGames(t *testing.T) {
	a, mock := newTestAPI(t)
	a.Provisioner = failingProvisioner{}
	seedSixteenTeams(t, mock)

	require.NoError(t, a.StartTournament(testGuild))
	games, err := mock.GetGamesByType(testGuild, shared.Swiss1)
	require.NoError(t, err)
	require.Len(t, games, 8)

	require.NoError(t, a.createRound(testGuild, shared.Swiss1))
	games, err = mock.GetGamesByType(testGuild, shared.Swiss1)
	require.NoError(t, err)
	assert.Len(t, games, 8)
}

// endregion

// region Full tournament simulation

// playOutGame drives one series from first veto to series decision via the public methods
func playOutGame(t *testing.T, a *API, gameID primitive.ObjectID, winner int) {
	t.Helper()
	for {
		state, err := a.GetMatchState(testGuild, gameID)
		require.NoError(t, err)
		if state.VetoDone {
			break
		}
		mapName := state.Remaining[0]
		if state.NextAction == logic.ActionVeto {
			require.NoError(t, a.SubmitVeto(testGuild, gameID, state.Turn, mapName))
		} else {
			require.NoError(t, a.SubmitPick(testGuild, gameID, state.Turn, mapName))
		}
	}

	state, err := a.GetMatchState(testGuild, gameID)
	require.NoError(t, err)
	for _, m := range state.Maps {
		current, err := a.GetMatchState(testGuild, gameID)
		require.NoError(t, err)
		if current.Winner != shared.NoTeam {
			return
		}
		require.NoError(t, a.RecordMapResult(testGuild, gameID, m.MapName, winner))
	}
}

// TestFullTournament plays all 41 games of a 16 team tournament, team one winning every
// series, and checks every stage boundary along the way
func TestFullTournament(t *testing.T) {
	a, mock := newTestAPI(t)
	seedSixteenTeams(t, mock)
	require.NoError(t, a.StartTournament(testGuild))

	expectedGames := map[shared.RoundType]int{
		shared.Swiss1:       8,
		shared.Swiss2High:   4,
		shared.Swiss2Low:    4,
		shared.Swiss3High:   2,
		shared.Swiss3Mid:    4,
		shared.Swiss3Low:    2,
		shared.Swiss4High:   3,
		shared.Swiss4Low:    3,
		shared.Swiss5:       3,
		shared.Quarterfinal: 4,
		shared.Semifinal:    2,
		shared.ThirdPlace:   1,
		shared.Final:        1,
	}

	played := 0
	for _, round := range shared.AllRoundTypes {
		games, err := mock.GetGamesByType(testGuild, round)
		require.NoError(t, err)
		require.Len(t, games, expectedGames[round], "unexpected game count for %s", round)
		for _, game := range games {
			playOutGame(t, a, game.ID, 1)
			played++
		}
	}
	assert.Equal(t, logic.TournamentComplete, played)

	finished, err := mock.CountFinishedGames(testGuild)
	require.NoError(t, err)
	assert.Equal(t, int64(logic.TournamentComplete), finished)

	summary, err := a.GetTournamentSummary(testGuild)
	require.NoError(t, err)
	assert.True(t, summary.Complete)
	assert.Len(t, summary.Rounds, len(shared.AllRoundTypes))
	assert.Len(t, summary.Standings, logic.TeamCount)

	quarterfinalists, err := mock.GetTeamsByFlag(testGuild, store.FlagQuarterfinalist)
	require.NoError(t, err)
	assert.Len(t, quarterfinalists, 8)
}

// endregion

// region Registration tests

// TestRegisterTeam covers duplicate names and the field limit
func TestRegisterTeam(t *testing.T) {
	a, _ := newTestAPI(t)

	team, err := a.RegisterTeam(testGuild, "Astra")
	require.NoError(t, err)
	assert.False(t, team.ID.IsZero())

	_, err = a.RegisterTeam(testGuild, "Astra")
	assert.Error(t, err)

	for i := 0; i < logic.TeamCount-1; i++ {
		_, err := a.RegisterTeam(testGuild, string(rune('a'+i)))
		require.NoError(t, err)
	}
	_, err = a.RegisterTeam(testGuild, "Overflow")
	assert.Error(t, err)
}

// TestAddPlayer covers unknown teams and duplicate steam ids
func TestAddPlayer(t *testing.T) {
	a, mock := newTestAPI(t)
	_, err := a.RegisterTeam(testGuild, "Astra")
	require.NoError(t, err)

	require.NoError(t, a.AddPlayer(testGuild, "Astra", "ropz", "76561197991272318"))

	err = a.AddPlayer(testGuild, "Nonexistent", "x", "1")
	assert.Error(t, err)

	err = a.AddPlayer(testGuild, "Astra", "dupe", "76561197991272318")
	assert.Error(t, err)

	team, err := mock.GetTeamByName(testGuild, "Astra")
	require.NoError(t, err)
	players, err := mock.GetPlayersByTeam(testGuild, team.ID)
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

// endregion

// region Recovery tests

// TestSeriesDecision_RetryAfterRecordFailure simulates a store failure after the winner
// commits but before the team records update, then checks a resubmitted result heals it
func TestSeriesDecision_RetryAfterRecordFailure(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}

	mock.UpdateTeamError = errors.New("write timeout")
	require.Error(t, a.RecordMapResult(testGuild, game.ID, "dust2", 1))

	// the winner committed but the record updates were cut short
	decided, err := mock.GetGameByID(testGuild, game.ID)
	require.NoError(t, err)
	assert.True(t, decided.Finished())
	winner, err := mock.GetTeamByID(testGuild, game.TeamOneID)
	require.NoError(t, err)
	assert.Zero(t, winner.SwissWins)

	// resubmitting the same result finishes the cascade before rejecting the duplicate
	mock.UpdateTeamError = nil
	err = a.RecordMapResult(testGuild, game.ID, "dust2", 1)
	assert.ErrorIs(t, err, shared.ErrSeriesAlreadyDecided)

	winner, err = mock.GetTeamByID(testGuild, game.TeamOneID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.SwissWins)
	loser, err := mock.GetTeamByID(testGuild, game.TeamTwoID)
	require.NoError(t, err)
	assert.Equal(t, 1, loser.SwissLosses)

	// a further duplicate does not double count
	err = a.RecordMapResult(testGuild, game.ID, "dust2", 1)
	assert.ErrorIs(t, err, shared.ErrSeriesAlreadyDecided)
	winner, err = mock.GetTeamByID(testGuild, game.TeamOneID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.SwissWins)
}

// TestSeriesDecision_RetryCrossesStageBoundary fails the eighth swiss_1 decision mid
// cascade and checks the resubmission still opens the second swiss round
func TestSeriesDecision_RetryCrossesStageBoundary(t *testing.T) {
	a, mock := newTestAPI(t)
	seedSixteenTeams(t, mock)
	require.NoError(t, a.StartTournament(testGuild))

	games, err := mock.GetGamesByType(testGuild, shared.Swiss1)
	require.NoError(t, err)
	require.Len(t, games, 8)
	for _, game := range games[:7] {
		playOutGame(t, a, game.ID, 1)
	}

	last := games[7]
	driveVeto(t, a, last.ID)
	state, err := a.GetMatchState(testGuild, last.ID)
	require.NoError(t, err)
	require.Len(t, state.Maps, 1)

	mock.UpdateTeamError = errors.New("write timeout")
	require.Error(t, a.RecordMapResult(testGuild, last.ID, state.Maps[0].MapName, 1))

	next, err := mock.GetGamesByType(testGuild, shared.Swiss2High)
	require.NoError(t, err)
	assert.Empty(t, next)

	mock.UpdateTeamError = nil
	err = a.RecordMapResult(testGuild, last.ID, state.Maps[0].MapName, 1)
	assert.ErrorIs(t, err, shared.ErrSeriesAlreadyDecided)

	high, err := mock.GetGamesByType(testGuild, shared.Swiss2High)
	require.NoError(t, err)
	assert.Len(t, high, 4)
	low, err := mock.GetGamesByType(testGuild, shared.Swiss2Low)
	require.NoError(t, err)
	assert.Len(t, low, 4)
}

// driveVeto submits vetoes and picks until the sequence completes, without recording results
func driveVeto(t *testing.T, a *API, gameID primitive.ObjectID) {
	t.Helper()
	for {
		state, err := a.GetMatchState(testGuild, gameID)
		require.NoError(t, err)
		if state.VetoDone {
			return
		}
		mapName := state.Remaining[0]
		if state.NextAction == logic.ActionVeto {
			require.NoError(t, a.SubmitVeto(testGuild, gameID, state.Turn, mapName))
		} else {
			require.NoError(t, a.SubmitPick(testGuild, gameID, state.Turn, mapName))
		}
	}
}

// TestVetoCompletion_RetryAfterDeciderFailure fails the decider insert on the last bo1
// veto, then checks the next submission finishes the completion before rejecting
func TestVetoCompletion_RetryAfterDeciderFailure(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Swiss1)

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}

	mock.CreatePickError = errors.New("write timeout")
	require.Error(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "train"))
	mock.CreatePickError = nil

	// the sixth veto committed, so the sequence is complete but has no decider yet;
	// submitting the leftover map triggers the repair
	err := a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "dust2")
	assert.ErrorIs(t, err, shared.ErrVetoAlreadyComplete)

	state, err := a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.True(t, state.VetoDone)
	require.Len(t, state.Maps, 1)
	assert.Equal(t, "dust2", state.Maps[0].MapName)

	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "dust2", 2))
	state, err = a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamTwo, state.Winner)
}

// TestVetoCompletion_ResultRepairsMissingMaps fails map record creation on veto
// completion, then checks the first incoming result recreates them and lands
func TestVetoCompletion_ResultRepairsMissingMaps(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Quarterfinal)

	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "anubis"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "train"))
	require.NoError(t, a.SubmitPick(testGuild, game.ID, shared.TeamOne, "inferno"))
	require.NoError(t, a.SubmitPick(testGuild, game.ID, shared.TeamTwo, "mirage"))
	require.NoError(t, a.SubmitVeto(testGuild, game.ID, shared.TeamOne, "nuke"))

	mock.CreateGameMapError = errors.New("write timeout")
	require.Error(t, a.SubmitVeto(testGuild, game.ID, shared.TeamTwo, "ancient"))
	mock.CreateGameMapError = nil

	// the decider was written but no playable maps exist; the result repairs them
	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "inferno", 1))

	state, err := a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.True(t, state.VetoDone)
	require.Len(t, state.Maps, 3)
	assert.Equal(t, "inferno", state.Maps[0].MapName)
	assert.Equal(t, "mirage", state.Maps[1].MapName)
	assert.Equal(t, "dust2", state.Maps[2].MapName)

	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "mirage", 1))
	state, err = a.GetMatchState(testGuild, game.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.TeamOne, state.Winner)
}

// endregion

// region Announcement tests

// recordingAnnouncer captures published messages and hands out sequential message ids
type recordingAnnouncer struct {
	stateChannels   []string
	summaryChannels []string
	lastState       MatchState
	lastSummary     TournamentSummary
	nextID          int
}

func (r *recordingAnnouncer) PublishMatchState(channelID string, messageID string, state MatchState) (string, error) {
	r.stateChannels = append(r.stateChannels, channelID)
	r.lastState = state
	if messageID != "" {
		return messageID, nil
	}
	r.nextID++
	return fmt.Sprintf("msg-%d", r.nextID), nil
}

func (r *recordingAnnouncer) PublishSummary(channelID string, messageID string, summary TournamentSummary) (string, error) {
	r.summaryChannels = append(r.summaryChannels, channelID)
	r.lastSummary = summary
	if messageID != "" {
		return messageID, nil
	}
	r.nextID++
	return fmt.Sprintf("msg-%d", r.nextID), nil
}

// TestSetSummaryChannel publishes an initial summary and keeps editing the same message
func TestSetSummaryChannel(t *testing.T) {
	a, mock := newTestAPI(t)
	announcer := &recordingAnnouncer{}
	a.Announcer = announcer

	require.NoError(t, a.SetSummaryChannel(testGuild, "chan-summary"))
	assert.Equal(t, []string{"chan-summary"}, announcer.summaryChannels)

	messageID, ok, err := mock.GetSetting(testGuild, "summary_message_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "msg-1", messageID)

	// later refreshes reuse the stored message
	require.NoError(t, a.publishSummary(testGuild))
	messageID, _, err = mock.GetSetting(testGuild, "summary_message_id")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", messageID)
	assert.Len(t, announcer.summaryChannels, 2)
}

// TestResultRefreshesMessages checks a deciding result updates both the match channel
// state message and the guild summary
func TestResultRefreshesMessages(t *testing.T) {
	a, mock := newTestAPI(t)
	announcer := &recordingAnnouncer{}
	a.Announcer = announcer

	game := seedGame(t, mock, shared.Swiss1)
	game.GameChannelID = "chan-match"
	require.NoError(t, mock.UpdateGameChannels(game))
	require.NoError(t, a.SetSummaryChannel(testGuild, "chan-summary"))

	actors := []shared.TeamNumber{shared.TeamOne, shared.TeamTwo}
	for i, name := range []string{"inferno", "anubis", "nuke", "ancient", "mirage", "train"} {
		require.NoError(t, a.SubmitVeto(testGuild, game.ID, actors[i%2], name))
	}
	require.NoError(t, a.RecordMapResult(testGuild, game.ID, "dust2", 1))

	assert.NotEmpty(t, announcer.stateChannels)
	assert.Equal(t, "chan-match", announcer.stateChannels[0])
	assert.True(t, announcer.lastState.VetoDone)
	assert.Equal(t, shared.TeamOne, announcer.lastState.Winner)

	// the deciding result refreshed the summary beyond the initial publish
	assert.Greater(t, len(announcer.summaryChannels), 1)
	assert.Len(t, announcer.lastSummary.Standings, 2)

	// the state message id stuck to the game so later edits reuse it
	stored, err := mock.GetGameByID(testGuild, game.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.SummaryMessageID)
}

// TestFindSeries resolves the most recent series between two named teams
func TestFindSeries(t *testing.T) {
	a, mock := newTestAPI(t)
	game := seedGame(t, mock, shared.Quarterfinal)

	// an earlier swiss meeting between the same teams must not shadow the playoff one
	_, err := mock.CreateGame(store.Game{GuildID: testGuild, TeamOneID: game.TeamOneID, TeamTwoID: game.TeamTwoID, RoundType: shared.Swiss1})
	require.NoError(t, err)

	found, err := a.FindSeries(testGuild, "Astra", "Borea")
	require.NoError(t, err)
	assert.Equal(t, game.ID, found.ID)
	assert.Equal(t, shared.Quarterfinal, found.RoundType)

	_, err = a.FindSeries(testGuild, "Astra", "Ghost")
	assert.Error(t, err)
}

// endregion
