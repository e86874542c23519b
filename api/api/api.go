/* api.go
 * This file contains the public methods for interacting with this package. For consistent
 * results, functions should only be called from this file, not the sub packages for logic and
 * store. Every mutation of a game's veto/pick/result state is serialized behind a per-match
 * mutex; series decisions and scheduling additionally hold the guild mutex so team records
 * and bucket reads stay consistent
 * Authors: Zachary Bower
 */

package api

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"tournament-bot/api/logic"
	"tournament-bot/api/shared"
	"tournament-bot/api/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provisioner creates the Discord surfaces for a newly scheduled game and returns the game
// with its channel fields filled in. The bot implements this; tests use a noop.
type Provisioner interface {
	ProvisionGame(game store.Game, teamOne store.Team, teamTwo store.Team) (store.Game, error)
}

// MatchHost books a series on the external game server once its map order is known. The
// external package implements this; tests use a noop.
type MatchHost interface {
	CreateSeries(game store.Game, teamOne store.Team, teamTwo store.Team, maps []string) error
}

// Announcer keeps the Discord messages that mirror tournament state up to date. Both methods
// edit the message with the given id, or post a fresh one when the id is empty or stale, and
// return the id of the message now carrying the content. The bot implements this.
type Announcer interface {
	PublishMatchState(channelID string, messageID string, state MatchState) (string, error)
	PublishSummary(channelID string, messageID string, summary TournamentSummary) (string, error)
}

// Settings keys for the guild's pinned tournament summary
const (
	settingSummaryChannel = "summary_channel_id"
	settingSummaryMessage = "summary_message_id"
)

// API provides methods for interacting with the tournament data layer
type API struct {
	Store       store.Interface
	Formats     shared.FormatConfig
	MapPool     []string
	Provisioner Provisioner // optional
	MatchHost   MatchHost   // optional
	Announcer   Announcer   // optional

	mu         sync.Mutex
	matchLocks map[string]*sync.Mutex
	guildLocks map[string]*sync.Mutex
	rng        *rand.Rand
}

// NewAPI creates a new API instance backed by a fresh Mongo connection
func NewAPI(dbName string, mongoURI string, formats shared.FormatConfig, mapPool []string) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}
	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	return NewAPIWithStore(s, formats, mapPool), nil
}

// NewAPIWithStore creates a new API instance around an existing store, real or mocked
func NewAPIWithStore(s store.Interface, formats shared.FormatConfig, mapPool []string) *API {
	return &API{
		Store:      s,
		Formats:    formats,
		MapPool:    mapPool,
		matchLocks: make(map[string]*sync.Mutex),
		guildLocks: make(map[string]*sync.Mutex),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// matchLock returns the mutex serializing all mutations of one game
func (a *API) matchLock(gameID primitive.ObjectID) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := gameID.Hex()
	lock, ok := a.matchLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.matchLocks[key] = lock
	}
	return lock
}

// guildLock returns the mutex guarding a guild's team records and round scheduling
func (a *API) guildLock(guildID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.guildLocks[guildID]
	if !ok {
		lock = &sync.Mutex{}
		a.guildLocks[guildID] = lock
	}
	return lock
}

// region Team registration and tournament start

// RegisterTeam contains the logic to register a new team for the tournament.
// It receives the guild id and the team name, and returns the created team, or an error if
// the name is taken or the field is already full.
func (a *API) RegisterTeam(guildID string, name string) (store.Team, error) {
	lock := a.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := a.Store.GetTeamByName(guildID, name); err == nil {
		return store.Team{}, fmt.Errorf("team '%s' is already registered", name)
	}

	count, err := a.Store.CountTeams(guildID)
	if err != nil {
		return store.Team{}, err
	}
	if count >= logic.TeamCount {
		return store.Team{}, fmt.Errorf("the tournament field is full (%d teams)", logic.TeamCount)
	}

	team := store.Team{GuildID: guildID, Name: name}
	id, err := a.Store.CreateTeam(team)
	if err != nil {
		return store.Team{}, err
	}
	team.ID = id
	return team, nil
}

// AddPlayer contains the logic to add a player to a registered team's roster
func (a *API) AddPlayer(guildID string, teamName string, nickname string, steamID string) error {
	team, err := a.Store.GetTeamByName(guildID, teamName)
	if err != nil {
		return fmt.Errorf("unknown team '%s': %w", teamName, err)
	}
	if _, err := a.Store.GetPlayerBySteamID(guildID, steamID); err == nil {
		return fmt.Errorf("steam id %s is already on a roster", steamID)
	}
	_, err = a.Store.CreatePlayer(store.Player{
		GuildID:  guildID,
		TeamID:   team.ID,
		Nickname: nickname,
		SteamID:  steamID,
	})
	return err
}

// StartTournament contains the logic to open the first swiss round.
// It requires a full field of registered teams and no previously created games, and creates
// the swiss_1 games from a uniform random pairing.
func (a *API) StartTournament(guildID string) error {
	lock := a.guildLock(guildID)
	lock.Lock()
	defer lock.Unlock()

	count, err := a.Store.CountTeams(guildID)
	if err != nil {
		return err
	}
	if count != logic.TeamCount {
		return fmt.Errorf("cannot start with %d teams, the tournament needs %d", count, logic.TeamCount)
	}

	existing, err := a.Store.CountGames(guildID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("the tournament has already started")
	}

	if err := a.createRound(guildID, shared.Swiss1); err != nil {
		return err
	}
	if err := a.publishSummary(guildID); err != nil {
		log.Printf("Failed to refresh summary for guild %s: %v", guildID, err)
	}
	return nil
}

// endregion

// region Pick/veto engine

// SubmitVeto contains the logic to record a team's map ban.
// It receives the guild id, the game id, the team number the actor acts for and the map name.
// It appends the veto, derives the decider when the schedule completes, and returns an error
// if any precondition is violated. Rejections leave the game untouched.
func (a *API) SubmitVeto(guildID string, gameID primitive.ObjectID, actor shared.TeamNumber, mapName string) error {
	return a.submitSelection(guildID, gameID, actor, mapName, logic.ActionVeto)
}

// SubmitPick contains the logic to record a team's map pick. Preconditions and effects mirror
// SubmitVeto with the pick schedule slots.
func (a *API) SubmitPick(guildID string, gameID primitive.ObjectID, actor shared.TeamNumber, mapName string) error {
	return a.submitSelection(guildID, gameID, actor, mapName, logic.ActionPick)
}

func (a *API) submitSelection(guildID string, gameID primitive.ObjectID, actor shared.TeamNumber, mapName string, action logic.ActionType) error {
	lock := a.matchLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := a.Store.GetGameByID(guildID, gameID)
	if err != nil {
		return err
	}
	format, err := a.Formats.Resolve(game.RoundType)
	if err != nil {
		return err
	}

	vetoes, err := a.Store.GetVetoesByGame(guildID, gameID)
	if err != nil {
		return err
	}
	picks, err := a.Store.GetPicksByGame(guildID, gameID)
	if err != nil {
		return err
	}
	used := usedMapNames(vetoes, picks)

	// Precondition order matters here: availability, then bound, then slot, then turn
	if err := logic.ValidateSelection(a.MapPool, used, mapName); err != nil {
		return err
	}
	phase, err := logic.DerivePhase(len(vetoes), len(picks), format, len(a.MapPool))
	if err != nil {
		return err
	}
	if phase.Complete {
		// A completed sequence can still be missing its decider or map records if an
		// earlier completion attempt failed partway; finish it before rejecting
		if err := a.completeVeto(guildID, game, vetoes, picks); err != nil {
			return err
		}
		return shared.ErrVetoAlreadyComplete
	}
	if action != phase.Expected {
		return shared.ErrWrongPhase
	}
	if actor != phase.Turn {
		return shared.ErrNotAuthorized
	}

	teamID := game.TeamOneID
	if phase.Turn == shared.TeamTwo {
		teamID = game.TeamTwoID
	}
	order := len(vetoes) + len(picks)

	if action == logic.ActionVeto {
		veto := store.Veto{
			GuildID: guildID,
			GameID:  gameID,
			TeamID:  teamID,
			MapName: mapName,
			Order:   order,
		}
		if _, err := a.Store.CreateVeto(veto); err != nil {
			return err
		}
		vetoes = append(vetoes, veto)
	} else {
		pick := store.Pick{
			GuildID: guildID,
			GameID:  gameID,
			TeamID:  teamID,
			MapName: mapName,
			Order:   order,
		}
		if _, err := a.Store.CreatePick(pick); err != nil {
			return err
		}
		picks = append(picks, pick)
	}

	// Once every explicit slot is spent, the leftover map becomes the system-authored
	// decider and the series' map records are derived from the picks
	if order+1 == len(a.MapPool)-1 {
		if err := a.completeVeto(guildID, game, vetoes, picks); err != nil {
			return err
		}
	}
	a.publishMatchState(guildID, gameID)
	return nil
}

// completeVeto finishes a spent ban/pick sequence: the decider pick, one GameMap per pick in
// pick order, and the booking on the external host. Each step checks what already exists, so
// a completion that failed partway is finished by the next call instead of being stranded.
func (a *API) completeVeto(guildID string, game store.Game, vetoes []store.Veto, picks []store.Pick) error {
	hasDecider := false
	for _, pick := range picks {
		if pick.IsDecider() {
			hasDecider = true
		}
	}
	if !hasDecider {
		decider, err := logic.DeciderMap(a.MapPool, usedMapNames(vetoes, picks))
		if err != nil {
			return err
		}
		// Zero TeamID marks the pick as system-authored
		pick := store.Pick{
			GuildID: guildID,
			GameID:  game.ID,
			MapName: decider,
			Order:   len(vetoes) + len(picks),
		}
		if _, err := a.Store.CreatePick(pick); err != nil {
			return err
		}
		picks = append(picks, pick)
	}

	existing, err := a.Store.GetGameMapsByGame(guildID, game.ID)
	if err != nil {
		return err
	}
	if len(existing) == len(picks) {
		return nil
	}
	mapOrder := make([]string, 0, len(picks))
	for i, pick := range picks {
		mapOrder = append(mapOrder, pick.MapName)
		if i < len(existing) {
			continue
		}
		_, err := a.Store.CreateGameMap(store.GameMap{
			GuildID:   guildID,
			GameID:    game.ID,
			MapName:   pick.MapName,
			MapNumber: i,
		})
		if err != nil {
			return err
		}
	}

	if a.MatchHost != nil {
		teamOne, err := a.Store.GetTeamByID(guildID, game.TeamOneID)
		if err != nil {
			return err
		}
		teamTwo, err := a.Store.GetTeamByID(guildID, game.TeamTwoID)
		if err != nil {
			return err
		}
		if err := a.MatchHost.CreateSeries(game, teamOne, teamTwo, mapOrder); err != nil {
			// The series is fully recorded locally; booking can be retried by an admin
			log.Printf("Failed to create series on match host for game %s: %v", game.ID.Hex(), err)
		}
	}
	return nil
}

func usedMapNames(vetoes []store.Veto, picks []store.Pick) []string {
	used := make([]string, 0, len(vetoes)+len(picks))
	for _, v := range vetoes {
		used = append(used, v.MapName)
	}
	for _, p := range picks {
		used = append(used, p.MapName)
	}
	return used
}

// endregion

// region Match result engine

// RecordMapResult contains the logic to record the winner of one map of a series.
// It receives the guild id, the game id, the map name and the winning team number. When the
// result decides the series it updates both teams' records and eligibility flags and runs the
// round completion check. Finished maps and finished series are never overwritten.
func (a *API) RecordMapResult(guildID string, gameID primitive.ObjectID, mapName string, winnerNumber int) error {
	lock := a.matchLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := a.Store.GetGameByID(guildID, gameID)
	if err != nil {
		return err
	}
	if game.Finished() {
		// The game can reach this point again when an earlier call failed after the winner
		// was committed, or when the match host resends an event. Re-running the decision
		// cascade repairs a stranded one; it is idempotent, so a plain duplicate is harmless
		guild := a.guildLock(guildID)
		guild.Lock()
		defer guild.Unlock()
		if err := a.applySeriesDecision(guildID, game, shared.TeamNumber(game.WinnerNumber)); err != nil {
			return err
		}
		if err := a.checkRoundCompletion(guildID); err != nil {
			return err
		}
		return shared.ErrSeriesAlreadyDecided
	}
	if winnerNumber != 1 && winnerNumber != 2 {
		return shared.ErrInvalidTeamNumber
	}

	gameMap, err := a.Store.GetOpenGameMapByName(guildID, gameID, mapName)
	if errors.Is(err, shared.ErrMapNotFound) {
		// The game's map records can be missing if the veto completion failed between the
		// decider insert and the map creation; finish it and look the map up again
		if repairErr := a.repairCompletedVeto(guildID, game); repairErr != nil {
			return repairErr
		}
		gameMap, err = a.Store.GetOpenGameMapByName(guildID, gameID, mapName)
	}
	if err != nil {
		return err
	}
	if err := a.Store.SetGameMapWinner(guildID, gameMap.ID, shared.TeamNumber(winnerNumber)); err != nil {
		return err
	}

	maps, err := a.Store.GetGameMapsByGame(guildID, gameID)
	if err != nil {
		return err
	}
	oneWins, twoWins := logic.TallyMapWins(toOutcomes(maps))

	format, err := a.Formats.Resolve(game.RoundType)
	if err != nil {
		return err
	}
	seriesWinner := logic.SeriesWinner(oneWins, twoWins, format)
	if seriesWinner == shared.NoTeam {
		a.publishMatchState(guildID, gameID)
		return nil
	}

	guild := a.guildLock(guildID)
	guild.Lock()
	defer guild.Unlock()

	if err := a.Store.SetGameWinner(guildID, gameID, seriesWinner); err != nil {
		return err
	}
	if err := a.applySeriesDecision(guildID, game, seriesWinner); err != nil {
		return err
	}
	if err := a.checkRoundCompletion(guildID); err != nil {
		return err
	}
	a.publishMatchState(guildID, gameID)
	if err := a.publishSummary(guildID); err != nil {
		log.Printf("Failed to refresh summary for guild %s: %v", guildID, err)
	}
	return nil
}

// repairCompletedVeto re-runs the veto completion for a game whose ban/pick sequence is spent.
// A no-op while the sequence is still in progress or already fully recorded.
func (a *API) repairCompletedVeto(guildID string, game store.Game) error {
	format, err := a.Formats.Resolve(game.RoundType)
	if err != nil {
		return err
	}
	vetoes, err := a.Store.GetVetoesByGame(guildID, game.ID)
	if err != nil {
		return err
	}
	picks, err := a.Store.GetPicksByGame(guildID, game.ID)
	if err != nil {
		return err
	}
	phase, err := logic.DerivePhase(len(vetoes), len(picks), format, len(a.MapPool))
	if err != nil {
		return err
	}
	if !phase.Complete {
		return nil
	}
	return a.completeVeto(guildID, game, vetoes, picks)
}

// applySeriesDecision updates both teams' swiss records or playoff eligibility flags for a
// decided series. Swiss records are recomputed from the finished games rather than
// incremented, and the playoff flags only ever go from false to true, so applying the same
// decision twice leaves the teams unchanged.
func (a *API) applySeriesDecision(guildID string, game store.Game, winner shared.TeamNumber) error {
	winnerID, loserID := game.TeamOneID, game.TeamTwoID
	if winner == shared.TeamTwo {
		winnerID, loserID = loserID, winnerID
	}
	winnerTeam, err := a.Store.GetTeamByID(guildID, winnerID)
	if err != nil {
		return err
	}
	loserTeam, err := a.Store.GetTeamByID(guildID, loserID)
	if err != nil {
		return err
	}

	switch {
	case game.RoundType.IsSwiss():
		games, err := a.Store.GetAllGames(guildID)
		if err != nil {
			return err
		}
		winnerTeam.SwissWins, winnerTeam.SwissLosses = swissRecord(winnerTeam.ID, games)
		loserTeam.SwissWins, loserTeam.SwissLosses = swissRecord(loserTeam.ID, games)
		if winnerTeam.SwissWins >= 3 {
			winnerTeam.IsQuarterfinalist = true
		}
	case game.RoundType == shared.Quarterfinal:
		winnerTeam.IsSemifinalist = true
	case game.RoundType == shared.Semifinal:
		winnerTeam.IsFinalist = true
		loserTeam.IsThirdPlace = true
	}
	// The final and third place game decide placements with the game winner alone

	if err := a.Store.UpdateTeam(winnerTeam); err != nil {
		return err
	}
	return a.Store.UpdateTeam(loserTeam)
}

// swissRecord derives a team's swiss record from the finished swiss games it played in
func swissRecord(teamID primitive.ObjectID, games []store.Game) (wins int, losses int) {
	for _, game := range games {
		if !game.RoundType.IsSwiss() || !game.Finished() {
			continue
		}
		side := game.TeamNumberOf(teamID)
		if side == shared.NoTeam {
			continue
		}
		if shared.TeamNumber(game.WinnerNumber) == side {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses
}

// endregion

// region Round scheduler

// checkRoundCompletion opens the next rounds when the finished-game count hits an exact stage
// boundary. Safe to call more than once for the same boundary; a round's games are only
// created while none of that round type exist.
func (a *API) checkRoundCompletion(guildID string) error {
	finished, err := a.Store.CountFinishedGames(guildID)
	if err != nil {
		return err
	}
	for _, round := range logic.RoundsToCreate(int(finished)) {
		if err := a.createRound(guildID, round); err != nil {
			return err
		}
	}
	return nil
}

// createRound pairs the teams feeding a round type and creates its games. Re-entrant: a no-op
// when games of the round type already exist.
func (a *API) createRound(guildID string, round shared.RoundType) error {
	existing, err := a.Store.GetGamesByType(guildID, round)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	teams, err := a.teamsForRound(guildID, round)
	if err != nil {
		return err
	}

	byID := make(map[string]store.Team, len(teams))
	ids := make([]string, 0, len(teams))
	for _, team := range teams {
		byID[team.ID.Hex()] = team
		ids = append(ids, team.ID.Hex())
	}

	pairings, err := logic.PairTeams(ids, a.rng)
	if err != nil {
		return fmt.Errorf("cannot pair %d teams for round %s: %w", len(teams), round, err)
	}

	for _, pairing := range pairings {
		teamOne := byID[pairing.First]
		teamTwo := byID[pairing.Second]
		game := store.Game{
			GuildID:   guildID,
			TeamOneID: teamOne.ID,
			TeamTwoID: teamTwo.ID,
			RoundType: round,
		}
		gameID, err := a.Store.CreateGame(game)
		if err != nil {
			return err
		}
		game.ID = gameID

		if a.Provisioner != nil {
			provisioned, err := a.Provisioner.ProvisionGame(game, teamOne, teamTwo)
			if err != nil {
				// The game row exists and the round will not be re-created; channels can
				// be provisioned by hand
				log.Printf("Failed to provision channels for game %s: %v", gameID.Hex(), err)
				continue
			}
			if err := a.Store.UpdateGameChannels(provisioned); err != nil {
				return err
			}
		}
	}
	return nil
}

// teamsForRound selects the teams feeding a round: everyone for swiss_1, an exact record
// bucket for later swiss rounds, an eligibility flag for playoffs. Teams on 3 wins or 3
// losses match no swiss bucket and drop out of the stage without an explicit exclusion.
func (a *API) teamsForRound(guildID string, round shared.RoundType) ([]store.Team, error) {
	if round == shared.Swiss1 {
		return a.Store.GetAllTeams(guildID)
	}
	if bucket, ok := logic.BucketForRound(round); ok {
		return a.Store.GetTeamsByRecord(guildID, bucket.Wins, bucket.Losses)
	}
	if flag, ok := store.FlagForRound(round); ok {
		return a.Store.GetTeamsByFlag(guildID, flag)
	}
	return nil, fmt.Errorf("no team selection rule for round %s", round)
}

// endregion

// region Presentation

// GetMatchState contains the logic to assemble the full presentable state of one series:
// ordered ban/pick history, map records, whose turn it is and what remains in the pool
func (a *API) GetMatchState(guildID string, gameID primitive.ObjectID) (MatchState, error) {
	game, err := a.Store.GetGameByID(guildID, gameID)
	if err != nil {
		return MatchState{}, err
	}
	format, err := a.Formats.Resolve(game.RoundType)
	if err != nil {
		return MatchState{}, err
	}
	teamOne, err := a.Store.GetTeamByID(guildID, game.TeamOneID)
	if err != nil {
		return MatchState{}, err
	}
	teamTwo, err := a.Store.GetTeamByID(guildID, game.TeamTwoID)
	if err != nil {
		return MatchState{}, err
	}
	vetoes, err := a.Store.GetVetoesByGame(guildID, gameID)
	if err != nil {
		return MatchState{}, err
	}
	picks, err := a.Store.GetPicksByGame(guildID, gameID)
	if err != nil {
		return MatchState{}, err
	}
	maps, err := a.Store.GetGameMapsByGame(guildID, gameID)
	if err != nil {
		return MatchState{}, err
	}

	phase, err := logic.DerivePhase(len(vetoes), len(picks), format, len(a.MapPool))
	if err != nil {
		return MatchState{}, err
	}

	state := MatchState{
		GameID:     gameID.Hex(),
		RoundType:  game.RoundType,
		Format:     format,
		TeamOne:    teamOne.Name,
		TeamTwo:    teamTwo.Name,
		Turn:       phase.Turn,
		NextAction: phase.Expected,
		VetoDone:   phase.Complete,
		Winner:     shared.TeamNumber(game.WinnerNumber),
		Remaining:  logic.RemainingMaps(a.MapPool, usedMapNames(vetoes, picks)),
	}

	names := map[shared.TeamNumber]string{
		shared.TeamOne: teamOne.Name,
		shared.TeamTwo: teamTwo.Name,
	}
	history := make([]HistoryEntry, len(vetoes)+len(picks))
	for _, v := range vetoes {
		number := game.TeamNumberOf(v.TeamID)
		history[v.Order] = HistoryEntry{
			Order:    v.Order,
			Action:   logic.ActionVeto,
			Team:     number,
			TeamName: names[number],
			MapName:  v.MapName,
		}
	}
	for _, p := range picks {
		number := game.TeamNumberOf(p.TeamID)
		history[p.Order] = HistoryEntry{
			Order:    p.Order,
			Action:   logic.ActionPick,
			Team:     number,
			TeamName: names[number],
			MapName:  p.MapName,
			Decider:  p.IsDecider(),
		}
	}
	state.History = history

	for _, m := range maps {
		state.Maps = append(state.Maps, MapState{
			MapName:   m.MapName,
			MapNumber: m.MapNumber,
			Winner:    shared.TeamNumber(m.WinnerNumber),
		})
	}
	return state, nil
}

// GetTournamentSummary contains the logic to assemble the whole-tournament view: every round
// that has games, each series with its map tally, and the standings table
func (a *API) GetTournamentSummary(guildID string) (TournamentSummary, error) {
	var summary TournamentSummary

	teams, err := a.Store.GetTeamsByStanding(guildID)
	if err != nil {
		return TournamentSummary{}, err
	}
	names := make(map[primitive.ObjectID]string, len(teams))
	for _, team := range teams {
		names[team.ID] = team.Name
		summary.Standings = append(summary.Standings, TeamStanding{
			Name:        team.Name,
			SwissWins:   team.SwissWins,
			SwissLosses: team.SwissLosses,
			Qualified:   team.IsQuarterfinalist,
		})
	}

	finished, err := a.Store.CountFinishedGames(guildID)
	if err != nil {
		return TournamentSummary{}, err
	}
	summary.Complete = int(finished) == logic.TournamentComplete

	for _, round := range shared.AllRoundTypes {
		games, err := a.Store.GetGamesByType(guildID, round)
		if err != nil {
			return TournamentSummary{}, err
		}
		if len(games) == 0 {
			continue
		}
		roundSummary := RoundSummary{Round: round}
		for _, game := range games {
			maps, err := a.Store.GetGameMapsByGame(guildID, game.ID)
			if err != nil {
				return TournamentSummary{}, err
			}
			oneWins, twoWins := logic.TallyMapWins(toOutcomes(maps))
			roundSummary.Games = append(roundSummary.Games, GameSummary{
				TeamOne:     names[game.TeamOneID],
				TeamTwo:     names[game.TeamTwoID],
				TeamOneWins: oneWins,
				TeamTwoWins: twoWins,
				Winner:      shared.TeamNumber(game.WinnerNumber),
			})
		}
		summary.Rounds = append(summary.Rounds, roundSummary)
	}
	return summary, nil
}

// FindSeries returns the series between two teams, searching the rounds from the final
// backwards so a rematch resolves to the later game
func (a *API) FindSeries(guildID string, nameA string, nameB string) (store.Game, error) {
	teamA, err := a.Store.GetTeamByName(guildID, nameA)
	if err != nil {
		return store.Game{}, fmt.Errorf("unknown team '%s': %w", nameA, err)
	}
	teamB, err := a.Store.GetTeamByName(guildID, nameB)
	if err != nil {
		return store.Game{}, fmt.Errorf("unknown team '%s': %w", nameB, err)
	}
	for i := len(shared.AllRoundTypes) - 1; i >= 0; i-- {
		game, err := a.Store.GetGameByTeamsAndType(guildID, teamA.ID, teamB.ID, shared.AllRoundTypes[i])
		if err == nil {
			return game, nil
		}
	}
	return store.Game{}, fmt.Errorf("no series between '%s' and '%s'", nameA, nameB)
}

func toOutcomes(maps []store.GameMap) []logic.MapOutcome {
	outcomes := make([]logic.MapOutcome, 0, len(maps))
	for _, m := range maps {
		outcomes = append(outcomes, logic.MapOutcome{
			MapName: m.MapName,
			Winner:  shared.TeamNumber(m.WinnerNumber),
		})
	}
	return outcomes
}

// endregion

// region Announcements

// SetSummaryChannel records the channel that carries the guild's standing tournament summary
// message and publishes the current summary there
func (a *API) SetSummaryChannel(guildID string, channelID string) error {
	if err := a.Store.SetSetting(guildID, settingSummaryChannel, channelID); err != nil {
		return err
	}
	if err := a.Store.SetSetting(guildID, settingSummaryMessage, ""); err != nil {
		return err
	}
	return a.publishSummary(guildID)
}

// publishSummary refreshes the guild's summary message. A no-op without an announcer or a
// configured summary channel.
func (a *API) publishSummary(guildID string) error {
	if a.Announcer == nil {
		return nil
	}
	channelID, ok, err := a.Store.GetSetting(guildID, settingSummaryChannel)
	if err != nil || !ok || channelID == "" {
		return err
	}
	messageID, _, err := a.Store.GetSetting(guildID, settingSummaryMessage)
	if err != nil {
		return err
	}
	summary, err := a.GetTournamentSummary(guildID)
	if err != nil {
		return err
	}
	newID, err := a.Announcer.PublishSummary(channelID, messageID, summary)
	if err != nil {
		return err
	}
	if newID != messageID {
		return a.Store.SetSetting(guildID, settingSummaryMessage, newID)
	}
	return nil
}

// publishMatchState refreshes the standing state message in a game's channel. Failures are
// logged; the stored state is authoritative and the message catches up on the next change.
func (a *API) publishMatchState(guildID string, gameID primitive.ObjectID) {
	if a.Announcer == nil {
		return
	}
	game, err := a.Store.GetGameByID(guildID, gameID)
	if err != nil || game.GameChannelID == "" {
		return
	}
	state, err := a.GetMatchState(guildID, gameID)
	if err != nil {
		log.Printf("Failed to assemble state for game %s: %v", gameID.Hex(), err)
		return
	}
	newID, err := a.Announcer.PublishMatchState(game.GameChannelID, game.SummaryMessageID, state)
	if err != nil {
		log.Printf("Failed to publish state for game %s: %v", gameID.Hex(), err)
		return
	}
	if newID != game.SummaryMessageID {
		game.SummaryMessageID = newID
		if err := a.Store.UpdateGameChannels(game); err != nil {
			log.Printf("Failed to store state message id for game %s: %v", gameID.Hex(), err)
		}
	}
}

// endregion
