/* models.go
 * Contains the view structs the API hands to presentation code. The bot and web layers render
 * from these only and never reach into the store
 * Authors: Zachary Bower
 */

package api

import (
	"tournament-bot/api/logic"
	"tournament-bot/api/shared"
)

// HistoryEntry is one chronological step of a game's ban/pick history. Team is NoTeam and
// Decider is true for the system-derived final map
type HistoryEntry struct {
	Order    int
	Action   logic.ActionType
	Team     shared.TeamNumber
	TeamName string
	MapName  string
	Decider  bool
}

// MapState is the played (or pending) state of one map of a series
type MapState struct {
	MapName   string
	MapNumber int
	Winner    shared.TeamNumber
}

// MatchState is the full presentable state of one series
type MatchState struct {
	GameID      string
	RoundType   shared.RoundType
	Format      shared.Format
	TeamOne     string
	TeamTwo     string
	History     []HistoryEntry
	Maps        []MapState
	Turn        shared.TeamNumber // team expected to act next; NoTeam once the veto is done
	NextAction  logic.ActionType
	VetoDone    bool
	Winner      shared.TeamNumber // NoTeam while the series is live
	Remaining   []string          // pool maps still selectable, in pool order
}

// GameSummary is one series line of the tournament summary
type GameSummary struct {
	TeamOne     string
	TeamTwo     string
	TeamOneWins int
	TeamTwoWins int
	Winner      shared.TeamNumber
}

// RoundSummary groups the games of one round type
type RoundSummary struct {
	Round shared.RoundType
	Games []GameSummary
}

// TeamStanding is one row of the standings table
type TeamStanding struct {
	Name        string
	SwissWins   int
	SwissLosses int
	Qualified   bool // holds a quarterfinalist flag or better
}

// TournamentSummary is the whole-tournament view: every played round plus standings
type TournamentSummary struct {
	Rounds    []RoundSummary
	Standings []TeamStanding
	Complete  bool
}
