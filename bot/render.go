/* render.go
 * Contains the functions that turn API view structs into Discord messages. Rendering reads
 * only from the view structs; no state is derived here
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"

	"tournament-bot/api/api"
	"tournament-bot/api/shared"
)

// renderMatchState formats the full state of one series for a match channel
func renderMatchState(state api.MatchState) string {
	var res strings.Builder
	res.WriteString(fmt.Sprintf("**%s vs %s** (%s, %s)\n", state.TeamOne, state.TeamTwo, state.RoundType, state.Format))

	if len(state.History) > 0 {
		res.WriteString("Veto history:\n")
		for _, entry := range state.History {
			if entry.Decider {
				res.WriteString(fmt.Sprintf("%d. %s is the decider\n", entry.Order+1, entry.MapName))
				continue
			}
			res.WriteString(fmt.Sprintf("%d. %s %sed %s\n", entry.Order+1, entry.TeamName, entry.Action, entry.MapName))
		}
	}

	if !state.VetoDone {
		actor := state.TeamOne
		if state.Turn == shared.TeamTwo {
			actor = state.TeamTwo
		}
		res.WriteString(fmt.Sprintf("Next: %s to %s. Remaining maps: %s\n", actor, state.NextAction, strings.Join(state.Remaining, ", ")))
		return res.String()
	}

	res.WriteString("Maps:\n")
	for _, m := range state.Maps {
		switch m.Winner {
		case shared.TeamOne:
			res.WriteString(fmt.Sprintf("%d. %s - won by %s\n", m.MapNumber+1, m.MapName, state.TeamOne))
		case shared.TeamTwo:
			res.WriteString(fmt.Sprintf("%d. %s - won by %s\n", m.MapNumber+1, m.MapName, state.TeamTwo))
		default:
			res.WriteString(fmt.Sprintf("%d. %s - not played\n", m.MapNumber+1, m.MapName))
		}
	}

	switch state.Winner {
	case shared.TeamOne:
		res.WriteString(fmt.Sprintf("**%s wins the series**\n", state.TeamOne))
	case shared.TeamTwo:
		res.WriteString(fmt.Sprintf("**%s wins the series**\n", state.TeamTwo))
	}
	return res.String()
}

// renderSummary formats the whole-tournament view for the $summary command
func renderSummary(summary api.TournamentSummary) string {
	var res strings.Builder
	if summary.Complete {
		res.WriteString("**The tournament is complete!**\n")
	}

	for _, round := range summary.Rounds {
		res.WriteString(fmt.Sprintf("__%s__\n", round.Round))
		for _, game := range round.Games {
			line := fmt.Sprintf("%s %d - %d %s", game.TeamOne, game.TeamOneWins, game.TeamTwoWins, game.TeamTwo)
			if game.Winner != shared.NoTeam {
				winner := game.TeamOne
				if game.Winner == shared.TeamTwo {
					winner = game.TeamTwo
				}
				line += fmt.Sprintf(" (%s)", winner)
			}
			res.WriteString(line + "\n")
		}
	}

	if len(summary.Standings) > 0 {
		res.WriteString("__Standings__\n")
		for _, standing := range summary.Standings {
			line := fmt.Sprintf("%s (%d-%d)", standing.Name, standing.SwissWins, standing.SwissLosses)
			if standing.Qualified {
				line += " *qualified*"
			}
			res.WriteString(line + "\n")
		}
	}
	return res.String()
}
