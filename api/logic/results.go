/* results.go
 * Contains the pure series tabulation logic: per-team map win tallies and the first-to-threshold
 * series decision rule
 * Authors: Zachary Bower
 */

package logic

import "tournament-bot/api/shared"

// MapOutcome is the winner of one played map, NoTeam while the map is open
type MapOutcome struct {
	MapName string
	Winner  shared.TeamNumber
}

// TallyMapWins counts the map wins per side across a series. Open maps count for nobody.
func TallyMapWins(outcomes []MapOutcome) (teamOne int, teamTwo int) {
	for _, outcome := range outcomes {
		switch outcome.Winner {
		case shared.TeamOne:
			teamOne++
		case shared.TeamTwo:
			teamTwo++
		}
	}
	return teamOne, teamTwo
}

// SeriesWinner applies the first-to-threshold rule: the threshold is 1 for bo1, 2 for bo3 and
// 3 for bo5. Returns NoTeam while neither side has reached it.
func SeriesWinner(teamOneWins, teamTwoWins int, format shared.Format) shared.TeamNumber {
	threshold := format.MapsToWin()
	if teamOneWins >= threshold {
		return shared.TeamOne
	}
	if teamTwoWins >= threshold {
		return shared.TeamTwo
	}
	return shared.NoTeam
}
